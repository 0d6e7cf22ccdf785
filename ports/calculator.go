package ports

import (
	"context"

	"powerplan/domain/design"
)

// PowerRequest asks for the power of a fully specified design.
// Percentage-valued fields use percent units: TreatmentPercent in (0,100)
// ([1,99] by convention), MDEPercent in percentage points.
type PowerRequest struct {
	TotalSampleSize  int     `json:"total_sample_size"`
	TreatmentPercent float64 `json:"treatment_pct"`
	MDEPercent       float64 `json:"mde_pct"`
	Alpha            float64 `json:"alpha,omitempty"`
}

// MdeRequest asks for the minimum detectable effect at a target power
type MdeRequest struct {
	TotalSampleSize  int     `json:"total_sample_size"`
	TreatmentPercent float64 `json:"treatment_pct"`
	Power            float64 `json:"power,omitempty"`
	Alpha            float64 `json:"alpha,omitempty"`
}

// SampleSizeRequest asks for the total sample required for a target design
type SampleSizeRequest struct {
	MDEPercent       float64 `json:"mde_pct"`
	Power            float64 `json:"power,omitempty"`
	TreatmentPercent float64 `json:"treatment_pct"`
	Alpha            float64 `json:"alpha,omitempty"`
}

// SweepRequest fixes all but the allocation split and sweeps it over a grid.
// TotalSampleSize is used in MDE mode, MDEPercent in sample-size mode.
type SweepRequest struct {
	Mode            design.SweepMode `json:"mode"`
	TotalSampleSize int              `json:"total_sample_size,omitempty"`
	MDEPercent      float64          `json:"mde_pct,omitempty"`
	Power           float64          `json:"power,omitempty"`
	Alpha           float64          `json:"alpha,omitempty"`
}

// PowerReport is a PowerResult annotated for presentation
type PowerReport struct {
	Power             float64           `json:"power"`
	AdequatelyPowered bool              `json:"adequately_powered"`
	Degenerate        bool              `json:"degenerate"`
	Groups            design.GroupSizes `json:"groups"`
}

// MdeReport carries the MDE converted back to percentage points
type MdeReport struct {
	MDEPercent float64           `json:"mde_pct"`
	Degenerate bool              `json:"degenerate"`
	Groups     design.GroupSizes `json:"groups"`
}

// SampleSizeReport carries the rounded design
type SampleSizeReport struct {
	TotalSampleSize int               `json:"total_sample_size"`
	Groups          design.GroupSizes `json:"groups"`
}

// DesignCalculatorPort is the percent-facing surface of the design engine.
// Implementations convert percentages to proportions before any math runs;
// the engine itself never sees percent units.
type DesignCalculatorPort interface {
	// ComputePower solves for power given total sample, split and MDE
	ComputePower(ctx context.Context, req PowerRequest) (*PowerReport, error)

	// ComputeMDE solves for the minimum detectable effect given total sample, split and power
	ComputeMDE(ctx context.Context, req MdeRequest) (*MdeReport, error)

	// ComputeSampleSize solves for the total sample given MDE, power and split
	ComputeSampleSize(ctx context.Context, req SampleSizeRequest) (*SampleSizeReport, error)

	// SweepByAllocation varies the split over the configured grid and reports
	// every point plus the one minimizing the swept quantity
	SweepByAllocation(ctx context.Context, req SweepRequest) (*design.SweepResult, error)
}
