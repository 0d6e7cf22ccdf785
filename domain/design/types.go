package design

import (
	"fmt"

	"powerplan/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// GroupSizes splits a total sample between treatment and control
// INVARIANTS:
// - Treatment and Control are non-negative
// - Treatment + Control == Total() always holds exactly
type GroupSizes struct {
	Treatment int `json:"treatment"`
	Control   int `json:"control"`
}

// Total returns the combined sample size
func (g GroupSizes) Total() int {
	return g.Treatment + g.Control
}

// Degenerate reports whether either group is empty. A degenerate split is an
// infeasible design, not a computed answer; callers flag it distinctly.
func (g GroupSizes) Degenerate() bool {
	return g.Treatment == 0 || g.Control == 0
}

// PowerResult is the outcome of a power calculation
type PowerResult struct {
	Power      float64    `json:"power"` // in [0,1]; 0 when Degenerate
	Groups     GroupSizes `json:"groups"`
	Degenerate bool       `json:"degenerate"`
}

// MdeResult is the outcome of a minimum-detectable-effect calculation.
// MDE is in absolute proportion units; the sentinel value 1 is returned for
// degenerate splits and must not be read as a real solution.
type MdeResult struct {
	MDE        float64    `json:"mde"`
	Groups     GroupSizes `json:"groups"`
	Degenerate bool       `json:"degenerate"`
}

// SampleSizeResult is the outcome of a required-sample-size calculation.
// Total is recomputed as Groups.Treatment + Groups.Control after rounding each
// group independently, so it may differ by one from the literal closed form.
type SampleSizeResult struct {
	Total  int        `json:"total"`
	Groups GroupSizes `json:"groups"`
}

// ============================================================================
// SWEEP TYPES
// ============================================================================

// SweepMode selects which quantity an allocation sweep solves for
type SweepMode string

const (
	SweepSampleSize SweepMode = "sample_size" // fixed: mde, power, alpha
	SweepMDE        SweepMode = "mde"         // fixed: total, power, alpha
)

// Valid reports whether the mode is one of the two known sweep modes
func (m SweepMode) Valid() bool {
	return m == SweepSampleSize || m == SweepMDE
}

// SweepPoint is one grid evaluation: the allocation percentage, the dependent
// value at that split (required total or MDE), and the implied group sizes
type SweepPoint struct {
	TreatmentPercent float64    `json:"treatment_pct"`
	Value            float64    `json:"value"`
	Groups           GroupSizes `json:"groups"`
	Degenerate       bool       `json:"degenerate,omitempty"`
}

// SweepSummary describes the spread of the dependent value across the grid
type SweepSummary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// SweepResult is an ordered sweep over allocation percentages plus the point
// that minimizes the dependent value (first such point on ties)
type SweepResult struct {
	ID        core.SweepID   `json:"sweep_id"`
	Mode      SweepMode      `json:"mode"`
	Points    []SweepPoint   `json:"points"` // ascending TreatmentPercent
	Optimal   SweepPoint     `json:"optimal"`
	Summary   SweepSummary   `json:"summary"`
	CreatedAt core.Timestamp `json:"created_at"`
}

// ============================================================================
// GRID
// ============================================================================

// Grid defines the allocation percentages a sweep walks, inclusive of both ends
type Grid struct {
	StartPercent float64 `json:"start_pct"`
	EndPercent   float64 `json:"end_pct"`
	StepPercent  float64 `json:"step_pct"`
}

// DefaultGrid is the canonical 5%..95% step 5 grid (19 points)
func DefaultGrid() Grid {
	return Grid{StartPercent: 5, EndPercent: 95, StepPercent: 5}
}

// Percents expands the grid into its ascending percentage values
func (g Grid) Percents() []float64 {
	if g.StepPercent <= 0 || g.EndPercent < g.StartPercent {
		return nil
	}
	var pcts []float64
	// Half-step tolerance keeps the inclusive upper bound stable under
	// float accumulation.
	for p := g.StartPercent; p <= g.EndPercent+g.StepPercent/2; p += g.StepPercent {
		pcts = append(pcts, p)
	}
	return pcts
}

// Validate checks the grid stays inside the open (0,100) percent interval
func (g Grid) Validate() error {
	if g.StepPercent <= 0 {
		return fmt.Errorf("grid step must be positive, got %g", g.StepPercent)
	}
	if g.StartPercent <= 0 || g.EndPercent >= 100 {
		return fmt.Errorf("grid bounds must lie in (0,100), got [%g,%g]", g.StartPercent, g.EndPercent)
	}
	if g.EndPercent < g.StartPercent {
		return fmt.Errorf("grid end %g precedes start %g", g.EndPercent, g.StartPercent)
	}
	return nil
}
