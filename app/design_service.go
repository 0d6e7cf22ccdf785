package app

import (
	"context"
	"runtime"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"powerplan/adapters/stats/engine"
	"powerplan/domain/core"
	"powerplan/domain/design"
	"powerplan/internal/config"
	apperrors "powerplan/internal/errors"
	"powerplan/ports"
)

// AdequatePowerThreshold is the conventional bar for a well-powered design
const AdequatePowerThreshold = 0.8

// DesignService is the percent-facing boundary of the design engine. It owns
// the percentage-to-proportion conversion, applies configured defaults for
// alpha and power, and orchestrates allocation sweeps. It holds no state
// across calls.
type DesignService struct {
	engine *engine.DesignEngine
	cfg    config.DesignConfig
}

// NewDesignService creates a design service
func NewDesignService(eng *engine.DesignEngine, cfg config.DesignConfig) *DesignService {
	return &DesignService{engine: eng, cfg: cfg}
}

// Grid returns the configured sweep grid
func (s *DesignService) Grid() design.Grid {
	return design.Grid{
		StartPercent: s.cfg.GridStartPct,
		EndPercent:   s.cfg.GridEndPct,
		StepPercent:  s.cfg.GridStepPct,
	}
}

func (s *DesignService) alphaOrDefault(alpha float64) float64 {
	if alpha == 0 {
		return s.cfg.DefaultAlpha
	}
	return alpha
}

func (s *DesignService) powerOrDefault(power float64) float64 {
	if power == 0 {
		return s.cfg.DefaultPower
	}
	return power
}

// mapEngineErr translates out-of-domain engine errors into the service's
// coded error type; anything else passes through wrapped.
func mapEngineErr(err error) error {
	if err == nil {
		return nil
	}
	if core.IsDomainError(err) {
		return apperrors.DomainError(err)
	}
	return apperrors.Wrap(err, "design computation failed")
}

// ComputePower solves for power. Percent inputs are converted to proportions
// here; the engine never sees percent units.
func (s *DesignService) ComputePower(ctx context.Context, req ports.PowerRequest) (*ports.PowerReport, error) {
	res, err := s.engine.Power(
		req.TotalSampleSize,
		req.TreatmentPercent/100,
		req.MDEPercent/100,
		s.alphaOrDefault(req.Alpha),
	)
	if err != nil {
		return nil, mapEngineErr(err)
	}
	return &ports.PowerReport{
		Power:             res.Power,
		AdequatelyPowered: !res.Degenerate && res.Power >= AdequatePowerThreshold,
		Degenerate:        res.Degenerate,
		Groups:            res.Groups,
	}, nil
}

// ComputeMDE solves for the minimum detectable effect, reported in percentage
// points. A degenerate split surfaces the sentinel (100 points) with the
// Degenerate flag set.
func (s *DesignService) ComputeMDE(ctx context.Context, req ports.MdeRequest) (*ports.MdeReport, error) {
	res, err := s.engine.MDE(
		req.TotalSampleSize,
		req.TreatmentPercent/100,
		s.powerOrDefault(req.Power),
		s.alphaOrDefault(req.Alpha),
	)
	if err != nil {
		return nil, mapEngineErr(err)
	}
	return &ports.MdeReport{
		MDEPercent: res.MDE * 100,
		Degenerate: res.Degenerate,
		Groups:     res.Groups,
	}, nil
}

// ComputeSampleSize solves for the total sample required
func (s *DesignService) ComputeSampleSize(ctx context.Context, req ports.SampleSizeRequest) (*ports.SampleSizeReport, error) {
	res, err := s.engine.SampleSize(
		req.MDEPercent/100,
		s.powerOrDefault(req.Power),
		req.TreatmentPercent/100,
		s.alphaOrDefault(req.Alpha),
	)
	if err != nil {
		return nil, mapEngineErr(err)
	}
	return &ports.SampleSizeReport{
		TotalSampleSize: res.Total,
		Groups:          res.Groups,
	}, nil
}

// SweepByAllocation evaluates the configured grid. Grid points are independent
// pure computations, so they run under a bounded errgroup with each worker
// writing its own slot; the assembled result is identical to a serial sweep.
func (s *DesignService) SweepByAllocation(ctx context.Context, req ports.SweepRequest) (*design.SweepResult, error) {
	if !req.Mode.Valid() {
		return nil, apperrors.InvalidInput("sweep mode must be sample_size or mde")
	}

	grid := s.Grid()
	if err := grid.Validate(); err != nil {
		return nil, apperrors.Wrap(err, "invalid sweep grid")
	}

	alpha := s.alphaOrDefault(req.Alpha)
	power := s.powerOrDefault(req.Power)

	pcts := grid.Percents()
	points := make([]design.SweepPoint, len(pcts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, pct := range pcts {
		i, pct := i, pct
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			switch req.Mode {
			case design.SweepSampleSize:
				res, err := s.engine.SampleSize(req.MDEPercent/100, power, pct/100, alpha)
				if err != nil {
					return err
				}
				points[i] = design.SweepPoint{
					TreatmentPercent: pct,
					Value:            float64(res.Total),
					Groups:           res.Groups,
				}
			case design.SweepMDE:
				res, err := s.engine.MDE(req.TotalSampleSize, pct/100, power, alpha)
				if err != nil {
					return err
				}
				points[i] = design.SweepPoint{
					TreatmentPercent: pct,
					Value:            res.MDE * 100, // percentage points, as presented
					Groups:           res.Groups,
					Degenerate:       res.Degenerate,
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, mapEngineErr(err)
	}

	summary, err := summarize(points)
	if err != nil {
		return nil, apperrors.Wrap(err, "sweep summary failed")
	}

	return &design.SweepResult{
		ID:        core.SweepID(core.NewID()),
		Mode:      req.Mode,
		Points:    points,
		Optimal:   engine.Optimal(points),
		Summary:   summary,
		CreatedAt: core.Now(),
	}, nil
}

// summarize condenses the swept values into min/max/median
func summarize(points []design.SweepPoint) (design.SweepSummary, error) {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}

	min, err := stats.Min(values)
	if err != nil {
		return design.SweepSummary{}, err
	}
	max, err := stats.Max(values)
	if err != nil {
		return design.SweepSummary{}, err
	}
	median, err := stats.Median(values)
	if err != nil {
		return design.SweepSummary{}, err
	}
	return design.SweepSummary{Min: min, Max: max, Median: median}, nil
}
