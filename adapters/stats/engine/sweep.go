package engine

import (
	"powerplan/domain/design"
)

// SweepSampleSize holds mde, power and alpha fixed and evaluates the required
// total sample size at each allocation percentage of the grid. Points come
// back in ascending percentage order.
func (e *DesignEngine) SweepSampleSize(mde, power, alpha float64, grid design.Grid) ([]design.SweepPoint, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	pcts := grid.Percents()
	points := make([]design.SweepPoint, 0, len(pcts))
	for _, pct := range pcts {
		res, err := e.SampleSize(mde, power, pct/100, alpha)
		if err != nil {
			return nil, err
		}
		points = append(points, design.SweepPoint{
			TreatmentPercent: pct,
			Value:            float64(res.Total),
			Groups:           res.Groups,
		})
	}
	return points, nil
}

// SweepMDE holds the total sample size, power and alpha fixed and evaluates
// the minimum detectable effect (proportion units) at each allocation
// percentage of the grid.
func (e *DesignEngine) SweepMDE(total int, power, alpha float64, grid design.Grid) ([]design.SweepPoint, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	pcts := grid.Percents()
	points := make([]design.SweepPoint, 0, len(pcts))
	for _, pct := range pcts {
		res, err := e.MDE(total, pct/100, power, alpha)
		if err != nil {
			return nil, err
		}
		points = append(points, design.SweepPoint{
			TreatmentPercent: pct,
			Value:            res.MDE,
			Groups:           res.Groups,
			Degenerate:       res.Degenerate,
		})
	}
	return points, nil
}

// Optimal returns the stable argmin over points: the first point whose value
// is strictly smaller than everything before it wins ties. Points must be in
// ascending percentage order, which both sweeps guarantee.
func Optimal(points []design.SweepPoint) design.SweepPoint {
	if len(points) == 0 {
		return design.SweepPoint{}
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.Value < best.Value {
			best = p
		}
	}
	return best
}
