package engine

import (
	"math"

	"powerplan/domain/core"
	"powerplan/domain/design"
)

// splitGroups truncates the treatment share of the total, matching the
// reference behavior: n1 = floor(total*frac), n2 = total - n1.
func splitGroups(total int, frac float64) design.GroupSizes {
	n1 := int(math.Floor(float64(total) * frac))
	return design.GroupSizes{Treatment: n1, Control: total - n1}
}

// standardError computes se = sqrt(p*(1-p)*(1/n1 + 1/n2)) for non-empty groups
func (e *DesignEngine) standardError(groups design.GroupSizes) float64 {
	return math.Sqrt(e.pooledVariance() * (1/float64(groups.Treatment) + 1/float64(groups.Control)))
}

// criticalValue returns the two-sided critical value z = Quantile(1 - alpha/2)
func criticalValue(alpha float64) float64 {
	return normalQuantile(1 - alpha/2)
}

// Power computes statistical power for a two-sided two-proportion z-test.
// frac and mde are proportions, not percentages. A split that truncates either
// group to zero yields power 0 with Degenerate set rather than an error.
func (e *DesignEngine) Power(total int, frac, mde, alpha float64) (design.PowerResult, error) {
	if total <= 0 {
		return design.PowerResult{}, core.ErrSampleNotPositive
	}
	if frac <= 0 || frac >= 1 {
		return design.PowerResult{}, core.ErrFractionOutOfOpen
	}
	if mde <= 0 {
		return design.PowerResult{}, core.ErrMDENotPositive
	}
	if alpha <= 0 || alpha >= 1 {
		return design.PowerResult{}, core.ErrAlphaOutOfRange
	}

	groups := splitGroups(total, frac)
	if groups.Degenerate() {
		return design.PowerResult{Power: 0, Groups: groups, Degenerate: true}, nil
	}

	se := e.standardError(groups)
	zAlpha := criticalValue(alpha)

	// Probability the test statistic lands in either rejection tail under the
	// true effect mde.
	power := 1 - normalCDF(zAlpha-mde/se) + normalCDF(-zAlpha-mde/se)
	return design.PowerResult{Power: power, Groups: groups}, nil
}

// MDE computes the minimum detectable effect for a target power. The returned
// effect is in absolute proportion units. Degenerate splits yield the sentinel
// mde = 1, which is a signal and not a solution.
func (e *DesignEngine) MDE(total int, frac, power, alpha float64) (design.MdeResult, error) {
	if total <= 0 {
		return design.MdeResult{}, core.ErrSampleNotPositive
	}
	if frac <= 0 || frac >= 1 {
		return design.MdeResult{}, core.ErrFractionOutOfOpen
	}
	if power <= 0 || power >= 1 {
		return design.MdeResult{}, core.ErrPowerOutOfRange
	}
	if alpha <= 0 || alpha >= 1 {
		return design.MdeResult{}, core.ErrAlphaOutOfRange
	}

	groups := splitGroups(total, frac)
	if groups.Degenerate() {
		return design.MdeResult{MDE: 1, Groups: groups, Degenerate: true}, nil
	}

	se := e.standardError(groups)
	zAlpha := criticalValue(alpha)
	zBeta := normalQuantile(power)

	// Exact algebraic inverse of the power formula under the normal
	// approximation (one-sided zBeta: detection in the hypothesized direction).
	return design.MdeResult{MDE: (zAlpha + zBeta) * se, Groups: groups}, nil
}

// SampleSize computes the total sample required to detect mde at the target
// power. Each group is rounded independently and the total is recomputed as
// their sum, so Treatment+Control == Total holds exactly; the total may differ
// by one from rounding the closed-form value directly. This rounding policy
// is what keeps Power and MDE round-trips consistent.
func (e *DesignEngine) SampleSize(mde, power, frac, alpha float64) (design.SampleSizeResult, error) {
	if mde <= 0 {
		return design.SampleSizeResult{}, core.ErrMDENotPositive
	}
	if power <= 0 || power >= 1 {
		return design.SampleSizeResult{}, core.ErrPowerOutOfRange
	}
	if frac <= 0 || frac >= 1 {
		return design.SampleSizeResult{}, core.ErrFractionOutOfOpen
	}
	if alpha <= 0 || alpha >= 1 {
		return design.SampleSizeResult{}, core.ErrAlphaOutOfRange
	}

	zAlpha := criticalValue(alpha)
	zBeta := normalQuantile(power)

	zSum := zAlpha + zBeta
	raw := zSum * zSum * e.pooledVariance() / (frac * (1 - frac)) / (mde * mde)

	groups := design.GroupSizes{
		Treatment: int(math.Round(raw * frac)),
		Control:   int(math.Round(raw * (1 - frac))),
	}
	return design.SampleSizeResult{Total: groups.Total(), Groups: groups}, nil
}
