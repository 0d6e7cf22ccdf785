package engine

// DesignEngine computes two-proportion A/B test design parameters under the
// normal approximation with the conservative pooled proportion p = 0.5.
// All methods are pure and stateless; every call produces a fresh result.
type DesignEngine struct {
	pooledProportion float64
}

// NewDesignEngine creates a design engine with the conservative pooled
// proportion 0.5 (maximum variance, worst-case design regardless of the
// actual expected rates)
func NewDesignEngine() *DesignEngine {
	return &DesignEngine{pooledProportion: 0.5}
}

// pooledVariance returns p*(1-p) for the fixed pooled proportion
func (e *DesignEngine) pooledVariance() float64 {
	return e.pooledProportion * (1 - e.pooledProportion)
}
