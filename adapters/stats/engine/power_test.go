package engine

import (
	"math"
	"testing"

	"powerplan/domain/core"
)

// refNormalCDF is an independent erf-based standard normal CDF used to check
// the engine against the classical closed form.
func refNormalCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

func refNormalQuantile(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(2*p-1)
}

func TestPower_ClassicalScenario(t *testing.T) {
	e := NewDesignEngine()

	// n=2000, 50/50 split, mde of 2 points, alpha 0.05
	res, err := e.Power(2000, 0.5, 0.02, 0.05)
	if err != nil {
		t.Fatalf("Power returned error: %v", err)
	}

	if res.Groups.Treatment != 1000 || res.Groups.Control != 1000 {
		t.Fatalf("expected 1000/1000 split, got %d/%d", res.Groups.Treatment, res.Groups.Control)
	}

	// Closed form via the reference CDF.
	se := math.Sqrt(0.25 * (1.0/1000 + 1.0/1000))
	zAlpha := refNormalQuantile(1 - 0.05/2)
	want := 1 - refNormalCDF(zAlpha-0.02/se) + refNormalCDF(-zAlpha-0.02/se)

	if math.Abs(res.Power-want) > 1e-6 {
		t.Errorf("power = %.10f, want %.10f within 1e-6", res.Power, want)
	}
	if res.Power < 0 || res.Power > 1 {
		t.Errorf("power %f outside [0,1]", res.Power)
	}
}

func TestPower_DegenerateBoundary(t *testing.T) {
	e := NewDesignEngine()

	// floor(20 * 0.01) = 0: treatment group truncates to empty
	res, err := e.Power(20, 0.01, 0.1, 0.05)
	if err != nil {
		t.Fatalf("Power returned error: %v", err)
	}

	if !res.Degenerate {
		t.Error("expected degenerate result")
	}
	if res.Power != 0 {
		t.Errorf("expected power 0 for degenerate split, got %f", res.Power)
	}
	if res.Groups.Treatment != 0 || res.Groups.Control != 20 {
		t.Errorf("expected groups 0/20, got %d/%d", res.Groups.Treatment, res.Groups.Control)
	}
}

func TestMDE_DegenerateSentinel(t *testing.T) {
	e := NewDesignEngine()

	res, err := e.MDE(20, 0.01, 0.8, 0.05)
	if err != nil {
		t.Fatalf("MDE returned error: %v", err)
	}
	if !res.Degenerate {
		t.Error("expected degenerate result")
	}
	if res.MDE != 1 {
		t.Errorf("expected sentinel mde 1, got %f", res.MDE)
	}
}

func TestDomainValidation(t *testing.T) {
	e := NewDesignEngine()

	tests := []struct {
		name string
		run  func() error
	}{
		{"power: zero total", func() error { _, err := e.Power(0, 0.5, 0.02, 0.05); return err }},
		{"power: frac at 0", func() error { _, err := e.Power(100, 0, 0.02, 0.05); return err }},
		{"power: frac at 1", func() error { _, err := e.Power(100, 1, 0.02, 0.05); return err }},
		{"power: non-positive mde", func() error { _, err := e.Power(100, 0.5, 0, 0.05); return err }},
		{"power: alpha at 1", func() error { _, err := e.Power(100, 0.5, 0.02, 1); return err }},
		{"mde: power at 1", func() error { _, err := e.MDE(100, 0.5, 1, 0.05); return err }},
		{"mde: negative alpha", func() error { _, err := e.MDE(100, 0.5, 0.8, -0.1); return err }},
		{"samplesize: negative mde", func() error { _, err := e.SampleSize(-0.01, 0.8, 0.5, 0.05); return err }},
		{"samplesize: power at 0", func() error { _, err := e.SampleSize(0.02, 0, 0.5, 0.05); return err }},
		{"samplesize: frac out of range", func() error { _, err := e.SampleSize(0.02, 0.8, 1.5, 0.05); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if err == nil {
				t.Fatal("expected a domain error, got nil")
			}
			if !core.IsDomainError(err) {
				t.Errorf("expected domain error, got %v", err)
			}
		})
	}
}

func TestGroupSizeInvariant(t *testing.T) {
	e := NewDesignEngine()

	for _, total := range []int{20, 137, 2000, 99999} {
		for _, frac := range []float64{0.01, 0.1, 0.333, 0.5, 0.75, 0.99} {
			res, err := e.Power(total, frac, 0.02, 0.05)
			if err != nil {
				t.Fatalf("Power(%d, %g): %v", total, frac, err)
			}
			if res.Groups.Total() != total {
				t.Errorf("Power(%d, %g): groups sum to %d", total, frac, res.Groups.Total())
			}

			mres, err := e.MDE(total, frac, 0.8, 0.05)
			if err != nil {
				t.Fatalf("MDE(%d, %g): %v", total, frac, err)
			}
			if mres.Groups.Total() != total {
				t.Errorf("MDE(%d, %g): groups sum to %d", total, frac, mres.Groups.Total())
			}
		}
	}

	// Sample size recomputes the total from rounded groups.
	for _, frac := range []float64{0.2, 0.35, 0.5, 0.8} {
		res, err := e.SampleSize(0.02, 0.8, frac, 0.05)
		if err != nil {
			t.Fatalf("SampleSize(frac=%g): %v", frac, err)
		}
		if res.Groups.Total() != res.Total {
			t.Errorf("SampleSize(frac=%g): total %d != groups sum %d", frac, res.Total, res.Groups.Total())
		}
	}
}

func TestRoundTripConsistency(t *testing.T) {
	e := NewDesignEngine()

	cases := []struct {
		mde, power, frac float64
	}{
		{0.02, 0.8, 0.5},
		{0.02, 0.8, 0.3},
		{0.05, 0.9, 0.5},
		{0.01, 0.7, 0.6},
		{0.1, 0.95, 0.25},
	}

	const alpha = 0.05
	for _, c := range cases {
		n, err := e.SampleSize(c.mde, c.power, c.frac, alpha)
		if err != nil {
			t.Fatalf("SampleSize(%+v): %v", c, err)
		}

		p, err := e.Power(n.Total, c.frac, c.mde, alpha)
		if err != nil {
			t.Fatalf("Power round-trip(%+v): %v", c, err)
		}
		if math.Abs(p.Power-c.power) > 0.01 {
			t.Errorf("round-trip power for %+v: got %.4f, want %.4f +-0.01", c, p.Power, c.power)
		}

		m, err := e.MDE(n.Total, c.frac, c.power, alpha)
		if err != nil {
			t.Fatalf("MDE round-trip(%+v): %v", c, err)
		}
		if math.Abs(m.MDE-c.mde) > 0.001 {
			t.Errorf("round-trip mde for %+v: got %.5f, want %.5f +-0.001", c, m.MDE, c.mde)
		}
	}
}

func TestMonotonicity(t *testing.T) {
	e := NewDesignEngine()
	const alpha = 0.05

	t.Run("power non-decreasing in total", func(t *testing.T) {
		prev := -1.0
		for _, n := range []int{100, 500, 1000, 5000, 20000} {
			res, err := e.Power(n, 0.5, 0.02, alpha)
			if err != nil {
				t.Fatal(err)
			}
			if res.Power < prev {
				t.Errorf("power decreased at n=%d: %f < %f", n, res.Power, prev)
			}
			prev = res.Power
		}
	})

	t.Run("power non-decreasing in mde", func(t *testing.T) {
		prev := -1.0
		for _, mde := range []float64{0.005, 0.01, 0.02, 0.05, 0.1} {
			res, err := e.Power(2000, 0.5, mde, alpha)
			if err != nil {
				t.Fatal(err)
			}
			if res.Power < prev {
				t.Errorf("power decreased at mde=%g: %f < %f", mde, res.Power, prev)
			}
			prev = res.Power
		}
	})

	t.Run("mde non-increasing in total", func(t *testing.T) {
		prev := math.Inf(1)
		for _, n := range []int{100, 500, 1000, 5000, 20000} {
			res, err := e.MDE(n, 0.5, 0.8, alpha)
			if err != nil {
				t.Fatal(err)
			}
			if res.MDE > prev {
				t.Errorf("mde increased at n=%d: %f > %f", n, res.MDE, prev)
			}
			prev = res.MDE
		}
	})

	t.Run("mde non-decreasing in power", func(t *testing.T) {
		prev := -1.0
		for _, power := range []float64{0.5, 0.7, 0.8, 0.9, 0.99} {
			res, err := e.MDE(2000, 0.5, power, alpha)
			if err != nil {
				t.Fatal(err)
			}
			if res.MDE < prev {
				t.Errorf("mde decreased at power=%g: %f < %f", power, res.MDE, prev)
			}
			prev = res.MDE
		}
	})

	t.Run("sample size non-decreasing in power", func(t *testing.T) {
		prev := -1
		for _, power := range []float64{0.5, 0.7, 0.8, 0.9, 0.99} {
			res, err := e.SampleSize(0.02, power, 0.5, alpha)
			if err != nil {
				t.Fatal(err)
			}
			if res.Total < prev {
				t.Errorf("sample size decreased at power=%g: %d < %d", power, res.Total, prev)
			}
			prev = res.Total
		}
	})

	t.Run("sample size non-increasing in mde", func(t *testing.T) {
		prev := math.MaxInt
		for _, mde := range []float64{0.005, 0.01, 0.02, 0.05, 0.1} {
			res, err := e.SampleSize(mde, 0.8, 0.5, alpha)
			if err != nil {
				t.Fatal(err)
			}
			if res.Total > prev {
				t.Errorf("sample size increased at mde=%g: %d > %d", mde, res.Total, prev)
			}
			prev = res.Total
		}
	})
}

func TestSampleSizeSymmetry(t *testing.T) {
	e := NewDesignEngine()

	for _, frac := range []float64{0.05, 0.2, 0.35, 0.45} {
		a, err := e.SampleSize(0.02, 0.8, frac, 0.05)
		if err != nil {
			t.Fatal(err)
		}
		b, err := e.SampleSize(0.02, 0.8, 1-frac, 0.05)
		if err != nil {
			t.Fatal(err)
		}

		if a.Total != b.Total {
			t.Errorf("frac %g vs %g: totals %d != %d", frac, 1-frac, a.Total, b.Total)
		}
		if a.Groups.Treatment != b.Groups.Control || a.Groups.Control != b.Groups.Treatment {
			t.Errorf("frac %g vs %g: groups not mirrored: %+v vs %+v", frac, 1-frac, a.Groups, b.Groups)
		}
	}
}
