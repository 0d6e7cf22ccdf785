package design

import (
	"testing"
)

func TestGroupSizes(t *testing.T) {
	g := GroupSizes{Treatment: 700, Control: 1300}
	if g.Total() != 2000 {
		t.Errorf("Total() = %d, want 2000", g.Total())
	}
	if g.Degenerate() {
		t.Error("700/1300 should not be degenerate")
	}

	if !(GroupSizes{Treatment: 0, Control: 20}).Degenerate() {
		t.Error("empty treatment group should be degenerate")
	}
	if !(GroupSizes{Treatment: 20, Control: 0}).Degenerate() {
		t.Error("empty control group should be degenerate")
	}
}

func TestDefaultGridPercents(t *testing.T) {
	pcts := DefaultGrid().Percents()
	if len(pcts) != 19 {
		t.Fatalf("expected 19 percents, got %d", len(pcts))
	}
	for i, p := range pcts {
		want := float64(5 + i*5)
		if p != want {
			t.Errorf("percent %d = %g, want %g", i, p, want)
		}
	}
}

func TestGridValidate(t *testing.T) {
	if err := DefaultGrid().Validate(); err != nil {
		t.Errorf("default grid should validate, got %v", err)
	}

	bad := []Grid{
		{StartPercent: 0, EndPercent: 95, StepPercent: 5},
		{StartPercent: 5, EndPercent: 100, StepPercent: 5},
		{StartPercent: 5, EndPercent: 95, StepPercent: -1},
		{StartPercent: 60, EndPercent: 40, StepPercent: 5},
	}
	for _, g := range bad {
		if err := g.Validate(); err == nil {
			t.Errorf("grid %+v should not validate", g)
		}
	}
}

func TestSweepModeValid(t *testing.T) {
	if !SweepSampleSize.Valid() || !SweepMDE.Valid() {
		t.Error("known modes should be valid")
	}
	if SweepMode("power").Valid() {
		t.Error("unknown mode should be invalid")
	}
}
