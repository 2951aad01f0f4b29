package sim

import (
	"math"
	"testing"

	"github.com/san-kum/dynfba/internal/model"
)

func TestUptakeBoundZeroConcentration(t *testing.T) {
	bounds := model.BoundsSnapshot{"EX_s_e": {Lower: -10, Upper: 1000}}
	conc := Concentrations{"s_e": 0}

	updateUptakeBounds(bounds, conc, Kinetics{}, map[string]string{"s_e": "EX_s_e"})

	if got := bounds["EX_s_e"].Lower; got != 0 {
		t.Errorf("lower bound at zero concentration = %g, want 0", got)
	}
}

func TestUptakeBoundSaturation(t *testing.T) {
	em := map[string]string{"s_e": "EX_s_e"}
	kin := Kinetics{
		Vmax: map[string]float64{"EX_s_e": 10},
		Km:   map[string]float64{"EX_s_e": 0.5},
	}

	prev := 0.0
	for _, c := range []float64{0.01, 0.1, 1, 10, 100, 1e6} {
		bounds := model.BoundsSnapshot{"EX_s_e": {Lower: 0, Upper: 1000}}
		updateUptakeBounds(bounds, Concentrations{"s_e": c}, kin, em)
		lb := bounds["EX_s_e"].Lower

		if lb >= 0 {
			t.Fatalf("C=%g: expected negative uptake bound, got %g", c, lb)
		}
		if math.Abs(lb) > 10 {
			t.Fatalf("C=%g: bound magnitude %g exceeds Vmax", c, math.Abs(lb))
		}
		if lb >= prev && prev != 0 {
			t.Fatalf("C=%g: bound %g not monotonically approaching -Vmax (prev %g)", c, lb, prev)
		}
		prev = lb
	}

	// At C >> Km the bound sits essentially at -Vmax.
	bounds := model.BoundsSnapshot{"EX_s_e": {Lower: 0, Upper: 1000}}
	updateUptakeBounds(bounds, Concentrations{"s_e": 1e9}, kin, em)
	if math.Abs(bounds["EX_s_e"].Lower+10) > 1e-6 {
		t.Errorf("saturated bound = %g, want approximately -10", bounds["EX_s_e"].Lower)
	}
}

func TestUptakeBoundNegativeConcentrationTreatedAsZero(t *testing.T) {
	bounds := model.BoundsSnapshot{"EX_s_e": {Lower: -3, Upper: 1000}}
	updateUptakeBounds(bounds, Concentrations{"s_e": -5}, Kinetics{}, map[string]string{"s_e": "EX_s_e"})

	if got := bounds["EX_s_e"].Lower; got != 0 {
		t.Errorf("lower bound for negative concentration = %g, want 0", got)
	}
}

func TestUptakeBoundPreservesUpper(t *testing.T) {
	bounds := model.BoundsSnapshot{"EX_s_e": {Lower: -3, Upper: 42}}
	updateUptakeBounds(bounds, Concentrations{"s_e": 10}, Kinetics{}, map[string]string{"s_e": "EX_s_e"})

	if got := bounds["EX_s_e"].Upper; got != 42 {
		t.Errorf("upper bound = %g, want untouched 42", got)
	}
}

func TestUptakeBoundSkipsUntracked(t *testing.T) {
	bounds := model.BoundsSnapshot{"EX_s_e": {Lower: -3, Upper: 1000}}
	updateUptakeBounds(bounds, Concentrations{}, Kinetics{}, map[string]string{"s_e": "EX_s_e"})

	if got := bounds["EX_s_e"].Lower; got != -3 {
		t.Errorf("untracked metabolite changed bound to %g", got)
	}
}

func TestApplyEssentialBounds(t *testing.T) {
	bounds := model.BoundsSnapshot{
		"EX_nh4_e": {Lower: -1, Upper: 1},
		"EX_glc_e": {Lower: -10, Upper: 1000},
	}

	applyEssentialBounds(bounds, []string{"EX_nh4_e", "EX_missing_e"})

	if b := bounds["EX_nh4_e"]; b.Lower != -1000 || b.Upper != 1000 {
		t.Errorf("essential bounds = %+v, want [-1000, 1000]", b)
	}
	if b := bounds["EX_glc_e"]; b.Lower != -10 {
		t.Errorf("non-essential reaction touched: %+v", b)
	}
	if _, ok := bounds["EX_missing_e"]; ok {
		t.Error("missing essential reaction was created instead of skipped")
	}
}
