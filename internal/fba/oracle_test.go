package fba

import (
	"math"
	"testing"

	"github.com/san-kum/dynfba/internal/model"
)

func TestYieldOracleGrowthFromUptake(t *testing.T) {
	o := NewYieldOracle("Biomass", "EX_glc_e")
	bounds := model.BoundsSnapshot{
		"EX_glc_e": {Lower: -8, Upper: 1000},
		"EX_o2_e":  {Lower: -1000, Upper: 1000},
	}

	sol, err := o.Solve(bounds)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("status = %v, want optimal", sol.Status)
	}
	if sol.Flux("EX_glc_e") != -8 {
		t.Errorf("glucose flux = %g, want -8", sol.Flux("EX_glc_e"))
	}
	// Oxygen carries no yield entry, so it must not run.
	if sol.Flux("EX_o2_e") != 0 {
		t.Errorf("oxygen flux = %g, want 0", sol.Flux("EX_o2_e"))
	}
	wantMu := DefaultYield * 8
	if math.Abs(sol.Flux("Biomass")-wantMu) > 1e-12 {
		t.Errorf("growth flux = %g, want %g", sol.Flux("Biomass"), wantMu)
	}
}

func TestYieldOracleNoUptakeNoGrowth(t *testing.T) {
	o := NewYieldOracle("Biomass", "EX_glc_e")
	sol, err := o.Solve(model.BoundsSnapshot{"EX_glc_e": {Lower: 0, Upper: 1000}})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if sol.Flux("Biomass") != 0 {
		t.Errorf("growth flux = %g, want 0 at starved bounds", sol.Flux("Biomass"))
	}
}

func TestScriptedOracleReplaysAndSticks(t *testing.T) {
	o := &ScriptedOracle{Queue: []Solution{
		{Fluxes: map[string]float64{"R": 1}, Status: StatusOptimal},
		{Status: StatusInfeasible},
	}}

	first, _ := o.Solve(model.BoundsSnapshot{})
	if first.Flux("R") != 1 || first.Status != StatusOptimal {
		t.Fatalf("first solution wrong: %+v", first)
	}

	for i := 0; i < 3; i++ {
		sol, _ := o.Solve(model.BoundsSnapshot{})
		if sol.Status != StatusInfeasible {
			t.Fatalf("solve %d: status = %v, want infeasible", i+2, sol.Status)
		}
	}
	if o.Calls() != 4 {
		t.Errorf("calls = %d, want 4", o.Calls())
	}
}

func TestScriptedOracleSnapshotsAreCopies(t *testing.T) {
	o := &ScriptedOracle{Queue: []Solution{{Status: StatusOptimal}}}
	b := model.BoundsSnapshot{"R": {Lower: -1, Upper: 1}}
	o.Solve(b)

	b["R"] = model.Bounds{Lower: -99, Upper: 99}
	if o.Snapshots[0]["R"].Lower != -1 {
		t.Error("recorded snapshot aliases caller bounds")
	}
}

func TestStatusString(t *testing.T) {
	cases := []struct {
		s    Status
		want string
	}{
		{StatusOptimal, "optimal"},
		{StatusInfeasible, "infeasible"},
		{StatusOther, "other"},
	}
	for _, c := range cases {
		if c.s.String() != c.want {
			t.Errorf("%d.String() = %q, want %q", c.s, c.s.String(), c.want)
		}
	}
}
