package fba

import "github.com/san-kum/dynfba/internal/model"

// ScriptedOracle replays a queued sequence of solutions, one per
// solve, repeating the last entry once the queue is exhausted. It
// exists for tests and for replaying recorded solver traces.
type ScriptedOracle struct {
	Queue []Solution

	next      int
	Snapshots []model.BoundsSnapshot
}

// Solve returns the next queued solution and records the bounds it was
// asked about.
func (o *ScriptedOracle) Solve(bounds model.BoundsSnapshot) (Solution, error) {
	o.Snapshots = append(o.Snapshots, bounds.Clone())
	if len(o.Queue) == 0 {
		return Solution{Status: StatusOther}, nil
	}
	sol := o.Queue[o.next]
	if o.next < len(o.Queue)-1 {
		o.next++
	}
	return sol, nil
}

// Calls reports how many times Solve ran.
func (o *ScriptedOracle) Calls() int { return len(o.Snapshots) }
