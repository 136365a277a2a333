package solver

import "github.com/campaignctl/influencer-planner/internal/mdp"

// #region result

// Result is the converged (or cap-terminated) output of Solve. It is
// fully computed before Solve returns and read-only afterward, so a
// single Result may back any number of concurrent rollouts.
type Result struct {
	Values map[mdp.State]float64
	Policy map[mdp.State]int

	// Iterations counts completed sweeps; Converged distinguishes a true
	// fixed point from hitting the sweep cap. Delta is the max absolute
	// value change of the final sweep.
	Iterations int
	Converged  bool
	Delta      float64
}

// #endregion result
