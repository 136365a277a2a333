package mdp

import "math"

// #region state

// State is a point in the discretized planning space. Budget is always a
// grid level; states compare structurally and serve directly as map keys.
type State struct {
	Budget  int
	Step    int
	Diverse bool
}

// #endregion state

// #region cursor

// Cursor is an unsnapped trajectory position. The running budget stays
// real-valued between steps; Key snaps it onto the grid for value and
// policy lookups.
type Cursor struct {
	Budget  float64
	Step    int
	Diverse bool
}

// Key snaps the cursor onto the grid, producing a state usable as a
// lookup key.
func (c Cursor) Key(g Grid) State {
	return State{Budget: g.Snap(c.Budget), Step: c.Step, Diverse: c.Diverse}
}

// #endregion cursor

// #region grid

// Grid is the evenly spaced set of discretized budget levels
// {0, Step, 2*Step, ..., Max}.
type Grid struct {
	Step int
	Max  int
}

// NewGrid builds the budget grid for a validated config.
func NewGrid(c Config) Grid {
	return Grid{Step: c.GridStep, Max: c.BudgetMax}
}

// Snap maps an arbitrary budget value to its nearest grid level.
// Values below zero clamp to 0, values above the top clamp to Max.
// Snapping a value already on the grid returns it unchanged.
func (g Grid) Snap(v float64) int {
	if v <= 0 {
		return 0
	}
	if v >= float64(g.Max) {
		return g.Max
	}
	return int(math.Round(v/float64(g.Step))) * g.Step
}

// Levels enumerates every grid level in ascending order.
func (g Grid) Levels() []int {
	levels := make([]int, 0, g.Max/g.Step+1)
	for b := 0; b <= g.Max; b += g.Step {
		levels = append(levels, b)
	}
	return levels
}

// #endregion grid

// #region enumerate

// EnumerateStates builds the full state space: the Cartesian product of
// the budget grid, steps 0..Horizon and the diversity flag. Its size is
// independent of the number of items. Budgets enumerate from the top of
// the grid down, so a sweep visits the best-funded states first and the
// canonical initial state (BudgetMax, 0, false) is visited before any
// other; the solver's used-action filter makes sweep results depend on
// this order.
func EnumerateStates(c Config) []State {
	g := NewGrid(c)
	states := make([]State, 0, (g.Max/g.Step+1)*(c.Horizon+1)*2)
	for b := g.Max; b >= 0; b -= g.Step {
		for step := 0; step <= c.Horizon; step++ {
			for _, div := range []bool{false, true} {
				states = append(states, State{Budget: b, Step: step, Diverse: div})
			}
		}
	}
	return states
}

// #endregion enumerate
