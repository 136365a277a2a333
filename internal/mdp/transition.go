package mdp

import "github.com/campaignctl/influencer-planner/internal/catalog"

// #region transition

// Transition advances a cursor by one selection. Deterministic: the
// budget drops by the item's cost (and may go negative or off-grid; snap
// before using the result as a lookup key), the step increments, and the
// diversity flag is a monotone union, never cleared.
func Transition(c Cursor, it catalog.Item, cfg Config) Cursor {
	return Cursor{
		Budget:  c.Budget - it.Cost,
		Step:    c.Step + 1,
		Diverse: c.Diverse || cfg.IsUnderrepresented(it),
	}
}

// #endregion transition
