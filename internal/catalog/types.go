package catalog

// #region item

// Item is one candidate influencer. Items are read-only once planning
// begins; their position in the loaded slice is the action identifier.
type Item struct {
	Username string
	Cost     float64

	// Raw engagement components. Missing columns parse as zero.
	Likes    float64
	Comments float64
	Saves    float64

	// Optional precomputed engagement-rate multiplier. HasRate reports
	// whether the source row carried a usable value.
	EngagementRate float64
	HasRate        bool

	// Categorical attributes, used only for diversity accounting.
	Niche    string
	Category string
	Gender   string
}

// #endregion item

// #region weights

// Weights are the per-component engagement weights.
type Weights struct {
	Likes    float64 `json:"likes"`
	Comments float64 `json:"comments"`
	Saves    float64 `json:"saves"`
}

// DefaultWeights returns the standard engagement weighting:
// engagement = likes + 2*comments + 3*saves.
func DefaultWeights() Weights {
	return Weights{Likes: 1, Comments: 2, Saves: 3}
}

// #endregion weights

// #region engagement

// Engagement computes the weighted engagement score for the item.
func (it Item) Engagement(w Weights) float64 {
	return w.Likes*it.Likes + w.Comments*it.Comments + w.Saves*it.Saves
}

// #endregion engagement
