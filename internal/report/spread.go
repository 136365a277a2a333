package report

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/campaignctl/influencer-planner/internal/baselines"
	"github.com/campaignctl/influencer-planner/internal/catalog"
)

// #region spread

// Spread summarizes the random baseline across a set of seeds, so a
// single lucky shuffle is not mistaken for a strategy.
type Spread struct {
	Seeds int `json:"seeds"`

	MeanEngagement    float64 `json:"mean_engagement"`
	StddevEngagement  float64 `json:"stddev_engagement"`
	MeanCost          float64 `json:"mean_cost"`
	StddevCost        float64 `json:"stddev_cost"`
	MeanUtilization   float64 `json:"mean_utilization"`
	StddevUtilization float64 `json:"stddev_utilization"`
}

// RandomSpread runs the random baseline once per seed and reports mean
// and standard deviation of the aggregate metrics.
func RandomSpread(items []catalog.Item, cfg baselines.Config, seeds []int64) (Spread, error) {
	if len(seeds) == 0 {
		return Spread{}, fmt.Errorf("no seeds given")
	}

	eng := make([]float64, 0, len(seeds))
	cost := make([]float64, 0, len(seeds))
	util := make([]float64, 0, len(seeds))
	for _, seed := range seeds {
		c := cfg
		c.Seed = seed
		out := baselines.Random(items, c)
		eng = append(eng, out.TotalEngagement)
		cost = append(cost, out.TotalCost)
		util = append(util, out.BudgetUtilization)
	}

	s := Spread{Seeds: len(seeds)}
	s.MeanEngagement, s.StddevEngagement = stat.MeanStdDev(eng, nil)
	s.MeanCost, s.StddevCost = stat.MeanStdDev(cost, nil)
	s.MeanUtilization, s.StddevUtilization = stat.MeanStdDev(util, nil)
	return s, nil
}

// #endregion spread
