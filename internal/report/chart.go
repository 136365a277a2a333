package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// #region chart

// RenderChart writes an HTML bar chart comparing the strategies on
// engagement, cost and selection count.
func RenderChart(w io.Writer, c Comparison) error {
	names := make([]string, 0, len(c.Rows))
	engagement := make([]opts.BarData, 0, len(c.Rows))
	cost := make([]opts.BarData, 0, len(c.Rows))
	selected := make([]opts.BarData, 0, len(c.Rows))
	for _, r := range c.Rows {
		names = append(names, r.Strategy)
		engagement = append(engagement, opts.BarData{Value: r.TotalEngagement})
		cost = append(cost, opts.BarData{Value: r.TotalCost})
		selected = append(selected, opts.BarData{Value: r.NumSelected})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Influencer Selection Strategies",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Strategy comparison",
			Subtitle: fmt.Sprintf("strategies=%d", len(c.Rows)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(names).
		AddSeries("engagement", engagement).
		AddSeries("cost", cost).
		AddSeries("selected", selected)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// #endregion chart
