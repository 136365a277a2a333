package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// #region load

// LoadCSV reads influencer rows from a CSV file. Column order is
// header-driven; recognized headers are username, cost, likes, comments,
// saves, engagement_rate, niche, category and gender. Rows whose numeric
// fields fail to parse are skipped, matching the original dataset
// cleaning step.
func LoadCSV(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()
	return ReadItems(f)
}

// ReadItems parses influencer rows from r. See LoadCSV.
func ReadItems(r io.Reader) ([]Item, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["username"]; !ok {
		return nil, fmt.Errorf("csv missing username column")
	}

	var items []Item
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		it, ok := parseRow(rec, cols)
		if !ok {
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

// #endregion load

// #region parse-row

func parseRow(rec []string, cols map[string]int) (Item, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	it := Item{
		Username: field("username"),
		Niche:    field("niche"),
		Category: field("category"),
		Gender:   field("gender"),
	}
	if it.Username == "" {
		return Item{}, false
	}

	// Required-if-present numerics: a malformed value drops the row.
	var bad bool
	num := func(name string) float64 {
		s := field(name)
		if s == "" {
			return 0
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			bad = true
			return 0
		}
		return v
	}

	it.Likes = num("likes")
	it.Comments = num("comments")
	it.Saves = num("saves")
	it.Cost = num("cost")
	if it.Cost < 0 {
		it.Cost = 0
	}

	if s := field("engagement_rate"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			it.EngagementRate = v
			it.HasRate = true
		} else {
			bad = true
		}
	}

	if bad {
		return Item{}, false
	}
	return it, true
}

// #endregion parse-row

// #region derive-costs

// DeriveCosts fills in costs for items that have none, using
// engagement/35 clipped to [50, 350]. Items with a positive cost are
// left alone.
func DeriveCosts(items []Item, w Weights) {
	for i := range items {
		if items[i].Cost > 0 {
			continue
		}
		c := items[i].Engagement(w) / 35
		if c < 50 {
			c = 50
		}
		if c > 350 {
			c = 350
		}
		items[i].Cost = c
	}
}

// #endregion derive-costs
