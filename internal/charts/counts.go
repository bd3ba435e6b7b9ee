// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charts

import (
	"math"
	"time"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"

	"github.com/ggcrime/ggcrime/crime"
	"github.com/ggcrime/ggcrime/internal/theme"
)

func dailyLine(s *crime.Summaries, t *theme.Theme) (*gg.Plot, error) {
	if len(s.ByDate.Groups) == 0 {
		return nil, ErrNoData
	}
	p := gg.NewPlot(s.ByDate.Table())
	t.Apply(p, "stroke")
	p.SetScale("y", gg.NewLinearScaler().Include(0))
	p.Add(gg.LayerLines{X: "date", Y: "count", Color: "crime type"})
	// gg has no legend, so label each series.
	p.Add(gg.LayerTags{X: "date", Y: "count", Label: "crime type"})
	p.Add(gg.AxisLabel("y", "crimes per day"))
	return p, nil
}

func monthlyBar(s *crime.Summaries, t *theme.Theme) (*gg.Plot, error) {
	if len(s.ByMonth.Groups) == 0 {
		return nil, ErrNoData
	}
	p := gg.NewPlot(dodgeBars(s.ByMonth.Groups, false))
	barLayer(p, t)
	return p, nil
}

func districtFacets(s *crime.Summaries, t *theme.Theme) (*gg.Plot, error) {
	if len(s.ByMonthDistrict.Groups) == 0 {
		return nil, ErrNoData
	}
	p := gg.NewPlot(dodgeBars(s.ByMonthDistrict.Groups, true))
	p.Add(gg.FacetWrap{
		Col:     "district",
		Labeler: func(v interface{}) string { return "District " + v.(string) },
	})
	barLayer(p, t)
	return p, nil
}

// barLayer draws the bars of a dodgeBars table.
func barLayer(p *gg.Plot, t *theme.Theme) {
	t.Apply(p, "stroke", "fill")
	x := gg.NewLinearScaler().SetMin(0.5).SetMax(12.5)
	x.SetFormatter(monthLabel)
	p.SetScale("x", x)
	p.SetScale("y", gg.NewLinearScaler().Include(0))

	p.GroupBy("bar")
	p.Add(gg.LayerPaths{X: "month", Y: "count", Color: "crime type", Fill: "crime type"})
	p.Add(gg.AxisLabel("y", "crimes"))
}

// barWidth is the width of the group of bars at each month.
const barWidth = 0.8

// dodgeBars returns a table of bar outlines for month groups, with
// the bars of each crime type side by side. Each bar is a closed
// polygon of four rows sharing a "bar" number. If district is true,
// the table also has a "district" column.
func dodgeBars(groups []crime.Group, district bool) *table.Table {
	n := 4 * len(groups)
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	typs := make([]string, 0, n)
	bars := make([]int, 0, n)
	var dists []string
	if district {
		dists = make([]string, 0, n)
	}

	w := barWidth / float64(len(crime.CrimeTypes))
	for i, g := range groups {
		left := float64(g.Key.Month) - barWidth/2 + float64(slot(g.Key.Type))*w
		c := float64(g.Count)
		xs = append(xs, left, left, left+w, left+w)
		ys = append(ys, 0, c, c, 0)
		for j := 0; j < 4; j++ {
			typs = append(typs, string(g.Key.Type))
			bars = append(bars, i)
			if district {
				dists = append(dists, g.Key.District)
			}
		}
	}

	b := new(table.Builder).
		Add("month", xs).
		Add("count", ys).
		Add("crime type", typs).
		Add("bar", bars)
	if district {
		b.Add("district", dists)
	}
	return b.Done()
}

// slot returns the position of ct among the bars of one month.
func slot(ct crime.CrimeType) int {
	for i, t := range crime.CrimeTypes {
		if t == ct {
			return i
		}
	}
	return 0
}

// monthLabel labels whole-numbered month positions with the month's
// abbreviated name.
func monthLabel(x float64) string {
	m := math.Round(x)
	if math.Abs(x-m) > 1e-6 || m < 1 || m > 12 {
		return ""
	}
	return time.Month(m).String()[:3]
}

func weekdayHour(s *crime.Summaries, t *theme.Theme) (*gg.Plot, error) {
	if s.Records == 0 {
		return nil, ErrNoData
	}
	p := gg.NewPlot(s.ByWeekdayHour.Table())
	p.SetScale("fill", t.ContinuousScale())
	p.Add(gg.FacetX{Col: "crime type"})
	p.Add(gg.LayerTiles{X: "hour", Y: "day of week", Fill: "count"})
	return p, nil
}
