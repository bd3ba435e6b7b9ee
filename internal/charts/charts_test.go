// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggcrime/ggcrime/crime"
	"github.com/ggcrime/ggcrime/internal/density"
	"github.com/ggcrime/ggcrime/internal/theme"
)

// testRecords returns n records spread over 2015 around downtown
// Chicago.
func testRecords(n int) []crime.Record {
	rng := rand.New(rand.NewSource(1))
	start := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	recs := make([]crime.Record, n)
	for i := range recs {
		typ := crime.Property
		if i%3 == 0 {
			typ = crime.Violent
		}
		recs[i] = crime.Record{
			Timestamp: start.Add(time.Duration(rng.Intn(365*24)) * time.Hour),
			District:  fmt.Sprintf("%02d", 1+i%4),
			Latitude:  41.88 + 0.03*rng.NormFloat64(),
			Longitude: -87.63 + 0.03*rng.NormFloat64(),
			Type:      typ,
		}
	}
	return recs
}

func testSummaries() *crime.Summaries {
	return crime.Summarize(testRecords(300), crime.SummaryOptions{})
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"daily-line", "monthly-bar", "district-facets", "weekday-hour", "map-points", "map-density"}, Names())

	c, err := Lookup("weekday-hour")
	require.NoError(t, err)
	assert.Equal(t, "weekday-hour", c.Name)

	_, err = Lookup("pie")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "map-density")
}

func TestSelect(t *testing.T) {
	all, err := Select("")
	require.NoError(t, err)
	assert.Len(t, all, len(All))

	cs, err := Select("map-points, daily-line,map-points")
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, "map-points", cs[0].Name)
	assert.Equal(t, "daily-line", cs[1].Name)

	_, err = Select("daily-line,nope")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	s := testSummaries()
	th := theme.Default()
	for _, c := range All {
		t.Run(c.Name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, c, s, th))
			out := buf.String()
			assert.Contains(t, out, "<svg")
			assert.Contains(t, out, c.Title)
			// Crime types are drawn in the theme's palette.
			if c.Name != "weekday-hour" {
				assert.Contains(t, out, theme.Hex(th.Discrete[0]))
			}
		})
	}
}

func TestRenderThemed(t *testing.T) {
	s := testSummaries()
	th, err := theme.Lookup("dark")
	require.NoError(t, err)
	c, err := Lookup("monthly-bar")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, c, s, th))
	out := buf.String()
	assert.Contains(t, out, theme.Hex(th.Background))
	assert.Contains(t, out, theme.Hex(th.Panel))
	assert.NotContains(t, out, `style="fill:#eee"`)
}

func TestRenderNoData(t *testing.T) {
	s := crime.Summarize(nil, crime.SummaryOptions{})
	for _, c := range All {
		err := Render(new(bytes.Buffer), c, s, theme.Default())
		assert.True(t, errors.Is(err, ErrNoData), "%s: got %v", c.Name, err)
	}
}

func TestRenderRecoversPanics(t *testing.T) {
	bad := &Chart{
		Name:   "irregular",
		Width:  200,
		Height: 200,
		Build: func(*crime.Summaries, *theme.Theme) (*gg.Plot, error) {
			tab := new(table.Builder).
				Add("x", []float64{0, 1, 2.5}).
				Add("y", []float64{0, 1, 2}).
				Add("fill", []color.Color{color.Black, color.Black, color.Black}).
				Done()
			p := gg.NewPlot(tab)
			p.Add(gg.LayerTiles{X: "x", Y: "y", Fill: "fill"})
			return p, nil
		},
	}
	err := Render(new(bytes.Buffer), bad, testSummaries(), theme.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "irregular")
}

func TestDodgeBars(t *testing.T) {
	groups := []crime.Group{
		{Key: crime.GroupKey{Type: crime.Violent, Month: time.March, District: "02"}, Count: 5},
		{Key: crime.GroupKey{Type: crime.Property, Month: time.March, District: "02"}, Count: 9},
	}
	tab := dodgeBars(groups, true)
	require.Equal(t, 8, tab.Len())

	xs := tab.MustColumn("month").([]float64)
	ys := tab.MustColumn("count").([]float64)
	bars := tab.MustColumn("bar").([]int)
	w := barWidth / 2
	assert.InDelta(t, 3-barWidth/2, xs[0], 1e-9)
	assert.InDelta(t, 3-barWidth/2+w, xs[2], 1e-9)
	assert.InDelta(t, 3-barWidth/2+w, xs[4], 1e-9)
	assert.InDelta(t, 3+barWidth/2, xs[6], 1e-9)
	assert.Equal(t, []float64{0, 5, 5, 0, 0, 9, 9, 0}, ys)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 1, 1, 1}, bars)
	assert.Equal(t, "02", tab.MustColumn("district").([]string)[7])

	assert.Nil(t, dodgeBars(groups, false).Column("district"))
}

func TestMonthLabel(t *testing.T) {
	for _, test := range []struct {
		x    float64
		want string
	}{
		{1, "Jan"},
		{12, "Dec"},
		{6.5, ""},
		{0, ""},
		{13, ""},
	} {
		assert.Equal(t, test.want, monthLabel(test.x), "x=%v", test.x)
	}
}

func TestLevelColor(t *testing.T) {
	levels := []float64{0.5, 0.8, 0.95}
	cols := []color.Color{color.White, color.Gray{128}, color.Black}
	assert.Equal(t, color.White, levelColor(0.5, levels, cols))
	assert.Equal(t, color.Black, levelColor(0.95, levels, cols))
	assert.Equal(t, color.Transparent, levelColor(math.NaN(), levels, cols))
}

func TestDensityTable(t *testing.T) {
	s := testSummaries()
	// A lone location cannot be estimated and only gets a point.
	locs := append(s.Locations[:0:0], s.Locations...)
	for i := range locs {
		locs[i].Type = crime.Property
	}
	locs[0].Type = crime.Violent

	levels := density.DefaultLevels
	tab, err := densityTable(locs, levels, theme.Default().LevelColors(len(levels)))
	require.NoError(t, err)

	kinds := tab.MustColumn("kind").([]string)
	typs := tab.MustColumn("crime type").([]string)
	fills := tab.MustColumn("fill").([]color.Color)
	counts := make(map[string]int)
	transparent := 0
	for i, k := range kinds {
		counts[k+"/"+typs[i]]++
		if k == "region" {
			if _, _, _, a := fills[i].RGBA(); a == 0 {
				transparent++
			}
		}
	}
	assert.Equal(t, 100*100, counts["region/"+string(crime.Property)])
	assert.Equal(t, 0, counts["region/"+string(crime.Violent)])
	assert.Equal(t, len(locs)-1, counts["point/"+string(crime.Property)])
	assert.Equal(t, 1, counts["point/"+string(crime.Violent)])
	// The widened lattice extends past the outermost region.
	assert.True(t, transparent > 0)
	assert.True(t, transparent < 100*100)
}
