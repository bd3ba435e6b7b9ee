// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charts

import (
	"errors"
	"image/color"
	"math"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"

	"github.com/ggcrime/ggcrime/crime"
	"github.com/ggcrime/ggcrime/internal/density"
	"github.com/ggcrime/ggcrime/internal/theme"
)

// pointSize is the radius of map points as a fraction of the
// smallest plot dimension.
const pointSize = 0.004

func mapPoints(s *crime.Summaries, t *theme.Theme) (*gg.Plot, error) {
	if len(s.Locations) == 0 {
		return nil, ErrNoData
	}
	p := gg.NewPlot(s.LocationTable())
	pointLayer(p, t)
	return p, nil
}

// pointLayer draws longitude/latitude points colored by crime type.
func pointLayer(p *gg.Plot, t *theme.Theme) {
	t.Apply(p, "stroke")
	p.SetScale("opacity", gg.NewIdentityScale())
	p.SetScale("size", gg.NewIdentityScale())
	p.Add(gg.LayerPoints{
		X:       "longitude",
		Y:       "latitude",
		Color:   "crime type",
		Opacity: p.Const(t.PointOpacity),
		Size:    p.Const(pointSize),
	})
}

func mapDensity(s *crime.Summaries, t *theme.Theme) (*gg.Plot, error) {
	if len(s.Locations) == 0 {
		return nil, ErrNoData
	}
	tab, err := densityTable(s.Locations, density.DefaultLevels, t.LevelColors(len(density.DefaultLevels)))
	if err != nil {
		return nil, err
	}

	p := gg.NewPlot(tab)
	p.SetScale("fill", gg.NewIdentityScale())
	p.Add(gg.FacetX{Col: "crime type"})

	p.Save()
	p.SetData(table.FilterEq(p.Data(), "kind", "region"))
	p.Add(gg.LayerTiles{X: "longitude", Y: "latitude", Fill: "fill"})
	p.Restore()

	p.Save()
	p.SetData(table.FilterEq(p.Data(), "kind", "point"))
	pointLayer(p, t)
	p.Restore()
	return p, nil
}

// densityTable returns the points of locs together with the lattice
// of each crime type's highest density regions at levels. Rows have
// "kind" "point" or "region". Region rows are filled with
// colors[i] for the i'th smallest level and transparent outside
// every region, so each type's lattice is complete and regular.
//
// Crime types with too few distinct locations for a density
// estimate get points only.
func densityTable(locs []crime.Location, levels []float64, colors []color.Color) (*table.Table, error) {
	var (
		xs, ys      []float64
		typs, kinds []string
		fills       []color.Color
	)
	add := func(x, y float64, typ crime.CrimeType, kind string, fill color.Color) {
		xs = append(xs, x)
		ys = append(ys, y)
		typs = append(typs, string(typ))
		kinds = append(kinds, kind)
		fills = append(fills, fill)
	}

	byType := make(map[crime.CrimeType][2][]float64)
	for _, l := range locs {
		v := byType[l.Type]
		v[0] = append(v[0], l.Lng)
		v[1] = append(v[1], l.Lat)
		byType[l.Type] = v
	}

	for _, ct := range crime.CrimeTypes {
		v, ok := byType[ct]
		if !ok {
			continue
		}
		grid, err := density.KDE2D{}.Estimate(v[0], v[1])
		if errors.Is(err, density.ErrDegenerate) {
			continue
		} else if err != nil {
			return nil, err
		}
		cells := grid.Complete(grid.HDR(levels...))
		for _, c := range cells {
			add(c.X, c.Y, ct, "region", levelColor(c.Level, levels, colors))
		}
	}

	for _, l := range locs {
		add(l.Lng, l.Lat, l.Type, "point", color.Transparent)
	}

	return new(table.Builder).
		Add("longitude", xs).
		Add("latitude", ys).
		Add("crime type", typs).
		Add("kind", kinds).
		Add("fill", fills).
		Done(), nil
}

// levelColor returns the color of probability level p, one of
// levels. NaN levels are transparent.
func levelColor(p float64, levels []float64, colors []color.Color) color.Color {
	if math.IsNaN(p) {
		return color.Transparent
	}
	rank := 0
	for _, l := range levels {
		if l < p {
			rank++
		}
	}
	if rank >= len(colors) {
		rank = len(colors) - 1
	}
	return colors[rank]
}
