// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package theme provides the visual themes and color scales that
// charts are drawn with.
//
// A Theme supplies a discrete palette for categorical aesthetics such
// as crime type, a continuous color scale for counts and densities,
// and the colors of the plot furniture. gg draws its furniture with
// fixed colors, so Restyle rewrites a rendered SVG to the theme's
// colors.
package theme

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/palette"
)

// A Theme is a named set of chart colors.
type Theme struct {
	Name string

	// Discrete is the palette for categorical aesthetics.
	Discrete []color.Color

	// Continuous is the color scale for counts and densities.
	Continuous palette.Continuous

	// ScaleName is the name of Continuous, if it is one of the
	// named Scales.
	ScaleName string

	Background color.Color
	Panel      color.Color
	Grid       color.Color
	Border     color.Color
	Strip      color.Color // facet label background
	Text       color.Color

	// PointOpacity is the opacity of points in the map charts.
	PointOpacity float64
}

func rgb(x uint32) color.RGBA {
	return color.RGBA{uint8(x >> 16), uint8(x >> 8), uint8(x), 0xff}
}

// ggPalette is gg's automatic discrete palette.
var ggPalette = []color.Color{
	rgb(0x4c72b0), rgb(0x55a868), rgb(0xc44e52),
	rgb(0x8172b2), rgb(0xccb974), rgb(0x64b5cd),
}

// set1 is ColorBrewer's qualitative Set1.
var set1 = []color.Color{
	rgb(0xe41a1c), rgb(0x377eb8), rgb(0x4daf4a), rgb(0x984ea3),
	rgb(0xff7f00), rgb(0xffff33), rgb(0xa65628), rgb(0xf781bf),
}

var themes = map[string]*Theme{
	"default": {
		Name:         "default",
		Discrete:     ggPalette,
		Continuous:   palette.Viridis,
		ScaleName:    "viridis",
		Background:   color.White,
		Panel:        rgb(0xeeeeee),
		Grid:         color.White,
		Border:       rgb(0x888888),
		Strip:        rgb(0xcccccc),
		Text:         color.Black,
		PointOpacity: 0.3,
	},
	"minimal": {
		Name:         "minimal",
		Discrete:     ggPalette,
		Continuous:   palette.Viridis,
		ScaleName:    "viridis",
		Background:   color.White,
		Panel:        color.White,
		Grid:         rgb(0xebebeb),
		Border:       rgb(0xbbbbbb),
		Strip:        rgb(0xf2f2f2),
		Text:         rgb(0x333333),
		PointOpacity: 0.25,
	},
	"dark": {
		Name:         "dark",
		Discrete:     []color.Color{rgb(0x66c2a5), rgb(0xfc8d62), rgb(0x8da0cb), rgb(0xe78ac3)},
		Continuous:   magma,
		ScaleName:    "magma",
		Background:   rgb(0x1e1e1e),
		Panel:        rgb(0x2b2b2b),
		Grid:         rgb(0x3c3c3c),
		Border:       rgb(0x777777),
		Strip:        rgb(0x444444),
		Text:         rgb(0xdddddd),
		PointOpacity: 0.4,
	},
	"brewer": {
		Name:         "brewer",
		Discrete:     set1,
		Continuous:   ylOrRd,
		ScaleName:    "heat",
		Background:   color.White,
		Panel:        rgb(0xf7f7f7),
		Grid:         color.White,
		Border:       rgb(0x999999),
		Strip:        rgb(0xd9d9d9),
		Text:         color.Black,
		PointOpacity: 0.3,
	},
	"grayscale": {
		Name:         "grayscale",
		Discrete:     []color.Color{rgb(0x252525), rgb(0x969696), rgb(0x636363), rgb(0xcccccc)},
		Continuous:   grays,
		ScaleName:    "grays",
		Background:   color.White,
		Panel:        rgb(0xf0f0f0),
		Grid:         color.White,
		Border:       rgb(0x888888),
		Strip:        rgb(0xd0d0d0),
		Text:         color.Black,
		PointOpacity: 0.3,
	},
}

// DefaultName is the name of the default theme.
const DefaultName = "default"

// Names returns the names of the built-in themes in sorted order.
func Names() []string {
	names := make([]string, 0, len(themes))
	for k := range themes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a copy of the built-in theme called name. Case is
// ignored.
func Lookup(name string) (*Theme, error) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	nt := *t
	return &nt, nil
}

// Default returns the default theme.
func Default() *Theme {
	t, _ := Lookup(DefaultName)
	return t
}

// WithScale returns a copy of t that uses the named color scale.
func (t *Theme) WithScale(name string) (*Theme, error) {
	s, err := LookupScale(name)
	if err != nil {
		return nil, err
	}
	nt := *t
	nt.Continuous = s
	nt.ScaleName = strings.ToLower(strings.TrimSpace(name))
	return &nt, nil
}

// DiscreteScale returns an ordinal scale over t's discrete palette.
func (t *Theme) DiscreteScale() gg.Scaler {
	s := gg.NewOrdinalScale()
	s.Ranger(gg.NewColorRanger(t.Discrete))
	return s
}

// ContinuousScale returns a linear scale whose range is t's
// continuous color scale.
func (t *Theme) ContinuousScale() gg.ContinuousScaler {
	s := gg.NewLinearScaler()
	s.Ranger(&colorRanger{t.Continuous})
	return s
}

// LevelColors returns colors for n nested regions, innermost first.
// The innermost region takes the high end of t's continuous scale.
func (t *Theme) LevelColors(n int) []color.Color {
	cols := Steps(t.Continuous, n)
	for i, j := 0, len(cols)-1; i < j; i, j = i+1, j-1 {
		cols[i], cols[j] = cols[j], cols[i]
	}
	return cols
}

// Steps samples p at n evenly spaced points from 0 to 1.
func Steps(p palette.Continuous, n int) []color.Color {
	cols := make([]color.Color, n)
	for i := range cols {
		x := 0.0
		if n > 1 {
			x = float64(i) / float64(n-1)
		}
		cols[i] = p.Map(x)
	}
	return cols
}

// Apply binds t's discrete scale to each of the given aesthetics of
// p, for example "stroke" and "fill".
func (t *Theme) Apply(p *gg.Plot, aes ...string) {
	for _, a := range aes {
		p.SetScale(a, t.DiscreteScale())
	}
}
