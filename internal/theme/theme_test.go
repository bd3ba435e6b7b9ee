// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		th, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, th.Name)
		assert.NotEmpty(t, th.Discrete, name)
		assert.NotNil(t, th.Continuous, name)
		_, err = LookupScale(th.ScaleName)
		assert.NoError(t, err, "theme %s scale %s", name, th.ScaleName)
	}

	th, err := Lookup(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, "dark", th.Name)

	_, err = Lookup("neon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grayscale")
}

func TestLookupCopies(t *testing.T) {
	a, _ := Lookup("default")
	a.PointOpacity = 1
	b, _ := Lookup("default")
	assert.NotEqual(t, 1.0, b.PointOpacity)
}

func TestWithScale(t *testing.T) {
	th := Default()
	nt, err := th.WithScale("Heat")
	require.NoError(t, err)
	assert.Equal(t, "heat", nt.ScaleName)
	assert.Equal(t, "viridis", th.ScaleName)

	_, err = th.WithScale("rainbow")
	assert.Error(t, err)
}

func TestScalesEndpoints(t *testing.T) {
	for _, name := range ScaleNames() {
		s, err := LookupScale(name)
		require.NoError(t, err)
		lo, hi := Hex(s.Map(0)), Hex(s.Map(1))
		assert.NotEqual(t, lo, hi, "scale %s is constant", name)
		if _, ok := s.(palette.RGBGradient); ok {
			// Out of range values clamp.
			assert.Equal(t, lo, Hex(s.Map(-1)), name)
			assert.Equal(t, hi, Hex(s.Map(2)), name)
		}
	}
}

func TestSteps(t *testing.T) {
	cols := Steps(grays, 4)
	require.Len(t, cols, 4)
	assert.Equal(t, "#f0f0f0", Hex(cols[0]))
	assert.Equal(t, "#000000", Hex(cols[3]))
	assert.Len(t, Steps(grays, 1), 1)
}

func TestLevelColors(t *testing.T) {
	th, err := Lookup("grayscale")
	require.NoError(t, err)
	cols := th.LevelColors(4)
	require.Len(t, cols, 4)
	assert.Equal(t, "#000000", Hex(cols[0]))
	assert.Equal(t, "#f0f0f0", Hex(cols[3]))
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ffffff", Hex(color.White))
	assert.Equal(t, "#4c72b0", Hex(rgb(0x4c72b0)))
	assert.Equal(t, "none", Hex(color.Transparent))
	assert.Equal(t, "#ff0000", Hex(color.NRGBA{0xff, 0, 0, 0x80}))
}

func TestRestyle(t *testing.T) {
	in := `<?xml version="1.0"?>
<svg width="100" height="100"
     xmlns="http://www.w3.org/2000/svg"
     xmlns:xlink="http://www.w3.org/1999/xlink"
     font-size="14px">
<rect x="0" y="0" width="10" height="10" style="fill:#eee" />
<path d="M0 0" style="stroke: #fff; stroke-width:2" />
<path d="M0 0" style="stroke:#888; fill:none; stroke-width:2" />
<text x="1" y="1" fill="#666">1</text>
</svg>
`
	th, err := Lookup("dark")
	require.NoError(t, err)
	out := string(th.Restyle([]byte(in)))

	assert.NotContains(t, out, "#eee")
	assert.NotContains(t, out, "#fff")
	assert.Contains(t, out, `style="fill:#2b2b2b"`)
	assert.Contains(t, out, `style="stroke:#3c3c3c; stroke-width:2"`)
	assert.Contains(t, out, "text{fill:#dddddd}")

	// The background comes right after the root element's start
	// tag, before any drawing.
	bg := strings.Index(out, `style="fill:#1e1e1e"`)
	require.True(t, bg > 0)
	assert.True(t, bg > strings.Index(out, `font-size="14px">`))
	assert.True(t, bg < strings.Index(out, "<rect x=\"0\" y=\"0\" width=\"10\""))
}

func TestRestyleNotSVG(t *testing.T) {
	assert.Equal(t, "hello", string(Default().Restyle([]byte("hello"))))
}

func TestScalesRender(t *testing.T) {
	// A themed heatmap renders end to end.
	tab := new(table.Builder).
		Add("x", []float64{0, 1, 0, 1}).
		Add("y", []float64{0, 0, 1, 1}).
		Add("z", []float64{1, 2, 3, 4}).
		Add("k", []string{"a", "b", "a", "b"}).
		Done()
	th := Default()
	p := gg.NewPlot(tab)
	p.SetScale("fill", th.ContinuousScale())
	p.Add(gg.LayerTiles{X: "x", Y: "y", Fill: "z"})
	th.Apply(p, "stroke")
	p.Add(gg.LayerPoints{X: "x", Y: "y", Color: "k"})

	var buf bytes.Buffer
	require.NoError(t, p.WriteSVG(&buf, 200, 200))
	out := th.Restyle(buf.Bytes())
	assert.True(t, bytes.Contains(out, []byte("<image")))
	// Points are colored from the theme's palette.
	assert.True(t, bytes.Contains(out, []byte("fill:#4c72b0")))
}
