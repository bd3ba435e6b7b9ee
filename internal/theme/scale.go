// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"fmt"
	"image/color"
	"reflect"
	"sort"
	"strings"

	"github.com/aclements/go-gg/palette"
)

var (
	magma = palette.RGBGradient{Colors: []color.RGBA{
		rgb(0x000004), rgb(0x3b0f70), rgb(0x8c2981),
		rgb(0xde4968), rgb(0xfe9f6d), rgb(0xfcfdbf),
	}}
	ylOrRd = palette.RGBGradient{Colors: []color.RGBA{
		rgb(0xffffcc), rgb(0xfed976), rgb(0xfd8d3c),
		rgb(0xe31a1c), rgb(0x800026),
	}}
	blues = palette.RGBGradient{Colors: []color.RGBA{
		rgb(0xf7fbff), rgb(0xc6dbef), rgb(0x6baed6),
		rgb(0x2171b5), rgb(0x08306b),
	}}
	grays = palette.RGBGradient{Colors: []color.RGBA{
		rgb(0xf0f0f0), rgb(0xbdbdbd), rgb(0x737373), rgb(0x000000),
	}}
)

// Scales are the named continuous color scales.
var Scales = map[string]palette.Continuous{
	"viridis": palette.Viridis,
	"magma":   magma,
	"heat":    ylOrRd,
	"blues":   blues,
	"grays":   grays,
}

// ScaleNames returns the names of Scales in sorted order.
func ScaleNames() []string {
	names := make([]string, 0, len(Scales))
	for k := range Scales {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupScale returns the color scale called name. Case is ignored.
func LookupScale(name string) (palette.Continuous, error) {
	s, ok := Scales[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown color scale %q (available: %s)", name, strings.Join(ScaleNames(), ", "))
	}
	return s, nil
}

var colorType = reflect.TypeOf((*color.Color)(nil)).Elem()

// colorRanger is a gg.ContinuousRanger over a continuous palette.
type colorRanger struct {
	p palette.Continuous
}

func (r *colorRanger) RangeType() reflect.Type {
	return colorType
}

func (r *colorRanger) Map(x float64) interface{} {
	return r.p.Map(x)
}

func (r *colorRanger) Unmap(y interface{}) (float64, bool) {
	return 0, false
}
