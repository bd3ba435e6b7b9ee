// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"bytes"
	"fmt"
	"image/color"
)

// gg's fixed furniture styles, as written by its SVG renderer.
const (
	ggPanel  = `style="fill:#eee"`
	ggGrid   = `style="stroke: #fff; stroke-width:2"`
	ggBorder = `style="stroke:#888; fill:none; stroke-width:2"`
	ggTicks  = `style="stroke:#888; stroke-width:2"`
	ggStrip  = `style="fill: #ccc"`
	ggLabel  = `fill="#666"`
)

// Hex returns c in CSS #rrggbb form. Fully transparent colors are
// "none".
func Hex(c color.Color) string {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return "none"
	}
	if a != 0xffff {
		r, g, b = r*0xffff/a, g*0xffff/a, b*0xffff/a
	}
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// Restyle rewrites an SVG rendered by gg to use t's colors and
// returns the result. The background is painted by a rectangle
// inserted at the start of the drawing.
func (t *Theme) Restyle(svg []byte) []byte {
	rep := []struct{ old, new string }{
		{ggPanel, fmt.Sprintf(`style="fill:%s"`, Hex(t.Panel))},
		{ggGrid, fmt.Sprintf(`style="stroke:%s; stroke-width:2"`, Hex(t.Grid))},
		{ggBorder, fmt.Sprintf(`style="stroke:%s; fill:none; stroke-width:2"`, Hex(t.Border))},
		{ggTicks, fmt.Sprintf(`style="stroke:%s; stroke-width:2"`, Hex(t.Border))},
		{ggStrip, fmt.Sprintf(`style="fill:%s"`, Hex(t.Strip))},
		{ggLabel, fmt.Sprintf(`fill="%s"`, Hex(t.Text))},
	}
	out := svg
	for _, r := range rep {
		out = bytes.Replace(out, []byte(r.old), []byte(r.new), -1)
	}

	// Insert the background and default text color just inside
	// the root element.
	start := bytes.Index(out, []byte("<svg"))
	if start < 0 {
		return out
	}
	end := bytes.IndexByte(out[start:], '>')
	if end < 0 {
		return out
	}
	end += start + 1
	head := fmt.Sprintf("\n<style>text{fill:%s}</style>\n<rect x=\"0\" y=\"0\" width=\"100%%\" height=\"100%%\" style=\"fill:%s\" />",
		Hex(t.Text), Hex(t.Background))

	var buf bytes.Buffer
	buf.Grow(len(out) + len(head))
	buf.Write(out[:end])
	buf.WriteString(head)
	buf.Write(out[end:])
	return buf.Bytes()
}
