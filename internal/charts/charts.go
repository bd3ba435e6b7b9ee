// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package charts defines the crime charts as declarative gg plots.
//
// Each Chart builds a *gg.Plot from a set of crime summaries and a
// theme. Render draws a chart as themed SVG. The charts are listed in
// All in the order they are usually read.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aclements/go-gg/gg"

	"github.com/ggcrime/ggcrime/crime"
	"github.com/ggcrime/ggcrime/internal/theme"
)

// A Chart is a named plot of crime summaries.
type Chart struct {
	Name  string
	Title string

	// Width and Height are the size of the SVG in pixels.
	Width, Height int

	// Build constructs the plot. It must not modify s.
	Build func(s *crime.Summaries, t *theme.Theme) (*gg.Plot, error)
}

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("no data to plot")

// All lists the charts in display order.
var All = []*Chart{
	{"daily-line", "Index crimes per day", 900, 450, dailyLine},
	{"monthly-bar", "Index crimes by month", 900, 450, monthlyBar},
	{"district-facets", "Index crimes by month and district", 1400, 1000, districtFacets},
	{"weekday-hour", "Index crimes by day of week and hour", 1100, 450, weekdayHour},
	{"map-points", "Locations of index crimes", 700, 800, mapPoints},
	{"map-density", "Highest density regions of index crimes", 1200, 750, mapDensity},
}

// Names returns the names of all charts in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, c := range All {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the chart called name.
func Lookup(name string) (*Chart, error) {
	for _, c := range All {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown chart %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Select returns the charts named in the comma-separated list, in
// list order. An empty list selects all charts.
func Select(list string) ([]*Chart, error) {
	if strings.TrimSpace(list) == "" {
		return All, nil
	}
	var out []*Chart
	seen := make(map[string]bool)
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		c, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		seen[name] = true
		out = append(out, c)
	}
	return out, nil
}

// Render builds c from s and writes it to w as SVG styled with t.
//
// gg panics on plots it cannot draw. Render reports these as errors.
func Render(w io.Writer, c *Chart, s *crime.Summaries, t *theme.Theme) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rendering %s: %v", c.Name, r)
		}
	}()

	p, err := c.Build(s, t)
	if err != nil {
		return fmt.Errorf("building %s: %w", c.Name, err)
	}
	if c.Title != "" {
		p.Add(gg.Title(c.Title))
	}

	var buf bytes.Buffer
	if err := p.WriteSVG(&buf, c.Width, c.Height); err != nil {
		return fmt.Errorf("rendering %s: %w", c.Name, err)
	}
	_, err = w.Write(t.Restyle(buf.Bytes()))
	return err
}
