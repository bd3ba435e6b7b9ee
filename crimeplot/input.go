// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ggcrime/ggcrime/crime"
	"github.com/ggcrime/ggcrime/internal/config"
	"github.com/ggcrime/ggcrime/internal/metrics"
	"github.com/ggcrime/ggcrime/internal/theme"
)

// cfg holds the environment defaults. It is loaded before flags are
// registered so flag defaults can come from it.
var cfg = mustLoadConfig()

func mustLoadConfig() *config.Config {
	c, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "crimeplot: %v\n", err)
		os.Exit(2)
	}
	return c
}

// inputFlags are the flags shared by every command that reads a
// crime CSV.
type inputFlags struct {
	strict     bool
	dateLayout string
	noRegion   bool
}

func addInputFlags(f *flag.FlagSet) *inputFlags {
	in := new(inputFlags)
	f.BoolVar(&in.strict, "strict", cfg.Strict, "fail on the first malformed row instead of skipping it")
	f.StringVar(&in.dateLayout, "date-layout", cfg.DateLayout, "extra timestamp `layout` in Go time format")
	f.BoolVar(&in.noRegion, "all-locations", false, "map every located crime, ignoring the map region")
	return in
}

// themeFlags select a theme and color scale.
type themeFlags struct {
	theme, scale string
}

func addThemeFlags(f *flag.FlagSet) *themeFlags {
	tf := new(themeFlags)
	f.StringVar(&tf.theme, "theme", cfg.Theme, "chart `theme`: "+strings.Join(theme.Names(), ", "))
	f.StringVar(&tf.scale, "scale", cfg.Scale, "color `scale` (default: the theme's): "+strings.Join(theme.ScaleNames(), ", "))
	return tf
}

func (tf *themeFlags) get() (*theme.Theme, error) {
	t, err := theme.Lookup(tf.theme)
	if err != nil {
		return nil, err
	}
	if tf.scale != "" {
		return t.WithScale(tf.scale)
	}
	return t, nil
}

// inputPath returns the input named by args, or "-" for standard
// input. It exits with a usage error if there is more than one.
func inputPath(f *flag.FlagSet) string {
	switch f.NArg() {
	case 0:
		return "-"
	case 1:
		return f.Arg(0)
	}
	f.Usage()
	os.Exit(2)
	panic("unreachable")
}

// load reads and summarizes the crime CSV at path. It logs a summary
// of any skipped rows. If m is non-nil, the row counts are recorded
// in m.
func (in *inputFlags) load(path string, m *metrics.Metrics) (*crime.Dataset, *crime.Summaries, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		r = f
	}

	opts := crime.LoadOptions{Strict: in.strict}
	opts.Location = cfg.Location
	if in.dateLayout != "" {
		opts.Layouts = []string{in.dateLayout}
	}
	ds, err := crime.Load(r, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", displayName(path), err)
	}
	if m != nil {
		m.ObserveDataset(ds)
	}
	if n := ds.SkippedTotal(); n > 0 {
		var reasons []string
		for _, k := range ds.SkipReasons() {
			reasons = append(reasons, fmt.Sprintf("%d bad %s", ds.Skipped[k], k))
		}
		log.Printf("%s: skipped %d of %d rows (%s)", displayName(path), n, ds.Read, strings.Join(reasons, ", "))
	}

	sopts := crime.SummaryOptions{MaxPoints: cfg.MaxPoints}
	if cfg.HasRegion && !in.noRegion {
		sopts.InRegion = cfg.Region.Contains
	}
	sums := crime.Summarize(ds.Records, sopts)
	if sums.OutOfRegion > 0 {
		log.Printf("%d located crimes are outside %s and left off the maps", sums.OutOfRegion, cfg.Region)
	}
	return ds, sums, nil
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}
