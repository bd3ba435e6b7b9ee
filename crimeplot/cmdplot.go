// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/ggcrime/ggcrime/crime"
	"github.com/ggcrime/ggcrime/internal/charts"
	"github.com/ggcrime/ggcrime/internal/density"
	"github.com/ggcrime/ggcrime/internal/geo"
	"github.com/ggcrime/ggcrime/internal/metrics"
	"github.com/ggcrime/ggcrime/internal/raster"
	"github.com/ggcrime/ggcrime/internal/theme"
)

var cmdPlotFlags = flag.NewFlagSet(os.Args[0]+" plot", flag.ExitOnError)

var plot struct {
	in         *inputFlags
	theme      *themeFlags
	outDir     string
	charts     string
	densityPNG string
	open       string
	metrics    string
}

func init() {
	f := cmdPlotFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s plot [flags] [input.csv]\n", os.Args[0])
		f.PrintDefaults()
	}
	plot.in = addInputFlags(f)
	plot.theme = addThemeFlags(f)
	f.StringVar(&plot.outDir, "o", cfg.OutDir, "write charts to `directory`")
	f.StringVar(&plot.charts, "charts", "", "comma-separated `list` of charts to plot (default all): "+strings.Join(charts.Names(), ", "))
	f.StringVar(&plot.densityPNG, "density-png", "", "also write the crime density surface to PNG `file`")
	f.StringVar(&plot.open, "open", "", "open the charts with `command`, for example \"xdg-open\"")
	f.StringVar(&plot.metrics, "metrics", "", "write run metrics in Prometheus text format to `file`")
	registerSubcommand("plot", "[flags] [input.csv] - write charts as SVG files", cmdPlot, f)
}

func cmdPlot() {
	path := inputPath(cmdPlotFlags)
	list, err := charts.Select(plot.charts)
	if err != nil {
		log.Fatal(err)
	}
	th, err := plot.theme.get()
	if err != nil {
		log.Fatal(err)
	}
	var viewer []string
	if plot.open != "" {
		if viewer, err = shellquote.Split(plot.open); err != nil {
			log.Fatalf("bad -open command: %v", err)
		}
	}

	m := metrics.New()
	_, sums, err := plot.in.load(path, m)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(plot.outDir, 0777); err != nil {
		log.Fatal(err)
	}

	status := NewStatusReporter()
	var written []string
	failed := 0
	for i, c := range list {
		status.Progress("rendering "+c.Name, float64(i)/float64(len(list)))
		file := filepath.Join(plot.outDir, c.Name+".svg")
		start := time.Now()
		err := renderFile(file, c, sums, th)
		m.RenderDuration.WithLabelValues(c.Name).Observe(time.Since(start).Seconds())
		switch {
		case errors.Is(err, charts.ErrNoData):
			status.Message(fmt.Sprintf("skipping %s: %v", c.Name, err))
		case err != nil:
			m.RenderErrors.Inc()
			failed++
			status.Message(err.Error())
		default:
			m.ChartsRendered.Inc()
			written = append(written, file)
		}
	}
	status.Stop()

	if plot.densityPNG != "" {
		if err := writeDensityPNG(plot.densityPNG, sums, th); err != nil {
			log.Fatal(err)
		}
		written = append(written, plot.densityPNG)
	}
	for _, file := range written {
		fmt.Println(file)
	}

	if plot.metrics != "" {
		if err := m.WriteFile(plot.metrics); err != nil {
			log.Fatal(err)
		}
	}

	if viewer != nil && len(written) > 0 {
		cmd := exec.Command(viewer[0], append(viewer[1:], written...)...)
		cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
		if err := cmd.Start(); err != nil {
			log.Fatalf("starting viewer: %v", err)
		}
	}

	if failed > 0 {
		log.Fatalf("%d of %d charts failed", failed, len(list))
	}
}

func renderFile(path string, c *charts.Chart, sums *crime.Summaries, th *theme.Theme) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := charts.Render(f, c, sums, th); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// densityWidth is the width of the density PNG in pixels.
const densityWidth = 800

// writeDensityPNG writes the density of all mapped crimes to path,
// sized to the aspect ratio of their bounds.
func writeDensityPNG(path string, sums *crime.Summaries, th *theme.Theme) error {
	lats := make([]float64, len(sums.Locations))
	lngs := make([]float64, len(sums.Locations))
	for i, l := range sums.Locations {
		lats[i], lngs[i] = l.Lat, l.Lng
	}
	bounds, ok := geo.Bounds(lats, lngs)
	if !ok {
		return fmt.Errorf("density: %w", charts.ErrNoData)
	}
	grid, err := density.KDE2D{}.Estimate(lngs, lats)
	if err != nil {
		return err
	}
	height := densityWidth
	if a := bounds.Aspect(); a > 0.25 && a < 4 {
		height = int(math.Round(densityWidth / a))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := raster.WritePNG(f, grid, th.Continuous, densityWidth, height); err != nil {
		f.Close()
		return err
	}
	log.Printf("density bandwidth %.4g° x %.4g° over %.1f km", grid.Bandwidth[0], grid.Bandwidth[1], bounds.DiagonalKm())
	return f.Close()
}
