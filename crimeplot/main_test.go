// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggcrime/ggcrime/internal/charts"
	"github.com/ggcrime/ggcrime/internal/metrics"
)

// writeCSV writes a portal-style CSV of n index crimes plus one
// non-index crime and one row with a bad date.
func writeCSV(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("ID,Date,Primary Type,FBI Code,District,Arrest,Latitude,Longitude\n")
	codes := []string{"06", "04B", "07", "05", "03"}
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d,%02d/%02d/2015 %02d:15:00 PM,THEFT,%s,%d,false,%.5f,%.5f\n",
			i, 1+i%12, 1+i%28, 1+i%12, codes[i%len(codes)], 1+i%9,
			41.80+float64(i%13)*0.01, -87.70+float64(i%11)*0.01)
	}
	b.WriteString("900,01/01/2015 01:00:00 AM,NARCOTICS,18,1,true,41.8,-87.6\n")
	b.WriteString("901,yesterday,THEFT,06,1,false,41.8,-87.6\n")

	path := filepath.Join(t.TempDir(), "crimes.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0666))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, 50)
	m := metrics.New()
	ds, sums, err := new(inputFlags).load(path, m)
	require.NoError(t, err)

	assert.Equal(t, 52, ds.Read)
	assert.Len(t, ds.Records, 50)
	assert.Equal(t, 1, ds.Filtered)
	assert.Equal(t, map[string]int{"Date": 1}, ds.Skipped)
	assert.Equal(t, 50, sums.Records)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RowsSkipped.WithLabelValues("Date")))

	_, _, err = (&inputFlags{strict: true}).load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 53")

	_, _, err = new(inputFlags).load(filepath.Join(t.TempDir(), "missing.csv"), nil)
	assert.Error(t, err)
}

func TestThemeFlags(t *testing.T) {
	th, err := (&themeFlags{theme: "Dark"}).get()
	require.NoError(t, err)
	assert.Equal(t, "dark", th.Name)
	assert.Equal(t, "magma", th.ScaleName)

	th, err = (&themeFlags{theme: "dark", scale: "heat"}).get()
	require.NoError(t, err)
	assert.Equal(t, "heat", th.ScaleName)

	_, err = (&themeFlags{theme: "neon"}).get()
	assert.Error(t, err)
	_, err = (&themeFlags{theme: "dark", scale: "rainbow"}).get()
	assert.Error(t, err)
}

func TestRenderFile(t *testing.T) {
	_, sums, err := new(inputFlags).load(writeCSV(t, 80), nil)
	require.NoError(t, err)
	th, err := (&themeFlags{theme: "minimal"}).get()
	require.NoError(t, err)
	dir := t.TempDir()

	c, err := charts.Lookup("weekday-hour")
	require.NoError(t, err)
	file := filepath.Join(dir, "weekday-hour.svg")
	require.NoError(t, renderFile(file, c, sums, th))
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	pngFile := filepath.Join(dir, "density.png")
	require.NoError(t, writeDensityPNG(pngFile, sums, th))
	f, err := os.Open(pngFile)
	require.NoError(t, err)
	defer f.Close()
	conf, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, densityWidth, conf.Width)
	assert.True(t, conf.Height > 0)
}

func TestStatusReporterPlain(t *testing.T) {
	var buf bytes.Buffer
	sr := &StatusReporter{w: &buf}
	sr.Progress("ignored", 0.5)
	sr.Message("skipping map-points")
	sr.Stop()
	assert.Equal(t, "skipping map-points\n", buf.String())
}

func TestStatusLine(t *testing.T) {
	for _, test := range []struct {
		frac    float64
		elapsed time.Duration
		want    string
	}{
		{0, 5 * time.Second, "[  0%] rendering daily-line, ETA unknown"},
		{0.25, 10 * time.Second, "[ 25%] rendering daily-line, ETA 30s"},
		{0.5, 3500 * time.Millisecond, "[ 50%] rendering daily-line, ETA 3s"},
		{1, time.Minute, "[100%] rendering daily-line, ETA 0s"},
	} {
		assert.Equal(t, test.want, statusLine("rendering daily-line", test.frac, test.elapsed))
	}
}

func TestStatusReporterTerminal(t *testing.T) {
	var buf bytes.Buffer
	update := make(chan statusUpdate)
	sr := &StatusReporter{w: &buf, update: update}
	go sr.loop(update)
	sr.Progress("rendering map-points", 0.5)
	sr.Message("skipping map-density")
	sr.Stop()

	out := buf.String()
	assert.Contains(t, out, "[ 50%] rendering map-points, ETA ")
	assert.Contains(t, out, "skipping map-density\n")
	assert.True(t, strings.HasSuffix(out, "\r\x1b[2K"), "status line not cleared: %q", out)
}
