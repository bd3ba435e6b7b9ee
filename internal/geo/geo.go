// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geo provides the geographic bounds used to place and filter
// points on the map charts.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean radius of the Earth.
const EarthRadiusKm = 6371.0

// A Region is a latitude/longitude rectangle.
type Region struct {
	rect s2.Rect
}

// Chicago is the default region. It spans the city limits, and
// leaves out geocoding outliers such as points at (0, 0) or in the
// lake.
var Chicago = NewRegion(41.64, -87.94, 42.03, -87.52)

// NewRegion returns the region between the given corners, in degrees.
func NewRegion(latLo, lngLo, latHi, lngHi float64) Region {
	r := s2.RectFromLatLng(s2.LatLngFromDegrees(latLo, lngLo))
	r = r.AddPoint(s2.LatLngFromDegrees(latHi, lngHi))
	return Region{r}
}

// ParseRegion parses a region written as "latLo,lngLo,latHi,lngHi".
func ParseRegion(s string) (Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("region %q: want latLo,lngLo,latHi,lngHi", s)
	}
	var v [4]float64
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Region{}, fmt.Errorf("region %q: %w", s, err)
		}
		v[i] = x
	}
	if v[0] > v[2] || v[1] > v[3] {
		return Region{}, fmt.Errorf("region %q: corners out of order", s)
	}
	if v[0] < -90 || v[2] > 90 || v[1] < -180 || v[3] > 180 {
		return Region{}, fmt.Errorf("region %q: out of range", s)
	}
	return NewRegion(v[0], v[1], v[2], v[3]), nil
}

// Bounds returns the smallest region containing every point
// (lats[i], lngs[i]). Non-finite points are ignored. ok is false if
// there are no finite points.
func Bounds(lats, lngs []float64) (r Region, ok bool) {
	rect := s2.EmptyRect()
	for i := range lats {
		if !finite(lats[i]) || !finite(lngs[i]) {
			continue
		}
		rect = rect.AddPoint(s2.LatLngFromDegrees(lats[i], lngs[i]))
	}
	if rect.IsEmpty() {
		return Region{}, false
	}
	return Region{rect}, true
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Contains reports whether (lat, lng) is inside r.
func (r Region) Contains(lat, lng float64) bool {
	if !finite(lat) || !finite(lng) {
		return false
	}
	return r.rect.ContainsLatLng(s2.LatLngFromDegrees(lat, lng))
}

// Expanded returns r grown by margin degrees on each side.
// Latitudes are clamped to the poles.
func (r Region) Expanded(margin float64) Region {
	latLo, lngLo := r.Lo()
	latHi, lngHi := r.Hi()
	return NewRegion(math.Max(latLo-margin, -90), lngLo-margin, math.Min(latHi+margin, 90), lngHi+margin)
}

// Lo returns the south-west corner of r in degrees.
func (r Region) Lo() (lat, lng float64) {
	lo := r.rect.Lo()
	return lo.Lat.Degrees(), lo.Lng.Degrees()
}

// Hi returns the north-east corner of r in degrees.
func (r Region) Hi() (lat, lng float64) {
	hi := r.rect.Hi()
	return hi.Lat.Degrees(), hi.Lng.Degrees()
}

// Aspect returns the width of r divided by its height, measured on
// the ground at r's center.
func (r Region) Aspect() float64 {
	latLo, lngLo := r.Lo()
	latHi, lngHi := r.Hi()
	if latHi == latLo {
		return 1
	}
	mid := (latLo + latHi) / 2 * math.Pi / 180
	return (lngHi - lngLo) * math.Cos(mid) / (latHi - latLo)
}

// DiagonalKm returns the great-circle length of r's diagonal.
func (r Region) DiagonalKm() float64 {
	return r.rect.Lo().Distance(r.rect.Hi()).Radians() * EarthRadiusKm
}

func (r Region) String() string {
	latLo, lngLo := r.Lo()
	latHi, lngHi := r.Hi()
	return strings.Join([]string{deg(latLo), deg(lngLo), deg(latHi), deg(lngHi)}, ",")
}

// deg formats x to micro-degree precision.
func deg(x float64) string {
	return strconv.FormatFloat(math.Round(x*1e6)/1e6, 'f', -1, 64)
}
