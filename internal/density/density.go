// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package density estimates two-dimensional point densities and
// their highest density regions.
package density

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// KDE2D is a two-dimensional kernel density estimator with a product
// Gaussian kernel.
//
// Points are first binned to the evaluation lattice, so the cost is
// linear in the number of points and cubic in N.
type KDE2D struct {
	// Bandwidth is the kernel bandwidth along X and Y. A zero
	// bandwidth is computed from the data with Scott's rule.
	Bandwidth [2]float64

	// N is the number of lattice points along each axis. If 0, it
	// defaults to 100.
	N int

	// Widen is the number of bandwidths to extend the lattice past
	// the data on each side. If 0, it defaults to 3.
	Widen float64
}

// A Grid is a density evaluated on a regular lattice.
type Grid struct {
	Xs, Ys []float64

	// Z holds the density at (Xs[i], Ys[j]) at index j*len(Xs)+i.
	Z []float64

	// Bandwidth is the bandwidth used along each axis.
	Bandwidth [2]float64
}

// ErrDegenerate is returned when the sample has no spread along an
// axis and no bandwidth was given.
var ErrDegenerate = errors.New("density: degenerate sample")

// Estimate returns the density of the points (xs[i], ys[i]).
func (k KDE2D) Estimate(xs, ys []float64) (*Grid, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("density: %d xs but %d ys", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, errors.New("density: no points")
	}
	n := k.N
	if n == 0 {
		n = 100
	}
	if n < 2 {
		return nil, fmt.Errorf("density: lattice size %d too small", n)
	}
	widen := k.Widen
	if widen == 0 {
		widen = 3
	}

	g := &Grid{Bandwidth: k.Bandwidth}
	var lattice [2][]float64
	for axis, data := range [2][]float64{xs, ys} {
		sample := stats.Sample{Xs: data}
		if g.Bandwidth[axis] == 0 {
			g.Bandwidth[axis] = stats.BandwidthScott(sample)
		}
		bw := g.Bandwidth[axis]
		if !(bw > 0) || math.IsInf(bw, 0) {
			return nil, ErrDegenerate
		}
		lo, hi := sample.Bounds()
		lattice[axis] = vec.Linspace(lo-widen*bw, hi+widen*bw, n)
	}
	g.Xs, g.Ys = lattice[0], lattice[1]

	// Bin the points to the nearest lattice point.
	counts := make([]float64, n*n)
	for i := range xs {
		bx, by := nearest(g.Xs, xs[i]), nearest(g.Ys, ys[i])
		counts[by*n+bx]++
	}

	// Smooth along X, then Y. kx[i*n+a] is the kernel weight of
	// lattice point a at lattice point i.
	kx := kernelMatrix(g.Xs, g.Bandwidth[0])
	ky := kernelMatrix(g.Ys, g.Bandwidth[1])
	tmp := make([]float64, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			var sum float64
			for a := 0; a < n; a++ {
				sum += kx[i*n+a] * counts[j*n+a]
			}
			tmp[j*n+i] = sum
		}
	}
	g.Z = make([]float64, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			var sum float64
			for b := 0; b < n; b++ {
				sum += ky[j*n+b] * tmp[b*n+i]
			}
			g.Z[j*n+i] = sum
		}
	}

	// Normalize so the lattice integrates to 1.
	mass := vec.Sum(g.Z) * g.CellArea()
	if mass > 0 {
		for i := range g.Z {
			g.Z[i] /= mass
		}
	}
	return g, nil
}

// nearest returns the index of the lattice point closest to x.
func nearest(lattice []float64, x float64) int {
	step := lattice[1] - lattice[0]
	i := int(math.Floor((x-lattice[0])/step + 0.5))
	if i < 0 {
		return 0
	} else if i >= len(lattice) {
		return len(lattice) - 1
	}
	return i
}

// kernelMatrix returns the Gaussian kernel weights between every pair
// of lattice points.
func kernelMatrix(lattice []float64, bw float64) []float64 {
	kernel := stats.KDE{
		Sample:    stats.Sample{Xs: []float64{0}},
		Kernel:    stats.GaussianKernel,
		Bandwidth: bw,
	}
	n := len(lattice)
	m := make([]float64, n*n)
	for i := range lattice {
		for a := range lattice {
			m[i*n+a] = kernel.PDF(lattice[i] - lattice[a])
		}
	}
	return m
}

// At returns the density at lattice point (i, j).
func (g *Grid) At(i, j int) float64 {
	return g.Z[j*len(g.Xs)+i]
}

// CellArea returns the area of one lattice cell.
func (g *Grid) CellArea() float64 {
	return (g.Xs[1] - g.Xs[0]) * (g.Ys[1] - g.Ys[0])
}

// Max returns the largest density on the lattice.
func (g *Grid) Max() float64 {
	_, max := stats.Bounds(g.Z)
	return max
}

// Thresholds returns, for each probability p in probs, the density
// level whose superlevel set is the smallest region of the lattice
// holding at least p of the probability mass.
func (g *Grid) Thresholds(probs ...float64) []float64 {
	sorted := append([]float64(nil), g.Z...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	total := vec.Sum(sorted)

	out := make([]float64, len(probs))
	for pi, p := range probs {
		cum := 0.0
		for _, z := range sorted {
			cum += z
			if cum >= p*total {
				out[pi] = z
				break
			}
		}
	}
	return out
}

// A Cell is a lattice point inside a highest density region.
type Cell struct {
	X, Y, Density float64

	// Level is the smallest probability whose highest density
	// region contains the cell.
	Level float64
}

// HDR assigns each lattice point to the smallest of the highest
// density regions of probabilities probs that contains it. Points
// outside every region are omitted.
func (g *Grid) HDR(probs ...float64) []Cell {
	probs = append([]float64(nil), probs...)
	sort.Float64s(probs)
	thresholds := g.Thresholds(probs...)

	var cells []Cell
	for j, y := range g.Ys {
		for i, x := range g.Xs {
			z := g.At(i, j)
			if z <= 0 {
				continue
			}
			for pi, t := range thresholds {
				if z >= t {
					cells = append(cells, Cell{x, y, z, probs[pi]})
					break
				}
			}
		}
	}
	return cells
}

// Complete returns cells plus a cell with a NaN Level for every
// lattice point of g that is not in cells, so the result covers the
// whole lattice.
func (g *Grid) Complete(cells []Cell) []Cell {
	type pt struct{ x, y float64 }
	have := make(map[pt]bool, len(cells))
	for _, c := range cells {
		have[pt{c.X, c.Y}] = true
	}
	out := append([]Cell(nil), cells...)
	for j, y := range g.Ys {
		for i, x := range g.Xs {
			if !have[pt{x, y}] {
				out = append(out, Cell{x, y, g.At(i, j), math.NaN()})
			}
		}
	}
	return out
}

// DefaultLevels are the probability levels of the map density
// overlay.
var DefaultLevels = []float64{0.5, 0.8, 0.95, 0.99}

// LevelLabel returns probability p as a percentage label, such as
// "95%". The label of NaN is "".
func LevelLabel(p float64) string {
	if math.IsNaN(p) {
		return ""
	}
	return strconv.FormatFloat(math.Round(p*1000)/10, 'f', -1, 64) + "%"
}

// Table returns cells as a table with columns x, y, "density" and
// "level". Levels are labeled with LevelLabel.
func Table(cells []Cell, x, y string) *table.Table {
	xs := make([]float64, len(cells))
	ys := make([]float64, len(cells))
	zs := make([]float64, len(cells))
	levels := make([]string, len(cells))
	for i, c := range cells {
		xs[i], ys[i], zs[i], levels[i] = c.X, c.Y, c.Density, LevelLabel(c.Level)
	}
	return new(table.Builder).
		Add(x, xs).
		Add(y, ys).
		Add("density", zs).
		Add("level", levels).
		Done()
}
