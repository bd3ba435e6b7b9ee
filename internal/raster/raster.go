// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raster renders density lattices as images.
package raster

import (
	"errors"
	"image"
	"image/png"
	"io"

	"github.com/aclements/go-gg/palette"
	"golang.org/x/image/draw"

	"github.com/ggcrime/ggcrime/internal/density"
)

// Image colors g with p, scaling densities so the largest maps to 1.
// The result has one pixel per lattice point, with north up.
func Image(g *density.Grid, p palette.Continuous) *image.RGBA {
	nx, ny := len(g.Xs), len(g.Ys)
	img := image.NewRGBA(image.Rect(0, 0, nx, ny))
	max := g.Max()
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			x := 0.0
			if max > 0 {
				x = g.At(i, j) / max
			}
			img.Set(i, ny-1-j, p.Map(x))
		}
	}
	return img
}

// WritePNG writes g colored with p as a width x height PNG. The
// lattice image is scaled up with bilinear interpolation.
func WritePNG(w io.Writer, g *density.Grid, p palette.Continuous, width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.New("raster: empty image size")
	}
	src := Image(g, p)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return png.Encode(w, dst)
}
