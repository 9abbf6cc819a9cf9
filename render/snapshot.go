// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"golang.org/x/image/draw"
)

// Thumbnail scales src to fit within maxWidth x maxHeight, preserving the
// aspect ratio. Images already small enough are copied unscaled. A
// non-positive bound leaves that dimension unconstrained.
func Thumbnail(src image.Image, maxWidth, maxHeight int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	scale := 1.0
	if maxWidth > 0 && w > maxWidth {
		scale = float64(maxWidth) / float64(w)
	}
	if maxHeight > 0 && float64(h)*scale > float64(maxHeight) {
		scale = float64(maxHeight) / float64(h)
	}
	return Scale(src, scale)
}

// Scale resamples src by factor using Catmull-Rom filtering. Factors that
// would produce an empty image yield a 1x1 result.
func Scale(src image.Image, factor float64) *image.RGBA {
	b := src.Bounds()
	w := max(int(float64(b.Dx())*factor+0.5), 1)
	h := max(int(float64(b.Dy())*factor+0.5), 1)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
