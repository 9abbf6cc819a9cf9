// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "fmt"

// Rect is an axis-aligned rectangle in normalized device coordinates,
// given by its bottom-left and top-right corners.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// FullScreen covers the whole viewport.
var FullScreen = Rect{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}

// NewRect creates a rectangle from its bottom-left and top-right corners.
func NewRect(minX, minY, maxX, maxY float32) Rect {
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// BottomLeft returns the bottom-left corner.
func (r Rect) BottomLeft() (x, y float32) { return r.MinX, r.MinY }

// TopRight returns the top-right corner.
func (r Rect) TopRight() (x, y float32) { return r.MaxX, r.MaxY }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.MinX >= r.MaxX || r.MinY >= r.MaxY }

// String returns "(minX,minY)-(maxX,maxY)".
func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// Viewport is a pixel-space region of the render target.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// NewViewport creates a viewport covering a width x height target.
func NewViewport(width, height int) Viewport {
	return Viewport{Width: width, Height: height}
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func (v Viewport) Aspect() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// Transform returns the matrix mapping normalized device coordinates onto
// the viewport in pixels, origin bottom-left.
func (v Viewport) Transform() Mat4 {
	hw := float32(v.Width) / 2
	hh := float32(v.Height) / 2
	m := Identity()
	m[0] = hw
	m[5] = hh
	m[12] = float32(v.X) + hw
	m[13] = float32(v.Y) + hh
	return m
}
