// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "fmt"

// GeometryID identifies a reusable piece of quad geometry held by a
// geometry registry. The zero value is never allocated.
type GeometryID uint32

// InvalidGeometryID is the zero, never-allocated ID.
const InvalidGeometryID GeometryID = 0

// Valid reports whether id could have been returned by an allocator.
func (id GeometryID) Valid() bool { return id != InvalidGeometryID }

// String returns a debug representation.
func (id GeometryID) String() string { return fmt.Sprintf("geom#%d", uint32(id)) }

// Color is a linear RGBA color with float32 components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// White is the neutral quad tint.
var White = Color{R: 1, G: 1, B: 1, A: 1}
