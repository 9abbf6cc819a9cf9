// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "math"

// Mat4 is a 4x4 float32 matrix stored column-major, the layout WGSL
// mat4x4<f32> uniforms expect.
type Mat4 [16]float32

// Vec3 is a 3-component vector.
type Vec3 [3]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * o[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// IsIdentity reports whether m equals the identity matrix exactly.
func (m Mat4) IsIdentity() bool { return m == Identity() }

// Perspective returns a right-handed perspective projection mapping depth
// to the WebGPU clip range [0, 1].
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1.0 / math.Tan(float64(fovY)/2))
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1
	m[14] = (near * far) / (near - far)
	return m
}

// LookAt returns a right-handed view matrix for a camera at eye looking
// towards target.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	m := Identity()
	m[0], m[4], m[8] = s[0], s[1], s[2]
	m[1], m[5], m[9] = u[0], u[1], u[2]
	m[2], m[6], m[10] = -f[0], -f[1], -f[2]
	m[12] = -s.Dot(eye)
	m[13] = -u.Dot(eye)
	m[14] = f.Dot(eye)
	return m
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }

// Dot returns the dot product.
func (v Vec3) Dot(o Vec3) float32 { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := float32(math.Sqrt(float64(v.Dot(v))))
	if l == 0 {
		return v
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// Frustum is the view frustum of the camera the frame was rendered with.
type Frustum struct {
	Position Vec3
	Forward  Vec3
	Up       Vec3

	// FovY is the vertical field of view in radians.
	FovY   float32
	Aspect float32
	Near   float32
	Far    float32
}

// NewFrustum returns a camera at the origin looking down -Z with a 45 degree
// vertical field of view.
func NewFrustum() *Frustum {
	return &Frustum{
		Forward: Vec3{0, 0, -1},
		Up:      Vec3{0, 1, 0},
		FovY:    math.Pi / 4,
		Aspect:  1,
		Near:    0.1,
		Far:     100,
	}
}

// EvalProjectionMatrix returns the projection matrix of the frustum.
func (f *Frustum) EvalProjectionMatrix() Mat4 {
	return Perspective(f.FovY, f.Aspect, f.Near, f.Far)
}

// EvalViewTransform returns the world to view matrix of the frustum.
func (f *Frustum) EvalViewTransform() Mat4 {
	return LookAt(f.Position, f.Position.Add(f.Forward), f.Up)
}
