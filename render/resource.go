// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/wgpu/hal"

// Texture is a shader-readable image the host binds to a TextureSlot.
//
// The visualizer never creates or owns textures; it only binds whatever the
// render graph produced this frame.
type Texture interface {
	Label() string
}

// Buffer is a uniform buffer the host binds to a ParamSlot.
type Buffer interface {
	Label() string
	Size() uint64
}

// HALTexture is implemented by textures backed by a wgpu HAL texture view.
// Backends that issue real draws type-assert for it.
type HALTexture interface {
	Texture
	HALView() hal.TextureView
}

// HALBuffer is implemented by buffers backed by a wgpu HAL buffer.
type HALBuffer interface {
	Buffer
	HALBuffer() hal.Buffer
}

// ViewTexture wraps a host-owned hal.TextureView.
type ViewTexture struct {
	label string
	view  hal.TextureView
}

// NewViewTexture wraps view as a bindable Texture. The view is not owned.
func NewViewTexture(label string, view hal.TextureView) *ViewTexture {
	return &ViewTexture{label: label, view: view}
}

// Label returns the debug label.
func (t *ViewTexture) Label() string { return t.label }

// HALView returns the wrapped view.
func (t *ViewTexture) HALView() hal.TextureView { return t.view }

// UniformBuffer wraps a host-owned hal.Buffer holding uniform data.
type UniformBuffer struct {
	label string
	buf   hal.Buffer
	size  uint64
}

// NewUniformBuffer wraps buf as a bindable Buffer of size bytes.
// The buffer is not owned.
func NewUniformBuffer(label string, buf hal.Buffer, size uint64) *UniformBuffer {
	return &UniformBuffer{label: label, buf: buf, size: size}
}

// Label returns the debug label.
func (b *UniformBuffer) Label() string { return b.label }

// Size returns the bound range in bytes.
func (b *UniformBuffer) Size() uint64 { return b.size }

// HALBuffer returns the wrapped buffer.
func (b *UniformBuffer) HALBuffer() hal.Buffer { return b.buf }

var (
	_ HALTexture = (*ViewTexture)(nil)
	_ HALBuffer  = (*UniformBuffer)(nil)
)
