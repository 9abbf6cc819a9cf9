// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// RenderTarget defines where the debug quad is drawn. TextureTarget is the
// offscreen implementation; a host drawing into its window surface wraps
// the frame's surface view in its own RenderTarget.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// TextureView returns the view color attachments are created from.
	TextureView() hal.TextureView
}

// TextureTarget is an offscreen GPU texture render target.
//
// The texture must have been created with RenderAttachment usage. When
// CopySrc usage is present as well, the target can be read back.
type TextureTarget struct {
	width   int
	height  int
	format  gputypes.TextureFormat
	texture hal.Texture
	view    hal.TextureView
}

// NewTextureTarget wraps an existing texture and view. Ownership stays with
// the caller.
func NewTextureTarget(width, height int, format gputypes.TextureFormat, texture hal.Texture, view hal.TextureView) *TextureTarget {
	return &TextureTarget{
		width:   width,
		height:  height,
		format:  format,
		texture: texture,
		view:    view,
	}
}

// Width returns the target width in pixels.
func (t *TextureTarget) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *TextureTarget) Height() int { return t.height }

// Format returns the texture format.
func (t *TextureTarget) Format() gputypes.TextureFormat { return t.format }

// TextureView returns the GPU texture view.
func (t *TextureTarget) TextureView() hal.TextureView { return t.view }

// Texture returns the underlying texture, used as the copy source of a
// readback.
func (t *TextureTarget) Texture() hal.Texture { return t.texture }

// Viewport returns a viewport covering the whole target.
func (t *TextureTarget) Viewport() Viewport { return NewViewport(t.width, t.height) }

var _ RenderTarget = (*TextureTarget)(nil)
