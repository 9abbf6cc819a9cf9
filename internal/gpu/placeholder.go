// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// placeholderUniformSize covers the largest uniform block of the debug
// template (the deferred frame transform) with room to spare.
const placeholderUniformSize = 512

// placeholders are the resources bound to slots a frame left empty. A bind
// group must be complete, so every declared binding needs something.
type placeholders struct {
	texture hal.Texture
	view    hal.TextureView
	uniform hal.Buffer
}

// createPlaceholders creates a 1x1 transparent black texture and a zeroed
// uniform buffer.
func createPlaceholders(device hal.Device, queue hal.Queue) (*placeholders, error) {
	p := &placeholders{}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "debug_placeholder_texture",
		Size:          hal.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create placeholder texture: %w", err)
	}
	p.texture = tex

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "debug_placeholder_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create placeholder view: %w", err)
	}
	p.view = view

	queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		[]byte{0, 0, 0, 0},
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: 4, RowsPerImage: 1},
		&hal.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1},
	)

	ubo, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "debug_placeholder_uniform",
		Size:  placeholderUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create placeholder uniform: %w", err)
	}
	p.uniform = ubo
	queue.WriteBuffer(ubo, 0, make([]byte, placeholderUniformSize))

	return p, nil
}

func (p *placeholders) destroy(device hal.Device) {
	if p.uniform != nil {
		device.DestroyBuffer(p.uniform)
		p.uniform = nil
	}
	if p.view != nil {
		device.DestroyTextureView(p.view)
		p.view = nil
	}
	if p.texture != nil {
		device.DestroyTexture(p.texture)
		p.texture = nil
	}
}
