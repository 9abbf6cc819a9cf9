// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gbufview/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the WebGPU BytesPerRow alignment for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// OffscreenTarget is a BGRA8 render target that can be read back.
type OffscreenTarget struct {
	*render.TextureTarget
	device hal.Device
}

// NewOffscreenTarget creates a width x height BGRA8Unorm texture usable as
// a color attachment and as a copy source.
func NewOffscreenTarget(device hal.Device, width, height int) (*OffscreenTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("gpu: invalid target size %dx%d", width, height)
	}
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label: "debug_offscreen",
		Size: hal.Extent3D{
			Width:              uint32(width),  //nolint:gosec // checked positive above
			Height:             uint32(height), //nolint:gosec // checked positive above
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("create offscreen texture: %w", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "debug_offscreen_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create offscreen view: %w", err)
	}
	return &OffscreenTarget{
		TextureTarget: render.NewTextureTarget(width, height, gputypes.TextureFormatBGRA8Unorm, tex, view),
		device:        device,
	}, nil
}

// Destroy releases the texture and its view.
func (t *OffscreenTarget) Destroy() {
	if t.device == nil {
		return
	}
	if v := t.TextureView(); v != nil {
		t.device.DestroyTextureView(v)
	}
	if tex := t.Texture(); tex != nil {
		t.device.DestroyTexture(tex)
	}
	t.device = nil
}

// Readback copies target into a new RGBA image. The target texture must be
// BGRA8Unorm with CopySrc usage.
func Readback(device hal.Device, queue hal.Queue, target *render.TextureTarget) (*image.RGBA, error) { //nolint:funlen // copy + submit + unpack
	if target == nil || target.Texture() == nil {
		return nil, errors.New("gpu: readback needs a texture target")
	}
	if target.Format() != gputypes.TextureFormatBGRA8Unorm {
		return nil, fmt.Errorf("gpu: readback of format %v not supported", target.Format())
	}
	w := uint32(target.Width())  //nolint:gosec // texture sizes are positive
	h := uint32(target.Height()) //nolint:gosec // texture sizes are positive

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "debug_readback_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("debug_readback"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "debug_readback_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer device.DestroyBuffer(staging)

	tex := target.Texture()
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	fence, err := device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer device.DestroyFence(fence)

	if err := queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return nil, fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	raw := make([]byte, stagingSize)
	if err := queue.ReadBuffer(staging, 0, raw); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	UnpackBGRA(img, raw, int(alignedBytesPerRow))
	return img, nil
}

// UnpackBGRA copies padded BGRA rows from src into dst, swapping to RGBA.
func UnpackBGRA(dst *image.RGBA, src []byte, srcStride int) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	for y := 0; y < h; y++ {
		s := src[y*srcStride : y*srcStride+w*4]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			d[x+0] = s[x+2]
			d[x+1] = s[x+1]
			d[x+2] = s[x+0]
			d[x+3] = s[x+3]
		}
	}
}
