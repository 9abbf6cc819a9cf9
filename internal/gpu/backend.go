// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gbufview/recording"
	"github.com/gogpu/gbufview/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Playback errors.
var (
	// ErrNoPipeline is returned by DrawQuad when no HAL pipeline is bound.
	ErrNoPipeline = errors.New("gpu: draw without a compiled pipeline")

	// ErrFrameState is returned when Begin/End/DrawQuad are called out of
	// order.
	ErrFrameState = errors.New("gpu: invalid frame state")
)

// defaultFenceTimeout bounds the wait for a submitted frame.
const defaultFenceTimeout = 5 * time.Second

// BackendOption configures a Backend.
type BackendOption func(*Backend)

// WithClear makes the first pass of every frame clear the target to c.
// Without it the debug quad is drawn over the existing contents.
func WithClear(c gputypes.Color) BackendOption {
	return func(b *Backend) {
		b.clear = &c
	}
}

// WithFenceTimeout overrides the submit wait timeout.
func WithFenceTimeout(d time.Duration) BackendOption {
	return func(b *Backend) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// Backend replays recordings on a wgpu HAL device. It implements
// recording.Backend and recording.ErrorBackend.
//
// Each DrawQuad becomes one render pass with its own bind group; End
// submits the frame and waits on a fence, after which the per-frame bind
// groups are released.
type Backend struct {
	device hal.Device
	queue  hal.Queue
	target render.RenderTarget
	quads  *QuadCache

	clear   *gputypes.Color
	timeout time.Duration
	holders *placeholders

	viewport   render.Viewport
	projection render.Mat4
	view       render.Mat4
	model      render.Mat4
	pipeline   render.Pipeline
	textures   [render.NumTextureSlots]render.Texture
	buffers    [render.NumParamSlots]render.Buffer

	encoder    hal.CommandEncoder
	bindGroups []hal.BindGroup
	passes     int
	frames     int
	err        error
}

var (
	_ recording.Backend      = (*Backend)(nil)
	_ recording.ErrorBackend = (*Backend)(nil)
)

// NewBackend creates a playback backend drawing into target with the quad
// geometry held by quads.
func NewBackend(device hal.Device, queue hal.Queue, target render.RenderTarget, quads *QuadCache, opts ...BackendOption) (*Backend, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	if target == nil {
		return nil, errors.New("gpu: nil render target")
	}
	if quads == nil {
		quads = NewQuadCache(device, queue)
	}
	holders, err := createPlaceholders(device, queue)
	if err != nil {
		return nil, err
	}
	b := &Backend{
		device:     device,
		queue:      queue,
		target:     target,
		quads:      quads,
		timeout:    defaultFenceTimeout,
		holders:    holders,
		projection: render.Identity(),
		view:       render.Identity(),
		model:      render.Identity(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Close releases the placeholder resources. Pending frames are discarded.
func (b *Backend) Close() {
	if b.encoder != nil {
		b.encoder.DiscardEncoding()
		b.encoder = nil
		b.releaseBindGroups()
	}
	if b.holders != nil {
		b.holders.destroy(b.device)
		b.holders = nil
	}
}

// Frames returns the number of submitted frames.
func (b *Backend) Frames() int { return b.frames }

// Passes returns the number of render passes recorded in the current or
// last frame.
func (b *Backend) Passes() int { return b.passes }

// Err returns the first deferred error of the current frame.
func (b *Backend) Err() error { return b.err }

// Begin starts encoding a frame.
func (b *Backend) Begin(viewport render.Viewport) error {
	if b.encoder != nil {
		return fmt.Errorf("%w: Begin called twice", ErrFrameState)
	}
	if b.holders == nil {
		return fmt.Errorf("%w: backend closed", ErrFrameState)
	}
	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "debug_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("debug_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	b.encoder = encoder
	b.viewport = viewport
	b.passes = 0
	b.err = nil
	return nil
}

// End submits the frame and waits for the GPU.
func (b *Backend) End() error {
	if b.encoder == nil {
		return fmt.Errorf("%w: End without Begin", ErrFrameState)
	}
	encoder := b.encoder
	b.encoder = nil
	defer b.releaseBindGroups()

	if b.passes == 0 {
		encoder.DiscardEncoding()
		return nil
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	fence, err := b.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer b.device.DestroyFence(fence)

	if err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := b.device.Wait(fence, 1, b.timeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	b.frames++
	slogger().Debug("gpu: frame submitted", "passes", b.passes, "frame", b.frames)
	return nil
}

func (b *Backend) releaseBindGroups() {
	for _, bg := range b.bindGroups {
		b.device.DestroyBindGroup(bg)
	}
	b.bindGroups = b.bindGroups[:0]
}

// SetViewport records the viewport. Quads carry their own NDC placement,
// so the viewport is informational.
func (b *Backend) SetViewport(v render.Viewport) { b.viewport = v }

// SetProjectionTransform records the projection matrix.
func (b *Backend) SetProjectionTransform(m render.Mat4) { b.projection = m }

// SetViewTransform records the view matrix.
func (b *Backend) SetViewTransform(m render.Mat4) { b.view = m }

// SetModelTransform records the model matrix.
func (b *Backend) SetModelTransform(m render.Mat4) { b.model = m }

// SetPipeline selects the program for subsequent draws.
func (b *Backend) SetPipeline(p render.Pipeline) { b.pipeline = p }

// SetResourceTexture binds or unbinds a texture slot.
func (b *Backend) SetResourceTexture(slot render.TextureSlot, tex render.Texture) {
	if slot < 0 || int(slot) >= render.NumTextureSlots {
		b.fail(fmt.Errorf("gpu: texture slot %d out of range", slot))
		return
	}
	b.textures[slot] = tex
}

// SetUniformBuffer binds or unbinds a buffer slot.
func (b *Backend) SetUniformBuffer(slot render.ParamSlot, buf render.Buffer) {
	if slot < 0 || int(slot) >= render.NumParamSlots {
		b.fail(fmt.Errorf("gpu: param slot %d out of range", slot))
		return
	}
	b.buffers[slot] = buf
}

// BoundTextures returns the number of texture slots currently bound.
func (b *Backend) BoundTextures() int {
	n := 0
	for _, t := range b.textures {
		if t != nil {
			n++
		}
	}
	return n
}

// BoundBuffers returns the number of buffer slots currently bound.
func (b *Backend) BoundBuffers() int {
	n := 0
	for _, buf := range b.buffers {
		if buf != nil {
			n++
		}
	}
	return n
}

func (b *Backend) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// DrawQuad records one render pass drawing the quad geometry id.
func (b *Backend) DrawQuad(id render.GeometryID, rect render.Rect, color render.Color) error {
	if b.encoder == nil {
		return fmt.Errorf("%w: DrawQuad outside a frame", ErrFrameState)
	}
	p, ok := b.pipeline.(*Pipeline)
	if !ok || p == nil || p.pipeline == nil {
		return fmt.Errorf("%w: have %T", ErrNoPipeline, b.pipeline)
	}

	bindGroup, err := b.createBindGroup(p)
	if err != nil {
		return err
	}
	vertBuf, err := b.quads.Buffer(id, rect, color)
	if err != nil {
		return err
	}

	attachment := hal.RenderPassColorAttachment{
		View:    b.target.TextureView(),
		LoadOp:  gputypes.LoadOpLoad,
		StoreOp: gputypes.StoreOpStore,
	}
	if b.clear != nil && b.passes == 0 {
		attachment.LoadOp = gputypes.LoadOpClear
		attachment.ClearValue = *b.clear
	}

	rp := b.encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            p.label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{attachment},
	})
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, bindGroup, nil)
	rp.SetVertexBuffer(0, vertBuf, 0)
	rp.Draw(quadVertexCount, 1, 0, 0)
	rp.End()

	b.passes++
	return nil
}

// createBindGroup builds a complete bind group for p from the current slot
// state, substituting placeholders for empty or non-HAL slots.
func (b *Backend) createBindGroup(p *Pipeline) (hal.BindGroup, error) {
	entries := make([]gputypes.BindGroupEntry, 0, len(p.bindings))
	for _, sb := range p.bindings {
		if sb.Kind == render.SlotKindUniform {
			buf, size := b.holders.uniform, uint64(placeholderUniformSize)
			if hb, ok := b.buffers[sb.Param].(render.HALBuffer); ok && hb.HALBuffer() != nil {
				buf, size = hb.HALBuffer(), hb.Size()
			}
			entries = append(entries, gputypes.BindGroupEntry{
				Binding:  sb.Binding(),
				Resource: gputypes.BufferBinding{Buffer: buf.NativeHandle(), Offset: 0, Size: size},
			})
			continue
		}

		view := b.holders.view
		if ht, ok := b.textures[sb.Texture].(render.HALTexture); ok && ht.HALView() != nil {
			view = ht.HALView()
		}
		entries = append(entries, gputypes.BindGroupEntry{
			Binding:  sb.Binding(),
			Resource: gputypes.TextureViewBinding{TextureView: gputypes.TextureViewHandle(view.NativeHandle())},
		})
	}

	bg, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   p.label + "_bind_group",
		Layout:  p.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s bind group: %w", p.label, err)
	}
	b.bindGroups = append(b.bindGroups, bg)
	return bg, nil
}
