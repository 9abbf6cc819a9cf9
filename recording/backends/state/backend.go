// Package state provides a binding-tracking backend for the recording
// system. It replays a frame without a GPU and remembers which slots were
// bound at every draw and which were still bound when the frame ended.
//
// It is the reference backend for checking that a pass cleans up its
// bindings:
//
//	backend := state.NewBackend()
//	rec.FinishRecording().Playback(backend)
//	if leaked := backend.BoundTextures(); len(leaked) > 0 {
//	    // a pass forgot to unbind
//	}
package state

import (
	"sort"

	"github.com/gogpu/gbufview/recording"
	"github.com/gogpu/gbufview/render"
)

func init() {
	recording.Register("state", func() recording.Backend {
		return NewBackend()
	})
}

// Draw is a snapshot of the draw context at one DrawQuad.
type Draw struct {
	Geometry render.GeometryID
	Rect     render.Rect
	Color    render.Color
	Pipeline render.Pipeline
	Textures map[render.TextureSlot]render.Texture
	Buffers  map[render.ParamSlot]render.Buffer

	Projection render.Mat4
	View       render.Mat4
	Model      render.Mat4
}

// Backend tracks draw-context state across a frame.
type Backend struct {
	viewport render.Viewport
	pipeline render.Pipeline
	textures map[render.TextureSlot]render.Texture
	buffers  map[render.ParamSlot]render.Buffer

	projection render.Mat4
	view       render.Mat4
	model      render.Mat4

	draws  []Draw
	frames int
}

var (
	_ recording.Backend   = (*Backend)(nil)
	_ recording.Describer = (*Backend)(nil)
)

// NewBackend creates a state backend.
func NewBackend() *Backend {
	return &Backend{
		textures:   make(map[render.TextureSlot]render.Texture),
		buffers:    make(map[render.ParamSlot]render.Buffer),
		projection: render.Identity(),
		view:       render.Identity(),
		model:      render.Identity(),
	}
}

// Description implements recording.Describer.
func (b *Backend) Description() string {
	return "tracks slot bindings and draws without a GPU"
}

// Begin resets the per-frame draw list. Bindings persist across frames.
func (b *Backend) Begin(viewport render.Viewport) error {
	b.viewport = viewport
	b.draws = b.draws[:0]
	return nil
}

// End counts the finished frame.
func (b *Backend) End() error {
	b.frames++
	return nil
}

// SetViewport records the viewport.
func (b *Backend) SetViewport(v render.Viewport) { b.viewport = v }

// SetProjectionTransform records the projection matrix.
func (b *Backend) SetProjectionTransform(m render.Mat4) { b.projection = m }

// SetViewTransform records the view matrix.
func (b *Backend) SetViewTransform(m render.Mat4) { b.view = m }

// SetModelTransform records the model matrix.
func (b *Backend) SetModelTransform(m render.Mat4) { b.model = m }

// SetPipeline records the pipeline.
func (b *Backend) SetPipeline(p render.Pipeline) { b.pipeline = p }

// SetResourceTexture binds or unbinds a texture slot.
func (b *Backend) SetResourceTexture(slot render.TextureSlot, tex render.Texture) {
	if tex == nil {
		delete(b.textures, slot)
		return
	}
	b.textures[slot] = tex
}

// SetUniformBuffer binds or unbinds a buffer slot.
func (b *Backend) SetUniformBuffer(slot render.ParamSlot, buf render.Buffer) {
	if buf == nil {
		delete(b.buffers, slot)
		return
	}
	b.buffers[slot] = buf
}

// DrawQuad snapshots the current bindings.
func (b *Backend) DrawQuad(id render.GeometryID, rect render.Rect, color render.Color) error {
	d := Draw{
		Geometry:   id,
		Rect:       rect,
		Color:      color,
		Pipeline:   b.pipeline,
		Textures:   make(map[render.TextureSlot]render.Texture, len(b.textures)),
		Buffers:    make(map[render.ParamSlot]render.Buffer, len(b.buffers)),
		Projection: b.projection,
		View:       b.view,
		Model:      b.model,
	}
	for k, v := range b.textures {
		d.Textures[k] = v
	}
	for k, v := range b.buffers {
		d.Buffers[k] = v
	}
	b.draws = append(b.draws, d)
	return nil
}

// Viewport returns the last viewport set.
func (b *Backend) Viewport() render.Viewport { return b.viewport }

// Pipeline returns the current pipeline.
func (b *Backend) Pipeline() render.Pipeline { return b.pipeline }

// Draws returns the draws of the last frame.
func (b *Backend) Draws() []Draw { return b.draws }

// Frames returns the number of completed frames.
func (b *Backend) Frames() int { return b.frames }

// BoundTextures returns the texture slots currently bound, in slot order.
func (b *Backend) BoundTextures() []render.TextureSlot {
	out := make([]render.TextureSlot, 0, len(b.textures))
	for s := range b.textures {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BoundBuffers returns the buffer slots currently bound, in slot order.
func (b *Backend) BoundBuffers() []render.ParamSlot {
	out := make([]render.ParamSlot, 0, len(b.buffers))
	for s := range b.buffers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
