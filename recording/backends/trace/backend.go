// Package trace provides a logging backend for the recording system.
// Every command is written as one structured slog record, which makes a
// frame's draw context visible without a GPU.
//
// # Example
//
//	import _ "github.com/gogpu/gbufview/recording/backends/trace"
//
//	backend, _ := recording.NewBackend("trace")
//	rec.Playback(backend)
//
// Or with an explicit logger:
//
//	backend := trace.NewBackend(trace.WithLogger(logger))
package trace

import (
	"context"
	"log/slog"

	"github.com/gogpu/gbufview/recording"
	"github.com/gogpu/gbufview/render"
)

func init() {
	recording.Register("trace", func() recording.Backend {
		return NewBackend()
	})
}

// Backend logs every command it receives.
type Backend struct {
	logger *slog.Logger
	level  slog.Level
	frame  uint64
	count  int
}

var (
	_ recording.Backend   = (*Backend)(nil)
	_ recording.Describer = (*Backend)(nil)
)

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the destination logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithLevel sets the level records are emitted at. Defaults to Debug.
func WithLevel(level slog.Level) Option {
	return func(b *Backend) { b.level = level }
}

// NewBackend creates a trace backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		logger: slog.Default(),
		level:  slog.LevelDebug,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Description implements recording.Describer.
func (b *Backend) Description() string {
	return "logs every draw-context command through slog"
}

// Commands returns the number of commands seen in the current frame.
func (b *Backend) Commands() int { return b.count }

func (b *Backend) log(msg string, args ...any) {
	b.count++
	b.logger.Log(context.Background(), b.level, msg, append([]any{"frame", b.frame}, args...)...)
}

// Begin starts a new frame.
func (b *Backend) Begin(viewport render.Viewport) error {
	b.frame++
	b.count = 0
	b.logger.Log(context.Background(), b.level, "trace: begin frame",
		"frame", b.frame, "width", viewport.Width, "height", viewport.Height)
	return nil
}

// End finishes the frame.
func (b *Backend) End() error {
	b.logger.Log(context.Background(), b.level, "trace: end frame",
		"frame", b.frame, "commands", b.count)
	return nil
}

// SetViewport logs the viewport.
func (b *Backend) SetViewport(v render.Viewport) {
	b.log("trace: viewport", "x", v.X, "y", v.Y, "width", v.Width, "height", v.Height)
}

// SetProjectionTransform logs the projection matrix.
func (b *Backend) SetProjectionTransform(m render.Mat4) {
	b.log("trace: projection", "matrix", m)
}

// SetViewTransform logs the view matrix.
func (b *Backend) SetViewTransform(m render.Mat4) {
	b.log("trace: view", "matrix", m)
}

// SetModelTransform logs the model matrix.
func (b *Backend) SetModelTransform(m render.Mat4) {
	b.log("trace: model", "identity", m.IsIdentity())
}

// SetPipeline logs the pipeline label.
func (b *Backend) SetPipeline(p render.Pipeline) {
	label := "<nil>"
	if p != nil {
		label = p.Label()
	}
	b.log("trace: pipeline", "label", label)
}

// SetResourceTexture logs a texture bind or unbind.
func (b *Backend) SetResourceTexture(slot render.TextureSlot, tex render.Texture) {
	if tex == nil {
		b.log("trace: unbind texture", "slot", slot.String())
		return
	}
	b.log("trace: bind texture", "slot", slot.String(), "texture", tex.Label())
}

// SetUniformBuffer logs a buffer bind or unbind.
func (b *Backend) SetUniformBuffer(slot render.ParamSlot, buf render.Buffer) {
	if buf == nil {
		b.log("trace: unbind buffer", "slot", slot.String())
		return
	}
	b.log("trace: bind buffer", "slot", slot.String(), "buffer", buf.Label(), "size", buf.Size())
}

// DrawQuad logs a quad draw.
func (b *Backend) DrawQuad(id render.GeometryID, rect render.Rect, color render.Color) error {
	b.log("trace: draw quad", "geometry", id.String(), "rect", rect.String(),
		"r", color.R, "g", color.G, "b", color.B, "a", color.A)
	return nil
}
