package recording

import (
	"fmt"

	"github.com/gogpu/gbufview/render"
)

// Recorder captures draw-context operations as commands. It is the batch a
// pass writes into during a frame. Use FinishRecording to obtain an
// immutable Recording that can be replayed to different backends.
//
// Example:
//
//	rec := recording.NewRecorder(render.NewViewport(800, 600))
//	rec.SetPipeline(p)
//	rec.DrawQuad(id, render.FullScreen, render.White)
//	r := rec.FinishRecording()
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	viewport render.Viewport
	commands []Command
}

// NewRecorder creates a new Recorder for a frame covering viewport.
func NewRecorder(viewport render.Viewport) *Recorder {
	return &Recorder{
		viewport: viewport,
		commands: make([]Command, 0, 32),
	}
}

// Viewport returns the frame viewport the recorder was created with.
func (r *Recorder) Viewport() render.Viewport {
	return r.viewport
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// Commands returns the commands recorded so far. The slice must not be
// modified.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Count returns how many commands of type t were recorded.
func (r *Recorder) Count(t CommandType) int {
	n := 0
	for _, c := range r.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Reset drops all recorded commands, keeping the allocated capacity.
func (r *Recorder) Reset() {
	clear(r.commands)
	r.commands = r.commands[:0]
}

// FinishRecording returns an immutable Recording containing all recorded
// commands. After calling FinishRecording, the Recorder should not be used
// again.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{
		viewport: r.viewport,
		commands: r.commands,
	}
}

// SetViewport records a viewport change.
func (r *Recorder) SetViewport(viewport render.Viewport) {
	r.commands = append(r.commands, SetViewportCommand{Viewport: viewport})
}

// SetProjectionTransform records a projection matrix change.
func (r *Recorder) SetProjectionTransform(m render.Mat4) {
	r.commands = append(r.commands, SetProjectionTransformCommand{Matrix: m})
}

// SetViewTransform records a view matrix change.
func (r *Recorder) SetViewTransform(m render.Mat4) {
	r.commands = append(r.commands, SetViewTransformCommand{Matrix: m})
}

// SetModelTransform records a model matrix change.
func (r *Recorder) SetModelTransform(m render.Mat4) {
	r.commands = append(r.commands, SetModelTransformCommand{Matrix: m})
}

// SetPipeline records a program change.
func (r *Recorder) SetPipeline(p render.Pipeline) {
	r.commands = append(r.commands, SetPipelineCommand{Pipeline: p})
}

// SetResourceTexture records binding tex to slot. Pass nil to unbind.
func (r *Recorder) SetResourceTexture(slot render.TextureSlot, tex render.Texture) {
	r.commands = append(r.commands, SetResourceTextureCommand{Slot: slot, Texture: tex})
}

// SetUniformBuffer records binding buf to slot. Pass nil to unbind.
func (r *Recorder) SetUniformBuffer(slot render.ParamSlot, buf render.Buffer) {
	r.commands = append(r.commands, SetUniformBufferCommand{Slot: slot, Buffer: buf})
}

// DrawQuad records a quad draw.
func (r *Recorder) DrawQuad(id render.GeometryID, rect render.Rect, color render.Color) {
	r.commands = append(r.commands, DrawQuadCommand{Geometry: id, Rect: rect, Color: color})
}

// Recording is an immutable container for a frame's recorded commands.
// It can be replayed to any Backend implementation.
type Recording struct {
	viewport render.Viewport
	commands []Command
}

// Viewport returns the frame viewport.
func (r *Recording) Viewport() render.Viewport {
	return r.viewport
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Playback replays the recording to the given backend. Playback stops at
// the first failing draw; End is still called so the backend can release
// per-frame state.
func (r *Recording) Playback(backend Backend) error {
	if err := backend.Begin(r.viewport); err != nil {
		return fmt.Errorf("recording: begin: %w", err)
	}

	var drawErr error
	for i, cmd := range r.commands {
		switch c := cmd.(type) {
		case SetViewportCommand:
			backend.SetViewport(c.Viewport)
		case SetProjectionTransformCommand:
			backend.SetProjectionTransform(c.Matrix)
		case SetViewTransformCommand:
			backend.SetViewTransform(c.Matrix)
		case SetModelTransformCommand:
			backend.SetModelTransform(c.Matrix)
		case SetPipelineCommand:
			backend.SetPipeline(c.Pipeline)
		case SetResourceTextureCommand:
			backend.SetResourceTexture(c.Slot, c.Texture)
		case SetUniformBufferCommand:
			backend.SetUniformBuffer(c.Slot, c.Buffer)
		case DrawQuadCommand:
			if err := backend.DrawQuad(c.Geometry, c.Rect, c.Color); err != nil {
				drawErr = fmt.Errorf("recording: command %d (%v): %w", i, c.Type(), err)
			}
		}
		if drawErr != nil {
			break
		}
	}

	endErr := backend.End()
	if drawErr != nil {
		return drawErr
	}
	if endErr != nil {
		return fmt.Errorf("recording: end: %w", endErr)
	}
	if eb, ok := backend.(ErrorBackend); ok {
		return eb.Err()
	}
	return nil
}
