package recording

import (
	"github.com/gogpu/gbufview/render"
)

// Backend is the interface that all playback backends must implement.
// Backends receive draw-context commands in recording order and either
// issue them to a GPU or inspect them.
//
// Backends are created via the registry using NewBackend(name) and
// registered via Register() in their init() functions, except for backends
// that need construction parameters (the HAL backend).
//
// # Implementation Contract
//
// Each backend must:
//  1. Handle all Backend methods (even if no-op for some)
//  2. Treat a nil texture or buffer as "unbind this slot"
//  3. Leave no GPU work pending after End returns
type Backend interface {
	// Lifecycle methods

	// Begin prepares the backend for a frame covering viewport.
	Begin(viewport render.Viewport) error

	// End finalizes the frame. GPU backends submit and wait here.
	End() error

	// Transform methods

	SetViewport(viewport render.Viewport)
	SetProjectionTransform(m render.Mat4)
	SetViewTransform(m render.Mat4)
	SetModelTransform(m render.Mat4)

	// Program and binding methods

	// SetPipeline selects the program for subsequent draws.
	SetPipeline(p render.Pipeline)

	// SetResourceTexture binds tex to slot; nil unbinds.
	SetResourceTexture(slot render.TextureSlot, tex render.Texture)

	// SetUniformBuffer binds buf to slot; nil unbinds.
	SetUniformBuffer(slot render.ParamSlot, buf render.Buffer)

	// Drawing methods

	// DrawQuad draws the quad geometry id over rect, tinted by color.
	// Returns an error if the backend could not issue the draw.
	DrawQuad(id render.GeometryID, rect render.Rect, color render.Color) error
}

// ErrorBackend extends Backend with access to errors that occurred while
// replaying commands that cannot return one themselves.
type ErrorBackend interface {
	Backend

	// Err returns the first deferred error of the current frame, if any.
	Err() error
}
