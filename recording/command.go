package recording

import (
	"github.com/gogpu/gbufview/render"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Transform commands
	CmdSetViewport            CommandType = iota // Set the pixel viewport
	CmdSetProjectionTransform                    // Set projection matrix
	CmdSetViewTransform                          // Set view matrix
	CmdSetModelTransform                         // Set model matrix

	// Program commands
	CmdSetPipeline // Select the compiled program

	// Binding commands
	CmdSetResourceTexture // Bind or unbind a texture slot
	CmdSetUniformBuffer   // Bind or unbind a uniform-buffer slot

	// Drawing commands
	CmdDrawQuad // Draw a screen-space quad
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSetViewport:            "SetViewport",
	CmdSetProjectionTransform: "SetProjectionTransform",
	CmdSetViewTransform:       "SetViewTransform",
	CmdSetModelTransform:      "SetModelTransform",
	CmdSetPipeline:            "SetPipeline",
	CmdSetResourceTexture:     "SetResourceTexture",
	CmdSetUniformBuffer:       "SetUniformBuffer",
	CmdDrawQuad:               "DrawQuad",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// SetViewportCommand sets the pixel viewport of subsequent draws.
type SetViewportCommand struct {
	Viewport render.Viewport
}

// Type implements Command.
func (SetViewportCommand) Type() CommandType { return CmdSetViewport }

// SetProjectionTransformCommand sets the projection matrix.
type SetProjectionTransformCommand struct {
	Matrix render.Mat4
}

// Type implements Command.
func (SetProjectionTransformCommand) Type() CommandType { return CmdSetProjectionTransform }

// SetViewTransformCommand sets the view matrix.
type SetViewTransformCommand struct {
	Matrix render.Mat4
}

// Type implements Command.
func (SetViewTransformCommand) Type() CommandType { return CmdSetViewTransform }

// SetModelTransformCommand sets the model matrix.
type SetModelTransformCommand struct {
	Matrix render.Mat4
}

// Type implements Command.
func (SetModelTransformCommand) Type() CommandType { return CmdSetModelTransform }

// SetPipelineCommand selects the program used by subsequent draws.
type SetPipelineCommand struct {
	Pipeline render.Pipeline
}

// Type implements Command.
func (SetPipelineCommand) Type() CommandType { return CmdSetPipeline }

// SetResourceTextureCommand binds Texture to Slot. A nil Texture unbinds.
type SetResourceTextureCommand struct {
	Slot    render.TextureSlot
	Texture render.Texture
}

// Type implements Command.
func (SetResourceTextureCommand) Type() CommandType { return CmdSetResourceTexture }

// SetUniformBufferCommand binds Buffer to Slot. A nil Buffer unbinds.
type SetUniformBufferCommand struct {
	Slot   render.ParamSlot
	Buffer render.Buffer
}

// Type implements Command.
func (SetUniformBufferCommand) Type() CommandType { return CmdSetUniformBuffer }

// DrawQuadCommand draws the quad geometry identified by Geometry over Rect
// (normalized device coordinates) with a constant vertex Color.
type DrawQuadCommand struct {
	Geometry render.GeometryID
	Rect     render.Rect
	Color    render.Color
}

// Type implements Command.
func (DrawQuadCommand) Type() CommandType { return CmdDrawQuad }
