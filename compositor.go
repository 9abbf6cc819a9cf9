package gbufview

import (
	"fmt"

	"github.com/gogpu/gbufview/recording"
	"github.com/gogpu/gbufview/render"
)

// GeometryRegistry hands out screen-space geometry handles.
// internal/gpu.QuadCache implements it.
type GeometryRegistry interface {
	AllocateID() render.GeometryID
	ReleaseID(id render.GeometryID)
}

// RenderContext is what the render graph passes to a frame.
type RenderContext struct {
	// Batch receives the frame's commands.
	Batch *recording.Recorder

	// Viewport is the pixel viewport of the frame.
	Viewport render.Viewport

	// Frustum is the view frustum of the frame. Run panics when it is nil.
	Frustum *render.Frustum
}

// DeferredFramebuffer holds the G-buffer textures.
type DeferredFramebuffer struct {
	Albedo   render.Texture
	Normal   render.Texture
	Specular render.Texture
	Depth    render.Texture
	Lighting render.Texture
}

// LinearDepthTarget holds linearized depth and its half resolution copies.
type LinearDepthTarget struct {
	LinearDepth     render.Texture
	HalfLinearDepth render.Texture
	HalfNormal      render.Texture
}

// SurfaceGeometry holds the curvature buffers.
type SurfaceGeometry struct {
	Curvature         render.Texture
	DiffusedCurvature render.Texture
}

// AmbientOcclusionFramebuffer holds the raw and blurred occlusion.
type AmbientOcclusionFramebuffer struct {
	Occlusion        render.Texture
	OcclusionBlurred render.Texture
}

// Shadow holds the key light's cascade maps and their transforms.
type Shadow struct {
	Cascades  []render.Texture
	Transform render.Buffer
}

// CascadeCount returns the number of cascades.
func (s *Shadow) CascadeCount() int { return len(s.Cascades) }

// Inputs are the buffers the render graph produced this frame. Every field
// is optional; slots of a missing input stay unbound.
type Inputs struct {
	DeferredFramebuffer *DeferredFramebuffer
	LinearDepthTarget   *LinearDepthTarget
	SurfaceGeometry     *SurfaceGeometry
	AmbientOcclusion    *AmbientOcclusionFramebuffer
	Velocity            render.Texture
	Scattering          render.Texture
	FrameTransform      render.Buffer
	Shadow              *Shadow
}

// ClampCascadeIndex clamps a requested cascade index into
// [0, cascadeCount-1]. With no cascades it returns 0.
func ClampCascadeIndex(index, cascadeCount int) int {
	if index >= cascadeCount {
		index = cascadeCount - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithCache makes the compositor use c instead of building its own
// PipelineCache. The compositor takes ownership: Close destroys c.
func WithCache(c *PipelineCache) Option {
	return func(comp *Compositor) {
		if c != nil {
			comp.cache = c
		}
	}
}

// WithCustomShaderPath sets the custom shader file. The default is
// DefaultCustomShaderPath.
func WithCustomShaderPath(path string) Option {
	return func(comp *Compositor) {
		comp.customPath = path
	}
}

// WithConfig sets the initial configuration. The default is DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(comp *Compositor) {
		comp.cfg = cfg.Sanitize()
	}
}

// Compositor draws one debug view of the deferred buffers per frame.
//
// It is disabled while the mode is ModeOff and records nothing. In any other
// mode Run records the transforms, the pipeline for the mode, the slots the
// supplied inputs provide, one quad over the configured viewport, and then
// unbinds every slot it bound.
//
// Compositor is not safe for concurrent use.
type Compositor struct {
	cache      *PipelineCache
	geometry   GeometryRegistry
	geometryID render.GeometryID
	cfg        Config
	customPath string
	frames     int

	boundTextures []render.TextureSlot
	boundBuffers  []render.ParamSlot
}

// NewCompositor creates a compositor compiling with compiler and drawing
// with a geometry handle allocated from geometry.
func NewCompositor(compiler Compiler, geometry GeometryRegistry, opts ...Option) (*Compositor, error) {
	if geometry == nil {
		return nil, ErrNilGeometry
	}
	c := &Compositor{
		geometry:   geometry,
		cfg:        DefaultConfig(),
		customPath: DefaultCustomShaderPath(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		if compiler == nil {
			return nil, ErrNilCompiler
		}
		c.cache = NewPipelineCache(compiler)
	}
	c.geometryID = geometry.AllocateID()
	return c, nil
}

// Configure applies cfg after sanitizing it and reports whether anything
// changed.
func (c *Compositor) Configure(cfg Config) bool {
	cfg = cfg.Sanitize()
	if cfg == c.cfg {
		return false
	}
	c.cfg = cfg
	Logger().Debug("gbufview: configured",
		"mode", cfg.EffectiveMode().String(), "viewport", cfg.Viewport.String())
	return true
}

// Config returns the active configuration.
func (c *Compositor) Config() Config { return c.cfg }

// Mode returns the active mode.
func (c *Compositor) Mode() Mode { return c.cfg.EffectiveMode() }

// SetCustomShaderPath selects the custom shader file drawn in ModeCustom.
func (c *Compositor) SetCustomShaderPath(path string) { c.customPath = path }

// CustomShaderPath returns the custom shader file drawn in ModeCustom.
func (c *Compositor) CustomShaderPath() string { return c.customPath }

// Cache returns the compositor's pipeline cache.
func (c *Compositor) Cache() *PipelineCache { return c.cache }

// GeometryID returns the quad handle allocated at construction.
func (c *Compositor) GeometryID() render.GeometryID { return c.geometryID }

// Frames returns the number of frames drawn.
func (c *Compositor) Frames() int { return c.frames }

// Run records one frame into ctx.Batch.
//
// It panics if ctx or its batch or frustum is nil; the render graph must
// always provide them.
func (c *Compositor) Run(ctx *RenderContext, in Inputs) error {
	mode := c.cfg.EffectiveMode()
	if mode == ModeOff {
		return nil
	}
	if ctx == nil || ctx.Batch == nil {
		panic("gbufview: Run without a command batch")
	}
	if ctx.Frustum == nil {
		panic("gbufview: render context has no view frustum")
	}
	batch := ctx.Batch

	batch.SetViewport(ctx.Viewport)
	batch.SetProjectionTransform(ctx.Frustum.EvalProjectionMatrix())
	batch.SetViewTransform(ctx.Frustum.EvalViewTransform())
	batch.SetModelTransform(render.Identity())

	pipeline, err := c.cache.Get(mode, c.customPath)
	if err != nil {
		return fmt.Errorf("gbufview: %v pipeline: %w", mode, err)
	}
	batch.SetPipeline(pipeline)

	c.boundTextures = c.boundTextures[:0]
	c.boundBuffers = c.boundBuffers[:0]

	if fb := in.DeferredFramebuffer; fb != nil {
		c.bindTexture(batch, render.SlotAlbedo, fb.Albedo)
		c.bindTexture(batch, render.SlotNormal, fb.Normal)
		c.bindTexture(batch, render.SlotSpecular, fb.Specular)
		c.bindTexture(batch, render.SlotDepth, fb.Depth)
		c.bindTexture(batch, render.SlotLighting, fb.Lighting)
	}
	c.bindTexture(batch, render.SlotVelocity, in.Velocity)

	if s := in.Shadow; s != nil && s.CascadeCount() > 0 {
		i := ClampCascadeIndex(mode.CascadeIndex(), s.CascadeCount())
		c.bindTexture(batch, render.SlotShadow, s.Cascades[i])
		c.bindBuffer(batch, render.ParamShadowTransform, s.Transform)
	}
	c.bindBuffer(batch, render.ParamDeferredFrameTransform, in.FrameTransform)

	if t := in.LinearDepthTarget; t != nil {
		c.bindTexture(batch, render.SlotLinearDepth, t.LinearDepth)
		c.bindTexture(batch, render.SlotHalfLinearDepth, t.HalfLinearDepth)
		c.bindTexture(batch, render.SlotHalfNormal, t.HalfNormal)
	}
	if g := in.SurfaceGeometry; g != nil {
		c.bindTexture(batch, render.SlotCurvature, g.Curvature)
		c.bindTexture(batch, render.SlotDiffusedCurvature, g.DiffusedCurvature)
	}
	if ao := in.AmbientOcclusion; ao != nil {
		c.bindTexture(batch, render.SlotAmbientOcclusion, ao.Occlusion)
		c.bindTexture(batch, render.SlotAmbientOcclusionBlurred, ao.OcclusionBlurred)
	}
	c.bindTexture(batch, render.SlotScattering, in.Scattering)

	batch.DrawQuad(c.geometryID, c.cfg.Viewport, render.White)

	for _, slot := range c.boundTextures {
		batch.SetResourceTexture(slot, nil)
	}
	for _, slot := range c.boundBuffers {
		batch.SetUniformBuffer(slot, nil)
	}
	c.frames++
	return nil
}

func (c *Compositor) bindTexture(batch *recording.Recorder, slot render.TextureSlot, tex render.Texture) {
	if tex == nil {
		return
	}
	batch.SetResourceTexture(slot, tex)
	c.boundTextures = append(c.boundTextures, slot)
}

func (c *Compositor) bindBuffer(batch *recording.Recorder, slot render.ParamSlot, buf render.Buffer) {
	if buf == nil {
		return
	}
	batch.SetUniformBuffer(slot, buf)
	c.boundBuffers = append(c.boundBuffers, slot)
}

// Close destroys the pipeline cache and releases the geometry handle.
// Calling Close more than once is safe.
func (c *Compositor) Close() {
	if !c.geometryID.Valid() {
		return
	}
	c.cache.Destroy()
	c.geometry.ReleaseID(c.geometryID)
	c.geometryID = render.InvalidGeometryID
}
