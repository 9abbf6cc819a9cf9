// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gbufview/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// quadVertexStride is the byte stride per quad vertex:
// position (vec2<f32>) + uv (vec2<f32>) + color (vec4<f32>) = 32 bytes.
const quadVertexStride = 32

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// ValidateWGSL compiles source with naga and returns the SPIR-V words.
// A non-nil error means the shader text is not valid WGSL (or uses a
// feature naga cannot translate yet).
func ValidateWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile wgsl: %w", err)
	}
	if len(spirvBytes) < 4 || len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile wgsl: invalid SPIR-V length %d", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	if words[0] != spirvMagic {
		return nil, fmt.Errorf("compile wgsl: bad SPIR-V magic %#08x", words[0])
	}
	return words, nil
}

// quadVertexLayout returns the vertex layout shared by every debug program.
func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // uv
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // color
			},
		},
	}
}

// bindGroupLayoutEntries generates layout entries from a slot table.
// Textures are read with textureLoad, so they are declared unfilterable and
// no sampler is bound.
func bindGroupLayoutEntries(bindings []render.SlotBinding) []gputypes.BindGroupLayoutEntry {
	entries := make([]gputypes.BindGroupLayoutEntry, 0, len(bindings))
	for _, b := range bindings {
		e := gputypes.BindGroupLayoutEntry{
			Binding:    b.Binding(),
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		}
		if b.Kind == render.SlotKindUniform {
			e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
		} else {
			e.Visibility = gputypes.ShaderStageFragment
			e.Texture = &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// CompilerOption configures a ProgramCompiler.
type CompilerOption func(*ProgramCompiler)

// WithValidation turns naga validation of the shader text on or off.
// It is on by default.
func WithValidation(enabled bool) CompilerOption {
	return func(c *ProgramCompiler) { c.validate = enabled }
}

// WithSPIRV makes the compiler hand naga's SPIR-V output to the device
// instead of the WGSL text. Implies validation.
func WithSPIRV(enabled bool) CompilerOption {
	return func(c *ProgramCompiler) { c.spirv = enabled }
}

// WithFormat sets the color target format. Defaults to BGRA8Unorm.
func WithFormat(format gputypes.TextureFormat) CompilerOption {
	return func(c *ProgramCompiler) { c.format = format }
}

// ProgramCompiler turns debug program descriptors into HAL render
// pipelines.
type ProgramCompiler struct {
	device   hal.Device
	format   gputypes.TextureFormat
	validate bool
	spirv    bool
	compiled int
}

// NewProgramCompiler creates a compiler for device.
func NewProgramCompiler(device hal.Device, opts ...CompilerOption) *ProgramCompiler {
	c := &ProgramCompiler{
		device:   device,
		format:   gputypes.TextureFormatBGRA8Unorm,
		validate: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compiled returns how many pipelines the compiler has produced.
func (c *ProgramCompiler) Compiled() int { return c.compiled }

// Compile creates the shader module, bind group layout, pipeline layout and
// render pipeline for desc. On error every partially created object is
// released.
func (c *ProgramCompiler) Compile(desc render.ProgramDescriptor) (render.Pipeline, error) {
	p, err := c.compile(desc)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (c *ProgramCompiler) compile(desc render.ProgramDescriptor) (*Pipeline, error) { //nolint:funlen // GPU pipeline descriptors are inherently verbose
	if c.device == nil {
		return nil, ErrNoDevice
	}
	if desc.Source == "" {
		return nil, errors.New("gpu: empty shader source")
	}

	source := hal.ShaderSource{WGSL: desc.Source}
	if c.validate || c.spirv {
		words, err := ValidateWGSL(desc.Source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", desc.Label, err)
		}
		if c.spirv {
			source = hal.ShaderSource{SPIRV: words}
		}
	}

	bindings := desc.Bindings
	if len(bindings) == 0 {
		bindings = render.DefaultBindings()
	}
	vsEntry, fsEntry := desc.EntryPoints()

	p := &Pipeline{
		label:    desc.Label,
		source:   desc.Source,
		device:   c.device,
		bindings: bindings,
		format:   c.format,
	}

	module, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label + "_shader",
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", desc.Label, err)
	}
	p.module = module

	bindLayout, err := c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label + "_bind_layout",
		Entries: bindGroupLayoutEntries(bindings),
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create %s bind group layout: %w", desc.Label, err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create %s pipeline layout: %w", desc.Label, err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label + "_pipeline",
		Layout: pipeLayout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: vsEntry,
			Buffers:    quadVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: fsEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    c.format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create %s render pipeline: %w", desc.Label, err)
	}
	p.pipeline = pipeline

	c.compiled++
	slogger().Debug("gpu: pipeline created", "label", desc.Label, "spirv", c.spirv, "bindings", len(bindings))
	return p, nil
}

// Pipeline is a compiled debug program. It implements render.Pipeline.
type Pipeline struct {
	label    string
	source   string
	device   hal.Device
	bindings []render.SlotBinding
	format   gputypes.TextureFormat

	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

var _ render.Pipeline = (*Pipeline)(nil)

// Label returns the debug label.
func (p *Pipeline) Label() string { return p.label }

// Source returns the WGSL the pipeline was compiled from.
func (p *Pipeline) Source() string { return p.source }

// Bindings returns the slot table the bind group layout was generated from.
func (p *Pipeline) Bindings() []render.SlotBinding { return p.bindings }

// Format returns the color target format.
func (p *Pipeline) Format() gputypes.TextureFormat { return p.format }

// Destroyed reports whether Destroy has released the GPU objects.
func (p *Pipeline) Destroyed() bool {
	return p.pipeline == nil && p.pipeLayout == nil && p.bindLayout == nil && p.module == nil
}

// Destroy releases the GPU objects in reverse creation order. Safe to call
// more than once.
func (p *Pipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.module != nil {
		p.device.DestroyShaderModule(p.module)
		p.module = nil
	}
}
