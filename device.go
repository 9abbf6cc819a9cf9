//go:build !nogpu

package gbufview

import (
	"image"

	"github.com/gogpu/gbufview/internal/gpu"
	"github.com/gogpu/gbufview/recording"
	"github.com/gogpu/gbufview/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

func init() {
	addLoggerSink(gpu.SetLogger)
}

// DeviceOption configures a Device.
type DeviceOption func(*deviceOptions)

type deviceOptions struct {
	validate bool
	spirv    bool
	format   gputypes.TextureFormat
}

// WithShaderValidation turns naga validation of baked shaders on or off.
// It is on by default.
func WithShaderValidation(enabled bool) DeviceOption {
	return func(o *deviceOptions) { o.validate = enabled }
}

// WithSPIRV hands naga's SPIR-V output to the device instead of WGSL.
func WithSPIRV(enabled bool) DeviceOption {
	return func(o *deviceOptions) { o.spirv = enabled }
}

// WithTargetFormat sets the color format debug pipelines render to.
// The default is BGRA8Unorm.
func WithTargetFormat(format gputypes.TextureFormat) DeviceOption {
	return func(o *deviceOptions) { o.format = format }
}

// Backend is a playback backend holding GPU resources.
type Backend interface {
	recording.ErrorBackend

	// Close releases the backend's GPU resources.
	Close()
}

// Device is the wgpu HAL side of the visualizer for one host device: the
// pipeline compiler, the quad geometry and playback.
type Device struct {
	device   hal.Device
	queue    hal.Queue
	compiler *gpu.ProgramCompiler
	quads    *gpu.QuadCache
	headless *gpu.NoopDevice
}

// AttachDevice builds a Device on the HAL device and queue exposed by a
// host provider. The provider must implement HalDevice() and HalQueue().
func AttachDevice(provider render.DeviceHandle, opts ...DeviceOption) (*Device, error) {
	device, queue, err := gpu.DeviceFromProvider(provider)
	if err != nil {
		return nil, err
	}
	return newDevice(device, queue, opts), nil
}

// OpenHeadless builds a Device on the noop HAL backend. Every GPU call
// succeeds and nothing is rendered; it backs dry runs and tests.
func OpenHeadless(opts ...DeviceOption) (*Device, error) {
	nd, err := gpu.OpenNoopDevice()
	if err != nil {
		return nil, err
	}
	d := newDevice(nd.Device, nd.Queue, opts)
	d.headless = nd
	return d, nil
}

func newDevice(device hal.Device, queue hal.Queue, opts []DeviceOption) *Device {
	o := deviceOptions{validate: true, format: gputypes.TextureFormatBGRA8Unorm}
	for _, opt := range opts {
		opt(&o)
	}
	return &Device{
		device: device,
		queue:  queue,
		compiler: gpu.NewProgramCompiler(device,
			gpu.WithValidation(o.validate),
			gpu.WithSPIRV(o.spirv),
			gpu.WithFormat(o.format),
		),
		quads: gpu.NewQuadCache(device, queue),
	}
}

// Compiler returns the pipeline compiler.
func (d *Device) Compiler() Compiler { return d.compiler }

// Geometry returns the quad geometry registry.
func (d *Device) Geometry() GeometryRegistry { return d.quads }

// NewCompositor creates a compositor on this device.
func (d *Device) NewCompositor(opts ...Option) (*Compositor, error) {
	return NewCompositor(d.compiler, d.quads, opts...)
}

// NewBackend creates a playback backend drawing into target. When clear is
// true every frame first clears the target to opaque black.
func (d *Device) NewBackend(target render.RenderTarget, clear bool) (Backend, error) {
	var opts []gpu.BackendOption
	if clear {
		opts = append(opts, gpu.WithClear(gputypes.Color{R: 0, G: 0, B: 0, A: 1}))
	}
	b, err := gpu.NewBackend(d.device, d.queue, target, d.quads, opts...)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Target is an offscreen BGRA8 render target whose pixels can be read back.
type Target struct {
	*gpu.OffscreenTarget
	d *Device
}

// NewTarget creates a width x height offscreen target on the device.
func (d *Device) NewTarget(width, height int) (*Target, error) {
	t, err := gpu.NewOffscreenTarget(d.device, width, height)
	if err != nil {
		return nil, err
	}
	return &Target{OffscreenTarget: t, d: d}, nil
}

// Snapshot copies the target's current contents into an RGBA image.
func (t *Target) Snapshot() (*image.RGBA, error) {
	return gpu.Readback(t.d.device, t.d.queue, t.TextureTarget)
}

// Close releases the quad geometry, and the device itself when it was
// opened by OpenHeadless.
func (d *Device) Close() {
	d.quads.Destroy()
	if d.headless != nil {
		d.headless.Close()
		d.headless = nil
	}
}
