// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the GPU-facing vocabulary shared by the debug
// visualizer and its host.
//
// # Key Principle
//
// The visualizer RECEIVES GPU resources from the host renderer, it does NOT
// create the G-buffer, the camera or the device. The host hands over a
// DeviceHandle once and, every frame, the textures and uniform buffers its
// passes produced.
//
// # Contents
//
//   - DeviceHandle: device access from the host (gpucontext.DeviceProvider)
//   - TextureSlot, ParamSlot, SlotBindings: the fixed binding table of the
//     debug program
//   - Pipeline, ProgramDescriptor: the compiled-program contract
//   - Texture, Buffer: bindable resources, with HAL-backed wrappers
//   - Mat4, Frustum, Viewport, Rect: transforms and screen regions
//   - RenderTarget: where the debug quad lands (TextureTarget)
//   - Thumbnail, Scale: CPU-side resampling of read-back snapshots
//
// # Slot Layout
//
//	@group(0) @binding(0..14)   texture_2d<f32>   TextureSlot order
//	@group(0) @binding(16..18)  uniform buffers   ParamSlot order
//
// # Thread Safety
//
// Types in this package are plain values or thin wrappers and carry no
// locks. Callers serialize access the same way they serialize the frame.
package render
