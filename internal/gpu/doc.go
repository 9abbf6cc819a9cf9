// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package gpu runs the debug visualizer on a gogpu/wgpu HAL device.
//
// It provides:
//   - ProgramCompiler: WGSL (optionally validated or translated to SPIR-V by
//     naga) to HAL render pipelines laid out from the slot table
//   - QuadCache: geometry IDs and their vertex buffers
//   - Backend: recording playback, one render pass per quad, submit and
//     fence wait at frame end
//   - OffscreenTarget and Readback: CPU access to rendered frames
//   - DeviceFromProvider and OpenNoopDevice: device acquisition
//
// Nothing here owns the G-buffer. Textures and uniform buffers arrive
// through render.HALTexture and render.HALBuffer; slots left empty are
// filled with placeholders so every bind group is complete.
package gpu
