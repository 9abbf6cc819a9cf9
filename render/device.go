// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// The visualizer RECEIVES the device from the host renderer, it does NOT
// create one. The host (the render graph that owns the G-buffer) implements
// DeviceHandle and hands it to the compositor so that debug pipelines,
// bind groups and the quad geometry live on the same device as the buffers
// they read.
//
// Hosts that expose the wgpu HAL directly should additionally implement
//
//	HalDevice() any // returns hal.Device
//	HalQueue() any  // returns hal.Queue
//
// which is what the HAL compiler and playback backend consume.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider so any gpucontext
// host can be passed as-is.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used when recording command batches without a GPU (dry runs, tests).
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
