// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gbufview/render"
	"github.com/gogpu/gpucontext"
)

// halHost is a device provider that also hands out HAL objects.
type halHost struct {
	render.NullDeviceHandle
	device any
	queue  any
}

func (h halHost) HalDevice() any { return h.device }
func (h halHost) HalQueue() any  { return h.queue }

func TestDeviceFromProvider(t *testing.T) {
	dev := openTestDevice(t)

	device, queue, err := DeviceFromProvider(halHost{device: dev.Device, queue: dev.Queue})
	if err != nil {
		t.Fatalf("DeviceFromProvider failed: %v", err)
	}
	if device != dev.Device || queue != dev.Queue {
		t.Error("DeviceFromProvider returned different objects")
	}
}

func TestDeviceFromProviderErrors(t *testing.T) {
	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
	}{
		{"nil", nil},
		{"no hal accessors", render.NullDeviceHandle{}},
		{"wrong device type", halHost{device: "gpu", queue: nil}},
		{"nil queue", halHost{device: nil, queue: nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DeviceFromProvider(tt.provider)
			if !errors.Is(err, ErrNoDevice) {
				t.Errorf("err = %v, want ErrNoDevice", err)
			}
		})
	}
}

func TestNoopDeviceClose(t *testing.T) {
	dev, err := OpenNoopDevice()
	if err != nil {
		t.Fatalf("OpenNoopDevice failed: %v", err)
	}
	dev.Close()
	if dev.Device != nil {
		t.Error("Device not cleared by Close")
	}
	// Second Close is a no-op.
	dev.Close()
}
