// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// ErrNoDevice is returned when a device provider does not expose a HAL
// device and queue.
var ErrNoDevice = errors.New("gpu: provider does not expose a HAL device")

// halProvider is the optional interface hosts implement to hand out the
// wgpu HAL objects behind a gpucontext.DeviceProvider.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// DeviceFromProvider extracts the HAL device and queue from a host
// provider.
func DeviceFromProvider(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	if provider == nil {
		return nil, nil, ErrNoDevice
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %T has no HalDevice/HalQueue", ErrNoDevice, provider)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice returned %T", ErrNoDevice, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue returned %T", ErrNoDevice, hp.HalQueue())
	}
	slogger().Info("gpu: device attached", "provider", fmt.Sprintf("%T", provider))
	return device, queue, nil
}

// NoopDevice is a headless HAL device that accepts every call and renders
// nothing. It backs dry runs and tests.
type NoopDevice struct {
	Device hal.Device
	Queue  hal.Queue

	instance hal.Instance
}

// OpenNoopDevice opens the first adapter of the noop HAL backend.
// Close must be called to release it.
func OpenNoopDevice() (*NoopDevice, error) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("create noop instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: noop backend has no adapter", ErrNoDevice)
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open noop adapter: %w", err)
	}
	return &NoopDevice{
		Device:   openDev.Device,
		Queue:    openDev.Queue,
		instance: instance,
	}, nil
}

// Close destroys the device and its instance.
func (d *NoopDevice) Close() {
	if d.Device != nil {
		d.Device.Destroy()
		d.Device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}
