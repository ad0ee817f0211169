// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/msaapath/caps"
)

// halProvider is implemented by device providers that expose their HAL
// device and queue.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewTargetFromProvider creates a target on a shared device. The provider
// must implement HalDevice() any and HalQueue() any returning hal.Device
// and hal.Queue. When it also implements gpucontext.DeviceProvider, the
// capabilities are derived from its adapter and profile, and its surface
// format becomes the target format.
//
// WebGPU has no advanced blend equations, so the profile's hardware
// blending is ignored and every advanced mode reads the destination.
func NewTargetFromProvider(provider any, profile caps.Profile, width, height int, opts ...Option) (*Target, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}

	if profile.AdvancedBlend {
		slogger().Debug("native: hardware advanced blending unavailable, using dst reads")
		profile.AdvancedBlend = false
	}
	var info gpucontext.AdapterInfo
	var pre []Option
	if dp, ok := provider.(gpucontext.DeviceProvider); ok {
		info = dp.AdapterInfo()
		if f := dp.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
			pre = append(pre, WithFormat(f))
		}
	}
	c, err := caps.FromAdapter(info, profile)
	if err != nil {
		return nil, err
	}
	pre = append(pre, WithCaps(c))
	return NewTarget(device, queue, width, height, append(pre, opts...)...)
}
