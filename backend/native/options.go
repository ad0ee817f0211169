// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/msaapath/caps"
)

// ShaderFormat selects how generated WGSL reaches the device.
type ShaderFormat uint8

const (
	// ShaderSPIRV compiles WGSL to SPIR-V with naga.
	ShaderSPIRV ShaderFormat = iota
	// ShaderWGSL hands the WGSL source to the device, for backends that
	// translate it themselves.
	ShaderWGSL
)

// Default target configuration.
const (
	DefaultSampleCount = 4
	DefaultArenaBlock  = 1 << 20
	DefaultArenaLimit  = 64 << 20
)

// Option configures a Target.
type Option func(*targetOptions)

type targetOptions struct {
	caps         caps.Caps
	cache        *PipelineCache
	format       gputypes.TextureFormat
	sampleCount  uint32
	shaderFormat ShaderFormat
	arenaBlock   int
	arenaLimit   int
}

func defaultOptions() targetOptions {
	return targetOptions{
		caps:         caps.New(),
		format:       gputypes.TextureFormatBGRA8Unorm,
		sampleCount:  DefaultSampleCount,
		shaderFormat: ShaderSPIRV,
		arenaBlock:   DefaultArenaBlock,
		arenaLimit:   DefaultArenaLimit,
	}
}

// WithCaps sets the capabilities ops are finalized against. Capabilities
// with hardware advanced blending are rejected by NewTarget.
func WithCaps(c caps.Caps) Option {
	return func(o *targetOptions) {
		o.caps = c
	}
}

// WithPipelineCache shares a pipeline cache between targets on the same
// device. The target does not destroy a shared cache.
func WithPipelineCache(c *PipelineCache) Option {
	return func(o *targetOptions) {
		o.cache = c
	}
}

// WithFormat sets the color target format.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(o *targetOptions) {
		o.format = f
	}
}

// WithSampleCount sets the MSAA sample count. Values below 1 keep the
// default.
func WithSampleCount(n uint32) Option {
	return func(o *targetOptions) {
		if n >= 1 {
			o.sampleCount = n
		}
	}
}

// WithShaderFormat selects SPIR-V or WGSL shader modules.
func WithShaderFormat(f ShaderFormat) Option {
	return func(o *targetOptions) {
		o.shaderFormat = f
	}
}

// WithArenaLimits sets the staging block size and the total staging
// memory per frame, in bytes. Non-positive values keep the defaults.
func WithArenaLimits(block, limit int) Option {
	return func(o *targetOptions) {
		if block > 0 {
			o.arenaBlock = block
		}
		if limit > 0 {
			o.arenaLimit = limit
		}
	}
}
