// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// PipelineCache caches shader modules and render pipelines for one
// device.
//
// Pipeline creation involves shader compilation and validation, so every
// distinct pipeline is built once and reused by all targets sharing the
// cache.
//
// Thread Safety:
// PipelineCache is safe for concurrent use. It uses RWMutex with
// double-check locking for efficient reads and safe writes.
type PipelineCache struct {
	device hal.Device
	format ShaderFormat

	mu        sync.RWMutex
	shaders   map[shaderKey]hal.ShaderModule
	pipelines map[pipelineKey]hal.RenderPipeline

	uniformLayout hal.BindGroupLayout
	dstLayout     hal.BindGroupLayout
	plainLayout   hal.PipelineLayout
	dstReadLayout hal.PipelineLayout

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewPipelineCache creates the bind group and pipeline layouts every
// pipeline shares. Shader modules are created in the given format.
func NewPipelineCache(device hal.Device, format ShaderFormat) (*PipelineCache, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	c := &PipelineCache{
		device:    device,
		format:    format,
		shaders:   make(map[shaderKey]hal.ShaderModule),
		pipelines: make(map[pipelineKey]hal.RenderPipeline),
	}
	if err := c.createLayouts(); err != nil {
		c.Destroy()
		return nil, err
	}
	return c, nil
}

func (c *PipelineCache) createLayouts() error {
	var err error
	c.uniformLayout, err = c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "msaapath_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		}},
	})
	if err != nil {
		return fmt.Errorf("create uniform bind group layout: %w", err)
	}

	c.dstLayout, err = c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "msaapath_dst_layout",
		Entries: []gputypes.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		}},
	})
	if err != nil {
		return fmt.Errorf("create dst bind group layout: %w", err)
	}

	c.plainLayout, err = c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "msaapath_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{c.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}

	c.dstReadLayout, err = c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "msaapath_dst_read_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{c.uniformLayout, c.dstLayout},
	})
	if err != nil {
		return fmt.Errorf("create dst read pipeline layout: %w", err)
	}
	return nil
}

// pipeline returns the cached pipeline for k or creates it.
func (c *PipelineCache) pipeline(k pipelineKey) (hal.RenderPipeline, error) {
	// Fast path: read lock
	c.mu.RLock()
	if p, ok := c.pipelines[k]; ok {
		c.mu.RUnlock()
		c.hits.Add(1)
		return p, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.pipelines[k]; ok {
		c.hits.Add(1)
		return p, nil
	}

	module, err := c.shaderLocked(k.shader)
	if err != nil {
		return nil, err
	}
	layout := c.plainLayout
	if k.shader.DstRead {
		layout = c.dstReadLayout
	}
	p, err := c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "msaapath_" + k.shader.String(),
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []gputypes.VertexBufferLayout{vertexLayout(k.shader.Proc.Kind)},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		DepthStencil: k.depthStencil(),
		Multisample:  k.multisample(),
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{
				Format:    k.format,
				Blend:     k.blendState(),
				WriteMask: k.writeMask(),
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create render pipeline %v: %w", k, err)
	}
	c.pipelines[k] = p
	c.misses.Add(1)
	slogger().Debug("native: pipeline created", "key", k.String(), "count", len(c.pipelines))
	return p, nil
}

// shaderLocked returns the module for k. c.mu must be held for writing.
func (c *PipelineCache) shaderLocked(k shaderKey) (hal.ShaderModule, error) {
	if m, ok := c.shaders[k]; ok {
		return m, nil
	}
	wgsl, err := generateWGSL(k)
	if err != nil {
		return nil, err
	}
	src, err := compileShader(wgsl, c.format)
	if err != nil {
		return nil, fmt.Errorf("shader %v: %w", k, err)
	}
	m, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "msaapath_" + k.String(),
		Source: src,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %w", ErrShaderCompile, k, err)
	}
	c.shaders[k] = m
	return m, nil
}

// Stats returns the number of cache hits and misses.
func (c *PipelineCache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// HitRate returns the cache hit rate (0.0 to 1.0), or 0 before any
// request.
func (c *PipelineCache) HitRate() float64 {
	hits, misses := c.Stats()
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses)
}

// Size returns the number of cached pipelines.
func (c *PipelineCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pipelines)
}

// ShaderCount returns the number of cached shader modules.
func (c *PipelineCache) ShaderCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.shaders)
}

// Destroy releases every cached resource. The cache is empty afterwards
// but keeps no layouts, so it must not be used again.
func (c *PipelineCache) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, p := range c.pipelines {
		c.device.DestroyRenderPipeline(p)
		delete(c.pipelines, k)
	}
	for k, m := range c.shaders {
		c.device.DestroyShaderModule(m)
		delete(c.shaders, k)
	}
	if c.dstReadLayout != nil {
		c.device.DestroyPipelineLayout(c.dstReadLayout)
		c.dstReadLayout = nil
	}
	if c.plainLayout != nil {
		c.device.DestroyPipelineLayout(c.plainLayout)
		c.plainLayout = nil
	}
	if c.dstLayout != nil {
		c.device.DestroyBindGroupLayout(c.dstLayout)
		c.dstLayout = nil
	}
	if c.uniformLayout != nil {
		c.device.DestroyBindGroupLayout(c.uniformLayout)
		c.uniformLayout = nil
	}
	c.hits.Store(0)
	c.misses.Store(0)
}
