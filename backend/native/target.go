// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/msaapath/caps"
	"github.com/gogpu/msaapath/op"
)

// FrameStats describes the last flushed frame.
type FrameStats struct {
	Ops     int
	Draws   int
	Passes  int
	DstCopy int
	Dropped int
	Staged  int
}

// drawCall is one recorded mesh with its resolved pipeline key.
type drawCall struct {
	key  pipelineKey
	proc op.Processor
	mesh op.Mesh

	// Fan meshes are drawn through generated uint32 indices.
	fanFirst int
	fanCount int
}

// Target records ops for one render target and draws them on a HAL
// device when flushed. It implements both the draw context ops are added
// to and the op.Target ops prepare their geometry into.
//
// A Target is not safe for concurrent use.
type Target struct {
	device hal.Device
	queue  hal.Queue

	caps      caps.Caps
	cache     *PipelineCache
	ownsCache bool
	format    gputypes.TextureFormat
	samples   uint32

	width, height int

	arena *arena
	ops   []op.Op
	draws []drawCall
	fan   []uint32
	err   error
	stats FrameStats

	textures  frameTextures
	needClear bool
	released  bool
}

// NewTarget creates a width x height target drawing with device and
// queue.
func NewTarget(device hal.Device, queue hal.Queue, width, height int, opts ...Option) (*Target, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.caps.AdvancedBlendEquationSupport() {
		return nil, fmt.Errorf("%w: %v", ErrHardwareBlend, o.caps)
	}

	t := &Target{
		device:    device,
		queue:     queue,
		caps:      o.caps,
		cache:     o.cache,
		format:    o.format,
		samples:   o.sampleCount,
		width:     width,
		height:    height,
		arena:     newArena(o.arenaBlock, o.arenaLimit),
		needClear: true,
	}
	if t.cache == nil {
		c, err := NewPipelineCache(device, o.shaderFormat)
		if err != nil {
			return nil, err
		}
		t.cache, t.ownsCache = c, true
	}
	slogger().Debug("native: target created", "width", width, "height", height,
		"samples", t.samples, "caps", t.caps.String())
	return t, nil
}

// Width returns the target width in pixels.
func (t *Target) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *Target) Height() int { return t.height }

// Caps returns the capabilities ops are finalized against.
func (t *Target) Caps() caps.Caps { return t.caps }

// Cache returns the pipeline cache.
func (t *Target) Cache() *PipelineCache { return t.cache }

// AddDrawOp finalizes o with state and records it, merging it into the
// previous op when both can draw as one.
func (t *Target) AddDrawOp(state op.PipelineState, o op.Op) {
	p, opt := state.Finalize(t.caps, o.Analysis())
	o.Finalize(p, opt)
	if n := len(t.ops); n > 0 && t.ops[n-1].TryMerge(o, t.caps) {
		return
	}
	t.ops = append(t.ops, o)
}

// OpCount returns the number of ops recorded since the last flush.
func (t *Target) OpCount() int { return len(t.ops) }

// MakeVertexSpace implements op.Target.
func (t *Target) MakeVertexSpace(stride, count int) (op.VertexSpace, bool) {
	block, first, data, ok := t.arena.allocVertices(stride, count)
	if !ok {
		t.stats.Dropped++
		return op.VertexSpace{}, false
	}
	return op.VertexSpace{Buffer: block, First: first, Data: data}, true
}

// MakeIndexSpace implements op.Target.
func (t *Target) MakeIndexSpace(count int) (op.IndexSpace, bool) {
	block, first, data, ok := t.arena.allocIndices(count)
	if !ok {
		t.stats.Dropped++
		return op.IndexSpace{}, false
	}
	return op.IndexSpace{Buffer: block, First: first, Data: data}, true
}

// Draw implements op.Target.
func (t *Target) Draw(pipeline op.Pipeline, proc op.Processor, mesh op.Mesh) {
	key, err := keyFor(pipeline, proc, t.format, t.samples)
	if err != nil {
		if t.err == nil {
			t.err = err
		}
		return
	}
	d := drawCall{key: key, proc: proc, mesh: mesh}
	if mesh.Primitive == op.PrimitiveTriangleFan && !mesh.Indexed {
		if mesh.VertexCount < 3 {
			return
		}
		d.fanFirst = len(t.fan)
		first := uint32(mesh.FirstVertex) //nolint:gosec // bounded by the arena limit
		for i := uint32(1); i+1 < uint32(mesh.VertexCount); i++ {
			t.fan = append(t.fan, first, first+i, first+i+1)
		}
		d.fanCount = len(t.fan) - d.fanFirst
	}
	t.draws = append(t.draws, d)
}

// Clear makes the next flush start from transparent black instead of the
// current contents.
func (t *Target) Clear() { t.needClear = true }

// Resize changes the target dimensions. The contents are discarded.
func (t *Target) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width == t.width && height == t.height {
		return nil
	}
	t.textures.destroy(t.device)
	t.width, t.height = width, height
	t.needClear = true
	return nil
}

// Texture returns the single-sample texture holding the flushed result,
// or nil before the first flush.
func (t *Target) Texture() hal.Texture { return t.textures.resolveTex }

// TextureView returns a view of Texture.
func (t *Target) TextureView() hal.TextureView { return t.textures.resolveView }

// Stats returns statistics of the last flush.
func (t *Target) Stats() FrameStats { return t.stats }

// reset drops every recorded op and staged byte.
func (t *Target) reset() {
	t.ops = t.ops[:0]
	t.draws = t.draws[:0]
	t.fan = t.fan[:0]
	t.arena.reset()
	t.err = nil
}

// Release destroys the target's textures and, unless it was shared, its
// pipeline cache. The target cannot be used afterwards.
func (t *Target) Release() {
	if t.released {
		return
	}
	t.released = true
	t.textures.destroy(t.device)
	if t.ownsCache {
		t.cache.Destroy()
	}
	t.reset()
}
