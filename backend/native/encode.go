// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// uniformAlignment is the WebGPU minimum uniform buffer offset alignment.
const uniformAlignment = 256

// frameResources are the GPU objects created for one flush.
type frameResources struct {
	vertexBufs []hal.Buffer
	indexBufs  []hal.Buffer
	fanBuf     hal.Buffer
	uniformBuf hal.Buffer
	groups     []hal.BindGroup
	dstGroup   hal.BindGroup
	pipelines  []hal.RenderPipeline
}

func (r *frameResources) destroy(device hal.Device) {
	for _, g := range r.groups {
		device.DestroyBindGroup(g)
	}
	if r.dstGroup != nil {
		device.DestroyBindGroup(r.dstGroup)
	}
	for _, b := range r.vertexBufs {
		device.DestroyBuffer(b)
	}
	for _, b := range r.indexBufs {
		device.DestroyBuffer(b)
	}
	if r.fanBuf != nil {
		device.DestroyBuffer(r.fanBuf)
	}
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
	}
}

// Flush prepares every recorded op, draws the meshes in one command
// buffer and waits for it to complete. The recorded ops are dropped
// whether or not the flush succeeds.
//
// Draws that could not get staging memory are skipped; the rest of the
// frame is still drawn and ErrArenaExhausted is returned.
func (t *Target) Flush() error {
	if t.released {
		return ErrReleased
	}
	defer t.reset()

	t.stats = FrameStats{Ops: len(t.ops)}
	for _, o := range t.ops {
		o.Prepare(t)
	}
	t.stats.Draws = len(t.draws)
	t.stats.Staged = t.arena.Used()
	if t.err != nil {
		return t.err
	}

	if err := t.textures.ensure(t.device, uint32(t.width), uint32(t.height), t.samples, t.format); err != nil { //nolint:gosec // checked positive
		return err
	}

	res := &frameResources{}
	defer res.destroy(t.device)
	if err := t.upload(res); err != nil {
		return err
	}
	if err := t.encode(res); err != nil {
		return err
	}

	slogger().Debug("native: frame flushed", "ops", t.stats.Ops, "draws", t.stats.Draws,
		"passes", t.stats.Passes, "dst_copies", t.stats.DstCopy, "staged", t.stats.Staged)
	if t.stats.Dropped > 0 {
		slogger().Warn("native: draws dropped", "count", t.stats.Dropped)
		return fmt.Errorf("%w: %d allocations failed", ErrArenaExhausted, t.stats.Dropped)
	}
	return nil
}

// upload creates the frame buffers, bind groups and pipelines.
func (t *Target) upload(res *frameResources) error {
	for i := range t.arena.vertices {
		b, err := t.createBuffer("msaapath_vertices", t.arena.vertexBytes(i), gputypes.BufferUsageVertex)
		if err != nil {
			return err
		}
		res.vertexBufs = append(res.vertexBufs, b)
	}
	for i := range t.arena.indices {
		b, err := t.createBuffer("msaapath_indices", t.arena.indexBytes(i), gputypes.BufferUsageIndex)
		if err != nil {
			return err
		}
		res.indexBufs = append(res.indexBufs, b)
	}
	if len(t.fan) > 0 {
		b, err := t.createBuffer("msaapath_fan_indices", uint32Bytes(t.fan), gputypes.BufferUsageIndex)
		if err != nil {
			return err
		}
		res.fanBuf = b
	}
	if len(t.draws) == 0 {
		return nil
	}

	uniforms := make([]byte, len(t.draws)*uniformAlignment)
	for i := range t.draws {
		t.writeUniforms(uniforms[i*uniformAlignment:], &t.draws[i])
	}
	ub, err := t.createBuffer("msaapath_uniforms", uniforms, gputypes.BufferUsageUniform)
	if err != nil {
		return err
	}
	res.uniformBuf = ub

	for i := range t.draws {
		g, err := t.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "msaapath_uniform_group",
			Layout: t.cache.uniformLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{
					Buffer: ub.NativeHandle(), Offset: uint64(i * uniformAlignment), Size: uniformSize, //nolint:gosec // non-negative
				}},
			},
		})
		if err != nil {
			return fmt.Errorf("create uniform bind group %d: %w", i, err)
		}
		res.groups = append(res.groups, g)

		p, err := t.cache.pipeline(t.draws[i].key)
		if err != nil {
			return err
		}
		res.pipelines = append(res.pipelines, p)

		if t.draws[i].key.shader.DstRead && res.dstGroup == nil {
			if err := t.textures.ensureDst(t.device, t.format); err != nil {
				return err
			}
			res.dstGroup, err = t.device.CreateBindGroup(&hal.BindGroupDescriptor{
				Label:  "msaapath_dst_group",
				Layout: t.cache.dstLayout,
				Entries: []gputypes.BindGroupEntry{
					{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: t.textures.dstView.NativeHandle()}},
				},
			})
			if err != nil {
				return fmt.Errorf("create dst bind group: %w", err)
			}
		}
	}
	return nil
}

// writeUniforms writes the view, local matrix and viewport of d. The view
// slot is left untouched when the program does not read it.
func (t *Target) writeUniforms(buf []byte, d *drawCall) {
	off := 0
	put := func(v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	if d.proc.NeedsViewUniform() {
		for _, v := range d.proc.View.Uniform() {
			put(v)
		}
	} else {
		off += matrixUniformSize
	}
	for _, v := range d.proc.Local.Uniform() {
		put(v)
	}
	put(float32(t.width))
	put(float32(t.height))
	put(0)
	put(0)
}

func (t *Target) createBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	b, err := t.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s buffer: %w", label, err)
	}
	if err := t.queue.WriteBuffer(b, 0, data); err != nil {
		t.device.DestroyBuffer(b)
		return nil, fmt.Errorf("write %s buffer: %w", label, err)
	}
	return b, nil
}

// encode records the frame and submits it. A draw that reads the
// destination ends the pass so the resolved color can be copied into the
// texture it samples.
func (t *Target) encode(res *frameResources) error {
	encoder, err := t.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "msaapath_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("msaapath_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := t.beginPass(encoder)
	for i := range t.draws {
		d := &t.draws[i]
		if d.key.shader.DstRead {
			rp.End()
			t.copyDst(encoder)
			rp = t.beginPass(encoder)
		}
		rp.SetPipeline(res.pipelines[i])
		rp.SetBindGroup(0, res.groups[i], nil)
		if d.key.shader.DstRead {
			rp.SetBindGroup(1, res.dstGroup, nil)
		}
		rp.SetStencilReference(d.key.stencil.Front.Ref)
		rp.SetVertexBuffer(0, res.vertexBufs[d.mesh.VertexBuffer], 0)
		switch {
		case d.fanCount > 0:
			rp.SetIndexBuffer(res.fanBuf, gputypes.IndexFormatUint32, 0)
			rp.DrawIndexed(uint32(d.fanCount), 1, uint32(d.fanFirst), 0, 0) //nolint:gosec // bounded by the arena limit
		case d.mesh.Indexed:
			rp.SetIndexBuffer(res.indexBufs[d.mesh.IndexBuffer], gputypes.IndexFormatUint16, 0)
			rp.DrawIndexed(uint32(d.mesh.IndexCount), 1, uint32(d.mesh.FirstIndex), //nolint:gosec // bounded by the arena limit
				int32(d.mesh.FirstVertex), 0) //nolint:gosec // see above
		default:
			rp.Draw(uint32(d.mesh.VertexCount), 1, uint32(d.mesh.FirstVertex), 0) //nolint:gosec // bounded by the arena limit
		}
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer t.device.FreeCommandBuffer(cmdBuf)

	if _, err := t.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := t.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	return nil
}

// beginPass starts a render pass, clearing the attachments on the first
// pass after a Clear and loading them otherwise.
func (t *Target) beginPass(encoder hal.CommandEncoder) hal.RenderPassEncoder {
	load := gputypes.LoadOpLoad
	if t.needClear {
		load = gputypes.LoadOpClear
		t.needClear = false
	}
	view, resolve := t.textures.colorView()
	t.stats.Passes++
	return encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "msaapath_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:          view,
			ResolveTarget: resolve,
			LoadOp:        load,
			StoreOp:       gputypes.StoreOpStore,
			ClearValue:    gputypes.Color{R: 0, G: 0, B: 0, A: 0},
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              t.textures.stencilView,
			DepthLoadOp:       load,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     load,
			StencilStoreOp:    gputypes.StoreOpStore,
			StencilClearValue: 0,
		},
	})
}

// copyDst copies the resolved color into the texture dst-reading shaders
// sample.
func (t *Target) copyDst(encoder hal.CommandEncoder) {
	f := &t.textures
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: f.resolveTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToTexture(f.resolveTex, f.dstTex, []hal.TextureCopy{{
		SrcBase: hal.ImageCopyTexture{Texture: f.resolveTex, Aspect: gputypes.TextureAspectAll},
		DstBase: hal.ImageCopyTexture{Texture: f.dstTex, Aspect: gputypes.TextureAspectAll},
		Size:    hal.Extent3D{Width: f.width, Height: f.height, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: f.resolveTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})
	t.stats.DstCopy++
}
