// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native executes msaapath draw ops on a gogpu/wgpu HAL device.
//
// A Target is both the render.DrawContext the renderer records into and
// the op.Target the recorded ops prepare their geometry against. Ops are
// finalized and merged as they arrive; Flush prepares them, uploads the
// staged vertices and indices, and encodes one multisampled render pass
// with a Depth24PlusStencil8 attachment for the stencil passes.
//
// WebGPU has no triangle fans, so fan meshes are expanded into 32-bit
// index lists at draw time. It has no advanced blend equations either:
// advanced modes always blend in the shader, reading the destination from
// a copy of the resolved color target taken before the draw.
//
// Render pipelines are built from generated WGSL, compiled to SPIR-V with
// naga, and cached by processor key, blend and stencil state. The cache is
// safe for concurrent use and may be shared between targets.
//
// # Usage
//
//	target, err := native.NewTarget(device, queue, 800, 600)
//	if err != nil {
//	    return err
//	}
//	defer target.Release()
//
//	r := render.New()
//	r.DrawPath(render.DrawPathArgs{Context: target, ...})
//	if err := target.Flush(); err != nil {
//	    return err
//	}
package native
