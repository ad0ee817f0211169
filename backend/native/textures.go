// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// frameTextures holds the attachments of a target: the multisampled color
// and stencil, the single-sample resolve target that holds the result,
// and the copy of it read by dst-reading shaders.
type frameTextures struct {
	width, height uint32

	msaaTex     hal.Texture
	msaaView    hal.TextureView
	stencilTex  hal.Texture
	stencilView hal.TextureView
	resolveTex  hal.Texture
	resolveView hal.TextureView
	dstTex      hal.Texture
	dstView     hal.TextureView
}

func (f *frameTextures) matches(w, h uint32) bool {
	return f.resolveTex != nil && f.width == w && f.height == h
}

// ensure (re)creates the attachments for a w x h target. The dst copy is
// created separately by ensureDst.
func (f *frameTextures) ensure(device hal.Device, w, h, samples uint32, format gputypes.TextureFormat) error {
	if f.matches(w, h) {
		return nil
	}
	f.destroy(device)
	f.width, f.height = w, h
	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	var err error
	f.resolveTex, f.resolveView, err = createTexture(device, "msaapath_resolve", size, 1, format,
		gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageCopySrc|gputypes.TextureUsageTextureBinding)
	if err != nil {
		f.destroy(device)
		return err
	}
	if samples > 1 {
		f.msaaTex, f.msaaView, err = createTexture(device, "msaapath_msaa_color", size, samples, format,
			gputypes.TextureUsageRenderAttachment)
		if err != nil {
			f.destroy(device)
			return err
		}
	}
	f.stencilTex, f.stencilView, err = createTexture(device, "msaapath_stencil", size, samples,
		gputypes.TextureFormatDepth24PlusStencil8, gputypes.TextureUsageRenderAttachment)
	if err != nil {
		f.destroy(device)
		return err
	}
	return nil
}

func (f *frameTextures) ensureDst(device hal.Device, format gputypes.TextureFormat) error {
	if f.dstTex != nil {
		return nil
	}
	var err error
	f.dstTex, f.dstView, err = createTexture(device, "msaapath_dst_copy",
		hal.Extent3D{Width: f.width, Height: f.height, DepthOrArrayLayers: 1}, 1, format,
		gputypes.TextureUsageCopyDst|gputypes.TextureUsageTextureBinding)
	return err
}

// colorView returns the view drawn into and the view resolved into.
func (f *frameTextures) colorView() (view, resolve hal.TextureView) {
	if f.msaaView == nil {
		return f.resolveView, nil
	}
	return f.msaaView, f.resolveView
}

func createTexture(device hal.Device, label string, size hal.Extent3D, samples uint32,
	format gputypes.TextureFormat, usage gputypes.TextureUsage) (hal.Texture, hal.TextureView, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s texture: %w", label, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: label + "_view"})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, nil, fmt.Errorf("create %s texture view: %w", label, err)
	}
	return tex, view, nil
}

func (f *frameTextures) destroy(device hal.Device) {
	for _, v := range []*hal.TextureView{&f.msaaView, &f.stencilView, &f.resolveView, &f.dstView} {
		if *v != nil {
			device.DestroyTextureView(*v)
			*v = nil
		}
	}
	for _, t := range []*hal.Texture{&f.msaaTex, &f.stencilTex, &f.resolveTex, &f.dstTex} {
		if *t != nil {
			device.DestroyTexture(*t)
			*t = nil
		}
	}
}
