// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/op"
	"github.com/gogpu/msaapath/stencil"
)

// pipelineKey identifies one render pipeline. It is comparable and used
// directly as a map key.
type pipelineKey struct {
	shader      shaderKey
	stencil     stencil.State
	colorWrites bool
	// blend is the coefficient mode; unused for dst-reading shaders.
	blend   msaapath.BlendMode
	msaa    bool
	format  gputypes.TextureFormat
	samples uint32
}

func (k pipelineKey) String() string {
	return fmt.Sprintf("%v blend=%v color=%t stencil=%t msaa=%t", k.shader, k.blend, k.colorWrites, k.stencil.Enabled, k.msaa)
}

// keyFor builds the pipeline key of a draw.
func keyFor(p op.Pipeline, proc op.Processor, format gputypes.TextureFormat, samples uint32) (pipelineKey, error) {
	if p.HasXP && p.XP.HasHWEquation() {
		return pipelineKey{}, fmt.Errorf("%w: %v", ErrHardwareBlend, p.XP)
	}
	k := pipelineKey{
		shader:      shaderKey{Proc: proc.Key()},
		stencil:     p.Stencil.Resolve(p.HasClip, stencil.DefaultBits),
		colorWrites: p.ColorWrites,
		blend:       msaapath.BlendModeSrcOver,
		msaa:        p.MSAA,
		format:      format,
		samples:     samples,
	}
	switch {
	case !p.ColorWrites:
	case p.ReadsDst():
		k.shader.DstRead = true
		k.shader.Mode = p.Mode
	default:
		k.blend = p.Mode
	}
	return k, nil
}

// coeffBlends maps each coefficient mode onto fixed-function blending of
// premultiplied colors.
var coeffBlends = map[msaapath.BlendMode]gputypes.BlendState{
	msaapath.BlendModeClear:    blendOf(gputypes.BlendFactorZero, gputypes.BlendFactorZero),
	msaapath.BlendModeSrc:      blendOf(gputypes.BlendFactorOne, gputypes.BlendFactorZero),
	msaapath.BlendModeDst:      blendOf(gputypes.BlendFactorZero, gputypes.BlendFactorOne),
	msaapath.BlendModeSrcOver:  blendOf(gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrcAlpha),
	msaapath.BlendModeDstOver:  blendOf(gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOne),
	msaapath.BlendModeSrcIn:    blendOf(gputypes.BlendFactorDstAlpha, gputypes.BlendFactorZero),
	msaapath.BlendModeDstIn:    blendOf(gputypes.BlendFactorZero, gputypes.BlendFactorSrcAlpha),
	msaapath.BlendModeSrcOut:   blendOf(gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorZero),
	msaapath.BlendModeDstOut:   blendOf(gputypes.BlendFactorZero, gputypes.BlendFactorOneMinusSrcAlpha),
	msaapath.BlendModeSrcATop:  blendOf(gputypes.BlendFactorDstAlpha, gputypes.BlendFactorOneMinusSrcAlpha),
	msaapath.BlendModeDstATop:  blendOf(gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorSrcAlpha),
	msaapath.BlendModeXor:      blendOf(gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOneMinusSrcAlpha),
	msaapath.BlendModePlus:     blendOf(gputypes.BlendFactorOne, gputypes.BlendFactorOne),
	msaapath.BlendModeModulate: colorAlphaBlend(gputypes.BlendFactorZero, gputypes.BlendFactorSrc, gputypes.BlendFactorSrcAlpha),
	msaapath.BlendModeScreen:   colorAlphaBlend(gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrc, gputypes.BlendFactorOneMinusSrcAlpha),
}

func blendOf(src, dst gputypes.BlendFactor) gputypes.BlendState {
	c := gputypes.BlendComponent{SrcFactor: src, DstFactor: dst, Operation: gputypes.BlendOperationAdd}
	return gputypes.BlendState{Color: c, Alpha: c}
}

// colorAlphaBlend uses dst for color and alphaDst for alpha, for modes
// whose color factor reads source color.
func colorAlphaBlend(src, dst, alphaDst gputypes.BlendFactor) gputypes.BlendState {
	s := blendOf(src, dst)
	s.Alpha.DstFactor = alphaDst
	return s
}

// blendState returns the fixed-function blend of k; nil replaces the
// destination, which is what dst-reading shaders need.
func (k pipelineKey) blendState() *gputypes.BlendState {
	if k.shader.DstRead {
		return nil
	}
	b, ok := coeffBlends[k.blend]
	if !ok {
		b = coeffBlends[msaapath.BlendModeSrcOver]
	}
	return &b
}

func (k pipelineKey) writeMask() gputypes.ColorWriteMask {
	if k.colorWrites {
		return gputypes.ColorWriteMaskAll
	}
	return gputypes.ColorWriteMaskNone
}

// multisample returns the multisample state. Non-MSAA draws on a
// multisampled target only cover the first sample.
func (k pipelineKey) multisample() gputypes.MultisampleState {
	mask := uint64(0xFFFFFFFF)
	if !k.msaa && k.samples > 1 {
		mask = 1
	}
	return gputypes.MultisampleState{Count: k.samples, Mask: mask}
}

// depthStencil maps resolved stencil state onto the attachment state. The
// attachment has a single read and write mask, taken from the front face.
func (k pipelineKey) depthStencil() *hal.DepthStencilState {
	s := k.stencil
	return &hal.DepthStencilState{
		Format:            gputypes.TextureFormatDepth24PlusStencil8,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
		StencilFront:      faceState(s.Front),
		StencilBack:       faceState(s.Back),
		StencilReadMask:   s.Front.TestMask,
		StencilWriteMask:  s.Front.WriteMask,
	}
}

func faceState(f stencil.FaceState) hal.StencilFaceState {
	return hal.StencilFaceState{
		Compare:     f.Compare,
		FailOp:      stencilOp(f.FailOp),
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      stencilOp(f.PassOp),
	}
}

func stencilOp(o gputypes.StencilOperation) hal.StencilOperation {
	switch o {
	case gputypes.StencilOperationZero:
		return hal.StencilOperationZero
	case gputypes.StencilOperationReplace:
		return hal.StencilOperationReplace
	case gputypes.StencilOperationInvert:
		return hal.StencilOperationInvert
	case gputypes.StencilOperationIncrementClamp:
		return hal.StencilOperationIncrementClamp
	case gputypes.StencilOperationDecrementClamp:
		return hal.StencilOperationDecrementClamp
	case gputypes.StencilOperationIncrementWrap:
		return hal.StencilOperationIncrementWrap
	case gputypes.StencilOperationDecrementWrap:
		return hal.StencilOperationDecrementWrap
	default:
		return hal.StencilOperationKeep
	}
}
