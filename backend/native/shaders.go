// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/advblend"
	"github.com/gogpu/msaapath/op"
)

// uniformSize is view mat3x3 (48) + local mat3x3 (48) + viewport vec4 (16).
const uniformSize = 112

// matrixUniformSize is one mat3x3<f32> in the uniform layout.
const matrixUniformSize = 48

// shaderKey identifies one generated shader module.
type shaderKey struct {
	Proc op.Key
	// Mode is only part of the key for dst-reading shaders.
	Mode    msaapath.BlendMode
	DstRead bool
}

func (k shaderKey) String() string {
	if k.DstRead {
		return fmt.Sprintf("%v+%v", k.Proc, k.Mode)
	}
	return k.Proc.String()
}

const uniformsWGSL = `struct Uniforms {
    view: mat3x3<f32>,
    local: mat3x3<f32>,
    viewport: vec4<f32>,
}

@group(0) @binding(0) var<uniform> u: Uniforms;

// Homogeneous device position to clip space, keeping w for perspective.
fn to_clip(h: vec3<f32>) -> vec4<f32> {
    return vec4<f32>(
        2.0 * h.x / u.viewport.x - h.z,
        h.z - 2.0 * h.y / u.viewport.y,
        0.0,
        h.z,
    );
}
`

// generateWGSL returns the WGSL source for k.
func generateWGSL(k shaderKey) (string, error) {
	quad := k.Proc.Kind == op.KindQuadCoverage
	local := k.Proc.Flags&op.FlagLocalMatrix != 0

	var b strings.Builder
	fmt.Fprintf(&b, "// msaapath %s\n\n", k)
	b.WriteString(uniformsWGSL)

	b.WriteString("\nstruct VertexInput {\n    @location(0) position: vec2<f32>,\n")
	if quad {
		b.WriteString("    @location(1) uv: vec2<f32>,\n    @location(2) color: vec4<f32>,\n")
	} else {
		b.WriteString("    @location(1) color: vec4<f32>,\n")
	}
	b.WriteString("}\n")

	b.WriteString("\nstruct VertexOutput {\n    @builtin(position) position: vec4<f32>,\n    @location(0) color: vec4<f32>,\n")
	if quad {
		b.WriteString("    @location(1) uv: vec2<f32>,\n")
	}
	if local {
		b.WriteString("    @location(2) local: vec2<f32>,\n")
	}
	b.WriteString("}\n")

	if k.DstRead {
		src, ok := advblend.FallbackWGSL(k.Mode)
		if !ok {
			return "", fmt.Errorf("%w: %v has no shader blend", ErrShaderCompile, k.Mode)
		}
		b.WriteString("\n@group(1) @binding(0) var dst_tex: texture_2d<f32>;\n")
		b.WriteString(src)
	}

	b.WriteString("\n@vertex\nfn vs_main(in: VertexInput) -> VertexOutput {\n    var out: VertexOutput;\n")
	if k.Proc.Flags&op.FlagIdentity != 0 {
		b.WriteString("    let h = vec3<f32>(in.position, 1.0);\n")
	} else {
		b.WriteString("    let h = u.view * vec3<f32>(in.position, 1.0);\n")
	}
	b.WriteString("    out.position = to_clip(h);\n    out.color = in.color;\n")
	if quad {
		b.WriteString("    out.uv = in.uv;\n")
	}
	if local {
		b.WriteString("    let l = u.local * vec3<f32>(in.position, 1.0);\n    out.local = l.xy / l.z;\n")
	}
	b.WriteString("    return out;\n}\n")

	b.WriteString("\n@fragment\nfn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {\n")
	if quad {
		b.WriteString("    if (in.uv.x * in.uv.x >= in.uv.y) {\n        discard;\n    }\n")
	}
	if k.DstRead {
		b.WriteString("    let dst = textureLoad(dst_tex, vec2<i32>(in.position.xy), 0);\n")
		// Multisampling resolves edges, so each fragment is fully covered
		// and Optimizations.Flags cannot change the result.
		fmt.Fprintf(&b, "    return %s(in.color, dst, 1.0);\n", advblend.BlendFuncName)
	} else {
		b.WriteString("    return in.color;\n")
	}
	b.WriteString("}\n")
	return b.String(), nil
}

// vertexLayout returns the vertex buffer layout of kind.
func vertexLayout(kind op.Kind) gputypes.VertexBufferLayout {
	if kind == op.KindQuadCoverage {
		return gputypes.VertexBufferLayout{
			ArrayStride: 20,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
				{Format: gputypes.VertexFormatUnorm8x4, Offset: 16, ShaderLocation: 2},
			},
		}
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: 12,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatUnorm8x4, Offset: 8, ShaderLocation: 1},
		},
	}
}

// compileShader turns WGSL into a shader source in the requested format.
func compileShader(wgsl string, format ShaderFormat) (hal.ShaderSource, error) {
	if format == ShaderWGSL {
		return hal.ShaderSource{WGSL: wgsl}, nil
	}
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return hal.ShaderSource{}, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	// SPIR-V is little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return hal.ShaderSource{SPIRV: code}, nil
}
