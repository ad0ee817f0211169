// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"strings"
	"testing"

	msaapath "github.com/gogpu/msaapath"
	"github.com/gogpu/msaapath/op"
)

func TestGenerateWGSL(t *testing.T) {
	tests := []struct {
		name    string
		key     shaderKey
		want    []string
		notWant []string
	}{
		{
			name:    "identity lines",
			key:     shaderKey{Proc: op.Key{Kind: op.KindDefaultColor, Flags: op.FlagIdentity}},
			want:    []string{"let h = vec3<f32>(in.position, 1.0);", "@location(1) color: vec4<f32>", "return in.color;"},
			notWant: []string{"u.view *", "discard", "dst_tex", "out.local"},
		},
		{
			name: "transformed quads",
			key:  shaderKey{Proc: op.Key{Kind: op.KindQuadCoverage}},
			want: []string{"u.view * vec3<f32>(in.position, 1.0)", "@location(1) uv: vec2<f32>",
				"@location(2) color: vec4<f32>", "if (in.uv.x * in.uv.x >= in.uv.y)", "discard;"},
		},
		{
			name: "perspective rect with local matrix",
			key:  shaderKey{Proc: op.Key{Kind: op.KindRectFill, Flags: op.FlagPerspective | op.FlagLocalMatrix}},
			want: []string{"u.view * vec3<f32>", "out.local = l.xy / l.z;"},
		},
		{
			name: "dst read",
			key: shaderKey{
				Proc:    op.Key{Kind: op.KindRectFill, Flags: op.FlagIdentity},
				Mode:    msaapath.BlendModeOverlay,
				DstRead: true,
			},
			want: []string{"@group(1) @binding(0) var dst_tex: texture_2d<f32>;",
				"textureLoad(dst_tex, vec2<i32>(in.position.xy), 0)", "return advanced_blend(in.color, dst, 1.0);",
				"fn advanced_blend("},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := generateWGSL(tt.key)
			if err != nil {
				t.Fatalf("generateWGSL() error = %v", err)
			}
			for _, s := range tt.want {
				if !strings.Contains(src, s) {
					t.Errorf("source lacks %q:\n%s", s, src)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(src, s) {
					t.Errorf("source contains %q", s)
				}
			}
			if !strings.Contains(src, "fn vs_main(") || !strings.Contains(src, "fn fs_main(") {
				t.Error("missing entry points")
			}
		})
	}
}

func TestGenerateWGSLCoefficientDstRead(t *testing.T) {
	_, err := generateWGSL(shaderKey{Proc: op.Key{Kind: op.KindRectFill}, Mode: msaapath.BlendModeSrcOver, DstRead: true})
	if !errors.Is(err, ErrShaderCompile) {
		t.Errorf("error = %v, want ErrShaderCompile", err)
	}
}

func TestCompileShaderWGSL(t *testing.T) {
	src, err := compileShader("@vertex fn vs_main() {}", ShaderWGSL)
	if err != nil {
		t.Fatalf("compileShader() error = %v", err)
	}
	if src.WGSL == "" || src.SPIRV != nil {
		t.Errorf("source = %+v, want WGSL only", src)
	}
}

func TestVertexLayout(t *testing.T) {
	lines := vertexLayout(op.KindDefaultColor)
	if lines.ArrayStride != 12 || len(lines.Attributes) != 2 {
		t.Errorf("line layout = %+v", lines)
	}
	quads := vertexLayout(op.KindQuadCoverage)
	if quads.ArrayStride != 20 || len(quads.Attributes) != 3 || quads.Attributes[2].Offset != 16 {
		t.Errorf("quad layout = %+v", quads)
	}
	if int(lines.ArrayStride) != (op.Processor{Kind: op.KindDefaultColor}).VertexStride() ||
		int(quads.ArrayStride) != (op.Processor{Kind: op.KindQuadCoverage}).VertexStride() {
		t.Error("layout strides disagree with processor strides")
	}
}
