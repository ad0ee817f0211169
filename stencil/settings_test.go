package stencil

import (
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestPredefinedSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		front    Face
		twoSided bool
	}{
		{"EOStencilPass", EOStencilPass, Face{0xffff, TestAlwaysIfInClip, 0xffff, OpInvert, OpKeep, 0xffff}, false},
		{"EOColorPass", EOColorPass, Face{0, TestNotEqual, 0xffff, OpZero, OpZero, 0xffff}, false},
		{"InvEOColorPass", InvEOColorPass, Face{0, TestEqualIfInClip, 0xffff, OpZero, OpZero, 0xffff}, false},
		{"WindStencilSeparateWithWrap", WindStencilSeparateWithWrap, Face{0xffff, TestAlwaysIfInClip, 0xffff, OpIncWrap, OpKeep, 0xffff}, true},
		{"WindColorPass", WindColorPass, Face{0, TestLessIfInClip, 0xffff, OpZero, OpZero, 0xffff}, false},
		{"InvWindColorPass", InvWindColorPass, Face{0, TestEqualIfInClip, 0xffff, OpZero, OpZero, 0xffff}, false},
		{"DirectToStencil", DirectToStencil, Face{0, TestAlwaysIfInClip, 0xffff, OpIncMaybeClamp, OpZero, 0xffff}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.settings.IsUnused() {
				t.Fatal("settings should be enabled")
			}
			if got := tt.settings.Front(); got != tt.front {
				t.Errorf("Front() = %+v, want %+v", got, tt.front)
			}
			if got := tt.settings.IsTwoSided(); got != tt.twoSided {
				t.Errorf("IsTwoSided() = %t, want %t", got, tt.twoSided)
			}
		})
	}

	if back := WindStencilSeparateWithWrap.Back(); back.PassOp != OpDecWrap {
		t.Errorf("winding back face PassOp = %v, want DecWrap", back.PassOp)
	}
	if !Unused.IsUnused() || Unused.String() != "Unused" {
		t.Errorf("Unused = %v", Unused)
	}
}

func TestResolveWithoutClip(t *testing.T) {
	st := WindStencilSeparateWithWrap.Resolve(false, DefaultBits)
	if !st.Enabled {
		t.Fatal("Enabled = false")
	}
	want := FaceState{
		Compare:   gputypes.CompareFunctionAlways,
		PassOp:    gputypes.StencilOperationIncrementWrap,
		FailOp:    gputypes.StencilOperationKeep,
		Ref:       0x7f,
		TestMask:  0x7f,
		WriteMask: 0x7f,
	}
	if st.Front != want {
		t.Errorf("Front = %+v, want %+v", st.Front, want)
	}
	if st.Back.PassOp != gputypes.StencilOperationDecrementWrap {
		t.Errorf("Back.PassOp = %v, want DecrementWrap", st.Back.PassOp)
	}
}

func TestResolveWithClip(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     FaceState
	}{
		{
			name:     "always if in clip tests only the clip bit",
			settings: EOStencilPass,
			want: FaceState{
				Compare:   gputypes.CompareFunctionEqual,
				PassOp:    gputypes.StencilOperationInvert,
				FailOp:    gputypes.StencilOperationKeep,
				Ref:       0xff,
				TestMask:  0x80,
				WriteMask: 0x7f,
			},
		},
		{
			name:     "less if in clip adds the clip bit",
			settings: WindColorPass,
			want: FaceState{
				Compare:   gputypes.CompareFunctionLess,
				PassOp:    gputypes.StencilOperationZero,
				FailOp:    gputypes.StencilOperationZero,
				Ref:       0x80,
				TestMask:  0xff,
				WriteMask: 0x7f,
			},
		},
		{
			name:     "plain test ignores the clip",
			settings: EOColorPass,
			want: FaceState{
				Compare:   gputypes.CompareFunctionNotEqual,
				PassOp:    gputypes.StencilOperationZero,
				FailOp:    gputypes.StencilOperationZero,
				Ref:       0x00,
				TestMask:  0x7f,
				WriteMask: 0x7f,
			},
		},
		{
			name:     "direct to stencil clamps",
			settings: DirectToStencil,
			want: FaceState{
				Compare:   gputypes.CompareFunctionEqual,
				PassOp:    gputypes.StencilOperationIncrementClamp,
				FailOp:    gputypes.StencilOperationZero,
				Ref:       0x80,
				TestMask:  0x80,
				WriteMask: 0x7f,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := tt.settings.Resolve(true, DefaultBits)
			if st.Front != tt.want {
				t.Errorf("Front = %+v, want %+v", st.Front, tt.want)
			}
		})
	}
}

func TestResolveUnused(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		hasClip  bool
		enabled  bool
		want     FaceState
	}{
		{
			name:     "no clip",
			settings: Unused,
			want: FaceState{
				Compare: gputypes.CompareFunctionAlways,
				PassOp:  gputypes.StencilOperationKeep,
				FailOp:  gputypes.StencilOperationKeep,
			},
		},
		{
			name:     "clip",
			settings: Unused,
			hasClip:  true,
			enabled:  true,
			want: FaceState{
				Compare:  gputypes.CompareFunctionEqual,
				PassOp:   gputypes.StencilOperationKeep,
				FailOp:   gputypes.StencilOperationKeep,
				Ref:      0x80,
				TestMask: 0x80,
			},
		},
		{
			name:     "zero value with clip",
			settings: Settings{},
			hasClip:  true,
			enabled:  true,
			want: FaceState{
				Compare:  gputypes.CompareFunctionEqual,
				PassOp:   gputypes.StencilOperationKeep,
				FailOp:   gputypes.StencilOperationKeep,
				Ref:      0x80,
				TestMask: 0x80,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := tt.settings.Resolve(tt.hasClip, DefaultBits)
			if st.Enabled != tt.enabled {
				t.Errorf("Enabled = %t, want %t", st.Enabled, tt.enabled)
			}
			if st.Front != tt.want || st.Back != tt.want {
				t.Errorf("Front = %+v, Back = %+v, want %+v", st.Front, st.Back, tt.want)
			}
		})
	}

	if !(Settings{}).IsUnused() {
		t.Error("zero Settings should be unused")
	}
}

func TestSettingsString(t *testing.T) {
	s := WindStencilSeparateWithWrap.String()
	if !strings.Contains(s, "front") || !strings.Contains(s, "DecWrap") {
		t.Errorf("String() = %q", s)
	}
	if s := EOColorPass.String(); !strings.Contains(s, "NotEqual") {
		t.Errorf("String() = %q", s)
	}
}
