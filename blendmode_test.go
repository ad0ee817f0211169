package msaapath

import "testing"

func TestParseBlendEquation(t *testing.T) {
	for e := EquationAdd; e < EquationCount; e++ {
		got, ok := ParseBlendEquation(e.String())
		if !ok || got != e {
			t.Errorf("ParseBlendEquation(%q) = %v, %t", e.String(), got, ok)
		}
	}
	if _, ok := ParseBlendEquation("plus"); ok {
		t.Error("ParseBlendEquation accepted an unknown name")
	}
	if EquationNone.String() != "none" || EquationNone.IsAdvanced() {
		t.Errorf("EquationNone = %v", EquationNone)
	}
	if EquationAdd.IsAdvanced() || !EquationScreen.IsAdvanced() || !EquationHSLLuminosity.IsAdvanced() {
		t.Error("IsAdvanced() boundaries wrong")
	}
}

func TestBlendModeClasses(t *testing.T) {
	tests := []struct {
		mode      BlendMode
		coeff     bool
		separable bool
	}{
		{BlendModeSrcOver, true, true},
		{BlendModeScreen, true, true},
		{BlendModeOverlay, false, true},
		{BlendModeMultiply, false, true},
		{BlendModeHue, false, false},
		{BlendModeLuminosity, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if tt.mode.IsCoeff() != tt.coeff {
				t.Errorf("IsCoeff() = %t", tt.mode.IsCoeff())
			}
			if tt.mode.IsSeparable() != tt.separable {
				t.Errorf("IsSeparable() = %t", tt.mode.IsSeparable())
			}
		})
	}
}
