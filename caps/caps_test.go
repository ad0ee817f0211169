package caps

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	msaapath "github.com/gogpu/msaapath"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name            string
		opts            []Option
		wantAdvanced    bool
		wantCoherent    bool
		wantInteraction Interaction
	}{
		{"basic", nil, false, false, InteractionNotSupported},
		{"advanced", []Option{WithAdvancedBlend(false)}, true, false, InteractionAutomatic},
		{"coherent", []Option{WithAdvancedBlend(true)}, true, true, InteractionAutomatic},
		{"specific", []Option{WithAdvancedBlend(false), WithInteraction(InteractionSpecific)}, true, false, InteractionSpecific},
		{"interaction ignored without support", []Option{WithInteraction(InteractionGeneral)}, false, false, InteractionNotSupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.opts...)
			assert.Equal(t, tt.wantAdvanced, c.AdvancedBlendEquationSupport())
			assert.Equal(t, tt.wantCoherent, c.AdvancedCoherentBlendEquationSupport())
			assert.Equal(t, tt.wantInteraction, c.AdvBlendEqInteraction())
			assert.Equal(t, tt.wantInteraction == InteractionSpecific, c.MustEnableSpecificAdvBlendEqs())
		})
	}
}

func TestRefusedEquations(t *testing.T) {
	c := New(WithAdvancedBlend(true), WithRefusedEquations(msaapath.EquationHSLHue, msaapath.EquationMultiply))

	assert.True(t, c.RefusesEquation(msaapath.EquationHSLHue))
	assert.True(t, c.RefusesEquation(msaapath.EquationMultiply))
	assert.False(t, c.RefusesEquation(msaapath.EquationOverlay))
	assert.True(t, c.RefusesEquation(msaapath.EquationNone), "out of range equations are refused")

	assert.True(t, c.CanUseAdvancedBlendEquation(msaapath.EquationOverlay))
	assert.False(t, c.CanUseAdvancedBlendEquation(msaapath.EquationHSLHue))
	assert.False(t, c.CanUseAdvancedBlendEquation(msaapath.EquationAdd), "basic equations are not advanced")
	assert.False(t, New().CanUseAdvancedBlendEquation(msaapath.EquationOverlay))

	s := c.String()
	assert.Contains(t, s, "hsl_hue")
	assert.Contains(t, s, "multiply")
}

func TestParseProfile(t *testing.T) {
	data := []byte(`
advanced_blend: true
coherent: false
interaction: specific
refused_equations: [hsl_hue, soft_light]
`)
	p, err := ParseProfile(data)
	require.NoError(t, err)
	assert.Equal(t, Profile{
		AdvancedBlend:    true,
		Interaction:      "specific",
		RefusedEquations: []string{"hsl_hue", "soft_light"},
	}, p)

	c, err := p.Caps()
	require.NoError(t, err)
	assert.Equal(t, BlendAdvanced, c.BlendSupport())
	assert.True(t, c.MustEnableSpecificAdvBlendEqs())
	assert.True(t, c.RefusesEquation(msaapath.EquationSoftLight))
}

func TestProfileErrors(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr error
	}{
		{"unknown equation", Profile{RefusedEquations: []string{"sparkle"}}, ErrUnknownEquation},
		{"unknown interaction", Profile{AdvancedBlend: true, Interaction: "sometimes"}, ErrUnknownInteraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.profile.Caps()
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := ParseProfile([]byte("advanced_blend: [not, a, bool]"))
	require.Error(t, err)
}

func TestLoadProfile(t *testing.T) {
	p, err := LoadProfile(strings.NewReader("advanced_blend: true\ncoherent: true\n"))
	require.NoError(t, err)
	assert.True(t, p.AdvancedBlend)
	assert.True(t, p.Coherent)

	_, err = LoadProfile(strings.NewReader("advanced_blending: true\n"))
	require.Error(t, err, "unknown fields are rejected")

	p, err = LoadProfile(&bytes.Buffer{})
	require.NoError(t, err, "an empty profile is basic")
	assert.Equal(t, Profile{}, p)
}

func TestProfileRoundTrip(t *testing.T) {
	in := Profile{AdvancedBlend: true, Coherent: true, Interaction: "general", RefusedEquations: []string{"multiply"}}
	data, err := in.Marshal()
	require.NoError(t, err)

	out, err := ParseProfile(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFromAdapter(t *testing.T) {
	profile := Profile{AdvancedBlend: true, Coherent: true}

	tests := []struct {
		typ          gpucontext.AdapterType
		wantAdvanced bool
	}{
		{gpucontext.AdapterTypeDiscrete, true},
		{gpucontext.AdapterTypeIntegrated, true},
		{gpucontext.AdapterTypeSoftware, false},
		{gpucontext.AdapterTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			c, err := FromAdapter(gpucontext.AdapterInfo{Name: "test", Type: tt.typ}, profile)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAdvanced, c.AdvancedBlendEquationSupport())
		})
	}

	_, err := FromAdapter(gpucontext.AdapterInfo{Name: "bad"}, Profile{RefusedEquations: []string{"x"}})
	require.ErrorIs(t, err, ErrUnknownEquation)
}
