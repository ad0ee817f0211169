package caps

import (
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/gpucontext"
	"gopkg.in/yaml.v3"

	msaapath "github.com/gogpu/msaapath"
)

// Errors returned by profile parsing.
var (
	ErrUnknownEquation    = errors.New("caps: unknown blend equation")
	ErrUnknownInteraction = errors.New("caps: unknown interaction")
)

// Profile is the on-disk form of a capability description:
//
//	advanced_blend: true
//	coherent: false
//	interaction: general
//	refused_equations: [hsl_hue, hsl_color]
type Profile struct {
	AdvancedBlend    bool     `yaml:"advanced_blend"`
	Coherent         bool     `yaml:"coherent"`
	Interaction      string   `yaml:"interaction,omitempty"`
	RefusedEquations []string `yaml:"refused_equations,omitempty"`
}

// ParseProfile decodes a YAML profile.
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("caps: parse profile: %w", err)
	}
	return p, nil
}

// LoadProfile decodes a YAML profile from r.
func LoadProfile(r io.Reader) (Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("caps: load profile: %w", err)
	}
	return p, nil
}

// Caps converts the profile to a Caps value.
func (p Profile) Caps() (Caps, error) {
	var opts []Option
	if p.AdvancedBlend {
		opts = append(opts, WithAdvancedBlend(p.Coherent))
		if p.Interaction != "" {
			i, ok := parseInteraction(p.Interaction)
			if !ok {
				return Caps{}, fmt.Errorf("%w: %q", ErrUnknownInteraction, p.Interaction)
			}
			opts = append(opts, WithInteraction(i))
		}
	}
	for _, name := range p.RefusedEquations {
		eq, ok := msaapath.ParseBlendEquation(name)
		if !ok {
			return Caps{}, fmt.Errorf("%w: %q", ErrUnknownEquation, name)
		}
		opts = append(opts, WithRefusedEquations(eq))
	}
	return New(opts...), nil
}

// Marshal encodes the profile as YAML.
func (p Profile) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// FromAdapter derives capabilities for an adapter. Software and unknown
// adapters blend in the shader whatever the profile says, since their
// advanced equations are emulated and slower than a destination read.
func FromAdapter(info gpucontext.AdapterInfo, p Profile) (Caps, error) {
	switch info.Type {
	case gpucontext.AdapterTypeSoftware, gpucontext.AdapterTypeUnknown:
		p.AdvancedBlend = false
	}
	c, err := p.Caps()
	if err != nil {
		return Caps{}, fmt.Errorf("caps: adapter %q: %w", info.Name, err)
	}
	msaapath.Logger().Debug("caps: adapter capabilities",
		"adapter", info.Name, "type", info.Type.String(), "caps", c.String())
	return c, nil
}
