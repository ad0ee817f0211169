// Package caps describes what the GPU backend can do for advanced blending.
//
// A Caps value is immutable and passed explicitly to the code that needs
// it. Build one with New and options, from a YAML profile, or from adapter
// information with FromAdapter.
package caps

import (
	"fmt"
	"strings"

	msaapath "github.com/gogpu/msaapath"
)

// BlendSupport is the level of blend equation support.
type BlendSupport uint8

const (
	// BlendBasic supports only the add/subtract equations.
	BlendBasic BlendSupport = iota
	// BlendAdvanced supports the advanced equations, but reading the
	// destination of overlapping draws needs a blend barrier in between.
	BlendAdvanced
	// BlendAdvancedCoherent supports the advanced equations without barriers.
	BlendAdvancedCoherent
)

func (s BlendSupport) String() string {
	switch s {
	case BlendBasic:
		return "basic"
	case BlendAdvanced:
		return "advanced"
	case BlendAdvancedCoherent:
		return "advanced_coherent"
	default:
		return fmt.Sprintf("BlendSupport(%d)", uint8(s))
	}
}

// Interaction is how shaders opt in to advanced blend equations.
type Interaction uint8

const (
	// InteractionNotSupported means advanced equations are unavailable.
	InteractionNotSupported Interaction = iota
	// InteractionAutomatic needs no shader declaration.
	InteractionAutomatic
	// InteractionGeneral needs one declaration enabling all equations.
	InteractionGeneral
	// InteractionSpecific needs a declaration for each equation used.
	InteractionSpecific
)

var interactionNames = [...]string{"not_supported", "automatic", "general", "specific"}

func (i Interaction) String() string {
	if int(i) < len(interactionNames) {
		return interactionNames[i]
	}
	return fmt.Sprintf("Interaction(%d)", uint8(i))
}

// parseInteraction accepts the names produced by Interaction.String.
func parseInteraction(name string) (Interaction, bool) {
	for i, n := range interactionNames {
		if n == name {
			return Interaction(i), true
		}
	}
	return InteractionNotSupported, false
}

// Caps is an immutable capability description.
type Caps struct {
	support     BlendSupport
	interaction Interaction
	refused     uint32 // bit per BlendEquation
}

// Option configures Caps.
type Option func(*Caps)

// WithAdvancedBlend enables advanced blend equations. coherent reports
// whether overlapping draws see each other's results without a barrier.
func WithAdvancedBlend(coherent bool) Option {
	return func(c *Caps) {
		c.support = BlendAdvanced
		if coherent {
			c.support = BlendAdvancedCoherent
		}
		if c.interaction == InteractionNotSupported {
			c.interaction = InteractionAutomatic
		}
	}
}

// WithInteraction sets how shaders enable advanced equations.
func WithInteraction(i Interaction) Option {
	return func(c *Caps) {
		c.interaction = i
	}
}

// WithRefusedEquations marks equations the driver advertises but that must
// not be used.
func WithRefusedEquations(eqs ...msaapath.BlendEquation) Option {
	return func(c *Caps) {
		for _, eq := range eqs {
			if eq >= 0 && eq < msaapath.EquationCount {
				c.refused |= 1 << uint(eq)
			}
		}
	}
}

// New returns basic capabilities modified by opts.
func New(opts ...Option) Caps {
	var c Caps
	for _, opt := range opts {
		opt(&c)
	}
	if c.support == BlendBasic {
		c.interaction = InteractionNotSupported
	}
	return c
}

// BlendSupport returns the blend equation support level.
func (c Caps) BlendSupport() BlendSupport { return c.support }

// AdvancedBlendEquationSupport reports whether any advanced equation exists.
func (c Caps) AdvancedBlendEquationSupport() bool { return c.support >= BlendAdvanced }

// AdvancedCoherentBlendEquationSupport reports whether advanced equations
// need no barriers between overlapping draws.
func (c Caps) AdvancedCoherentBlendEquationSupport() bool {
	return c.support == BlendAdvancedCoherent
}

// AdvBlendEqInteraction returns how shaders enable advanced equations.
func (c Caps) AdvBlendEqInteraction() Interaction { return c.interaction }

// MustEnableSpecificAdvBlendEqs reports whether shaders must declare each
// advanced equation they use.
func (c Caps) MustEnableSpecificAdvBlendEqs() bool {
	return c.interaction == InteractionSpecific
}

// RefusesEquation reports whether eq is on the refused list.
func (c Caps) RefusesEquation(eq msaapath.BlendEquation) bool {
	if eq < 0 || eq >= msaapath.EquationCount {
		return true
	}
	return c.refused&(1<<uint(eq)) != 0
}

// CanUseAdvancedBlendEquation reports whether eq is supported and not refused.
func (c Caps) CanUseAdvancedBlendEquation(eq msaapath.BlendEquation) bool {
	return c.AdvancedBlendEquationSupport() && eq.IsAdvanced() && !c.RefusesEquation(eq)
}

func (c Caps) String() string {
	var refused []string
	for eq := msaapath.BlendEquation(0); eq < msaapath.EquationCount; eq++ {
		if c.refused&(1<<uint(eq)) != 0 {
			refused = append(refused, eq.String())
		}
	}
	return fmt.Sprintf("blend=%v interaction=%v refused=[%s]", c.support, c.interaction, strings.Join(refused, ","))
}
