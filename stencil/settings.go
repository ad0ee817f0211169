// Package stencil describes stencil-buffer state for path rendering and
// sequences the stencil and cover passes a fill needs.
//
// User settings are expressed against the user bits of the stencil buffer.
// The top bit belongs to the clip; tests with an "IfInClip" variant also
// require that bit when a stencil clip is active. Resolve turns user
// settings into the raw hardware state for a given clip configuration.
package stencil

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Test is a stencil comparison. Comparisons put the reference on the left:
// TestLess passes when ref < stencil.
type Test uint8

const (
	TestAlwaysIfInClip Test = iota
	TestEqualIfInClip
	TestLessIfInClip
	TestLEqualIfInClip

	TestAlways
	TestNever
	TestGreater
	TestGEqual
	TestLess
	TestLEqual
	TestEqual
	TestNotEqual
)

// lastClippedTest is the last test that consults the clip bit.
const lastClippedTest = TestLEqualIfInClip

var testNames = [...]string{
	"AlwaysIfInClip", "EqualIfInClip", "LessIfInClip", "LEqualIfInClip",
	"Always", "Never", "Greater", "GEqual", "Less", "LEqual", "Equal", "NotEqual",
}

func (t Test) String() string {
	if int(t) < len(testNames) {
		return testNames[t]
	}
	return fmt.Sprintf("Test(%d)", uint8(t))
}

// InClip reports whether the test also requires the clip bit.
func (t Test) InClip() bool { return t <= lastClippedTest }

func (t Test) compare() gputypes.CompareFunction {
	switch t {
	case TestAlwaysIfInClip, TestAlways:
		return gputypes.CompareFunctionAlways
	case TestEqualIfInClip, TestEqual:
		return gputypes.CompareFunctionEqual
	case TestLessIfInClip, TestLess:
		return gputypes.CompareFunctionLess
	case TestLEqualIfInClip, TestLEqual:
		return gputypes.CompareFunctionLessEqual
	case TestNever:
		return gputypes.CompareFunctionNever
	case TestGreater:
		return gputypes.CompareFunctionGreater
	case TestGEqual:
		return gputypes.CompareFunctionGreaterEqual
	case TestNotEqual:
		return gputypes.CompareFunctionNotEqual
	default:
		panic(fmt.Sprintf("stencil: unknown test %d", uint8(t)))
	}
}

// Op is the update applied to the user bits when a test passes or fails.
type Op uint8

const (
	OpKeep Op = iota
	OpZero
	OpReplace
	OpInvert
	OpIncWrap
	OpDecWrap
	// OpIncMaybeClamp increments without ever carrying into the clip bit.
	OpIncMaybeClamp
	// OpDecMaybeClamp decrements without ever borrowing from the clip bit.
	OpDecMaybeClamp
)

var opNames = [...]string{"Keep", "Zero", "Replace", "Invert", "IncWrap", "DecWrap", "IncMaybeClamp", "DecMaybeClamp"}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

func (o Op) raw() gputypes.StencilOperation {
	switch o {
	case OpKeep:
		return gputypes.StencilOperationKeep
	case OpZero:
		return gputypes.StencilOperationZero
	case OpReplace:
		return gputypes.StencilOperationReplace
	case OpInvert:
		return gputypes.StencilOperationInvert
	case OpIncWrap:
		return gputypes.StencilOperationIncrementWrap
	case OpDecWrap:
		return gputypes.StencilOperationDecrementWrap
	case OpIncMaybeClamp:
		return gputypes.StencilOperationIncrementClamp
	case OpDecMaybeClamp:
		return gputypes.StencilOperationDecrementClamp
	default:
		panic(fmt.Sprintf("stencil: unknown op %d", uint8(o)))
	}
}

// Face is the stencil configuration for one polygon winding.
type Face struct {
	Ref       uint16
	Test      Test
	TestMask  uint16
	PassOp    Op
	FailOp    Op
	WriteMask uint16
}

// Settings is a complete user stencil configuration. The zero value
// behaves as Unused.
type Settings struct {
	front, back Face
	enabled     bool
}

// Static returns settings that use face for both windings.
func Static(face Face) Settings {
	return Settings{front: face, back: face, enabled: true}
}

// Separate returns settings with distinct front and back faces.
func Separate(front, back Face) Settings {
	return Settings{front: front, back: back, enabled: true}
}

// Front returns the front-face configuration.
func (s Settings) Front() Face { return s.front }

// Back returns the back-face configuration.
func (s Settings) Back() Face { return s.back }

// IsUnused reports whether the settings pass every fragment in the clip
// and write no user bits.
func (s Settings) IsUnused() bool { return !s.enabled || s == Unused }

// IsTwoSided reports whether the windings are treated differently.
func (s Settings) IsTwoSided() bool { return s.enabled && s.front != s.back }

// noop reports whether the face neither rejects fragments nor changes the
// user bits.
func (f Face) noop(hasClip bool) bool {
	passes := f.Test == TestAlways || (f.Test == TestAlwaysIfInClip && !hasClip)
	return passes && (f.WriteMask == 0 || (f.PassOp == OpKeep && f.FailOp == OpKeep))
}

// String formats the settings for debug output.
func (s Settings) String() string {
	if s.IsUnused() {
		return "Unused"
	}
	if !s.IsTwoSided() {
		return formatFace(s.front)
	}
	return "front " + formatFace(s.front) + " back " + formatFace(s.back)
}

func formatFace(f Face) string {
	return fmt.Sprintf("{%v ref=%#x mask=%#x pass=%v fail=%v write=%#x}",
		f.Test, f.Ref, f.TestMask, f.PassOp, f.FailOp, f.WriteMask)
}
