package stencil

import "github.com/gogpu/gputypes"

// DefaultBits is the stencil depth of a Depth24PlusStencil8 attachment.
const DefaultBits = 8

// FaceState is resolved hardware state for one winding.
type FaceState struct {
	Compare   gputypes.CompareFunction
	PassOp    gputypes.StencilOperation
	FailOp    gputypes.StencilOperation
	Ref       uint32
	TestMask  uint32
	WriteMask uint32
}

// State is resolved hardware stencil state.
type State struct {
	Enabled bool
	Front   FaceState
	Back    FaceState
}

// Resolve maps the user settings onto a stencil buffer with the given
// number of bits. When hasClip is set the top bit holds the clip and the
// "IfInClip" tests include it. Settings that can neither reject a fragment
// nor write resolve to a disabled state.
func (s Settings) Resolve(hasClip bool, bits int) State {
	if !s.enabled {
		s = Unused
	}
	if s.front.noop(hasClip) && s.back.noop(hasClip) {
		return State{
			Front: disabledFace,
			Back:  disabledFace,
		}
	}
	return State{
		Enabled: true,
		Front:   resolveFace(s.front, hasClip, bits),
		Back:    resolveFace(s.back, hasClip, bits),
	}
}

var disabledFace = FaceState{
	Compare: gputypes.CompareFunctionAlways,
	PassOp:  gputypes.StencilOperationKeep,
	FailOp:  gputypes.StencilOperationKeep,
}

func resolveFace(f Face, hasClip bool, bits int) FaceState {
	clipBit := uint32(1) << (bits - 1)
	userMask := clipBit - 1

	out := FaceState{
		Compare:   f.Test.compare(),
		PassOp:    f.PassOp.raw(),
		FailOp:    f.FailOp.raw(),
		WriteMask: uint32(f.WriteMask) & userMask,
	}

	switch {
	case !hasClip || !f.Test.InClip():
		out.TestMask = uint32(f.TestMask) & userMask
	case f.Test != TestAlwaysIfInClip:
		out.TestMask = clipBit | uint32(f.TestMask)&userMask
	default:
		// Only the clip bit matters.
		out.TestMask = clipBit
		out.Compare = gputypes.CompareFunctionEqual
	}

	out.Ref = (clipBit | uint32(f.Ref)) & (out.TestMask | out.WriteMask)
	return out
}
