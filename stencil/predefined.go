package stencil

// Unused leaves the user bits alone. Without a clip it resolves to a
// disabled stencil; with one, fragments outside the clip are still
// rejected.
var Unused = Static(Face{
	Test:     TestAlwaysIfInClip,
	TestMask: 0xffff,
	PassOp:   OpKeep,
	FailOp:   OpKeep,
})

// Even-odd fill: every covering triangle toggles the stencil, then the
// cover pass paints where an odd count remains and clears it.
var (
	EOStencilPass = Static(Face{
		Ref:       0xffff,
		Test:      TestAlwaysIfInClip,
		TestMask:  0xffff,
		PassOp:    OpInvert,
		FailOp:    OpKeep,
		WriteMask: 0xffff,
	})

	EOColorPass = Static(Face{
		Ref:       0x0000,
		Test:      TestNotEqual,
		TestMask:  0xffff,
		PassOp:    OpZero,
		FailOp:    OpZero,
		WriteMask: 0xffff,
	})

	InvEOColorPass = Static(Face{
		Ref:       0x0000,
		Test:      TestEqualIfInClip,
		TestMask:  0xffff,
		PassOp:    OpZero,
		FailOp:    OpZero,
		WriteMask: 0xffff,
	})
)

// Nonzero fill: front faces increment and back faces decrement with wrap,
// then the cover pass paints where the winding count is non-zero.
var (
	WindStencilSeparateWithWrap = Separate(
		Face{
			Ref:       0xffff,
			Test:      TestAlwaysIfInClip,
			TestMask:  0xffff,
			PassOp:    OpIncWrap,
			FailOp:    OpKeep,
			WriteMask: 0xffff,
		},
		Face{
			Ref:       0xffff,
			Test:      TestAlwaysIfInClip,
			TestMask:  0xffff,
			PassOp:    OpDecWrap,
			FailOp:    OpKeep,
			WriteMask: 0xffff,
		},
	)

	WindColorPass = Static(Face{
		Ref:       0x0000,
		Test:      TestLessIfInClip,
		TestMask:  0xffff,
		PassOp:    OpZero,
		FailOp:    OpZero,
		WriteMask: 0xffff,
	})

	InvWindColorPass = Static(Face{
		Ref:       0x0000,
		Test:      TestEqualIfInClip,
		TestMask:  0xffff,
		PassOp:    OpZero,
		FailOp:    OpZero,
		WriteMask: 0xffff,
	})
)

// DirectToStencil writes a convex shape straight into the stencil.
var DirectToStencil = Static(Face{
	Ref:       0x0000,
	Test:      TestAlwaysIfInClip,
	TestMask:  0xffff,
	PassOp:    OpIncMaybeClamp,
	FailOp:    OpZero,
	WriteMask: 0xffff,
})
