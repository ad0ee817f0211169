// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNilDevice is returned when a target is created without a device.
	ErrNilDevice = errors.New("native: HAL device is nil")

	// ErrNilQueue is returned when a target is created without a queue.
	ErrNilQueue = errors.New("native: HAL queue is nil")

	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("native: invalid dimensions")

	// ErrNoHALProvider is returned when a device provider does not expose
	// HAL handles.
	ErrNoHALProvider = errors.New("native: provider does not expose HAL types")

	// ErrHardwareBlend is returned for capabilities claiming advanced blend
	// equations, which WebGPU cannot express.
	ErrHardwareBlend = errors.New("native: hardware advanced blend equations are not available")

	// ErrArenaExhausted is returned by Flush when draws were dropped because
	// the vertex or index arenas reached their limit.
	ErrArenaExhausted = errors.New("native: staging arena exhausted")

	// ErrShaderCompile is returned when generated WGSL fails to compile.
	ErrShaderCompile = errors.New("native: shader compilation failed")

	// ErrReleased is returned when a released target is used.
	ErrReleased = errors.New("native: target released")
)
