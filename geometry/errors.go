// SPDX-License-Identifier: MIT
// Package geometry: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the
// geometry and lowrank packages. All operations MUST return these sentinels
// and tests MUST check them via errors.Is. No operation panics on
// user-triggered error conditions.

package geometry

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "geometry: ..." for consistency and easy
// grepping across logs. Do not %w-wrap these sentinels when returning
// directly; if context is essential, wrap with fmt.Errorf("Op: %w", ErrX)
// at the outer boundary — callers still match via errors.Is.

var (
	// ErrShapeMismatch indicates incompatible dimensions between operands:
	// factor column counts differ at construction, merge operands differ in
	// shape, or a vector length does not match the selected axis.
	ErrShapeMismatch = errors.New("geometry: shape mismatch")

	// ErrBadAxis indicates an axis value other than Axis0 or Axis1.
	ErrBadAxis = errors.New("geometry: axis out of range")

	// ErrNilMatrix indicates that a nil matrix or vector was supplied.
	ErrNilMatrix = errors.New("geometry: nil matrix or vector")

	// ErrInvalidConfig indicates a configuration value that cannot be
	// interpreted (unknown scale-policy name, non-positive fixed scale).
	// Raised lazily at resolution time, never silently defaulted.
	ErrInvalidConfig = errors.New("geometry: invalid configuration")

	// ErrNotImplemented indicates a declared-but-unimplemented option
	// (currently the "max_cost" scale policy). Callers must not substitute
	// a default on this error.
	ErrNotImplemented = errors.New("geometry: not implemented")
)
