// SPDX-License-Identifier: MIT
// Package geometry: generic dense fallback kernels. These are the O(n·m)
// reference paths every representation can delegate to when a structural
// shortcut is unavailable (non-linear entrywise transforms, tiny problems).

package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// checkApplyArgs validates the vector length against the axis convention.
// Returns the output length on success.
func checkApplyArgs(op string, n, m int, vec *mat.VecDense, axis Axis) (int, error) {
	if vec == nil {
		return 0, fmt.Errorf("%s: %w", op, ErrNilMatrix)
	}
	switch axis {
	case Axis0:
		if vec.Len() != n {
			return 0, fmt.Errorf("%s: vec length %d, want %d: %w", op, vec.Len(), n, ErrShapeMismatch)
		}
		return m, nil
	case Axis1:
		if vec.Len() != m {
			return 0, fmt.Errorf("%s: vec length %d, want %d: %w", op, vec.Len(), m, ErrShapeMismatch)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s: axis %d: %w", op, axis, ErrBadAxis)
	}
}

// ApplyToVec computes fn(c)·vec (axis 1) or fn(c)ᵗ·vec (axis 0) by full
// materialization: fn is applied entrywise to a working copy of c, then a
// single dense matrix-vector product is taken. Correct for arbitrary fn.
//
// Complexity: O(n·m) time and memory.
func ApplyToVec(c mat.Matrix, vec *mat.VecDense, axis Axis, fn EntryFn) (*mat.VecDense, error) {
	if c == nil {
		return nil, fmt.Errorf("ApplyToVec: %w", ErrNilMatrix)
	}
	n, m := c.Dims()
	outLen, err := checkApplyArgs("ApplyToVec", n, m, vec, axis)
	if err != nil {
		return nil, err
	}

	// Work on a copy so the caller's matrix is never mutated.
	work := mat.DenseCopyOf(c)
	if fn != nil {
		work.Apply(func(_, _ int, v float64) float64 { return fn(v) }, work)
	}

	out := mat.NewVecDense(outLen, nil)
	if axis == Axis0 {
		out.MulVec(work.T(), vec)
	} else {
		out.MulVec(work, vec)
	}
	return out, nil
}

// ApplySquare computes (c ⊙ c)·vec (axis per ApplyToVec convention) via the
// dense path: entrywise square, then multiply.
//
// Complexity: O(n·m) time and memory.
func ApplySquare(c mat.Matrix, vec *mat.VecDense, axis Axis) (*mat.VecDense, error) {
	return ApplyToVec(c, vec, axis, func(v float64) float64 { return v * v })
}
