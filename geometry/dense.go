// SPDX-License-Identifier: MIT
// Package geometry: Dense is the reference CostGeometry backed by an
// explicit cost matrix. It exists both as the simple case for small
// problems and as the correctness baseline factored geometries fall back to.

package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dense is a cost geometry holding the full n×m cost matrix explicitly.
// Instances are immutable: the constructor copies its input and every
// accessor returns a fresh copy.
type Dense struct {
	c *mat.Dense // owned copy, never exposed directly
}

// compile-time contract check
var _ CostGeometry = (*Dense)(nil)

// NewDense wraps an explicit cost matrix in a geometry. The matrix is
// copied, so later mutation of c does not affect the geometry.
func NewDense(c mat.Matrix) (*Dense, error) {
	if c == nil {
		return nil, fmt.Errorf("geometry.NewDense: %w", ErrNilMatrix)
	}
	return &Dense{c: mat.DenseCopyOf(c)}, nil
}

// Shape returns the dimensions (n, m) of the cost matrix.
func (d *Dense) Shape() (n, m int) {
	return d.c.Dims()
}

// CostMatrix returns a copy of the cost matrix. The error is always nil for
// a dense geometry; the signature matches the CostGeometry contract, where
// factored representations may fail lazily.
func (d *Dense) CostMatrix() (*mat.Dense, error) {
	return mat.DenseCopyOf(d.c), nil
}

// IsSymmetric reports whether the cost matrix is square and exactly equal
// to its transpose.
func (d *Dense) IsSymmetric() bool {
	n, m := d.c.Dims()
	return n == m && mat.Equal(d.c, d.c.T())
}

// ApplyCostToVec applies fn(C) (or its transpose, per axis) to vec via the
// generic dense kernel. Complexity: O(n·m).
func (d *Dense) ApplyCostToVec(vec *mat.VecDense, axis Axis, fn EntryFn) (*mat.VecDense, error) {
	return ApplyToVec(d.c, vec, axis, fn)
}

// ApplySquareCost applies the entrywise square of C to vec.
// Complexity: O(n·m).
func (d *Dense) ApplySquareCost(vec *mat.VecDense, axis Axis) (*mat.VecDense, error) {
	return ApplySquare(d.c, vec, axis)
}
