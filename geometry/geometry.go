// SPDX-License-Identifier: MIT
// Package geometry: the CostGeometry contract and entrywise-transform
// predicates shared by all cost representations.

package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Axis selects the reduction direction of an apply operation.
type Axis int

const (
	// Axis0 reduces over rows: the vector has length n (source side) and
	// the result is Cᵗ·v of length m.
	Axis0 Axis = iota

	// Axis1 reduces over columns: the vector has length m (target side)
	// and the result is C·v of length n.
	Axis1
)

// EntryFn is a scalar transform applied entrywise to a cost matrix before a
// product. A nil EntryFn is the identity.
type EntryFn func(float64) float64

// linearProbeTol bounds the residual accepted by the IsLinear probe.
const linearProbeTol = 1e-9

// linearProbePoints are the fixed abscissae the probe evaluates. They are
// chosen to reject affine offsets, even functions, and saturating curves.
var linearProbePoints = [...]float64{-1.0, 0.5, 2.0, 3.25}

// IsLinear reports whether fn behaves as a homogeneous linear map x ↦ k·x,
// the only class of entrywise transforms that commutes with a factored
// cost representation. A nil fn (identity) is linear.
//
// The check is a deterministic finite probe: fn must vanish at zero and
// match k·x at fixed probe points, with k = fn(1). A false negative only
// costs performance (the caller takes the dense path, which is always
// correct); a transform that fools the probe at every point is linear on
// the probe set and treated as such.
//
// Complexity: O(1) — six evaluations of fn.
func IsLinear(fn EntryFn) bool {
	if fn == nil {
		return true
	}
	if math.Abs(fn(0)) > linearProbeTol {
		return false
	}
	k := fn(1)
	for _, x := range linearProbePoints {
		want := k * x
		if math.Abs(fn(x)-want) > linearProbeTol*math.Max(1, math.Abs(want)) {
			return false
		}
	}
	return true
}

// CostGeometry is the contract every cost representation satisfies. Solvers
// are written against this interface only, so dense and factored geometries
// are interchangeable.
//
// Implementations must be immutable value types: every method is pure,
// returns freshly allocated results, and is safe for concurrent use.
type CostGeometry interface {
	// Shape returns the number of source points n and target points m.
	Shape() (n, m int)

	// CostMatrix materializes the full n×m cost matrix. For factored
	// representations this is O(n·m·r) work and O(n·m) memory — intended
	// for diagnostics and small problems only.
	CostMatrix() (*mat.Dense, error)

	// IsSymmetric reports whether the represented cost matrix is exactly
	// symmetric (checked, not assumed).
	IsSymmetric() bool

	// ApplyCostToVec applies fn(C) (or its transpose, per axis) to vec
	// without materializing C when the representation allows it.
	ApplyCostToVec(vec *mat.VecDense, axis Axis, fn EntryFn) (*mat.VecDense, error)

	// ApplySquareCost applies the entrywise square of C to vec.
	ApplySquareCost(vec *mat.VecDense, axis Axis) (*mat.VecDense, error)
}
