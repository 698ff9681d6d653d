// SPDX-License-Identifier: MIT

// Package lowrank: the apply kernels. These are the operations an iterative
// dual-ascent solver hits in its inner loop, so the factored fast paths
// matter: they replace O(n·m) products with O((n+m)·r) ones whenever the
// algebra permits.

package lowrank

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/otgeom/geometry"
)

// ApplyCostToVec applies fn(C) (axis 1) or fn(C)ᵗ (axis 0) to vec.
//
// Fast path — fn nil or linear (geometry.IsLinear): the factored identity
//
//	fn(C)·v = c1·(fn(c2)ᵗ·v) + fn(bias)·Σv
//
// holds because a linear fn commutes with the factored sum, costing two
// thin matrix-vector products, O((n+m)·r).
//
// Slow path — fn non-linear: fn(A·Bᵗ) has no factored form, so the cost
// matrix is materialized and the generic dense kernel runs, O(n·m) but
// correct for arbitrary fn.
func (g *Geometry) ApplyCostToVec(vec *mat.VecDense, axis geometry.Axis, fn geometry.EntryFn) (*mat.VecDense, error) {
	n, m := g.Shape()
	if _, err := checkVec("lowrank.ApplyCostToVec", n, m, vec, axis); err != nil {
		return nil, err
	}

	if fn != nil && !geometry.IsLinear(fn) {
		cm, err := g.CostMatrix()
		if err != nil {
			return nil, err
		}
		return geometry.ApplyToVec(cm, vec, axis, fn)
	}
	return g.applyFactored(vec, axis, fn)
}

// applyFactored is the O((n+m)·r) kernel. Caller guarantees vec/axis are
// valid and fn (if any) is linear.
func (g *Geometry) applyFactored(vec *mat.VecDense, axis geometry.Axis, fn geometry.EntryFn) (*mat.VecDense, error) {
	c1, err := g.Factor1()
	if err != nil {
		return nil, err
	}
	c2, err := g.Factor2()
	if err != nil {
		return nil, err
	}
	b, err := g.Bias()
	if err != nil {
		return nil, err
	}

	// Axis0 reduces over rows: out = B·(Aᵗ·v) = Cᵗ·v. Swap roles so the
	// same two products serve both orientations.
	if axis == geometry.Axis0 {
		c1, c2 = c2, c1
	}
	if fn != nil {
		c2.Apply(func(_, _ int, v float64) float64 { return fn(v) }, c2)
		b = fn(b)
	}

	r := g.CostRank()
	inner := mat.NewVecDense(r, nil)
	inner.MulVec(c2.T(), vec)

	outLen, _ := c1.Dims()
	out := mat.NewVecDense(outLen, nil)
	out.MulVec(c1, inner)

	if b != 0 {
		// The bias contributes b·Σv to every output coordinate.
		floats.AddConst(b*mat.Sum(vec), out.RawVector().Data)
	}
	return out, nil
}

// ApplySquareCost applies the entrywise square of the cost matrix to vec.
//
// Two strategies, chosen per call from the current shape and rank:
//   - dense, O(n·m): materialize, square entrywise, multiply;
//   - factored, O((n+m)·r²): the entrywise identity
//     (A·Bᵗ)⊙(A·Bᵗ) = (A⊛A)·(B⊛B)ᵗ — ⊛ the column-wise outer-product
//     expansion — makes the squared cost itself a rank-r² geometry, which
//     is then applied linearly.
//
// The factored strategy covers the bilinear term only: the bias is dropped
// in the augmented construction, so for geometries with bias ≠ 0 only the
// dense branch is exact. Callers squaring biased costs should keep
// n·m < (n+m)·r² or fold the bias into the factors themselves.
func (g *Geometry) ApplySquareCost(vec *mat.VecDense, axis geometry.Axis) (*mat.VecDense, error) {
	n, m := g.Shape()
	if _, err := checkVec("lowrank.ApplySquareCost", n, m, vec, axis); err != nil {
		return nil, err
	}

	r := g.CostRank()
	if n*m < (n+m)*r*r {
		cm, err := g.CostMatrix()
		if err != nil {
			return nil, err
		}
		return geometry.ApplySquare(cm, vec, axis)
	}

	c1, err := g.Factor1()
	if err != nil {
		return nil, err
	}
	c2, err := g.Factor2()
	if err != nil {
		return nil, err
	}
	// The augmented geometry is already scaled (built from effective
	// factors), so it carries no policy; it is transient and consumed by a
	// single linear apply.
	squared, err := New(outerExpand(c1), outerExpand(c2))
	if err != nil {
		return nil, err
	}
	return squared.ApplyCostToVec(vec, axis, nil)
}

// ApplyFactor1 multiplies the scaled first factor by vec: √s·A·v for
// Axis0 (v of length r), (√s·A)ᵗ·v for Axis1 (v of length n). Used by
// solver variants that work on the factor algebra directly.
func (g *Geometry) ApplyFactor1(vec *mat.VecDense, axis geometry.Axis) (*mat.VecDense, error) {
	c1, err := g.Factor1()
	if err != nil {
		return nil, err
	}
	return mulFactor("lowrank.ApplyFactor1", c1, vec, axis)
}

// ApplyFactor2 multiplies the scaled second factor by vec: √s·B·v for
// Axis0 (v of length r), (√s·B)ᵗ·v for Axis1 (v of length m).
func (g *Geometry) ApplyFactor2(vec *mat.VecDense, axis geometry.Axis) (*mat.VecDense, error) {
	c2, err := g.Factor2()
	if err != nil {
		return nil, err
	}
	return mulFactor("lowrank.ApplyFactor2", c2, vec, axis)
}

// mulFactor applies a single factor (Axis0) or its transpose (Axis1).
func mulFactor(op string, f *mat.Dense, vec *mat.VecDense, axis geometry.Axis) (*mat.VecDense, error) {
	if vec == nil {
		return nil, fmt.Errorf("%s: %w", op, geometry.ErrNilMatrix)
	}
	rows, cols := f.Dims()
	switch axis {
	case geometry.Axis0:
		if vec.Len() != cols {
			return nil, fmt.Errorf("%s: vec length %d, want %d: %w",
				op, vec.Len(), cols, geometry.ErrShapeMismatch)
		}
		out := mat.NewVecDense(rows, nil)
		out.MulVec(f, vec)
		return out, nil
	case geometry.Axis1:
		if vec.Len() != rows {
			return nil, fmt.Errorf("%s: vec length %d, want %d: %w",
				op, vec.Len(), rows, geometry.ErrShapeMismatch)
		}
		out := mat.NewVecDense(cols, nil)
		out.MulVec(f.T(), vec)
		return out, nil
	default:
		return nil, fmt.Errorf("%s: axis %d: %w", op, axis, geometry.ErrBadAxis)
	}
}

// checkVec validates vec against the geometry's shape and the axis
// convention; returns the output length.
func checkVec(op string, n, m int, vec *mat.VecDense, axis geometry.Axis) (int, error) {
	if vec == nil {
		return 0, fmt.Errorf("%s: %w", op, geometry.ErrNilMatrix)
	}
	switch axis {
	case geometry.Axis0:
		if vec.Len() != n {
			return 0, fmt.Errorf("%s: vec length %d, want %d: %w",
				op, vec.Len(), n, geometry.ErrShapeMismatch)
		}
		return m, nil
	case geometry.Axis1:
		if vec.Len() != m {
			return 0, fmt.Errorf("%s: vec length %d, want %d: %w",
				op, vec.Len(), m, geometry.ErrShapeMismatch)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s: axis %d: %w", op, axis, geometry.ErrBadAxis)
	}
}

// outerExpand maps a [rows, r] factor F to the [rows, r²] matrix whose
// (i, k·r+l) entry is F[i,k]·F[i,l] — the row-wise outer-product expansion
// underlying the squared-cost identity.
func outerExpand(f *mat.Dense) *mat.Dense {
	rows, r := f.Dims()
	out := mat.NewDense(rows, r*r, nil)
	for i := 0; i < rows; i++ {
		for k := 0; k < r; k++ {
			fik := f.At(i, k)
			for l := 0; l < r; l++ {
				out.Set(i, k*r+l, fik*f.At(i, l))
			}
		}
	}
	return out
}
