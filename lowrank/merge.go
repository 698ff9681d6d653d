// SPDX-License-Identifier: MIT

// Package lowrank: merging two factored geometries. Because
// A₁·B₁ᵗ + A₂·B₂ᵗ = [A₁ A₂]·[B₁ B₂]ᵗ, the sum of two low-rank costs is
// itself low-rank with rank r₁+r₂ — no materialization needed.

package lowrank

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/otgeom/geometry"
)

// Add returns a new geometry whose cost matrix is the sum of g's and
// other's bilinear terms: the operands' effective (scaled) factors are
// concatenated along the rank axis, so each input's normalization is baked
// into the result and the merged geometry carries no scale policy of its
// own.
//
// Caller contract (preserved from the merge semantics this implements, not
// inferred away):
//   - biases are NOT combined — the merged geometry has bias 0; merge
//     unbiased operands or account for biases separately;
//   - auxiliary parameters are taken from g only; other's aux is ignored
//     without validation.
//
// Preconditions: identical shape (equal n and equal m), else
// geometry.ErrShapeMismatch.
func (g *Geometry) Add(other *Geometry) (*Geometry, error) {
	if other == nil {
		return nil, fmt.Errorf("lowrank.Add: %w", geometry.ErrNilMatrix)
	}
	n1, m1 := g.Shape()
	n2, m2 := other.Shape()
	if n1 != n2 || m1 != m2 {
		return nil, fmt.Errorf("lowrank.Add: shapes (%d,%d) and (%d,%d): %w",
			n1, m1, n2, m2, geometry.ErrShapeMismatch)
	}

	gf1, err := g.Factor1()
	if err != nil {
		return nil, err
	}
	gf2, err := g.Factor2()
	if err != nil {
		return nil, err
	}
	of1, err := other.Factor1()
	if err != nil {
		return nil, err
	}
	of2, err := other.Factor2()
	if err != nil {
		return nil, err
	}

	var f1, f2 mat.Dense
	f1.Augment(gf1, of1)
	f2.Augment(gf2, of2)
	return New(&f1, &f2, WithAux(g.aux))
}
