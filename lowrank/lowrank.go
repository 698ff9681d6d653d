// SPDX-License-Identifier: MIT

// Package lowrank: the Geometry value type, construction, and the derived
// (scaled) accessors. All derived quantities are recomputed from raw state
// on every call — the type stores nothing it can derive, so immutability
// alone guarantees freshness.

package lowrank

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/otgeom/geometry"
)

// Geometry is a low-rank factored cost geometry C = A·Bᵗ + bias.
// Instances are immutable value objects: the constructor copies its inputs
// and no method mutates the receiver.
type Geometry struct {
	factor1 *mat.Dense // raw A, shape [n, r], unscaled
	factor2 *mat.Dense // raw B, shape [m, r], unscaled
	bias    float64    // unscaled additive offset
	policy  ScalePolicy
	fixed   float64               // explicit scale, meaningful when policy == ScaleFixed
	aux     map[string]mat.Matrix // opaque pass-through configuration
}

// compile-time contract check
var _ geometry.CostGeometry = (*Geometry)(nil)

// New constructs a low-rank geometry from two factor matrices and options.
//
// Preconditions (ErrShapeMismatch on violation): factor1 is [n, r] and
// factor2 is [m, r] with the same r ≥ 1. Both factors are copied, so the
// caller may keep mutating its own matrices afterwards.
//
// Scale configuration is validated lazily at resolution time, not here
// (see ScaleFactor).
func New(factor1, factor2 mat.Matrix, opts ...Option) (*Geometry, error) {
	if factor1 == nil || factor2 == nil {
		return nil, fmt.Errorf("lowrank.New: %w", geometry.ErrNilMatrix)
	}
	_, r1 := factor1.Dims()
	_, r2 := factor2.Dims()
	if r1 != r2 || r1 < 1 {
		return nil, fmt.Errorf("lowrank.New: factor ranks %d and %d: %w",
			r1, r2, geometry.ErrShapeMismatch)
	}

	g := &Geometry{
		factor1: mat.DenseCopyOf(factor1),
		factor2: mat.DenseCopyOf(factor2),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Shape returns the number of source points n and target points m.
func (g *Geometry) Shape() (n, m int) {
	n, _ = g.factor1.Dims()
	m, _ = g.factor2.Dims()
	return n, m
}

// CostRank returns r, the number of columns shared by both factors.
func (g *Geometry) CostRank() int {
	_, r := g.factor1.Dims()
	return r
}

// IsSymmetric reports whether n == m and the raw factors are elementwise
// equal — checked, not assumed.
func (g *Geometry) IsSymmetric() bool {
	n, m := g.Shape()
	return n == m && mat.Equal(g.factor1, g.factor2)
}

// Factor1 returns the effective (scaled) first factor √s·A, where s is the
// resolved scale. Splitting s as √s on each factor makes their product
// scale by s exactly once.
func (g *Geometry) Factor1() (*mat.Dense, error) {
	return g.scaledFactor(g.factor1)
}

// Factor2 returns the effective (scaled) second factor √s·B.
func (g *Geometry) Factor2() (*mat.Dense, error) {
	return g.scaledFactor(g.factor2)
}

func (g *Geometry) scaledFactor(raw *mat.Dense) (*mat.Dense, error) {
	s, err := g.ScaleFactor()
	if err != nil {
		return nil, err
	}
	out := mat.DenseCopyOf(raw)
	out.Scale(math.Sqrt(s), out)
	return out, nil
}

// Bias returns the effective (scaled) bias s·bias. The bias carries the
// full scale factor: it is a direct summand of the cost, not half of a
// product.
func (g *Geometry) Bias() (float64, error) {
	s, err := g.ScaleFactor()
	if err != nil {
		return 0, err
	}
	return g.bias * s, nil
}

// Aux returns a copy of the opaque auxiliary parameters attached at
// construction. The arrays themselves are the geometry's own copies;
// treat them as read-only.
func (g *Geometry) Aux() map[string]mat.Matrix {
	if len(g.aux) == 0 {
		return nil
	}
	out := make(map[string]mat.Matrix, len(g.aux))
	for k, v := range g.aux {
		out[k] = v
	}
	return out
}

// CostMatrix materializes the full scaled cost matrix
// (√s·A)·(√s·B)ᵗ + s·bias. O(n·m·r) time, O(n·m) memory — intended for
// diagnostics and small problems; solvers should prefer the apply kernels.
func (g *Geometry) CostMatrix() (*mat.Dense, error) {
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

	n, m := g.Shape()
	out := mat.NewDense(n, m, nil)
	out.Mul(c1, c2.T())
	if b != 0 {
		out.Apply(func(_, _ int, v float64) float64 { return v + b }, out)
	}
	return out, nil
}
