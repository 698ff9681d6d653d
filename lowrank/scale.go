// SPDX-License-Identifier: MIT

// Package lowrank: scale-policy resolution. The resolved scale is a pure,
// idempotent function of the raw factors and bias; it is recomputed on
// every call and never cached or traced as an optimizable quantity (it is
// deliberately excluded from the Flatten leaves — see flatten.go).

package lowrank

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/otgeom/geometry"
)

// ScalePolicy names a cost-rescaling rule applied uniformly to the factors
// (via square-root split) and to the bias (full factor).
type ScalePolicy string

const (
	// ScaleNone leaves the cost unscaled (scale factor 1).
	ScaleNone ScalePolicy = ""

	// ScaleFixed uses the explicit positive factor given via
	// WithScaleFactor.
	ScaleFixed ScalePolicy = "fixed"

	// ScaleMaxBound normalizes by an upper bound on any single entry of
	// A·Bᵗ + bias: scale = 1 / (max|A| · max|B| + |bias|). Cheap — no
	// materialization — and safe to compute outside gradient traces.
	ScaleMaxBound ScalePolicy = "max_bound"

	// ScaleMean normalizes by the mean cost entry, computed factored in
	// O((n+m)·r): mean = (1ᵗA)·(Bᵗ1)/(n·m) + bias.
	ScaleMean ScalePolicy = "mean"

	// ScaleMaxCost would normalize by the true maximum cost entry. It is
	// declared but unimplemented: no sub-O(n·m) algorithm exists for the
	// exact max of an implicit factored matrix in this design, so
	// resolution fails with geometry.ErrNotImplemented — never a silent
	// fallback.
	ScaleMaxCost ScalePolicy = "max_cost"
)

// ScaleFactor resolves the geometry's scale policy to a positive scalar.
//
// Resolution is lazy and pure: it fails on every call for a policy it
// cannot honor (ErrNotImplemented for ScaleMaxCost, ErrInvalidConfig for
// unknown names or a non-positive/non-finite result), and repeated calls
// on unchanged raw state return identical values.
func (g *Geometry) ScaleFactor() (float64, error) {
	switch g.policy {
	case ScaleNone:
		return 1.0, nil

	case ScaleFixed:
		return checkScale(g.fixed)

	case ScaleMaxBound:
		bound := maxAbs(g.factor1)*maxAbs(g.factor2) + math.Abs(g.bias)
		return checkScale(1.0 / bound)

	case ScaleMean:
		n, m := g.Shape()
		// (1ᵗA)·(Bᵗ1) reduces both factors to r-vectors of column sums,
		// giving the matrix mean without materializing A·Bᵗ.
		mean := mat.Dot(colSums(g.factor1), colSums(g.factor2))/float64(n*m) + g.bias
		return checkScale(1.0 / mean)

	case ScaleMaxCost:
		return 0, fmt.Errorf("lowrank.ScaleFactor: policy %q: %w",
			g.policy, geometry.ErrNotImplemented)

	default:
		return 0, fmt.Errorf("lowrank.ScaleFactor: policy %q: %w",
			g.policy, geometry.ErrInvalidConfig)
	}
}

// checkScale enforces the contract that a resolved scale is a positive,
// finite multiplier.
func checkScale(s float64) (float64, error) {
	if !(s > 0) || math.IsInf(s, 1) {
		return 0, fmt.Errorf("lowrank.ScaleFactor: resolved scale %v: %w",
			s, geometry.ErrInvalidConfig)
	}
	return s, nil
}

// maxAbs returns the largest absolute entry of a.
func maxAbs(a *mat.Dense) float64 {
	r, c := a.Dims()
	out := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := math.Abs(a.At(i, j)); v > out {
				out = v
			}
		}
	}
	return out
}

// colSums returns the vector of column sums of a, i.e. aᵗ·1.
func colSums(a *mat.Dense) *mat.VecDense {
	r, c := a.Dims()
	ones := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		ones.SetVec(i, 1)
	}
	out := mat.NewVecDense(c, nil)
	out.MulVec(a.T(), ones)
	return out
}
