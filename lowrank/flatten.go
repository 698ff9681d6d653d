// SPDX-License-Identifier: MIT

// Package lowrank: the leaf/static decomposition consumed by external
// gradient engines and tree-processing frameworks. The split is explicit
// and documented rather than reflective: numeric arrays eligible for
// differentiation and device placement go into the ordered leaf sequence,
// everything that only participates in structural identity goes into
// Static.
//
// The resolved scale never appears among the leaves: it is a normalization
// constant recomputed from raw state after reconstruction, so an engine
// differentiating through the leaves never sees it as a traced input. This
// is the gradient-stop boundary of the bounded scale policies, realized
// structurally.

package lowrank

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/otgeom/geometry"
)

// Static is the non-differentiable remainder of a flattened geometry. Two
// geometries with equal Static and behaviorally equal leaves are
// interchangeable.
type Static struct {
	// Bias is the raw (unscaled) additive offset.
	Bias float64
	// Policy is the scale policy name; ScaleFixed pairs with Fixed.
	Policy ScalePolicy
	// Fixed is the explicit scale factor, meaningful when Policy is
	// ScaleFixed.
	Fixed float64
	// AuxKeys records the names of the auxiliary leaves, in the exact
	// order they appear after the two factors in the leaf sequence.
	AuxKeys []string
}

// Flatten decomposes g into an ordered sequence of numeric leaves and its
// static metadata. Leaves are, in order: raw factor1, raw factor2, then
// the auxiliary arrays in ascending key order (recorded in
// Static.AuxKeys). All leaves are fresh copies; mutating them does not
// affect g.
func (g *Geometry) Flatten() ([]mat.Matrix, Static) {
	keys := make([]string, 0, len(g.aux))
	for k := range g.aux {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	leaves := make([]mat.Matrix, 0, 2+len(keys))
	leaves = append(leaves, mat.DenseCopyOf(g.factor1), mat.DenseCopyOf(g.factor2))
	for _, k := range keys {
		leaves = append(leaves, mat.DenseCopyOf(g.aux[k]))
	}

	return leaves, Static{
		Bias:    g.bias,
		Policy:  g.policy,
		Fixed:   g.fixed,
		AuxKeys: keys,
	}
}

// Unflatten rebuilds a geometry from a leaf sequence and static metadata
// produced by Flatten (or by an engine that transformed the leaves). The
// result is behaviorally identical to the source geometry when the leaves
// are unchanged: same shape, rank, scale resolution, and cost matrix.
//
// The leaf sequence must contain exactly 2+len(static.AuxKeys) non-nil
// entries in Flatten order; violations yield geometry.ErrShapeMismatch or
// geometry.ErrNilMatrix.
func Unflatten(static Static, leaves []mat.Matrix) (*Geometry, error) {
	if len(leaves) != 2+len(static.AuxKeys) {
		return nil, fmt.Errorf("lowrank.Unflatten: %d leaves, want %d: %w",
			len(leaves), 2+len(static.AuxKeys), geometry.ErrShapeMismatch)
	}
	for i, leaf := range leaves {
		if leaf == nil {
			return nil, fmt.Errorf("lowrank.Unflatten: leaf %d: %w",
				i, geometry.ErrNilMatrix)
		}
	}

	opts := []Option{WithBias(static.Bias)}
	if static.Policy == ScaleFixed {
		opts = append(opts, WithScaleFactor(static.Fixed))
	} else if static.Policy != ScaleNone {
		opts = append(opts, WithScalePolicy(static.Policy))
	}
	if len(static.AuxKeys) > 0 {
		aux := make(map[string]mat.Matrix, len(static.AuxKeys))
		for i, k := range static.AuxKeys {
			aux[k] = leaves[2+i]
		}
		opts = append(opts, WithAux(aux))
	}

	return New(leaves[0], leaves[1], opts...)
}
