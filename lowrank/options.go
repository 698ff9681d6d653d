// SPDX-License-Identifier: MIT

// Package lowrank: functional configuration for geometry construction.
//
// Design goals (mirrors the module-wide option conventions):
//   - Deterministic behavior: no global state, options apply in order.
//   - Lazy validation: scale configuration errors surface at resolution
//     time (ScaleFactor), never as panics — callers match sentinels with
//     errors.Is.
//   - Immutability: options run only inside New, before the geometry is
//     published; WithAux copies its arrays.

package lowrank

import (
	"gonum.org/v1/gonum/mat"
)

// Option mutates a geometry under construction. Options are applied in the
// order given to New; the last write wins.
type Option func(*Geometry)

// WithBias sets the constant additive offset applied to every cost entry.
// The bias is stored unscaled; scale resolution multiplies it by the full
// scale factor (not its square root, since the bias is not split across
// two factors). Default: 0.
func WithBias(bias float64) Option {
	return func(g *Geometry) { g.bias = bias }
}

// WithScalePolicy selects a named cost-rescaling rule (ScaleMaxBound,
// ScaleMean, ...). The policy is resolved lazily: an unknown name yields
// geometry.ErrInvalidConfig and ScaleMaxCost yields
// geometry.ErrNotImplemented, both at the first call that needs the scale.
// Default: ScaleNone (identity).
func WithScalePolicy(policy ScalePolicy) Option {
	return func(g *Geometry) { g.policy = policy }
}

// WithScaleFactor fixes the scale to an explicit scalar, overriding any
// named policy. The factor must be positive and finite; violations surface
// as geometry.ErrInvalidConfig at resolution time.
func WithScaleFactor(factor float64) Option {
	return func(g *Geometry) {
		g.policy = ScaleFixed
		g.fixed = factor
	}
}

// WithAux attaches opaque auxiliary parameters (entropic epsilon, rounding
// options, ...) forwarded unexamined to whoever consumes the geometry.
// Arrays are copied; scalar parameters are conventionally passed as 1×1
// matrices. Aux participates in Flatten as differentiable leaves.
func WithAux(aux map[string]mat.Matrix) Option {
	return func(g *Geometry) {
		if len(aux) == 0 {
			return
		}
		g.aux = make(map[string]mat.Matrix, len(aux))
		for k, v := range aux {
			if v == nil {
				continue
			}
			g.aux[k] = mat.DenseCopyOf(v)
		}
	}
}
