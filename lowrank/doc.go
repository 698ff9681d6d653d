// SPDX-License-Identifier: MIT

// Package lowrank implements the low-rank factored cost geometry
//
//	C = A·Bᵗ + bias,   A ∈ ℝ^{n×r},  B ∈ ℝ^{m×r},  r ≪ min(n, m),
//
// exposing the exact operational contract of a dense cost matrix
// (geometry.CostGeometry) while never materializing the n×m product unless
// correctness demands it.
//
// Algorithm Outline:
//
//  1. Construction wraps two factor matrices plus an optional bias, scale
//     policy, and opaque auxiliary parameters. Factors must share a column
//     count r ≥ 1 (ErrShapeMismatch otherwise). Instances are immutable.
//  2. Scale resolution (lazy, per call) turns the policy into a positive
//     scalar s; the effective geometry is (√s·A)·(√s·B)ᵗ + s·bias, so the
//     product scales by s exactly once.
//  3. ApplyCostToVec computes fn(C)·v (or the transpose) through the
//     factored identity c1·(c2ᵗ·v) + fn(bias)·Σv when fn is absent or
//     linear — O((n+m)·r) — and falls back to the dense kernel otherwise.
//  4. ApplySquareCost chooses per call between the dense O(n·m) path and an
//     augmented rank-r² geometry built from entrywise factor outer
//     products, costing O((n+m)·r²); the cheaper side of
//     n·m ≶ (n+m)·r² wins.
//  5. Add concatenates two geometries' scaled factors along the rank axis,
//     yielding a rank r₁+r₂ geometry whose cost matrix is the sum of the
//     operands' (biases excluded — see Add).
//  6. Flatten/Unflatten split a geometry into differentiable numeric
//     leaves and static metadata for external gradient engines, and
//     rebuild a behaviorally identical geometry from that split.
//
// Complexity:
//
//	ApplyCostToVec  — O((n+m)·r) fast path, O(n·m) fallback
//	ApplySquareCost — min(O(n·m), O((n+m)·r²)), chosen per call
//	CostMatrix      — O(n·m·r) (diagnostics / small problems)
//
// Errors (all sentinels live in package geometry):
//   - geometry.ErrShapeMismatch  — factor rank mismatch, merge shape
//     mismatch, vector/axis length mismatch.
//   - geometry.ErrInvalidConfig  — unknown scale-policy name, non-positive
//     or non-finite resolved scale.
//   - geometry.ErrNotImplemented — the "max_cost" scale policy.
//   - geometry.ErrNilMatrix      — nil factors, vectors, or operands.
//
// Everything here is a pure function of immutable inputs: no locks, no
// caches, safe for concurrent use and for memoization by the caller.
package lowrank
