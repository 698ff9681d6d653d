// SPDX-License-Identifier: MIT

// Package geometry defines the cost-geometry contract shared by every cost
// representation in otgeom, together with a Dense reference implementation
// and the generic O(n·m) fallback kernels.
//
// A cost geometry abstracts a pairwise ground-cost matrix C between a source
// point set of size n and a target point set of size m. Solvers are written
// against the CostGeometry interface only, so a dense matrix and a factored
// low-rank representation (package lowrank) are interchangeable.
//
// Axis convention (fixed across the module):
//
//   - Axis0 — the input vector has length n; the reduction runs over rows,
//     producing Cᵗ·v of length m.
//   - Axis1 — the input vector has length m; the reduction runs over
//     columns, producing C·v of length n.
//
// Entrywise transforms:
//
//	An EntryFn is optionally applied to every cost entry before a product.
//	IsLinear reports whether a transform commutes with the factored algebra;
//	implementations use it to gate fast paths. A nil EntryFn means identity.
//
// Errors:
//   - ErrShapeMismatch — operand dimensions disagree.
//   - ErrBadAxis       — axis is neither Axis0 nor Axis1.
//   - ErrNilMatrix     — a nil matrix or vector was supplied.
//   - ErrInvalidConfig — a configuration value cannot be interpreted.
//   - ErrNotImplemented — a declared option has no implementation.
//
// All operations are pure: inputs are never mutated and results are freshly
// allocated, so every function is safe for concurrent use.
package geometry
