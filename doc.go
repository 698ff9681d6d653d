// Package otgeom provides cost-geometry primitives for optimal-transport
// solvers: compact representations of pairwise ground-cost matrices between
// weighted point sets, exposing the algebra a Sinkhorn-type solver needs
// without ever materializing the full n×m matrix.
//
// 🚀 What is otgeom?
//
//	A small, deterministic library built on gonum that brings together:
//		• geometry/ — the CostGeometry contract shared by every cost
//		  representation, plus a Dense geometry with the generic O(n·m)
//		  fallback kernels
//		• lowrank/  — the low-rank factored geometry C = A·Bᵗ + bias,
//		  with O((n+m)·r) apply kernels, cost rescaling policies, a
//		  rank-r² squared-cost shortcut, merging, and a leaf/static
//		  decomposition for external gradient engines
//
// ✨ Why choose otgeom?
//
//   - Matrix-free by default – factored kernels replace O(n·m) products
//     with O((n+m)·r) ones, falling back to dense only when correctness
//     demands it
//   - Rock-solid contracts – sentinel errors, strict shape validation,
//     immutable value types
//   - Pure Go – gonum underneath, no cgo, no hidden deps
//
// Start with lowrank.New to wrap two factor matrices, then hand the
// geometry to any solver written against geometry.CostGeometry.
package otgeom
