// Package matrix provides the dense cost-table primitives consumed by the
// tsp search engine and produced by the distance collaborators.
//
// The package provides:
//
//   - Matrix: a minimal, bounds-checked interface over a two-dimensional
//     float64 table (Rows, Cols, At, Set, Clone).
//   - Dense: a row-major implementation backed by a single flat slice.
//   - Validators for the distance-table policy: square shape, finite and
//     non-negative off-diagonal entries, zero diagonal, optional symmetry.
//
// Distance tables are small (N ≲ 20 for exact search), so the O(N²) memory
// of a dense representation is never a concern here.
package matrix
