// Package matrix provides dense linear-algebra primitives: a row-major Dense
// matrix type, the Matrix interface it implements, and the deterministic
// kernels (Mul/Transpose/Scale, and column statistics Covariance/Correlation)
// that front's distance-matrix cache and conflict indicators build on.
//
// The matrix package provides:
//
//   - Dense, a flat-slice row-major matrix with an explicit NaN/Inf numeric
//     policy (see options.go) honored by every constructor and Set call.
//   - Linear-algebra and statistics kernels used by front's conflict
//     indicators (front/conflict.go); front's distance-matrix cache
//     (front/distmatrix.go) uses Dense storage only.
//
// See the examples and benchmarks in this package for usage patterns.
package matrix
