// SPDX-License-Identifier: MIT
package matrix

// Exported wrappers around the unexported ew* micro-kernels, for use only
// from matrix_test (black-box tests cannot reach unexported identifiers).
// These exist solely to let ops_elementwise_test.go exercise the kernels
// directly instead of only through higher-level facades.

// EwBroadcastSubCols_TestOnly exposes ewBroadcastSubCols.
func EwBroadcastSubCols_TestOnly(X Matrix, colMeans []float64) (Matrix, error) {
	return ewBroadcastSubCols(X, colMeans)
}

// EwScaleCols_TestOnly exposes ewScaleCols.
func EwScaleCols_TestOnly(X Matrix, scale []float64) (Matrix, error) {
	return ewScaleCols(X, scale)
}
