// Package matrix_test provides GoDoc examples for pareto/matrix,
// demonstrating the dense linear-algebra and statistics surface used by
// front's distance-matrix cache and conflict indicators.
package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/pareto/matrix"
)

// ExampleCorrelation builds a small n×2 sample matrix and computes its
// Pearson correlation via z-scoring, the same kernel front's conflict
// indicators (front.DirectConflict) delegate to.
//
// Implementation:
//   - Stage 1: Construct a 4×2 Dense, two perfectly anti-correlated columns.
//   - Stage 2: Call Correlation and print the off-diagonal coefficient.
//
// Determinism:
//   - Fixed loops in the z-scoring kernel; no randomness.
func ExampleCorrelation() {
	x, _ := matrix.NewDense(4, 2)
	for i := 0; i < 4; i++ {
		_ = x.Set(i, 0, float64(i))
		_ = x.Set(i, 1, float64(3-i))
	}

	corr, _, _, _ := matrix.Correlation(x)
	v, _ := corr.At(0, 1)
	fmt.Printf("corr = %.0f\n", v)

	// Output:
	// corr = -1
}

// ExampleMatrixMethods demonstrates Mul, Transpose, and Scale on small matrices.
//
// Implementation:
//   - Stage 1: Construct a 2×2 matrix a.
//   - Stage 2: Multiply a 2×3 by a 3×2 and print one element.
//   - Stage 3: Transpose and Scale, printing selected entries.
//
// Behavior highlights:
//   - All kernels are deterministic; *Dense fast-paths are used underneath.
//
// Complexity:
//   - Mul O(rnc), Transpose O(rc), Scale O(rc).
//
// Notes:
//   - Use CompareClose in property tests to compare floats under tolerance.
func ExampleMatrixMethods() {
	// (1) Construct a 2×2 matrix and fill it with small literals.
	a, _ := matrix.NewDense(2, 2)
	_ = a.Set(0, 0, 1)
	_ = a.Set(0, 1, 2)
	_ = a.Set(1, 0, 3)
	_ = a.Set(1, 1, 4)

	// (2) Multiply a 2×3 by a 3×2 and print one element.
	m, _ := matrix.NewDense(2, 3)
	n, _ := matrix.NewDense(3, 2)
	_ = m.Set(0, 0, 1)
	_ = m.Set(0, 1, 2)
	_ = m.Set(0, 2, 3)
	_ = m.Set(1, 0, 4)
	_ = m.Set(1, 1, 5)
	_ = m.Set(1, 2, 6)
	_ = n.Set(0, 0, 7)
	_ = n.Set(0, 1, 8)
	_ = n.Set(1, 0, 9)
	_ = n.Set(1, 1, 10)
	_ = n.Set(2, 0, 11)
	_ = n.Set(2, 1, 12)
	prod, _ := matrix.Mul(m, n)
	v, _ := prod.At(1, 0)
	fmt.Println("prod[1,0] =", v)

	// (3) Transpose and Scale
	t, _ := matrix.Transpose(a)
	s, _ := matrix.Scale(a, 2.5)
	x, _ := t.At(1, 0)
	y, _ := s.At(0, 1)
	fmt.Println("transpose[1,0] =", x)
	fmt.Println("scale[0,1] =", y)

	// Output:
	// prod[1,0] = 139
	// transpose[1,0] = 2
	// scale[0,1] = 5
}
