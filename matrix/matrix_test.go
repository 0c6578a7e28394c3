// Package matrix_test provides unit tests for basic matrix operations
// covering nil guards, dimension mismatches, and happy paths.
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/pareto/matrix"
	"github.com/stretchr/testify/require"
)

func TestMethods_NilGuards(t *testing.T) {
	t.Parallel()

	// Test Mul(nil, valid) returns ErrNilMatrix
	a, _ := matrix.NewDense(1, 1)                // prepare a valid 1×1 matrix
	_, err := matrix.Mul(nil, a)                 // call Mul with first operand nil
	require.ErrorIs(t, err, matrix.ErrNilMatrix) // expect ErrNilMatrix

	// Test Mul(valid, nil) returns ErrNilMatrix
	_, err = matrix.Mul(a, nil)                  // call Mul with second operand nil
	require.ErrorIs(t, err, matrix.ErrNilMatrix) // expect ErrNilMatrix

	// Test Transpose(nil) returns ErrNilMatrix
	_, err = matrix.Transpose(nil)               // call Transpose with a nil operand
	require.ErrorIs(t, err, matrix.ErrNilMatrix) // expect ErrNilMatrix

	// Test Scale(nil, α) returns ErrNilMatrix
	_, err = matrix.Scale(nil, 2.0)              // call Scale with a nil matrix operand
	require.ErrorIs(t, err, matrix.ErrNilMatrix) // expect ErrNilMatrix
}

func TestMethods_DimensionMismatch(t *testing.T) {
	t.Parallel()

	// Prepare a 3×4 matrix for the mismatch scenario
	m1, _ := matrix.NewDense(3, 4) // 3 rows, 4 columns

	// Mul should error when inner dims mismatch.
	// To force mismatch, use 3×4 × 2×2
	m3, _ := matrix.NewDense(2, 2)                     // 2×2 matrix
	_, err := matrix.Mul(m1, m3)                       // call Mul on inner-dimension mismatch
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch) // expect ErrDimensionMismatch
}

func TestMethods_HappyPaths(t *testing.T) {
	t.Parallel()

	// Prepare m×n and n×p for Mul: 2×3 × 3×2 → 2×2
	m, _ := matrix.NewDense(2, 3) // allocate 2×3
	_ = m.Set(0, 0, 1)            // m[0,0] = 1
	_ = m.Set(0, 1, 2)            // m[0,1] = 2
	_ = m.Set(0, 2, 3)            // m[0,2] = 3
	_ = m.Set(1, 0, 4)            // m[1,0] = 4
	_ = m.Set(1, 1, 5)            // m[1,1] = 5
	_ = m.Set(1, 2, 6)            // m[1,2] = 6

	n, _ := matrix.NewDense(3, 2) // allocate 3×2
	_ = n.Set(0, 0, 7)            // n[0,0] = 7
	_ = n.Set(0, 1, 8)            // n[0,1] = 8
	_ = n.Set(1, 0, 9)            // n[1,0] = 9
	_ = n.Set(1, 1, 10)           // n[1,1] = 10
	_ = n.Set(2, 0, 11)           // n[2,0] = 11
	_ = n.Set(2, 1, 12)           // n[2,1] = 12

	// Expected product [[58,64],[139,154]]
	prod, err := matrix.Mul(m, n) // perform matrix multiplication
	require.NoError(t, err)       // expect no error

	var val float64
	val, _ = prod.At(0, 0)       // get prod[0,0]
	require.Equal(t, 58.0, val)  // check result
	val, _ = prod.At(0, 1)       // get prod[0,1]
	require.Equal(t, 64.0, val)  // check result
	val, _ = prod.At(1, 0)       // get prod[1,0]
	require.Equal(t, 139.0, val) // check result
	val, _ = prod.At(1, 1)       // get prod[1,1]
	require.Equal(t, 154.0, val) // check result
}

func TestMethods_TableDriven(t *testing.T) {
	t.Parallel()

	// Define test cases for various matrix shapes and values
	type tc struct {
		name         string
		aRows, aCols int
		bRows, bCols int
		alpha        float64
		wantMulErr   bool
	}

	tests := []tc{
		{
			// All is good: × conditions match
			name:  "Square",
			aRows: 3, aCols: 3,
			bRows: 3, bCols: 3,
			alpha:      2.0,
			wantMulErr: false,
		},
		{
			// Rectangular of the same shape: × is an error
			name:  "RectSameShape",
			aRows: 2, aCols: 3,
			bRows: 2, bCols: 3,
			alpha:      1.5,
			wantMulErr: true,
		},
		{
			// Rectangular for ×: ok
			name:  "RectMul",
			aRows: 2, aCols: 3,
			bRows: 3, bCols: 2,
			alpha:      2.5,
			wantMulErr: false,
		},
		{
			// Internal dimension doesn't match
			name:  "BadMul",
			aRows: 2, aCols: 2,
			bRows: 3, bCols: 2,
			alpha:      0,
			wantMulErr: true,
		},
	}

	for _, c := range tests {
		c := c // capture
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			// Prepare matrices a and b of given sizes
			a, _ := matrix.NewDense(c.aRows, c.aCols)
			b, _ := matrix.NewDense(c.bRows, c.bCols)

			// Test Mul
			_, err := matrix.Mul(a, b)
			if c.wantMulErr {
				require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
			} else {
				require.NoError(t, err)
			}

			// Test Scale
			res, err := matrix.Scale(a, c.alpha)
			require.NoError(t, err)
			require.NotNil(t, res)
			require.Equal(t, c.aRows, res.Rows())
			require.Equal(t, c.aCols, res.Cols())
		})
	}
}
