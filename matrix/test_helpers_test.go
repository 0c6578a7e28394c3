// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic test fixtures and utilities for builders/kernels
//     exercised by the statistics surface (centerColumns/covariance/correlation)
//     and its ew* broadcast kernels.
//   - Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/pareto/matrix"
)

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Implementation:
//   - Stage 1: Embed matrix.Matrix to forward all methods.
//   - Stage 2: Use hide{X} in tests to force non-*Dense (fallback) paths.
//
// Behavior highlights:
//   - Prevents "*Dense" fast-path via type switch in code under test.
//
// Notes:
//   - Useful to assert fast-path == fallback bitwise (or via CompareClose).
type hide struct{ matrix.Matrix }

// MustAt READS (row,col) from m or fails the test (fatal on error).
func MustAt(t *testing.T, m matrix.Matrix, row, col int) float64 {
	t.Helper()

	v, err := m.At(row, col)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", row, col, err)
	}

	return v
}

// NewFilledDense BUILDS an r×c *Dense from row-major vals via the Set() policy path.
// Implementation:
//   - Stage 1: Validate len(vals)==r*c.
//   - Stage 2: Allocate Dense.
//   - Stage 3: Set() each cell in row-major order (respects numeric policy).
func NewFilledDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()

	if len(vals) != r*c {
		t.Fatalf("NewFilledDense: want %d values, got %d", r*c, len(vals))
	}

	d, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if err = d.Set(i, j, vals[i*c+j]); err != nil {
				t.Fatalf("Set(%d,%d): %v", i, j, err)
			}
		}
	}

	return d
}

// RandFilledDense RETURNS a new r×c Dense filled with deterministic U(-1,1).
func RandFilledDense(t *testing.T, r, c int, seed int64) matrix.Matrix {
	t.Helper()

	m, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	rng := rand.New(rand.NewSource(seed))
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if err = m.Set(i, j, rng.Float64()*2-1); err != nil {
				t.Fatalf("Set(%d,%d): %v", i, j, err)
			}
		}
	}

	return m
}

// CompareClose ASSERTS a and b are element-wise equal within (rtol, atol).
// Implementation:
//   - Stage 1: Shape check.
//   - Stage 2: |a[i,j]-b[i,j]| ≤ atol + rtol*|b[i,j]| for every cell.
//
// Notes:
//   - Implemented directly (not via a matrix-package facade) since this is
//     purely a test-assertion helper, not a kernel under test.
func CompareClose(t *testing.T, a, b matrix.Matrix, rtol, atol float64) {
	t.Helper()

	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		t.Fatalf("shape mismatch: %dx%d vs %dx%d", a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}

	var i, j int
	var av, bv, diff, absb float64
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			av = MustAt(t, a, i, j)
			bv = MustAt(t, b, i, j)
			diff = av - bv
			if diff < 0 {
				diff = -diff
			}
			absb = bv
			if absb < 0 {
				absb = -absb
			}
			if diff > (atol + rtol*absb) {
				t.Fatalf("CompareClose (%d,%d): got=%g want=%g (rtol=%g atol=%g)", i, j, av, bv, rtol, atol)
			}
		}
	}
}

// sliceClose ASSERTS |a[i]-b[i]| ≤ atol + rtol*|b[i]| element-wise.
func sliceClose(t *testing.T, a, b []float64, rtol, atol float64) {
	t.Helper()

	if len(a) != len(b) {
		t.Fatalf("slice lengths: %d vs %d", len(a), len(b))
	}

	var diff, absb float64
	for i := range a {
		diff = a[i] - b[i]
		if diff < 0 {
			diff = -diff
		}
		absb = b[i]
		if absb < 0 {
			absb = -absb
		}
		if diff > (atol + rtol*absb) {
			t.Fatalf("sliceClose idx=%d: got=%g want=%g (rtol=%g atol=%g)", i, a[i], b[i], rtol, atol)
		}
	}
}
