// Package matrix_test provides benchmarks for the dense linear-algebra and
// statistics kernels used by front's distance-matrix cache and conflict
// indicators.
package matrix_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/pareto/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{50, 100, 200}

func randomDense(n, m int, rng *rand.Rand) *matrix.Dense {
	d, _ := matrix.NewDense(n, m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			_ = d.Set(i, j, rng.Float64())
		}
	}

	return d
}

func BenchmarkCorrelation(b *testing.B) {
	b.ReportAllocs()
	rng := rand.New(rand.NewSource(42))
	for _, N := range benchSizes {
		N := N
		b.Run(fmt.Sprintf("N=%d", N), func(b *testing.B) {
			x := randomDense(N, 4, rng)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _, _, _ = matrix.Correlation(x)
			}
		})
	}
}

func BenchmarkMulDense(b *testing.B) {
	b.ReportAllocs()
	rng := rand.New(rand.NewSource(42))
	for _, N := range benchSizes {
		N := N
		b.Run(fmt.Sprintf("Mul %dx%d", N, N), func(b *testing.B) {
			a := randomDense(N, N, rng)
			bm := randomDense(N, N, rng)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = matrix.Mul(a, bm)
			}
		})
	}
}
