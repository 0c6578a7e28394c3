package index_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/pareto/index"
	"github.com/katalvlaran/pareto/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRStarTree_InsertFindErase(t *testing.T) {
	tr := index.NewRStarTreeWithFanout[int, string](2, 4)

	_, ok := tr.Insert(v(1, 1, "a"))
	assert.True(t, ok)
	_, ok = tr.Insert(v(2, 2, "b"))
	assert.True(t, ok)
	_, ok = tr.Insert(v(1, 1, "dup"))
	assert.False(t, ok, "duplicate keys are rejected in R*-tree")

	it, found := tr.Find(point.New(2, 2))
	require.True(t, found)
	require.True(t, it.Next())
	assert.Equal(t, "b", it.Value().Mapped)

	assert.Equal(t, 1, tr.Erase(point.New(1, 1)))
	assert.Equal(t, 1, tr.Size())
	_, found = tr.Find(point.New(1, 1))
	assert.False(t, found)
}

func TestRStarTree_ForcedReinsertionKeepsAllKeys(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	tr := index.NewRStarTreeWithFanout[int, int](2, 4)
	seen := make(map[[2]int]bool)
	for i := 0; i < 150; i++ {
		var p [2]int
		for {
			p = [2]int{rng.Intn(80), rng.Intn(80)}
			if !seen[p] {
				break
			}
		}
		seen[p] = true
		_, ok := tr.Insert(index.Value[int, int]{Key: point.New(p[0], p[1]), Mapped: i})
		assert.True(t, ok)
	}
	assert.Equal(t, len(seen), tr.Size())

	for p := range seen {
		it, found := tr.Find(point.New(p[0], p[1]))
		require.True(t, found, "point %v must be findable", p)
		require.True(t, it.Next())
	}
}

func TestRStarTree_EquivalentToLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	tr := index.NewRStarTreeWithFanout[int, int](3, 6)
	lin := index.NewLinear[int, int](3, nil)

	for i := 0; i < 200; i++ {
		p := point.New(rng.Intn(50), rng.Intn(50), rng.Intn(50))
		val := index.Value[int, int]{Key: p, Mapped: i}
		_, okTr := tr.Insert(val)
		_, okLin := lin.Insert(val)
		assert.Equal(t, okLin, okTr)
	}

	q := point.NewBox(point.New(10, 10, 10), point.New(30, 30, 30))
	gotTree := collect[int, int](tr.BeginIntersects(q))
	gotLinear := collect[int, int](lin.BeginIntersects(q))
	assert.ElementsMatch(t, gotLinear, gotTree)
}

func TestRStarTree_NearestOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	tr := index.NewRStarTreeWithFanout[int, int](2, 6)
	for i := 0; i < 100; i++ {
		_, _ = tr.Insert(index.Value[int, int]{Key: point.New(rng.Intn(1000)-500, rng.Intn(1000)-500), Mapped: i})
	}

	origin := point.New(0, 0)
	got := collect[int, int](tr.BeginNearest(origin, 7))
	require.Len(t, got, 7)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, origin.Distance(got[i-1].Key), origin.Distance(got[i].Key))
	}
}

func TestRStarTree_EraseManyKeepsConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	tr := index.NewRStarTreeWithFanout[int, int](2, 4)
	var pts []point.Point[int]
	for i := 0; i < 50; i++ {
		p := point.New(rng.Intn(200), rng.Intn(200))
		if _, ok := tr.Insert(index.Value[int, int]{Key: p, Mapped: i}); ok {
			pts = append(pts, p)
		}
	}

	for i, p := range pts {
		if i%2 == 0 {
			assert.Equal(t, 1, tr.Erase(p))
		}
	}
	for i, p := range pts {
		_, found := tr.Find(p)
		if i%2 == 0 {
			assert.False(t, found)
		} else {
			assert.True(t, found)
		}
	}
}
