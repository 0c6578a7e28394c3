package index_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/pareto/index"
	"github.com/katalvlaran/pareto/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuadTree_InsertFindErase(t *testing.T) {
	tr := index.NewQuadTreeWithBucket[int, string](2, 2)

	_, ok := tr.Insert(v(1, 1, "a"))
	assert.True(t, ok)
	_, ok = tr.Insert(v(2, 2, "b"))
	assert.True(t, ok)
	_, ok = tr.Insert(v(1, 1, "dup"))
	assert.False(t, ok, "duplicate keys are rejected in quad-tree")

	it, found := tr.Find(point.New(2, 2))
	require.True(t, found)
	require.True(t, it.Next())
	assert.Equal(t, "b", it.Value().Mapped)

	assert.Equal(t, 1, tr.Erase(point.New(1, 1)))
	assert.Equal(t, 1, tr.Size())
	_, found = tr.Find(point.New(1, 1))
	assert.False(t, found)
}

func TestQuadTree_PromotesOnBucketOverflow(t *testing.T) {
	tr := index.NewQuadTreeWithBucket[int, int](2, 2)
	pts := [][2]int{{0, 0}, {10, 10}, {0, 10}, {10, 0}, {5, 5}}
	for i, p := range pts {
		_, ok := tr.Insert(index.Value[int, int]{Key: point.New(p[0], p[1]), Mapped: i})
		assert.True(t, ok)
	}
	assert.Equal(t, len(pts), tr.Size())
	for i, p := range pts {
		it, found := tr.Find(point.New(p[0], p[1]))
		require.True(t, found)
		require.True(t, it.Next())
		assert.Equal(t, i, it.Value().Mapped)
	}
}

func TestQuadTree_EquivalentToLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tr := index.NewQuadTreeWithBucket[int, int](3, 4)
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

func TestQuadTree_NearestOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	tr := index.NewQuadTreeWithBucket[int, int](2, 4)
	for i := 0; i < 100; i++ {
		_, _ = tr.Insert(index.Value[int, int]{Key: point.New(rng.Intn(1000)-500, rng.Intn(1000)-500), Mapped: i})
	}

	origin := point.New(0, 0)
	got := collect[int, int](tr.BeginNearest(origin, 7))
	require.Len(t, got, 7)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, origin.Distance(got[i-1].Key), origin.Distance(got[i].Key))
	}

	lin := index.NewLinear[int, int](2, nil)
	all := collect[int, int](tr.All())
	assert.Equal(t, 100, len(all))
	for _, a := range all {
		_, _ = lin.Insert(a)
	}
	wantSeventh := collect[int, int](lin.BeginNearest(origin, 7))[6]
	for _, remaining := range all {
		isInTop7 := false
		for _, g := range got {
			if g.Key.Equal(remaining.Key) {
				isInTop7 = true
			}
		}
		if !isInTop7 {
			assert.GreaterOrEqual(t, origin.Distance(remaining.Key), origin.Distance(wantSeventh.Key))
		}
	}
}

func TestQuadTree_EraseCoalesces(t *testing.T) {
	tr := index.NewQuadTreeWithBucket[int, string](2, 2)
	_, _ = tr.Insert(v(1, 0, "a"))
	_, _ = tr.Insert(v(2, 0, "b"))
	_, _ = tr.Insert(v(3, 0, "c"))

	assert.Equal(t, 1, tr.Erase(point.New(1, 0)))
	assert.Equal(t, 2, tr.Size())
	it, found := tr.Find(point.New(2, 0))
	require.True(t, found)
	require.True(t, it.Next())
	assert.Equal(t, "b", it.Value().Mapped)
	it, found = tr.Find(point.New(3, 0))
	require.True(t, found)
	require.True(t, it.Next())
	assert.Equal(t, "c", it.Value().Mapped)
}
