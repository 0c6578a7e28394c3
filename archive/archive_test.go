package archive_test

import (
	"testing"

	"github.com/katalvlaran/pareto/archive"
	"github.com/katalvlaran/pareto/index"
	"github.com/katalvlaran/pareto/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArchive(capacity int) *archive.Archive[float64, string] {
	return archive.New[float64, string](2, point.Directions{point.Minimise, point.Minimise}, capacity,
		func() index.Index[float64, string] { return index.NewLinear[float64, string](2, nil) })
}

func val(x, y float64, m string) index.Value[float64, string] {
	return index.Value[float64, string]{Key: point.New(x, y), Mapped: m}
}

func TestArchive_CascadeAndCapacity(t *testing.T) {
	a := newArchive(3)

	assert.True(t, a.Insert(val(1, 1, "A")))
	assert.True(t, a.Insert(val(2, 2, "B")))
	assert.True(t, a.Insert(val(3, 3, "C")))
	assert.True(t, a.Insert(val(0, 4, "D")))
	assert.True(t, a.Insert(val(4, 0, "E")))

	require := require.New(t)
	require.Equal(3, a.Size(), "capacity 3 is enforced after every insert, evicting the tail rank's only occupant each time it is created")
	require.Equal(1, a.NumRanks())

	ranks := a.Ranks()
	require.Len(ranks, 1)
	require.Len(ranks[0], 3)

	assert.True(t, a.Insert(val(5, 5, "F")), "(5,5) is dominated by (1,1) at rank 0, cascades into a fresh rank 1, then is immediately evicted as the tail rank's sole occupant")
	assert.Equal(t, 3, a.Size())
	assert.Equal(t, 1, a.NumRanks())

	_, found := a.Find(point.New(5.0, 5.0))
	assert.False(t, found, "the cascaded-and-evicted key does not remain in the archive")
}

func TestArchive_EvictionTieBreak(t *testing.T) {
	a := newArchive(2)

	assert.True(t, a.Insert(val(0, 10, "left")))
	assert.True(t, a.Insert(val(5, 5, "mid")))
	assert.True(t, a.Insert(val(10, 0, "right")))

	require := require.New(t)
	require.Equal(2, a.Size())
	require.Equal(1, a.NumRanks())

	values := a.Ranks()[0]
	require.Len(values, 2)

	_, leftFound := a.Find(point.New(0.0, 10.0))
	assert.False(t, leftFound, "both boundary points tie at +Inf crowding distance; the earlier-inserted one is evicted first")

	_, rightFound := a.Find(point.New(10.0, 0.0))
	assert.True(t, rightFound)

	_, midFound := a.Find(point.New(5.0, 5.0))
	assert.True(t, midFound)
}

func TestArchive_DuplicateInsertRejected(t *testing.T) {
	a := newArchive(5)

	assert.True(t, a.Insert(val(1, 1, "A")))
	assert.False(t, a.Insert(val(1, 1, "A-again")), "re-inserting an already-stored key is rejected (spec A3 idempotence)")
	assert.Equal(t, 1, a.Size())
}

func TestArchive_Dominates(t *testing.T) {
	a := newArchive(5)
	a.Insert(val(1, 1, "A"))
	a.Insert(val(5, 5, "B")) // dominated by A, cascades down a rank

	assert.True(t, a.Insert(val(0.5, 0.5, "rank0-member")))
	assert.True(t, a.Dominates(point.New(2.0, 2.0)), "rank 0 alone answers Dominates")
	assert.False(t, a.Dominates(point.New(-1.0, -1.0)))
}

func TestArchive_Nearest(t *testing.T) {
	a := newArchive(10)
	a.Insert(val(0, 0, "A"))
	a.Insert(val(1, 1, "B")) // dominated by A, cascades down a rank
	a.Insert(val(10, 10, "C"))

	got := a.Nearest(point.New(0.0, 0.0), 2)
	require := require.New(t)
	require.Len(got, 2)
	assert.Equal(t, "A", got[0].Mapped)
	assert.Equal(t, "B", got[1].Mapped)
}

func TestArchive_DimensionMismatchRejected(t *testing.T) {
	a := newArchive(3)
	assert.False(t, a.Insert(index.Value[float64, string]{Key: point.New(1.0, 2.0, 3.0), Mapped: "bad"}))
}
