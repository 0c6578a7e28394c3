package predicate

import "github.com/katalvlaran/pareto/point"

// Value is the (key, mapped) pair spec.md §3 calls V. Every spatial
// container stores Values; predicates evaluate against them.
type Value[T point.Number, M any] struct {
	Key    point.Point[T]
	Mapped M
}

// EqualFunc overrides the default mapped-value equality used when two
// keys compare equal (spec.md §3 "custom equality hook"). The zero value
// (nil) means containers never need to disambiguate by mapped value.
type EqualFunc[M any] func(a, b M) bool

// Kind identifies which of the five predicate shapes a Predicate is.
// Used for compression-table dispatch and for ordering (Satisfies and
// Nearest always sort last, per spec.md §4.2).
type Kind uint8

const (
	KindIntersects Kind = iota
	KindWithin
	KindDisjoint
	KindNearest
	KindSatisfies
)

// Predicate is the sealed interface every predicate kind implements.
// Pass decides membership for a concrete Value; MightPass decides whether
// any Value inside box could possibly pass, and must be monotone (spec.md
// invariant P2): MightPass(false) on a box implies MightPass(false) on
// every box nested inside it.
type Predicate[T point.Number, M any] interface {
	Kind() Kind
	Pass(v Value[T, M]) bool
	MightPass(box point.Box[T]) bool
}
