// Package point provides the numeric vector and axis-aligned box primitives
// that every spatial container in this module is keyed by.
//
// A Point[T] is an ordered tuple of m coordinates of numeric type T. The
// dimension m is decided at runtime by the constructor you call — there is
// no fixed-array variant, since Go cannot parameterize an array length
// generically without per-length instantiation (see DESIGN.md). A Box[T]
// is a (min, max) pair of points, normalised on construction so that
// min[i] <= max[i] for every axis i.
//
// Distance is always computed in float64, regardless of T: integer
// coordinates are promoted for the one operation (Euclidean distance) that
// cannot stay exact in integer arithmetic; every other operation (add,
// sub, scale, compare) keeps T's native arithmetic.
//
//	p := point.New(1, 2, 3)
//	q := point.New(4, 6, 3)
//	p.Distance(q) // 5.0
//
// Direction describes, per axis, whether smaller or larger values are
// "better" — it is the polarity that front.Front and archive.Archive use
// to decide dominance; point itself never interprets it.
package point
