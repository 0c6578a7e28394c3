package point

import "math"

// Box is an axis-aligned hyperbox, the pair (Min, Max) of Point[T] with
// Min[i] <= Max[i] for every axis. Box is normalised on construction:
// any axis where the constructor arguments are inverted is swapped so the
// invariant always holds (spec.md §3 Box invariant).
type Box[T Number] struct {
	min, max Point[T]
}

// NewBox builds a normalised Box from two corner points of equal
// dimension.
func NewBox[T Number](a, b Point[T]) Box[T] {
	if a.Dim() != b.Dim() {
		panic(ErrDimensionMismatch)
	}
	lo := make([]T, a.Dim())
	hi := make([]T, a.Dim())
	for i := 0; i < a.Dim(); i++ {
		x, y := a.At(i), b.At(i)
		if x <= y {
			lo[i], hi[i] = x, y
		} else {
			lo[i], hi[i] = y, x
		}
	}

	return Box[T]{min: New(lo...), max: New(hi...)}
}

// Min returns the box's minimum corner.
func (b Box[T]) Min() Point[T] { return b.min }

// Max returns the box's maximum corner.
func (b Box[T]) Max() Point[T] { return b.max }

// Dim returns the box's dimension.
func (b Box[T]) Dim() int { return b.min.Dim() }

// Volume returns the product of (max[i]-min[i]) over every axis.
func (b Box[T]) Volume() float64 {
	vol := 1.0
	for i := 0; i < b.Dim(); i++ {
		vol *= float64(b.max.At(i) - b.min.At(i))
	}

	return vol
}

// Overlaps reports whether the closed intervals of b and o intersect on
// every axis.
func (b Box[T]) Overlaps(o Box[T]) bool {
	if b.Dim() != o.Dim() {
		panic(ErrDimensionMismatch)
	}
	for i := 0; i < b.Dim(); i++ {
		if b.max.At(i) < o.min.At(i) || o.max.At(i) < b.min.At(i) {
			return false
		}
	}

	return true
}

// OverlapArea returns the volume of the intersection of b and o, or 0 if
// they do not overlap.
func (b Box[T]) OverlapArea(o Box[T]) float64 {
	if !b.Overlaps(o) {
		return 0
	}
	vol := 1.0
	for i := 0; i < b.Dim(); i++ {
		lo := maxT(b.min.At(i), o.min.At(i))
		hi := minT(b.max.At(i), o.max.At(i))
		vol *= float64(hi - lo)
	}

	return vol
}

// ContainsPoint reports whether p lies within the closed box.
func (b Box[T]) ContainsPoint(p Point[T]) bool {
	if b.Dim() != p.Dim() {
		panic(ErrDimensionMismatch)
	}
	for i := 0; i < b.Dim(); i++ {
		if p.At(i) < b.min.At(i) || p.At(i) > b.max.At(i) {
			return false
		}
	}

	return true
}

// ContainsBox reports whether o is entirely contained within b (closed).
func (b Box[T]) ContainsBox(o Box[T]) bool {
	if b.Dim() != o.Dim() {
		panic(ErrDimensionMismatch)
	}
	for i := 0; i < b.Dim(); i++ {
		if o.min.At(i) < b.min.At(i) || o.max.At(i) > b.max.At(i) {
			return false
		}
	}

	return true
}

// Within reports whether p lies strictly inside b (open interior on every
// axis).
func (b Box[T]) Within(p Point[T]) bool {
	if b.Dim() != p.Dim() {
		panic(ErrDimensionMismatch)
	}
	for i := 0; i < b.Dim(); i++ {
		if p.At(i) <= b.min.At(i) || p.At(i) >= b.max.At(i) {
			return false
		}
	}

	return true
}

// DistanceToPoint returns the Euclidean distance from p to the closest
// point on or inside b; 0 if p is inside b.
func (b Box[T]) DistanceToPoint(p Point[T]) float64 {
	if b.Dim() != p.Dim() {
		panic(ErrDimensionMismatch)
	}
	var sum float64
	for i := 0; i < b.Dim(); i++ {
		v := float64(p.At(i))
		lo, hi := float64(b.min.At(i)), float64(b.max.At(i))
		var d float64
		switch {
		case v < lo:
			d = lo - v
		case v > hi:
			d = v - hi
		}
		sum += d * d
	}

	return math.Sqrt(sum)
}

// Stretch returns the smallest box containing both b and p (element-wise
// min/max expansion). Normalisation is preserved (spec.md §3 Box
// invariant).
func (b Box[T]) Stretch(p Point[T]) Box[T] {
	if b.Dim() != p.Dim() {
		panic(ErrDimensionMismatch)
	}
	lo := make([]T, b.Dim())
	hi := make([]T, b.Dim())
	for i := 0; i < b.Dim(); i++ {
		lo[i] = minT(b.min.At(i), p.At(i))
		hi[i] = maxT(b.max.At(i), p.At(i))
	}

	return Box[T]{min: New(lo...), max: New(hi...)}
}

// Combine returns the smallest box enclosing both b and o.
func (b Box[T]) Combine(o Box[T]) Box[T] {
	if b.Dim() != o.Dim() {
		panic(ErrDimensionMismatch)
	}
	lo := make([]T, b.Dim())
	hi := make([]T, b.Dim())
	for i := 0; i < b.Dim(); i++ {
		lo[i] = minT(b.min.At(i), o.min.At(i))
		hi[i] = maxT(b.max.At(i), o.max.At(i))
	}

	return Box[T]{min: New(lo...), max: New(hi...)}
}

// Center returns the box's geometric center, rounded toward the minimum
// corner for integer T.
func (b Box[T]) Center() Point[T] {
	c := make([]T, b.Dim())
	for i := 0; i < b.Dim(); i++ {
		c[i] = b.min.At(i) + (b.max.At(i)-b.min.At(i))/2
	}

	return New(c...)
}

func minT[T Number](a, b T) T {
	if a < b {
		return a
	}

	return b
}

func maxT[T Number](a, b T) T {
	if a > b {
		return a
	}

	return b
}
