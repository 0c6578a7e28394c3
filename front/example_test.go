package front_test

import (
	"fmt"

	"github.com/katalvlaran/pareto/front"
	"github.com/katalvlaran/pareto/index"
	"github.com/katalvlaran/pareto/point"
)

func ExampleFront_Insert() {
	f := front.New[float64, string](2, point.Directions{point.Minimise, point.Minimise}, index.NewLinear[float64, string](2, nil))

	_, _ = f.Insert(index.Value[float64, string]{Key: point.New(2.0, 2.0), Mapped: "A"})
	_, _ = f.Insert(index.Value[float64, string]{Key: point.New(3.0, 1.0), Mapped: "B"})
	_, ok := f.Insert(index.Value[float64, string]{Key: point.New(1.0, 1.0), Mapped: "C"})

	fmt.Println(ok, f.Size())
	// Output: true 1
}

func ExampleHypervolume() {
	f := front.New[float64, string](2, point.Directions{point.Minimise, point.Minimise}, index.NewLinear[float64, string](2, nil))
	_, _ = f.Insert(index.Value[float64, string]{Key: point.New(0.0, 0.5), Mapped: "A"})
	_, _ = f.Insert(index.Value[float64, string]{Key: point.New(0.5, 0.0), Mapped: "B"})

	fmt.Println(front.Hypervolume(f, point.New(1.0, 1.0)))
	// Output: 0.75
}
