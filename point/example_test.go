package point_test

import (
	"fmt"

	"github.com/katalvlaran/pareto/point"
)

func ExamplePoint_Distance() {
	p := point.New(1, 2, 3)
	q := point.New(4, 6, 3)

	fmt.Println(p.Distance(q))
	// Output: 5
}

func ExampleBox_Overlaps() {
	a := point.NewBox(point.New(0, 0), point.New(2, 2))
	b := point.NewBox(point.New(1, 1), point.New(3, 3))

	fmt.Println(a.Overlaps(b))
	// Output: true
}
