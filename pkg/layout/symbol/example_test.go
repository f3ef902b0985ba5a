package symbol_test

import (
	"fmt"

	"github.com/matzehuels/refugeeflow/pkg/layout/symbol"
)

func ExampleSqrtScale() {
	s := symbol.NewSqrtScale(400)
	fmt.Println(s.Radius(0), s.Radius(100), s.Radius(400))
	// Output: 0 15 30
}
