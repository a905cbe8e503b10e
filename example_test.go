package satilp_test

import (
	"fmt"
	"strings"

	"github.com/lgbarrere/satilp"
)

func Example() {
	const cnf = `c example formula
p cnf 3 2
1 -2 0
-1 2 3 0
`
	reg := satilp.NewRegistry(satilp.DefaultConfig())
	f, err := reg.Encode("example.cnf", strings.NewReader(cnf))
	if err != nil {
		panic(err)
	}
	fmt.Println(satilp.ToFormulaID("example.cnf"))
	fmt.Print(f)
	// Output:
	// example.lpt
	// Maximize
	//   Obj: z
	// Subject To
	//   C1: z1 - z2 >= 0
	//   C2: -z1 + z2 + z3 >= 0
	// Binary
	//   z
	//   z1
	//   z2
	//   z3
	// End
}

func ExampleToFormulaID() {
	fmt.Println(satilp.ToFormulaID("data/uf20-01.cnf"))
	fmt.Println(satilp.ToFormulaID("uf20-01.lpt"))
	// Output:
	// uf20-01.lpt
	// uf20-01.lpt
}
