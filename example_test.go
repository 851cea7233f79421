package toyplex_test

import (
	"fmt"
	"math"

	"github.com/yiyinglai/toyplex"
	"github.com/yiyinglai/toyplex/constraint"
)

func Example() {
	m, _ := toyplex.NewModel()
	x, _ := m.AddVar(constraint.Integer, 0, math.Inf(1), "x")
	y, _ := m.AddVar(constraint.Binary, 0, 1, "y")

	m.AddConstraint(constraint.NewLinearExpression().AddTerm(3, x).AddTerm(5, y), constraint.LessOrEqual, 78.8)
	m.AddConstraint(constraint.NewLinearExpression().AddTerm(4, x).AddTerm(1, y), constraint.LessOrEqual, 36.5)
	m.SetObjective(constraint.NewLinearExpression().AddTerm(5, x).AddTerm(4, y), toyplex.Maximize)

	sol, _ := m.Optimize()
	fmt.Println(sol.Status)
	fmt.Printf("objective: %d\n", int(math.Round(sol.Objective)))
	fmt.Printf("x: %d\n", int(math.Round(sol.Values["x"])))
	fmt.Printf("y: %d\n", int(math.Round(sol.Values["y"])))
	// Output:
	// optimal
	// objective: 45
	// x: 9
	// y: 0
}
