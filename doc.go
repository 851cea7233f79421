// Package toyplex solves mixed-integer linear programs.
//
// A Model collects decision variables (continuous, binary or integer), linear
// constraints and a linear objective, then Optimize finds an optimal
// assignment or proves the problem infeasible or unbounded.
//
// Each LP relaxation is solved by a dense tableau primal simplex engine
// (two-phase, so infeasible relaxations are detected); integrality is
// enforced by a sequential branch-and-bound search over a tree of node
// relaxations.
//
//	m, _ := toyplex.NewModel()
//	x, _ := m.AddVar(constraint.Integer, 0, math.Inf(1), "x")
//	y, _ := m.AddVar(constraint.Binary, 0, 1, "y")
//	m.AddConstraint(constraint.NewLinearExpression().AddTerm(3, x).AddTerm(5, y), constraint.LessOrEqual, 78.8)
//	m.AddConstraint(constraint.NewLinearExpression().AddTerm(4, x).AddTerm(1, y), constraint.LessOrEqual, 36.5)
//	m.SetObjective(constraint.NewLinearExpression().AddTerm(5, x).AddTerm(4, y), toyplex.Maximize)
//	sol, _ := m.Optimize()
package toyplex
