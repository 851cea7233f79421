package toyplex

import (
	"fmt"
	"math"

	"github.com/yiyinglai/toyplex/constraint"
	"github.com/yiyinglai/toyplex/internal/tableau"
)

// A node is one vertex of the branch-and-bound tree: a private copy of the
// variable and constraint sets, inherited from its parent plus one extra bound
// constraint. Nodes are never mutated after creation except by the solve that
// fills in their values.
type node struct {
	key    int
	status Status

	vars     []constraint.Variable // structural variables, declaration order
	varIndex map[string]int
	ints     []int // indices into vars, declaration order
	bins     []int

	slacks  []string
	surplus []string
	constrs []constraint.Constraint

	objVal float64
	values map[string]float64
}

func newNode(key int) *node {
	return &node{
		key:      key,
		status:   StatusSolving,
		varIndex: make(map[string]int),
	}
}

// clone returns a deep copy of the node under a fresh key, reset to the
// solving state.
func (n *node) clone(key int) *node {
	c := &node{
		key:      key,
		status:   StatusSolving,
		vars:     append([]constraint.Variable(nil), n.vars...),
		varIndex: make(map[string]int, len(n.varIndex)),
		ints:     append([]int(nil), n.ints...),
		bins:     append([]int(nil), n.bins...),
		slacks:   append([]string(nil), n.slacks...),
		surplus:  append([]string(nil), n.surplus...),
		constrs:  make([]constraint.Constraint, len(n.constrs)),
	}
	for name, idx := range n.varIndex {
		c.varIndex[name] = idx
	}
	for i, cons := range n.constrs {
		c.constrs[i] = cons.Clone()
	}
	return c
}

func (n *node) addVariable(v constraint.Variable) {
	n.varIndex[v.Name] = len(n.vars)
	n.vars = append(n.vars, v)
	switch v.Kind {
	case constraint.Integer:
		n.ints = append(n.ints, n.varIndex[v.Name])
	case constraint.Binary:
		n.bins = append(n.bins, n.varIndex[v.Name])
	}
}

// addConstraint appends the constraint, converting it to equality form first:
// a <= constraint gets a fresh slack variable with coefficient +1, a >= gets a
// fresh surplus variable with coefficient -1, an == gets neither.
func (n *node) addConstraint(c constraint.Constraint) {
	switch c.Sense {
	case constraint.LessOrEqual:
		name := fmt.Sprintf("s%d", len(n.slacks)+1)
		n.slacks = append(n.slacks, name)
		c.Expr.Terms[name] = 1
	case constraint.GreaterOrEqual:
		name := fmt.Sprintf("p%d", len(n.surplus)+1)
		n.surplus = append(n.surplus, name)
		c.Expr.Terms[name] = -1
	}
	n.constrs = append(n.constrs, c)
}

// solve builds the node's tableau, runs the simplex engine on it and reads
// the basic feasible solution back out. Solving an already-solved node is a
// no-op.
func (n *node) solve(obj *constraint.LinearExpression, sense ObjectiveSense, tol float64) error {
	if n.status != StatusSolving {
		return nil
	}

	structural := make([]string, len(n.vars))
	for i, v := range n.vars {
		structural[i] = v.Name
	}
	layout := tableau.NewLayout(structural, n.slacks, n.surplus)

	rows := make([]tableau.Row, len(n.constrs))
	for i, c := range n.constrs {
		rows[i] = tableau.Row{Coeffs: c.Expr.Terms, RHS: c.RHS}
	}
	objective := tableau.Row{Coeffs: obj.Terms, RHS: obj.Constant}

	t, err := tableau.Build(layout, rows, objective, sense == Maximize)
	if err != nil {
		return err
	}

	spx := tableau.NewSimplex(t, tol)
	switch spx.Solve() {
	case tableau.Unbounded:
		n.status = StatusUnbounded
	case tableau.Infeasible:
		n.status = StatusInfeasible
	case tableau.Optimal:
		n.status = StatusOptimal
		if sense == Maximize {
			n.objVal = spx.ObjectiveRHS()
		} else {
			n.objVal = -spx.ObjectiveRHS()
		}
		vals := spx.Values()
		n.values = make(map[string]float64, len(n.vars))
		for i, v := range n.vars {
			n.values[v.Name] = vals[i]
		}
	}
	return nil
}

// fractional returns the first integer or binary variable whose relaxation
// value is not integral, integers before binaries, each group in declaration
// order.
func (n *node) fractional(tol float64) (constraint.Variable, float64, bool) {
	for _, group := range [][]int{n.ints, n.bins} {
		for _, idx := range group {
			v := n.vars[idx]
			val := n.values[v.Name]
			if math.Abs(val-math.Round(val)) > tol {
				return v, val, true
			}
		}
	}
	return constraint.Variable{}, 0, false
}
