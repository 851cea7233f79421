// Package tableau implements the dense simplex tableau and the primal simplex
// engine that pivots it to optimality.
package tableau

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Layout fixes the column order of a tableau: structural variables first, in
// declaration order, then slack variables, then surplus variables. The
// right-hand side occupies the last column and is not part of the layout.
//
// The order must be identical across every use of the tableau within one node.
type Layout struct {
	columns []string
	index   map[string]int
}

// NewLayout builds a layout from the three ordered name groups.
func NewLayout(structural, slacks, surplus []string) Layout {
	columns := make([]string, 0, len(structural)+len(slacks)+len(surplus))
	columns = append(columns, structural...)
	columns = append(columns, slacks...)
	columns = append(columns, surplus...)

	index := make(map[string]int, len(columns))
	for j, name := range columns {
		index[name] = j
	}
	return Layout{columns: columns, index: index}
}

// Column returns the column index of name.
func (l Layout) Column(name string) (int, bool) {
	j, ok := l.index[name]
	return j, ok
}

// Len returns the number of columns, excluding the right-hand side.
func (l Layout) Len() int {
	return len(l.columns)
}

// A Row is one constraint in equality form: coefficients keyed by column name
// and a right-hand side. The same shape carries the objective, where RHS holds
// the objective's standalone constant term.
type Row struct {
	Coeffs map[string]float64
	RHS    float64
}

// Build assembles the dense tableau for a problem: one row per constraint with
// coefficients placed by column index and the right-hand side in the last
// column, plus an appended objective row.
//
// The engine always minimizes, so a maximization objective is stored negated;
// the objective constant lands in the objective row's right-hand side entry,
// negated. Build is a pure function of its inputs.
func Build(layout Layout, rows []Row, objective Row, maximize bool) (*mat.Dense, error) {
	n := layout.Len()
	t := mat.NewDense(len(rows)+1, n+1, nil)

	for i, r := range rows {
		for name, c := range r.Coeffs {
			j, ok := layout.Column(name)
			if !ok {
				return nil, fmt.Errorf("tableau: row %d references unknown column %q", i, name)
			}
			t.Set(i, j, c)
		}
		t.Set(i, n, r.RHS)
	}

	obj := t.RawRowView(len(rows))
	for name, c := range objective.Coeffs {
		j, ok := layout.Column(name)
		if !ok {
			return nil, fmt.Errorf("tableau: objective references unknown column %q", name)
		}
		obj[j] = c
	}
	obj[n] = -objective.RHS
	if maximize {
		for j := range obj {
			obj[j] = -obj[j]
		}
	}
	return t, nil
}
