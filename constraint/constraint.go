// Package constraint holds the data model shared by the toyplex problem
// builder and solving engine: variables, linear expressions and linear
// constraints.
package constraint

import (
	"strconv"
	"strings"
)

// Sense is the relational sense of a constraint.
type Sense uint8

const (
	LessOrEqual Sense = iota
	Equal
	GreaterOrEqual
)

func (s Sense) String() string {
	switch s {
	case LessOrEqual:
		return "<="
	case Equal:
		return "=="
	case GreaterOrEqual:
		return ">="
	default:
		return "?"
	}
}

// A Constraint relates a linear expression to a right-hand side scalar.
//
// Once a constraint is owned by a node, its expression also carries the slack
// (coefficient +1, for <=) or surplus (coefficient -1, for >=) variable that
// converts it to equality form; == constraints carry neither.
type Constraint struct {
	Expr  *LinearExpression
	Sense Sense
	RHS   float64
}

// Clone returns a deep copy of the constraint.
func (c Constraint) Clone() Constraint {
	return Constraint{Expr: c.Expr.Clone(), Sense: c.Sense, RHS: c.RHS}
}

func (c Constraint) String() string {
	var sb strings.Builder
	sb.WriteString(c.Expr.String())
	sb.WriteByte(' ')
	sb.WriteString(c.Sense.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatFloat(c.RHS, 'g', -1, 64))
	return sb.String()
}
