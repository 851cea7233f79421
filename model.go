package toyplex

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yiyinglai/toyplex/constraint"
)

var (
	// ErrDuplicateVariable is returned when a variable name is declared twice.
	ErrDuplicateVariable = errors.New("duplicate variable")
	// ErrUnknownVariable is returned when an expression references a variable
	// the model never declared.
	ErrUnknownVariable = errors.New("unknown variable")
	// ErrReservedName is returned for variable names colliding with the
	// slack/surplus namespace (s1, s2, ..., p1, p2, ...).
	ErrReservedName = errors.New("reserved variable name")
	// ErrInvalidBounds is returned for a negative lower bound or an upper
	// bound below the lower bound.
	ErrInvalidBounds = errors.New("invalid bounds")
	// ErrEmptyExpression is returned for a constraint without any terms.
	ErrEmptyExpression = errors.New("empty expression")
	// ErrNoObjective is returned when Optimize is called before SetObjective.
	ErrNoObjective = errors.New("objective not set")
	// ErrModelSolved is returned when the problem is modified after Optimize.
	ErrModelSolved = errors.New("model already solved")
	// ErrNodeLimit is returned when the search exhausts the configured node
	// limit before terminating.
	ErrNodeLimit = errors.New("node limit exceeded")
)

// reservedName matches the names the equality-form conversion hands out to
// slack and surplus variables.
var reservedName = regexp.MustCompile(`^[sp][0-9]+$`)

// Model is a mixed-integer linear programming model: a problem builder plus
// the branch-and-bound controller that solves it.
//
// A Model is not safe for concurrent use; the solve is fully sequential.
type Model struct {
	cfg Config
	log zerolog.Logger

	tree *tree

	objExpr      *constraint.LinearExpression
	objSense     ObjectiveSense
	hasObjective bool

	// per-kind counters for auto-generated names
	nbCont, nbBin, nbInt int

	status Status
	objVal float64
	values map[string]float64
}

// Solution is the outcome of Optimize. Objective and Values are only
// meaningful when Status is StatusOptimal.
type Solution struct {
	Status    Status
	Objective float64
	Values    map[string]float64
}

// NewModel returns an empty model holding the root node of the search tree.
func NewModel(opts ...Option) (*Model, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	m := &Model{
		cfg:    cfg,
		log:    cfg.Logger,
		tree:   newTree(),
		status: StatusSolving,
	}
	m.tree.add(newNode(m.tree.nextKey()))
	return m, nil
}

// root returns the node holding the full, unbranched problem.
func (m *Model) root() *node {
	return m.tree.node(0)
}

// AddVar declares a decision variable and returns its handle. An empty name
// draws from the x1../b1../i1.. sequence of the variable's kind. The default
// bounds are [0, +Inf); any tighter bounds are materialized as ordinary
// constraints, not stored as native box bounds. Binary variables are always
// bounded to [0, 1], ignoring lb and ub.
func (m *Model) AddVar(kind constraint.Kind, lb, ub float64, name string) (constraint.Variable, error) {
	if m.status != StatusSolving {
		return constraint.Variable{}, ErrModelSolved
	}
	if name == "" {
		name = m.autoName(kind)
	} else if reservedName.MatchString(name) {
		return constraint.Variable{}, fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	root := m.root()
	if _, ok := root.varIndex[name]; ok {
		return constraint.Variable{}, fmt.Errorf("%w: %q", ErrDuplicateVariable, name)
	}

	if kind == constraint.Binary {
		lb, ub = 0, 1
	} else {
		if lb < 0 {
			return constraint.Variable{}, fmt.Errorf("%w: lower bound %g is negative", ErrInvalidBounds, lb)
		}
		if ub < lb {
			return constraint.Variable{}, fmt.Errorf("%w: upper bound %g below lower bound %g", ErrInvalidBounds, ub, lb)
		}
	}

	v := constraint.Variable{Name: name, Kind: kind, LowerBound: lb, UpperBound: ub}
	root.addVariable(v)
	switch kind {
	case constraint.Continuous:
		m.nbCont++
	case constraint.Binary:
		m.nbBin++
	case constraint.Integer:
		m.nbInt++
	}

	if kind == constraint.Binary {
		root.addConstraint(constraint.Constraint{
			Expr:  constraint.NewLinearExpression().AddTerm(1, v),
			Sense: constraint.LessOrEqual,
			RHS:   1,
		})
		return v, nil
	}
	if lb > 0 {
		root.addConstraint(constraint.Constraint{
			Expr:  constraint.NewLinearExpression().AddTerm(1, v),
			Sense: constraint.GreaterOrEqual,
			RHS:   lb,
		})
	}
	if !math.IsInf(ub, 1) {
		root.addConstraint(constraint.Constraint{
			Expr:  constraint.NewLinearExpression().AddTerm(1, v),
			Sense: constraint.LessOrEqual,
			RHS:   ub,
		})
	}
	return v, nil
}

func (m *Model) autoName(kind constraint.Kind) string {
	switch kind {
	case constraint.Binary:
		return "b" + strconv.Itoa(m.nbBin+1)
	case constraint.Integer:
		return "i" + strconv.Itoa(m.nbInt+1)
	default:
		return "x" + strconv.Itoa(m.nbCont+1)
	}
}

// AddConstraint adds expr (sense) rhs to the model. The expression is copied;
// the caller may keep mutating its own. A constant term in the expression is
// folded into the right-hand side.
func (m *Model) AddConstraint(expr *constraint.LinearExpression, sense constraint.Sense, rhs float64) error {
	if m.status != StatusSolving {
		return ErrModelSolved
	}
	if expr == nil || len(expr.Terms) == 0 {
		return ErrEmptyExpression
	}
	root := m.root()
	for name := range expr.Terms {
		if _, ok := root.varIndex[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownVariable, name)
		}
	}
	c := constraint.Constraint{Expr: expr.Clone(), Sense: sense, RHS: rhs}
	if c.Expr.Constant != 0 {
		c.RHS -= c.Expr.Constant
		c.Expr.Constant = 0
	}
	root.addConstraint(c)
	return nil
}

// SetObjective sets the objective expression and optimization sense. Calling
// it again replaces the previous objective.
func (m *Model) SetObjective(expr *constraint.LinearExpression, sense ObjectiveSense) error {
	if m.status != StatusSolving {
		return ErrModelSolved
	}
	if expr == nil {
		return ErrEmptyExpression
	}
	root := m.root()
	for name := range expr.Terms {
		if _, ok := root.varIndex[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownVariable, name)
		}
	}
	m.objExpr = expr.Clone()
	m.objSense = sense
	m.hasObjective = true
	return nil
}

// Status returns the model status: StatusSolving until Optimize terminates.
func (m *Model) Status() Status {
	return m.status
}

// Objective returns the incumbent objective value. Only meaningful once
// Status is StatusOptimal.
func (m *Model) Objective() float64 {
	return m.objVal
}

// Value returns the solved value of v. ok is false until the model is solved
// to optimality.
func (m *Model) Value(v constraint.Variable) (float64, bool) {
	val, ok := m.values[v.Name]
	return val, ok
}

// Variables returns the declared decision variables in declaration order.
// Slack and surplus variables are not included.
func (m *Model) Variables() []constraint.Variable {
	return append([]constraint.Variable(nil), m.root().vars...)
}

// Constraints returns copies of the model's constraints, in insertion order.
// The expressions include the slack/surplus entries of the equality form.
func (m *Model) Constraints() []constraint.Constraint {
	root := m.root()
	res := make([]constraint.Constraint, len(root.constrs))
	for i, c := range root.constrs {
		res[i] = c.Clone()
	}
	return res
}

// Describe renders the problem in the original textual form: the objective
// sense and expression, then one line per constraint. Slack and surplus
// variables are omitted.
func (m *Model) Describe() string {
	var sb strings.Builder
	sb.WriteString(m.objSense.String())
	sb.WriteByte('\t')
	if m.objExpr != nil {
		sb.WriteString(m.objExpr.String())
	}
	sb.WriteByte('\n')

	root := m.root()
	for i, c := range root.constrs {
		if i == 0 {
			sb.WriteString("st\t")
		} else {
			sb.WriteByte('\t')
		}
		m.writeConstraint(&sb, c)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// writeConstraint renders a constraint without its slack/surplus entry.
func (m *Model) writeConstraint(sb *strings.Builder, c constraint.Constraint) {
	root := m.root()
	names := make([]string, 0, len(c.Expr.Terms))
	for name := range c.Expr.Terms {
		if _, ok := root.varIndex[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for i, name := range names {
		if i > 0 {
			sb.WriteString(" + ")
		}
		coeff := c.Expr.Terms[name]
		if coeff != 1 {
			sb.WriteString(strconv.FormatFloat(coeff, 'g', -1, 64))
			sb.WriteByte('*')
		}
		sb.WriteString(name)
	}
	fmt.Fprintf(sb, " %s %g", c.Sense, c.RHS)
}

func (m *Model) solution() Solution {
	values := make(map[string]float64, len(m.values))
	for name, v := range m.values {
		values[name] = v
	}
	return Solution{Status: m.status, Objective: m.objVal, Values: values}
}
