package constraint

import (
	"sort"
	"strconv"
	"strings"
)

// A LinearExpression is a linear combination of variables plus an optional
// constant term. Coefficients are keyed by variable name; each variable
// appears at most once.
type LinearExpression struct {
	Terms    map[string]float64
	Constant float64
}

// NewLinearExpression returns an empty linear expression.
func NewLinearExpression() *LinearExpression {
	return &LinearExpression{Terms: make(map[string]float64)}
}

// AddTerm adds coeff*v to the expression, accumulating with any existing
// coefficient for v. It returns the expression to allow chaining.
func (l *LinearExpression) AddTerm(coeff float64, v Variable) *LinearExpression {
	l.Terms[v.Name] += coeff
	if l.Terms[v.Name] == 0 {
		delete(l.Terms, v.Name)
	}
	return l
}

// AddConstant adds c to the expression's constant term.
func (l *LinearExpression) AddConstant(c float64) *LinearExpression {
	l.Constant += c
	return l
}

// Coefficient returns the coefficient of v, 0 if v does not appear.
func (l *LinearExpression) Coefficient(v Variable) float64 {
	return l.Terms[v.Name]
}

// Clone returns a deep copy of the expression.
func (l *LinearExpression) Clone() *LinearExpression {
	res := &LinearExpression{
		Terms:    make(map[string]float64, len(l.Terms)),
		Constant: l.Constant,
	}
	for name, c := range l.Terms {
		res.Terms[name] = c
	}
	return res
}

// String renders the expression with terms sorted by variable name, so the
// output is deterministic.
func (l *LinearExpression) String() string {
	names := make([]string, 0, len(l.Terms))
	for name := range l.Terms {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteString(" + ")
		}
		writeTerm(&sb, l.Terms[name], name)
	}
	if l.Constant != 0 || len(names) == 0 {
		if len(names) > 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString(strconv.FormatFloat(l.Constant, 'g', -1, 64))
	}
	return sb.String()
}

func writeTerm(sb *strings.Builder, coeff float64, name string) {
	if coeff == 1 {
		sb.WriteString(name)
		return
	}
	sb.WriteString(strconv.FormatFloat(coeff, 'g', -1, 64))
	sb.WriteByte('*')
	sb.WriteString(name)
}
