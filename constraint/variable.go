package constraint

// Kind describes the values a decision variable may take.
type Kind uint8

const (
	// Continuous variables take any non-negative real value within their bounds.
	Continuous Kind = iota
	// Binary variables take the values 0 or 1.
	Binary
	// Integer variables take non-negative integer values within their bounds.
	Integer
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Binary:
		return "binary"
	case Integer:
		return "integer"
	default:
		return "unknown"
	}
}

// A Variable is a named decision variable. The name is the variable's identity:
// expressions and solutions refer to variables by name.
//
// Bounds other than the default [0, +Inf) are not native box bounds; the model
// materializes them as ordinary constraints when the variable is declared.
type Variable struct {
	Name       string
	Kind       Kind
	LowerBound float64
	UpperBound float64
}

// IsIntegral reports whether the variable carries an integrality requirement.
func (v Variable) IsIntegral() bool {
	return v.Kind == Binary || v.Kind == Integer
}
