package toyplex

// Status reports the outcome of a solve, for a single node's relaxation as
// well as for the whole model. Failure outcomes are status codes, never
// errors; errors are reserved for caller contract violations.
type Status int8

const (
	// StatusSolving is the in-progress sentinel, never a final answer.
	StatusSolving Status = iota - 1
	// StatusOptimal means an optimal assignment was found.
	StatusOptimal
	// StatusUnbounded means the objective improves without limit.
	StatusUnbounded
	// StatusInfeasible means no feasible assignment exists.
	StatusInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusSolving:
		return "solving"
	case StatusOptimal:
		return "optimal"
	case StatusUnbounded:
		return "unbounded"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// ObjectiveSense selects the optimization direction.
type ObjectiveSense uint8

const (
	Minimize ObjectiveSense = iota
	Maximize
)

func (s ObjectiveSense) String() string {
	if s == Maximize {
		return "max"
	}
	return "min"
}
