package toyplex

import (
	"fmt"
	"math"

	"github.com/yiyinglai/toyplex/constraint"
)

// Optimize runs the branch-and-bound search: it repeatedly pops the
// first-inserted candidate node, solves its LP relaxation, and either drops
// it (infeasible), halts the whole search (unbounded), records it as the new
// incumbent (integral and improving), prunes it (cannot beat the incumbent)
// or branches it into two child nodes on its first fractional variable.
//
// Optimize is idempotent: calling it on an already-solved model returns the
// same solution without re-solving. When a node limit is configured the
// search stops early with ErrNodeLimit and may be resumed with another call.
func (m *Model) Optimize() (Solution, error) {
	if !m.hasObjective {
		return Solution{}, ErrNoObjective
	}
	if m.status != StatusSolving {
		return m.solution(), nil
	}

	if m.tree.incumbentKey < 0 {
		if m.objSense == Maximize {
			m.tree.incumbentVal = math.Inf(-1)
		} else {
			m.tree.incumbentVal = math.Inf(1)
		}
	}

	explored := 0
	for m.status == StatusSolving {
		if m.cfg.NodeLimit > 0 && explored >= m.cfg.NodeLimit && m.tree.pending() {
			return Solution{}, fmt.Errorf("%w: %d nodes explored", ErrNodeLimit, explored)
		}

		n, ok := m.tree.pop()
		if !ok {
			m.finish()
			break
		}
		explored++

		if err := m.processNode(n); err != nil {
			return Solution{}, err
		}
	}
	return m.solution(), nil
}

// processNode solves one node's relaxation and applies the branch/bound/drop
// decision.
func (m *Model) processNode(n *node) error {
	if err := n.solve(m.objExpr, m.objSense, m.cfg.Tolerance); err != nil {
		return err
	}
	m.log.Debug().Int("node", n.key).Stringer("status", n.status).
		Float64("objective", n.objVal).Msg("relaxation solved")

	switch n.status {
	case StatusInfeasible:
		// dropped from the candidate queue, kept in the tree

	case StatusUnbounded:
		// Child relaxations are always at least as constrained as the root, so
		// only the root should ever be unbounded. Surface a violation instead
		// of silently relying on it.
		if n.key != 0 {
			m.log.Warn().Int("node", n.key).Msg("unbounded relaxation at non-root node")
		}
		m.status = StatusUnbounded

	case StatusOptimal:
		v, val, frac := n.fractional(m.cfg.IntegralityTolerance)
		if !frac {
			if m.improves(n.objVal) {
				m.tree.setIncumbent(n.key, n.objVal)
				m.log.Debug().Int("node", n.key).Float64("objective", n.objVal).
					Msg("new incumbent")
			}
			return nil
		}
		if !m.improves(n.objVal) {
			// bound: this relaxation cannot beat the incumbent
			m.log.Debug().Int("node", n.key).Float64("objective", n.objVal).
				Float64("incumbent", m.tree.incumbentVal).Msg("pruned")
			return nil
		}
		m.branch(n, v, val)
	}
	return nil
}

// improves reports whether objVal is strictly better than the incumbent under
// the model's optimization sense.
func (m *Model) improves(objVal float64) bool {
	if m.objSense == Maximize {
		return objVal > m.tree.incumbentVal
	}
	return objVal < m.tree.incumbentVal
}

// branch spawns the two children of n for the fractional variable v: one with
// v <= floor(val), one with v >= ceil(val). Together they partition away
// exactly the open interval (floor(val), ceil(val)) and keep every integer
// point reachable from the parent.
func (m *Model) branch(n *node, v constraint.Variable, val float64) {
	down := n.clone(m.tree.nextKey())
	down.addConstraint(constraint.Constraint{
		Expr:  constraint.NewLinearExpression().AddTerm(1, v),
		Sense: constraint.LessOrEqual,
		RHS:   math.Floor(val),
	})
	m.tree.add(down)

	up := n.clone(m.tree.nextKey())
	up.addConstraint(constraint.Constraint{
		Expr:  constraint.NewLinearExpression().AddTerm(1, v),
		Sense: constraint.GreaterOrEqual,
		RHS:   math.Ceil(val),
	})
	m.tree.add(up)

	m.log.Debug().Int("node", n.key).Str("var", v.Name).Float64("value", val).
		Int("down", down.key).Int("up", up.key).Msg("branching")
}

// finish runs once the candidate queue drains: with an incumbent the model is
// optimal and the incumbent's values become the model's; without one, no
// integer-feasible point exists anywhere in the tree and the model is
// infeasible.
func (m *Model) finish() {
	if m.tree.incumbentKey < 0 {
		m.status = StatusInfeasible
		m.log.Info().Stringer("status", m.status).Int("nodes", m.tree.next).
			Msg("optimization finished")
		return
	}
	inc := m.tree.node(m.tree.incumbentKey)
	m.status = StatusOptimal
	m.objVal = inc.objVal
	m.values = make(map[string]float64, len(m.root().vars))
	for _, v := range m.root().vars {
		m.values[v.Name] = inc.values[v.Name]
	}
	m.log.Info().Stringer("status", m.status).Float64("objective", m.objVal).
		Int("nodes", m.tree.next).Msg("optimization finished")
}
