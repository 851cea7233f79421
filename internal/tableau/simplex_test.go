package tableau

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

const testTol = 1e-9

// classic production-planning LP: max 3x+5y s.t. x<=4, 2y<=12, 3x+2y<=18,
// known unique optimum 36 at (2, 6).
func buildKnownOptimum(t *testing.T) *Simplex {
	t.Helper()
	layout := NewLayout([]string{"x", "y"}, []string{"s1", "s2", "s3"}, nil)
	rows := []Row{
		{Coeffs: map[string]float64{"x": 1, "s1": 1}, RHS: 4},
		{Coeffs: map[string]float64{"y": 2, "s2": 1}, RHS: 12},
		{Coeffs: map[string]float64{"x": 3, "y": 2, "s3": 1}, RHS: 18},
	}
	objective := Row{Coeffs: map[string]float64{"x": 3, "y": 5}}
	tab, err := Build(layout, rows, objective, true)
	require.NoError(t, err)
	return NewSimplex(tab, testTol)
}

func TestSolveKnownOptimum(t *testing.T) {
	assert := require.New(t)

	spx := buildKnownOptimum(t)
	assert.Equal(Optimal, spx.Solve())
	assert.True(scalar.EqualWithinAbs(spx.ObjectiveRHS(), 36, 1e-8), "objective, got %v", spx.ObjectiveRHS())

	vals := spx.Values()
	assert.True(scalar.EqualWithinAbs(vals[0], 2, 1e-8), "x, got %v", vals[0])
	assert.True(scalar.EqualWithinAbs(vals[1], 6, 1e-8), "y, got %v", vals[1])

	// the readout must satisfy the original constraints
	assert.LessOrEqual(vals[0], 4+1e-8)
	assert.LessOrEqual(2*vals[1], 12+1e-8)
	assert.LessOrEqual(3*vals[0]+2*vals[1], 18+1e-8)
}

func TestSolveMinimizationWithSurplus(t *testing.T) {
	assert := require.New(t)

	// min 2x+3y s.t. x+y >= 10: phase 1 is required, optimum 20 at (10, 0)
	layout := NewLayout([]string{"x", "y"}, nil, []string{"p1"})
	rows := []Row{
		{Coeffs: map[string]float64{"x": 1, "y": 1, "p1": -1}, RHS: 10},
	}
	objective := Row{Coeffs: map[string]float64{"x": 2, "y": 3}}
	tab, err := Build(layout, rows, objective, false)
	assert.NoError(err)

	spx := NewSimplex(tab, testTol)
	assert.Equal(Optimal, spx.Solve())
	assert.True(scalar.EqualWithinAbs(-spx.ObjectiveRHS(), 20, 1e-8), "objective, got %v", -spx.ObjectiveRHS())

	vals := spx.Values()
	assert.True(scalar.EqualWithinAbs(vals[0], 10, 1e-8))
	assert.True(scalar.EqualWithinAbs(vals[1], 0, 1e-8))
}

func TestSolveEqualityConstraint(t *testing.T) {
	assert := require.New(t)

	// max x+2y s.t. x+y == 4: optimum 8 at (0, 4)
	layout := NewLayout([]string{"x", "y"}, nil, nil)
	rows := []Row{
		{Coeffs: map[string]float64{"x": 1, "y": 1}, RHS: 4},
	}
	objective := Row{Coeffs: map[string]float64{"x": 1, "y": 2}}
	tab, err := Build(layout, rows, objective, true)
	assert.NoError(err)

	spx := NewSimplex(tab, testTol)
	assert.Equal(Optimal, spx.Solve())
	assert.True(scalar.EqualWithinAbs(spx.ObjectiveRHS(), 8, 1e-8))

	vals := spx.Values()
	assert.True(scalar.EqualWithinAbs(vals[0], 0, 1e-8))
	assert.True(scalar.EqualWithinAbs(vals[1], 4, 1e-8))
}

func TestSolveUnbounded(t *testing.T) {
	assert := require.New(t)

	// max x with no constraint rows at all
	layout := NewLayout([]string{"x"}, nil, nil)
	tab, err := Build(layout, nil, Row{Coeffs: map[string]float64{"x": 1}}, true)
	assert.NoError(err)
	assert.Equal(Unbounded, NewSimplex(tab, testTol).Solve())

	// max x s.t. x >= 1: feasible basis needs phase 1, then phase 2 diverges
	layout = NewLayout([]string{"x"}, nil, []string{"p1"})
	rows := []Row{{Coeffs: map[string]float64{"x": 1, "p1": -1}, RHS: 1}}
	tab, err = Build(layout, rows, Row{Coeffs: map[string]float64{"x": 1}}, true)
	assert.NoError(err)
	assert.Equal(Unbounded, NewSimplex(tab, testTol).Solve())
}

func TestSolveInfeasible(t *testing.T) {
	assert := require.New(t)

	// x >= 5 and x <= 3 cannot both hold
	layout := NewLayout([]string{"x"}, []string{"s1"}, []string{"p1"})
	rows := []Row{
		{Coeffs: map[string]float64{"x": 1, "p1": -1}, RHS: 5},
		{Coeffs: map[string]float64{"x": 1, "s1": 1}, RHS: 3},
	}
	tab, err := Build(layout, rows, Row{Coeffs: map[string]float64{"x": 1}}, false)
	assert.NoError(err)
	assert.Equal(Infeasible, NewSimplex(tab, testTol).Solve())
}

func TestSolveDegenerate(t *testing.T) {
	assert := require.New(t)

	// x <= 0 pins the optimum to a degenerate vertex; the engine must still
	// terminate and report 0
	layout := NewLayout([]string{"x"}, []string{"s1", "s2"}, nil)
	rows := []Row{
		{Coeffs: map[string]float64{"x": 1, "s1": 1}, RHS: 0},
		{Coeffs: map[string]float64{"x": 1, "s2": 1}, RHS: 1},
	}
	tab, err := Build(layout, rows, Row{Coeffs: map[string]float64{"x": 1}}, true)
	assert.NoError(err)

	spx := NewSimplex(tab, testTol)
	assert.Equal(Optimal, spx.Solve())
	assert.True(scalar.EqualWithinAbs(spx.ObjectiveRHS(), 0, 1e-8))
	assert.True(scalar.EqualWithinAbs(spx.Values()[0], 0, 1e-8))
}

func TestSolveIsIdempotentOnTableau(t *testing.T) {
	assert := require.New(t)

	spx := buildKnownOptimum(t)
	assert.Equal(Optimal, spx.Solve())
	first := spx.ObjectiveRHS()

	// an optimal tableau has no negative reduced cost left; solving again
	// must not pivot
	assert.Equal(Optimal, spx.Solve())
	assert.Equal(first, spx.ObjectiveRHS())
	assert.Equal(Optimal, spx.Status())
}
