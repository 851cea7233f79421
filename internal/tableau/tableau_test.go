package tableau

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPlacesCoefficients(t *testing.T) {
	assert := require.New(t)

	layout := NewLayout([]string{"x", "y"}, []string{"s1", "s2"}, nil)
	assert.Equal(4, layout.Len())

	rows := []Row{
		{Coeffs: map[string]float64{"x": 1, "y": 2, "s1": 1}, RHS: 4},
		{Coeffs: map[string]float64{"x": 3, "y": 1, "s2": 1}, RHS: 9},
	}
	objective := Row{Coeffs: map[string]float64{"x": 1, "y": 2}}

	tab, err := Build(layout, rows, objective, false)
	assert.NoError(err)

	r, c := tab.Dims()
	assert.Equal(3, r, "one row per constraint plus the objective row")
	assert.Equal(5, c, "columns plus the right-hand side")

	assert.Equal(1.0, tab.At(0, 0))
	assert.Equal(2.0, tab.At(0, 1))
	assert.Equal(1.0, tab.At(0, 2))
	assert.Equal(0.0, tab.At(0, 3))
	assert.Equal(4.0, tab.At(0, 4), "right-hand side in the last column")

	assert.Equal(1.0, tab.At(2, 0))
	assert.Equal(2.0, tab.At(2, 1))
	assert.Equal(0.0, tab.At(2, 4))
}

func TestBuildMaximizeNegatesObjective(t *testing.T) {
	assert := require.New(t)

	layout := NewLayout([]string{"x"}, nil, nil)
	objective := Row{Coeffs: map[string]float64{"x": 5}, RHS: 7}

	tab, err := Build(layout, nil, objective, true)
	assert.NoError(err)

	assert.Equal(-5.0, tab.At(0, 0), "maximization stores the negated objective")
	assert.Equal(7.0, tab.At(0, 1), "objective constant negated twice lands positive")

	tab, err = Build(layout, nil, objective, false)
	assert.NoError(err)
	assert.Equal(5.0, tab.At(0, 0))
	assert.Equal(-7.0, tab.At(0, 1))
}

func TestBuildUnknownColumn(t *testing.T) {
	layout := NewLayout([]string{"x"}, nil, nil)

	_, err := Build(layout, []Row{{Coeffs: map[string]float64{"z": 1}}}, Row{}, false)
	require.ErrorContains(t, err, "unknown column")

	_, err = Build(layout, nil, Row{Coeffs: map[string]float64{"z": 1}}, false)
	require.ErrorContains(t, err, "unknown column")
}
