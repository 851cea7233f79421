package tableau

import (
	"math"

	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/mat"
)

// Status is the outcome of a simplex run.
type Status uint8

const (
	// Optimal means no objective-row entry can improve the objective further.
	Optimal Status = iota
	// Unbounded means an entering column admits no leaving row.
	Unbounded
	// Infeasible means phase 1 could not drive all artificial variables to zero.
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Unbounded:
		return "unbounded"
	case Infeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// Consecutive degenerate pivots tolerated before the entering rule switches
// from Dantzig's most-negative selection to Bland's rule.
const degenerateLimit = 64

// Simplex mutates a tableau in place until it is optimal, unbounded or proven
// infeasible. The engine always minimizes; the tableau builder encodes the
// sense convention.
type Simplex struct {
	tab *mat.Dense
	m   int // constraint rows
	n   int // columns, excluding the right-hand side

	tol        float64
	artificial *bitset.BitSet
	status     Status
}

// NewSimplex wraps a freshly built tableau. tol guards every sign and ratio
// test against floating-point noise.
func NewSimplex(t *mat.Dense, tol float64) *Simplex {
	r, c := t.Dims()
	return &Simplex{tab: t, m: r - 1, n: c - 1, tol: tol}
}

// Solve runs the two-phase primal simplex method.
//
// Rows whose slack admits a trivially feasible start form the initial basis;
// the remaining rows receive an artificial variable and phase 1 minimizes the
// artificial sum. A positive phase-1 optimum proves the relaxation infeasible.
// Phase 2 then pivots the real objective row: most negative entry enters
// (leftmost on ties), the minimum-ratio row leaves (smallest index on ties).
func (s *Simplex) Solve() Status {
	s.normalizeRHS()
	if !s.installBasis() {
		s.status = Infeasible
		return s.status
	}
	s.status = s.iterate(s.m, true)
	return s.status
}

// Status returns the outcome of the last Solve call.
func (s *Simplex) Status() Status {
	return s.status
}

// ObjectiveRHS returns the objective row's right-hand side entry. On Optimal
// it holds the objective value, sign-adjusted per the builder's convention.
func (s *Simplex) ObjectiveRHS() float64 {
	return s.tab.At(s.m, s.n)
}

// Values reads the basic feasible solution out of the tableau: each unit
// column among the constraint rows gives its variable the right-hand side of
// the unit row, every other variable is 0. A row backs at most one column.
func (s *Simplex) Values() []float64 {
	vals := make([]float64, s.n)
	claimed := bitset.New(uint(s.m))
	for j := 0; j < s.n; j++ {
		if s.artificial != nil && s.artificial.Test(uint(j)) {
			continue
		}
		row, ok := s.unitRow(j)
		if !ok || claimed.Test(uint(row)) {
			continue
		}
		claimed.Set(uint(row))
		vals[j] = s.tab.At(row, s.n)
	}
	return vals
}

// unitRow returns the row index r if column j has entry 1 at r and 0 in every
// other constraint row.
func (s *Simplex) unitRow(j int) (int, bool) {
	row := -1
	for i := 0; i < s.m; i++ {
		e := s.tab.At(i, j)
		switch {
		case math.Abs(e-1) <= s.tol:
			if row >= 0 {
				return -1, false
			}
			row = i
		case math.Abs(e) > s.tol:
			return -1, false
		}
	}
	return row, row >= 0
}

// normalizeRHS negates rows with a negative right-hand side so the two-phase
// start always sees b >= 0.
func (s *Simplex) normalizeRHS() {
	for i := 0; i < s.m; i++ {
		if s.tab.At(i, s.n) < -s.tol {
			row := s.tab.RawRowView(i)
			for j := range row {
				row[j] = -row[j]
			}
		}
	}
}

// installBasis finds a unit column with zero objective cost for every row;
// rows without one get an artificial variable and phase 1 runs. It reports
// whether a feasible basis exists.
func (s *Simplex) installBasis() bool {
	hasBasis := make([]bool, s.m)
	for j := 0; j < s.n; j++ {
		r, ok := s.unitRow(j)
		if ok && !hasBasis[r] && math.Abs(s.tab.At(s.m, j)) <= s.tol {
			hasBasis[r] = true
		}
	}

	var need []int
	for i := 0; i < s.m; i++ {
		if !hasBasis[i] {
			need = append(need, i)
		}
	}
	if len(need) == 0 {
		return true
	}

	s.addArtificials(need)
	// Phase 1: minimize the artificial sum. The objective is bounded below by
	// zero, so a non-Optimal outcome or a positive optimum both mean no
	// feasible basis exists.
	if s.iterate(s.m+1, false) != Optimal {
		return false
	}
	if -s.tab.At(s.m+1, s.n) > s.tol {
		return false
	}
	s.driveOutArtificials()

	// Drop the phase-1 objective row.
	s.tab = s.tab.Slice(0, s.m+1, 0, s.n+1).(*mat.Dense)
	return true
}

// addArtificials rebuilds the tableau with one artificial column per row in
// need, inserted between the surplus columns and the right-hand side, plus a
// phase-1 objective row priced out against the artificial basis.
func (s *Simplex) addArtificials(need []int) {
	k := len(need)
	newN := s.n + k
	t := mat.NewDense(s.m+2, newN+1, nil)

	for i := 0; i <= s.m; i++ {
		src := s.tab.RawRowView(i)
		dst := t.RawRowView(i)
		copy(dst[:s.n], src[:s.n])
		dst[newN] = src[s.n]
	}

	s.artificial = bitset.New(uint(newN))
	for idx, r := range need {
		t.Set(r, s.n+idx, 1)
		s.artificial.Set(uint(s.n + idx))
	}

	// Phase-1 row: cost 1 per artificial, then subtract each artificial's row
	// so the basic columns have zero reduced cost.
	p1 := t.RawRowView(s.m + 1)
	for idx := range need {
		p1[s.n+idx] = 1
	}
	for _, r := range need {
		row := t.RawRowView(r)
		for j := range p1 {
			p1[j] -= row[j]
		}
	}

	s.tab = t
	s.n = newN
}

// driveOutArtificials pivots artificial variables that are still basic at zero
// level out of the basis where a structural pivot exists. A row with no
// structural entry is redundant and stays untouched; it can never be selected
// by a later ratio test.
func (s *Simplex) driveOutArtificials() {
	for a, ok := s.artificial.NextSet(0); ok; a, ok = s.artificial.NextSet(a + 1) {
		r, unit := s.unitRow(int(a))
		if !unit {
			continue
		}
		for j := 0; j < s.n; j++ {
			if s.artificial.Test(uint(j)) {
				continue
			}
			if math.Abs(s.tab.At(r, j)) > s.tol {
				s.pivot(r, j)
				break
			}
		}
	}
}

// iterate runs the pivot loop against the reduced costs in row objRow. When
// banArtificial is set, artificial columns may not enter the basis.
func (s *Simplex) iterate(objRow int, banArtificial bool) Status {
	degenerate := 0
	for {
		col := s.entering(objRow, banArtificial, degenerate >= degenerateLimit)
		if col < 0 {
			return Optimal
		}
		row := s.leaving(col)
		if row < 0 {
			return Unbounded
		}
		if s.tab.At(row, s.n) <= s.tol {
			degenerate++
		} else {
			degenerate = 0
		}
		s.pivot(row, col)
	}
}

// entering selects the entering column: the most negative objective-row entry,
// leftmost on ties. Under Bland's rule the leftmost negative entry wins
// outright, which guarantees termination on degenerate cycles.
func (s *Simplex) entering(objRow int, banArtificial, bland bool) int {
	col := -1
	best := -s.tol
	for j := 0; j < s.n; j++ {
		if banArtificial && s.artificial != nil && s.artificial.Test(uint(j)) {
			continue
		}
		v := s.tab.At(objRow, j)
		if v >= -s.tol {
			continue
		}
		if bland {
			return j
		}
		if v < best {
			best = v
			col = j
		}
	}
	return col
}

// leaving selects the leaving row by the minimum-ratio test over rows with a
// strictly positive entry in the entering column, smallest row index on ties.
// Returns -1 when no such row exists (unbounded direction).
func (s *Simplex) leaving(col int) int {
	row := -1
	best := math.Inf(1)
	for i := 0; i < s.m; i++ {
		e := s.tab.At(i, col)
		if e <= s.tol {
			continue
		}
		ratio := s.tab.At(i, s.n) / e
		if ratio < best {
			best = ratio
			row = i
		}
	}
	return row
}

// pivot makes (row, col) a unit pivot: the pivot row is scaled so the pivot
// entry becomes exactly 1, then the entering column is eliminated from every
// other row, objective rows included, by row subtraction.
func (s *Simplex) pivot(row, col int) {
	pr := s.tab.RawRowView(row)
	p := pr[col]
	for j := range pr {
		pr[j] /= p
	}
	pr[col] = 1

	nRows, _ := s.tab.Dims()
	for i := 0; i < nRows; i++ {
		if i == row {
			continue
		}
		f := s.tab.At(i, col)
		if f == 0 {
			continue
		}
		ri := s.tab.RawRowView(i)
		for j := range ri {
			ri[j] -= f * pr[j]
		}
		ri[col] = 0
	}
}
