// Package bimatrix analyzes finite two-player games in strategic form.
//
// A Game is a pair of equal-shaped payoff matrices, one per player. The row
// player (Player0) picks a row, the column player (Player1) picks a column,
// and each receives the entry of their own matrix at that cell.
package bimatrix

import (
	"bytes"
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrDimensionMismatch = errors.New("payoff matrices have different dimensions")
	ErrEmptyGame         = errors.New("game must have at least one row and one column")
	ErrRaggedMatrix      = errors.New("payoff matrix rows have unequal length")
	ErrInvalidRange      = errors.New("invalid payoff range")
)

// Profile is a pure strategy profile: Player0 plays Row and Player1 plays Col.
type Profile struct {
	Row, Col int
}

func (p Profile) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Outcome is a Profile together with the payoff each player receives there.
type Outcome struct {
	Profile
	RowPayoff float64
	ColPayoff float64
}

// Game is a bimatrix game. A Game is immutable once constructed and is
// safe for concurrent use.
type Game struct {
	rowPayoff *mat.Dense
	colPayoff *mat.Dense
}

// NewGame creates a Game from the payoff matrices of each player.
// The input is copied.
func NewGame(rowPayoff, colPayoff [][]float64) (*Game, error) {
	a, err := denseFromRows(rowPayoff)
	if err != nil {
		return nil, errors.Wrapf(err, "%v payoff", Player0)
	}

	b, err := denseFromRows(colPayoff)
	if err != nil {
		return nil, errors.Wrapf(err, "%v payoff", Player1)
	}

	return newGame(a, b)
}

// NewGameFromDense creates a Game from gonum matrices. The input is copied.
func NewGameFromDense(rowPayoff, colPayoff mat.Matrix) (*Game, error) {
	for p, m := range []mat.Matrix{rowPayoff, colPayoff} {
		if m == nil {
			return nil, errors.Wrapf(ErrEmptyGame, "%v payoff", Player(p))
		}
		if r, c := m.Dims(); r == 0 || c == 0 {
			return nil, errors.Wrapf(ErrEmptyGame, "%v payoff", Player(p))
		}
	}

	return newGame(mat.DenseCopyOf(rowPayoff), mat.DenseCopyOf(colPayoff))
}

func newGame(a, b *mat.Dense) (*Game, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return nil, errors.Wrapf(ErrDimensionMismatch,
			"%v payoff is %dx%d, %v payoff is %dx%d", Player0, ar, ac, Player1, br, bc)
	}

	return &Game{rowPayoff: a, colPayoff: b}, nil
}

func denseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGame
	}

	nCols := len(rows[0])
	data := make([]float64, 0, len(rows)*nCols)
	for i, row := range rows {
		if len(row) != nCols {
			return nil, errors.Wrapf(ErrRaggedMatrix,
				"row %d has %d entries, expected %d", i, len(row), nCols)
		}
		data = append(data, row...)
	}

	return mat.NewDense(len(rows), nCols, data), nil
}

// IntRange is a closed range of integers [Min, Max].
type IntRange struct {
	Min, Max int
}

// DefaultRange is the payoff range used for random games unless another is given.
var DefaultRange = IntRange{Min: 0, Max: 99}

// NewRandomGame creates a rows x cols game whose payoffs are drawn
// independently and uniformly from r, first for Player0 then for Player1.
//
// rng is advanced by the call and must not be shared with other goroutines.
func NewRandomGame(rng *rand.Rand, rows, cols int, r IntRange) (*Game, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrEmptyGame, "requested %dx%d", rows, cols)
	}
	if r.Min > r.Max {
		return nil, errors.Wrapf(ErrInvalidRange, "[%d, %d]", r.Min, r.Max)
	}

	a := randomDense(rng, rows, cols, r)
	b := randomDense(rng, rows, cols, r)
	return &Game{rowPayoff: a, colPayoff: b}, nil
}

func randomDense(rng *rand.Rand, rows, cols int, r IntRange) *mat.Dense {
	width := int64(r.Max) - int64(r.Min) + 1
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = float64(int64(r.Min) + rng.Int63n(width))
	}

	return mat.NewDense(rows, cols, data)
}

// Rows returns the number of pure strategies of Player0.
func (g *Game) Rows() int {
	r, _ := g.rowPayoff.Dims()
	return r
}

// Cols returns the number of pure strategies of Player1.
func (g *Game) Cols() int {
	_, c := g.rowPayoff.Dims()
	return c
}

// IsSquare returns whether both players have the same number of strategies.
func (g *Game) IsSquare() bool {
	return g.Rows() == g.Cols()
}

// PayoffRow returns Player0's payoff at (i, j).
func (g *Game) PayoffRow(i, j int) float64 {
	return g.rowPayoff.At(i, j)
}

// PayoffCol returns Player1's payoff at (i, j).
func (g *Game) PayoffCol(i, j int) float64 {
	return g.colPayoff.At(i, j)
}

// Payoff returns the payoff of player p at (i, j).
func (g *Game) Payoff(p Player, i, j int) float64 {
	if p == Player0 {
		return g.PayoffRow(i, j)
	}
	return g.PayoffCol(i, j)
}

// Outcome returns the Outcome at profile (i, j).
func (g *Game) Outcome(i, j int) Outcome {
	return Outcome{
		Profile:   Profile{Row: i, Col: j},
		RowPayoff: g.PayoffRow(i, j),
		ColPayoff: g.PayoffCol(i, j),
	}
}

// RowPayoff returns Player0's payoff matrix. The result must not be modified.
func (g *Game) RowPayoff() mat.Matrix {
	return g.rowPayoff
}

// ColPayoff returns Player1's payoff matrix. The result must not be modified.
func (g *Game) ColPayoff() mat.Matrix {
	return g.colPayoff
}

// RowPayoffs returns a copy of Player0's payoff matrix.
func (g *Game) RowPayoffs() [][]float64 {
	return rowsFromDense(g.rowPayoff)
}

// ColPayoffs returns a copy of Player1's payoff matrix.
func (g *Game) ColPayoffs() [][]float64 {
	return rowsFromDense(g.colPayoff)
}

func rowsFromDense(m *mat.Dense) [][]float64 {
	r, c := m.Dims()
	result := make([][]float64, r)
	for i := range result {
		result[i] = mat.Row(make([]float64, c), i, m)
	}
	return result
}

// String implements Stringer.
func (g *Game) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Game %dx%d {", g.Rows(), g.Cols())
	for i := 0; i < g.Rows(); i++ {
		if i > 0 {
			buf.WriteString(";")
		}
		for j := 0; j < g.Cols(); j++ {
			fmt.Fprintf(&buf, " (%g, %g)", g.PayoffRow(i, j), g.PayoffCol(i, j))
		}
	}
	buf.WriteString(" }")
	return buf.String()
}
