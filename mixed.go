package bimatrix

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNonSquareGame       = errors.New("mixed solver requires a square game")
	ErrSingularMatrix      = errors.New("payoff matrix is singular")
	ErrUndefinedValue      = errors.New("equalizing value is undefined")
	ErrInvalidDistribution = errors.New("strategy is not a probability distribution")
	ErrStrategyLength      = errors.New("strategy length does not match game")
)

// DefaultTolerance is used for singularity and distribution checks
// unless Options says otherwise.
const DefaultTolerance = 1e-9

// MixedStrategyResult is a candidate totally-mixed equilibrium.
//
// The strategies are not guaranteed to be probability distributions: if the
// game has no totally-mixed equilibrium, components may be negative.
// Use Validate before treating the result as an equilibrium.
type MixedStrategyResult struct {
	// RowStrategy is Player0's mixed strategy. It makes Player1
	// indifferent among all columns.
	RowStrategy []float64
	// ColStrategy is Player1's mixed strategy. It makes Player0
	// indifferent among all rows.
	ColStrategy []float64
	// RowValue is Player0's payoff against ColStrategy, whatever row is played.
	RowValue float64
	// ColValue is Player1's payoff against RowStrategy, whatever column is played.
	ColValue float64
}

// Validate checks that both strategies are probability distributions
// within tol. It returns ErrInvalidDistribution otherwise.
func (r *MixedStrategyResult) Validate(tol float64) error {
	if err := validateDistribution(r.RowStrategy, tol); err != nil {
		return errors.Wrapf(err, "%v strategy", Player0)
	}
	if err := validateDistribution(r.ColStrategy, tol); err != nil {
		return errors.Wrapf(err, "%v strategy", Player1)
	}
	return nil
}

func validateDistribution(p []float64, tol float64) error {
	for i, x := range p {
		if x < -tol {
			return errors.Wrapf(ErrInvalidDistribution, "component %d is %v", i, x)
		}
	}

	if sum := floats.Sum(p); math.Abs(sum-1) > tol {
		return errors.Wrapf(ErrInvalidDistribution, "components sum to %v", sum)
	}

	return nil
}

// String implements Stringer.
func (r *MixedStrategyResult) String() string {
	return fmt.Sprintf("MixedStrategyResult{x: %v, y: %v, v0: %v, v1: %v}",
		r.RowStrategy, r.ColStrategy, r.RowValue, r.ColValue)
}

// Options configures SolveMixedWithOptions.
type Options struct {
	// SingularTolerance is relative to the scale of the payoffs. A payoff
	// matrix whose 1-norm condition number exceeds 1/SingularTolerance is
	// singular, and uᵗM⁻¹u is treated as zero when it is within
	// SingularTolerance times the sum of |M⁻¹| entries.
	SingularTolerance float64
}

// DefaultOptions are used by SolveMixed.
var DefaultOptions = Options{SingularTolerance: DefaultTolerance}

// SolveMixed computes the equalizing strategies of a square game with
// invertible payoff matrices A (Player0) and B (Player1):
//
//	RowValue    = 1 / (uᵗ A⁻¹ u)
//	ColValue    = 1 / (uᵗ B⁻¹ u)
//	ColStrategy = RowValue · A⁻¹ u
//	RowStrategy = ColValue · uᵗ B⁻¹
//
// where u is the all-ones vector. Against ColStrategy every row pays
// RowValue to Player0, and against RowStrategy every column pays ColValue
// to Player1. The result is only an equilibrium if both strategies are
// distributions; see MixedStrategyResult.Validate.
//
// RowStrategy is computed from uᵗB⁻¹, not B⁻¹u. The two coincide when B is
// symmetric, but only uᵗB⁻¹ makes Player1 indifferent for every invertible B.
func SolveMixed(g *Game) (*MixedStrategyResult, error) {
	return SolveMixedWithOptions(g, DefaultOptions)
}

// SolveMixedWithOptions is SolveMixed with a configurable tolerance.
func SolveMixedWithOptions(g *Game, opts Options) (*MixedStrategyResult, error) {
	if !g.IsSquare() {
		return nil, errors.Wrapf(ErrNonSquareGame, "game is %dx%d", g.Rows(), g.Cols())
	}

	aInv, err := invert(g.rowPayoff, opts.SingularTolerance)
	if err != nil {
		return nil, errors.Wrapf(err, "%v payoff", Player0)
	}
	bInv, err := invert(g.colPayoff, opts.SingularTolerance)
	if err != nil {
		return nil, errors.Wrapf(err, "%v payoff", Player1)
	}

	n := g.Rows()
	u := ones(n)

	// A⁻¹u: the direction of Player1's equalizing strategy.
	var y mat.VecDense
	y.MulVec(aInv, u)
	rowValue, err := equalizingValue(&y, aInv, opts.SingularTolerance)
	if err != nil {
		return nil, errors.Wrapf(err, "%v payoff", Player0)
	}
	y.ScaleVec(rowValue, &y)

	// (B⁻¹)ᵗu, i.e. the row vector uᵗB⁻¹: Player0's equalizing strategy.
	var x mat.VecDense
	x.MulVec(bInv.T(), u)
	colValue, err := equalizingValue(&x, bInv, opts.SingularTolerance)
	if err != nil {
		return nil, errors.Wrapf(err, "%v payoff", Player1)
	}
	x.ScaleVec(colValue, &x)

	return &MixedStrategyResult{
		RowStrategy: vecToSlice(&x),
		ColStrategy: vecToSlice(&y),
		RowValue:    rowValue,
		ColValue:    colValue,
	}, nil
}

func invert(m *mat.Dense, tol float64) (*mat.Dense, error) {
	if cond := mat.Cond(m, 1); math.IsInf(cond, 1) || cond > 1/tol {
		return nil, errors.Wrapf(ErrSingularMatrix, "condition number %v", cond)
	}

	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return nil, errors.Wrapf(ErrSingularMatrix, "%v", err)
	}

	return &inv, nil
}

// equalizingValue returns 1 / sum(v), where v is M⁻¹u or (M⁻¹)ᵗu.
// The sum is zero when it is small relative to the entries of inv.
func equalizingValue(v *mat.VecDense, inv *mat.Dense, tol float64) (float64, error) {
	s := mat.Sum(v)
	scale := floats.Norm(inv.RawMatrix().Data, 1)
	if math.Abs(s) <= tol*scale || math.IsInf(1/s, 0) {
		return 0, errors.Wrapf(ErrUndefinedValue, "uᵗM⁻¹u = %v", s)
	}
	return 1 / s, nil
}

func ones(n int) *mat.VecDense {
	data := make([]float64, n)
	for i := range data {
		data[i] = 1
	}
	return mat.NewVecDense(n, data)
}

func vecToSlice(v *mat.VecDense) []float64 {
	result := make([]float64, v.Len())
	for i := range result {
		result[i] = v.AtVec(i)
	}
	return result
}

// RowPayoffsAgainst returns Player0's expected payoff for each pure row
// when Player1 plays the mixed strategy y.
func RowPayoffsAgainst(g *Game, y []float64) ([]float64, error) {
	if len(y) != g.Cols() {
		return nil, errors.Wrapf(ErrStrategyLength, "%v strategy has %d entries, game has %d columns",
			Player1, len(y), g.Cols())
	}

	var result mat.VecDense
	result.MulVec(g.rowPayoff, mat.NewVecDense(len(y), append([]float64(nil), y...)))
	return vecToSlice(&result), nil
}

// ColPayoffsAgainst returns Player1's expected payoff for each pure column
// when Player0 plays the mixed strategy x.
func ColPayoffsAgainst(g *Game, x []float64) ([]float64, error) {
	if len(x) != g.Rows() {
		return nil, errors.Wrapf(ErrStrategyLength, "%v strategy has %d entries, game has %d rows",
			Player0, len(x), g.Rows())
	}

	var result mat.VecDense
	result.MulVec(g.colPayoff.T(), mat.NewVecDense(len(x), append([]float64(nil), x...)))
	return vecToSlice(&result), nil
}

// ExpectedPayoffs returns the expected payoff of each player when Player0
// plays x and Player1 plays y.
func ExpectedPayoffs(g *Game, x, y []float64) (float64, float64, error) {
	rowPayoffs, err := RowPayoffsAgainst(g, y)
	if err != nil {
		return 0, 0, err
	}
	colPayoffs, err := ColPayoffsAgainst(g, x)
	if err != nil {
		return 0, 0, err
	}

	return floats.Dot(x, rowPayoffs), floats.Dot(colPayoffs, y), nil
}

// DeviationGains returns how much each player could gain by unilaterally
// switching from (x, y) to their best pure strategy. Both are zero (up to
// rounding) exactly when (x, y) is a Nash equilibrium.
func DeviationGains(g *Game, x, y []float64) (rowGain, colGain float64, err error) {
	rowPayoffs, err := RowPayoffsAgainst(g, y)
	if err != nil {
		return 0, 0, err
	}
	colPayoffs, err := ColPayoffsAgainst(g, x)
	if err != nil {
		return 0, 0, err
	}

	rowGain = floats.Max(rowPayoffs) - floats.Dot(x, rowPayoffs)
	colGain = floats.Max(colPayoffs) - floats.Dot(colPayoffs, y)
	return rowGain, colGain, nil
}
