package bimatrix

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

const testTolerance = 1e-9

func assertClose(t *testing.T, name string, got, want []float64) {
	t.Helper()
	if !floats.EqualApprox(got, want, testTolerance) {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}

func TestSolveMixed_FourthOption(t *testing.T) {
	g := fourthOption(t)
	result, err := SolveMixed(g)
	if err != nil {
		t.Fatal(err)
	}

	assertClose(t, "row strategy", result.RowStrategy, []float64{1.0 / 6, 5.0 / 6})
	assertClose(t, "col strategy", result.ColStrategy, []float64{1.0 / 3, 2.0 / 3})
	if math.Abs(result.RowValue-14.0/3) > testTolerance {
		t.Errorf("expected row value 14/3, got %v", result.RowValue)
	}
	if math.Abs(result.ColValue-17.0/6) > testTolerance {
		t.Errorf("expected col value 17/6, got %v", result.ColValue)
	}

	if err := result.Validate(testTolerance); err != nil {
		t.Errorf("expected valid distribution: %v", err)
	}
	assertIndifferent(t, g, result)
}

// A non-symmetric column payoff distinguishes uᵗB⁻¹ from B⁻¹u.
func TestSolveMixed_AsymmetricColumnPayoff(t *testing.T) {
	g := mustNewGame(t,
		[][]float64{{3, 0}, {0, 1}},
		[][]float64{{2, 0}, {1, 3}})
	result, err := SolveMixed(g)
	if err != nil {
		t.Fatal(err)
	}

	assertClose(t, "row strategy", result.RowStrategy, []float64{0.5, 0.5})
	assertClose(t, "col strategy", result.ColStrategy, []float64{0.25, 0.75})
	if math.Abs(result.ColValue-1.5) > testTolerance {
		t.Errorf("expected col value 1.5, got %v", result.ColValue)
	}
	assertIndifferent(t, g, result)
}

func assertIndifferent(t *testing.T, g *Game, result *MixedStrategyResult) {
	t.Helper()
	colPayoffs, err := ColPayoffsAgainst(g, result.RowStrategy)
	if err != nil {
		t.Fatal(err)
	}
	for j, v := range colPayoffs {
		if math.Abs(v-result.ColValue) > 1e-6 {
			t.Errorf("column %d pays %v against row strategy, expected %v", j, v, result.ColValue)
		}
	}

	rowPayoffs, err := RowPayoffsAgainst(g, result.ColStrategy)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range rowPayoffs {
		if math.Abs(v-result.RowValue) > 1e-6 {
			t.Errorf("row %d pays %v against col strategy, expected %v", i, v, result.RowValue)
		}
	}
}

func TestSolveMixed_Singular(t *testing.T) {
	testCases := []struct {
		name string
		a, b [][]float64
	}{
		{"row payoff", [][]float64{{1, 1}, {1, 1}}, [][]float64{{1, 0}, {0, 1}}},
		{"col payoff", [][]float64{{1, 0}, {0, 1}}, [][]float64{{2, 4}, {1, 2}}},
		{"zero", [][]float64{{0}}, [][]float64{{1}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := SolveMixed(mustNewGame(t, tc.a, tc.b))
			if errors.Cause(err) != ErrSingularMatrix {
				t.Errorf("expected ErrSingularMatrix, got %v", err)
			}
			if result != nil {
				t.Errorf("expected no result, got %v", result)
			}
		})
	}
}

func TestSolveMixed_NonSquare(t *testing.T) {
	g := mustNewGame(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, [][]float64{{1, 2, 3}, {4, 5, 6}})
	result, err := SolveMixed(g)
	if errors.Cause(err) != ErrNonSquareGame {
		t.Errorf("expected ErrNonSquareGame, got %v", err)
	}
	if result != nil {
		t.Errorf("expected no result, got %v", result)
	}
}

func TestSolveMixed_UndefinedValue(t *testing.T) {
	// Zero determinant is reported before the value is considered.
	g := mustNewGame(t,
		[][]float64{{-1, 1}, {1, -1}},
		[][]float64{{1, 0}, {0, 1}})
	if _, err := SolveMixed(g); errors.Cause(err) != ErrSingularMatrix {
		t.Errorf("expected ErrSingularMatrix for det 0, got %v", err)
	}

	// A = [[1, 2], [3, 4]]: A⁻¹ = [[-2, 1], [1.5, -0.5]], uᵗA⁻¹u = 0.
	g = mustNewGame(t,
		[][]float64{{1, 2}, {3, 4}},
		[][]float64{{1, 0}, {0, 1}})
	if _, err := SolveMixed(g); errors.Cause(err) != ErrUndefinedValue {
		t.Errorf("expected ErrUndefinedValue, got %v", err)
	}
}

func TestSolveMixed_PayoffScale(t *testing.T) {
	testCases := []struct {
		name  string
		scale float64
	}{
		{"large", 1e10},
		{"small", 1e-5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := [][]float64{{tc.scale, 0}, {0, tc.scale}}
			result, err := SolveMixed(mustNewGame(t, m, m))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			assertClose(t, "row strategy", result.RowStrategy, []float64{0.5, 0.5})
			assertClose(t, "col strategy", result.ColStrategy, []float64{0.5, 0.5})
			want := tc.scale / 2
			if math.Abs(result.RowValue-want) > 1e-9*want || math.Abs(result.ColValue-want) > 1e-9*want {
				t.Errorf("expected values %v, got %v and %v", want, result.RowValue, result.ColValue)
			}
		})
	}
}

func TestSolveMixed_IllConditioned(t *testing.T) {
	g := mustNewGame(t,
		[][]float64{{1, 1}, {1, 1 + 1e-12}},
		[][]float64{{1, 0}, {0, 1}})
	if _, err := SolveMixed(g); errors.Cause(err) != ErrSingularMatrix {
		t.Errorf("expected ErrSingularMatrix, got %v", err)
	}
}

func TestSolveMixed_InvalidDistribution(t *testing.T) {
	result, err := SolveMixed(prisonersDilemma(t))
	if err != nil {
		t.Fatal(err)
	}

	// The raw vectors are still returned.
	assertClose(t, "col strategy", result.ColStrategy, []float64{1.25, -0.25})
	if err := result.Validate(testTolerance); errors.Cause(err) != ErrInvalidDistribution {
		t.Errorf("expected ErrInvalidDistribution, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		x, y  []float64
		valid bool
	}{
		{[]float64{0.5, 0.5}, []float64{1, 0}, true},
		{[]float64{0.5, 0.5 + 1e-12}, []float64{1}, true},
		{[]float64{0.6, 0.6}, []float64{1}, false},
		{[]float64{1.5, -0.5}, []float64{1}, false},
		{[]float64{1}, []float64{0.2, 0.2}, false},
	}

	for _, tc := range testCases {
		r := &MixedStrategyResult{RowStrategy: tc.x, ColStrategy: tc.y}
		err := r.Validate(testTolerance)
		if tc.valid && err != nil {
			t.Errorf("%v: unexpected error %v", r, err)
		} else if !tc.valid && errors.Cause(err) != ErrInvalidDistribution {
			t.Errorf("%v: expected ErrInvalidDistribution, got %v", r, err)
		}
	}
}

func TestSolveMixed_ValuesMatchExpectedPayoffs(t *testing.T) {
	g := fourthOption(t)
	result, err := SolveMixed(g)
	if err != nil {
		t.Fatal(err)
	}

	v0, v1, err := ExpectedPayoffs(g, result.RowStrategy, result.ColStrategy)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(v0-result.RowValue) > 1e-6 || math.Abs(v1-result.ColValue) > 1e-6 {
		t.Errorf("expected payoffs (%v, %v), got (%v, %v)", result.RowValue, result.ColValue, v0, v1)
	}

	rowGain, colGain, err := DeviationGains(g, result.RowStrategy, result.ColStrategy)
	if err != nil {
		t.Fatal(err)
	}
	if rowGain > 1e-6 || colGain > 1e-6 {
		t.Errorf("equilibrium should admit no profitable deviation, got gains %v, %v", rowGain, colGain)
	}
}

func TestDeviationGains_PureProfile(t *testing.T) {
	g := prisonersDilemma(t)
	// Mutual cooperation: each player gains 1 by defecting.
	rowGain, colGain, err := DeviationGains(g, []float64{1, 0}, []float64{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if rowGain != 1 || colGain != 1 {
		t.Errorf("expected gains (1, 1), got (%v, %v)", rowGain, colGain)
	}

	if _, _, err := DeviationGains(g, []float64{1}, []float64{1, 0}); errors.Cause(err) != ErrStrategyLength {
		t.Errorf("expected ErrStrategyLength, got %v", err)
	}
}

func TestSolveMixed_RandomGamesAreIndifferent(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for n := 1; n <= 8; n++ {
		g, err := NewRandomGame(rng, n, n, DefaultRange)
		if err != nil {
			t.Fatal(err)
		}

		result, err := SolveMixed(g)
		if err != nil {
			// Random integer matrices are occasionally singular.
			cause := errors.Cause(err)
			if cause != ErrSingularMatrix && cause != ErrUndefinedValue {
				t.Errorf("unexpected error: %v", err)
			}
			continue
		}

		if s := floats.Sum(result.RowStrategy); math.Abs(s-1) > 1e-6 {
			t.Errorf("%dx%d: row strategy sums to %v", n, n, s)
		}
		if s := floats.Sum(result.ColStrategy); math.Abs(s-1) > 1e-6 {
			t.Errorf("%dx%d: col strategy sums to %v", n, n, s)
		}
		assertIndifferent(t, g, result)
	}
}

func BenchmarkSolveMixed(b *testing.B) {
	g, err := NewRandomGame(rand.New(rand.NewSource(1)), 10, 10, DefaultRange)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SolveMixed(g)
	}
}

func BenchmarkScan(b *testing.B) {
	g, err := NewRandomGame(rand.New(rand.NewSource(1)), 10, 10, DefaultRange)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Scan(g)
	}
}
