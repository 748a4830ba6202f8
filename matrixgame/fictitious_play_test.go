package matrixgame

import (
	"math"
	"math/rand"
	"testing"

	"github.com/timpalpant/bimatrix"
)

func TestFictitiousPlay_RockPaperScissors(t *testing.T) {
	winRateMatrix := [][]float64{
		{0, 1, -1}, // Player 0 plays rock.
		{-1, 0, 1}, // Player 0 plays scissors.
		{1, -1, 0}, // Player 0 plays paper.
	}
	g, err := ZeroSum(winRateMatrix)
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(1234))
	p0, p1 := FictitiousPlay(rng, g, 20000, 0)
	t.Logf("Player 0 Nash equilibrium policy: %v", p0)
	t.Logf("Player 1 Nash equilibrium policy: %v", p1)
	for _, p := range [][]float64{p0, p1} {
		for i, x := range p {
			if math.Abs(x-1.0/3) > 0.05 {
				t.Errorf("strategy %d has weight %v, expected ~1/3", i, x)
			}
		}
	}
}

func TestFictitiousPlay_MatchingPennies(t *testing.T) {
	g, err := ZeroSum([][]float64{{1, -1}, {-1, 1}})
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(42))
	p0, p1 := FictitiousPlay(rng, g, 20000, 0)
	rowGain, colGain, err := bimatrix.DeviationGains(g, p0, p1)
	if err != nil {
		t.Fatal(err)
	}
	if rowGain > 0.05 || colGain > 0.05 {
		t.Errorf("expected approximate equilibrium, got gains %v, %v (p0=%v, p1=%v)",
			rowGain, colGain, p0, p1)
	}
}

func TestFictitiousPlay_PrisonersDilemma(t *testing.T) {
	g, err := bimatrix.NewGame(
		[][]float64{{-1, -10}, {0, -5}},
		[][]float64{{-1, 0}, {-10, -5}})
	if err != nil {
		t.Fatal(err)
	}

	// Defection strictly dominates, so after the first round it is always played.
	rng := rand.New(rand.NewSource(1))
	p0, p1 := FictitiousPlay(rng, g, 1000, 0)
	if p0[1] < 0.99 || p1[1] < 0.99 {
		t.Errorf("expected both players to defect, got %v, %v", p0, p1)
	}
}

func TestFictitiousPlay_Distributions(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g, err := bimatrix.NewRandomGame(rng, 4, 6, bimatrix.DefaultRange)
	if err != nil {
		t.Fatal(err)
	}

	p0, p1 := FictitiousPlay(rng, g, 500, 0.1)
	if len(p0) != 4 || len(p1) != 6 {
		t.Fatalf("unexpected strategy lengths %d, %d", len(p0), len(p1))
	}
	result := &bimatrix.MixedStrategyResult{RowStrategy: p0, ColStrategy: p1}
	if err := result.Validate(1e-9); err != nil {
		t.Error(err)
	}
}

func TestFictitiousPlay_NoIterations(t *testing.T) {
	g, err := ZeroSum([][]float64{{1}})
	if err != nil {
		t.Fatal(err)
	}

	p0, p1 := FictitiousPlay(rand.New(rand.NewSource(1)), g, 0, 0)
	if p0[0] != 0 || p1[0] != 0 {
		t.Errorf("expected zero weights without iterations, got %v, %v", p0, p1)
	}
}

func TestArgMax_BreaksTiesUniformly(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	counts := make([]int, 3)
	for i := 0; i < 3000; i++ {
		best, idx := argMax(rng, []float64{2, 1, 2, 2})
		if best != 2 {
			t.Fatalf("expected max 2, got %v", best)
		}
		switch idx {
		case 0:
			counts[0]++
		case 2:
			counts[1]++
		case 3:
			counts[2]++
		default:
			t.Fatalf("selected non-maximal index %d", idx)
		}
	}

	for i, c := range counts {
		if c < 800 || c > 1200 {
			t.Errorf("tie %d chosen %d times out of 3000", i, c)
		}
	}
}
