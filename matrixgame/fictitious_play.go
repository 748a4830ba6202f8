// Package matrixgame approximates equilibria of bimatrix games by
// iterated best response.
package matrixgame

import (
	"math"
	"math/rand"

	"github.com/golang/glog"

	"github.com/timpalpant/bimatrix"
)

// FictitiousPlay runs nIter rounds of fictitious play on g and returns the
// empirical frequency with which each player chose each pure strategy.
//
// In every round each player best-responds to the opponent's play counts so
// far, or with probability mixingLambda picks a strategy uniformly at random.
// Ties between best responses are broken at random. The frequencies converge
// to a Nash equilibrium in zero-sum games; in general games check the result
// with bimatrix.DeviationGains.
//
// rng must not be shared with other goroutines.
func FictitiousPlay(rng *rand.Rand, g *bimatrix.Game, nIter int, mixingLambda float64) ([]float64, []float64) {
	p0PlayCounts := make([]int, g.Rows())
	p1PlayCounts := make([]int, g.Cols())
	logEvery := nIter / 10
	for i := 1; i <= nIter; i++ {
		var p0Selected int
		if rng.Float64() < mixingLambda {
			p0Selected = rng.Intn(len(p0PlayCounts))
		} else {
			p0Selected = getP0BestResponse(rng, g, p1PlayCounts)
		}

		var p1Selected int
		if rng.Float64() < mixingLambda {
			p1Selected = rng.Intn(len(p1PlayCounts))
		} else {
			p1Selected = getP1BestResponse(rng, g, p0PlayCounts)
		}
		p0PlayCounts[p0Selected]++
		p1PlayCounts[p1Selected]++

		if logEvery > 0 && i%logEvery == 0 {
			glog.V(1).Infof("After %d iterations, player 0 weights: %v", i, normalize(p0PlayCounts))
			glog.V(1).Infof("After %d iterations, player 1 weights: %v", i, normalize(p1PlayCounts))
		}
	}

	return normalize(p0PlayCounts), normalize(p1PlayCounts)
}

// ZeroSum creates the bimatrix game in which player 1 receives the negation
// of player 0's payoff in winRateMatrix.
func ZeroSum(winRateMatrix [][]float64) (*bimatrix.Game, error) {
	negated := make([][]float64, len(winRateMatrix))
	for i, row := range winRateMatrix {
		negated[i] = make([]float64, len(row))
		for j, v := range row {
			negated[i][j] = -v
		}
	}

	return bimatrix.NewGame(winRateMatrix, negated)
}

func getP0BestResponse(rng *rand.Rand, g *bimatrix.Game, p1PlayCounts []int) int {
	utilities := make([]float64, g.Rows())
	for j, c := range p1PlayCounts {
		if c == 0 {
			continue
		}
		for i := range utilities {
			utilities[i] += float64(c) * g.PayoffRow(i, j)
		}
	}

	_, br := argMax(rng, utilities)
	return br
}

func getP1BestResponse(rng *rand.Rand, g *bimatrix.Game, p0PlayCounts []int) int {
	utilities := make([]float64, g.Cols())
	for i, c := range p0PlayCounts {
		if c == 0 {
			continue
		}
		for j := range utilities {
			utilities[j] += float64(c) * g.PayoffCol(i, j)
		}
	}

	_, br := argMax(rng, utilities)
	return br
}

func normalize(counts []int) []float64 {
	total := 0
	for _, v := range counts {
		total += v
	}

	result := make([]float64, len(counts))
	if total == 0 {
		return result
	}
	for i, v := range counts {
		result[i] = float64(v) / float64(total)
	}
	return result
}

// argMax returns the maximum of vs and an index attaining it, chosen
// uniformly among ties.
func argMax(rng *rand.Rand, vs []float64) (float64, int) {
	best := -math.MaxFloat64
	bestIdx := 0
	nTies := 0
	for i, v := range vs {
		if v > best {
			best = v
			bestIdx = i
			nTies = 1
		} else if v == best {
			nTies++
			if rng.Intn(nTies) == 0 {
				bestIdx = i
			}
		}
	}

	return best, bestIdx
}
