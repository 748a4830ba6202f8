package bimatrix

// IsNashOptimal returns whether the pure profile (i, j) is a Nash equilibrium:
// row i is a best response of Player0 to column j, and column j is a best
// response of Player1 to row i. Ties count as best responses.
func IsNashOptimal(g *Game, i, j int) bool {
	a := g.PayoffRow(i, j)
	for k := 0; k < g.Rows(); k++ {
		if g.PayoffRow(k, j) > a {
			return false
		}
	}

	b := g.PayoffCol(i, j)
	for l := 0; l < g.Cols(); l++ {
		if g.PayoffCol(i, l) > b {
			return false
		}
	}

	return true
}

// IsParetoOptimal returns whether no other profile gives both players at
// least as much as (i, j) and one of them strictly more. Profiles with
// identical payoffs do not dominate each other.
func IsParetoOptimal(g *Game, i, j int) bool {
	a, b := g.PayoffRow(i, j), g.PayoffCol(i, j)
	for k := 0; k < g.Rows(); k++ {
		for l := 0; l < g.Cols(); l++ {
			ak, bl := g.PayoffRow(k, l), g.PayoffCol(k, l)
			if ak >= a && bl >= b && (ak > a || bl > b) {
				return false
			}
		}
	}

	return true
}

// BestResponseRows returns the rows that maximize Player0's payoff
// against column j, in increasing order.
func BestResponseRows(g *Game, j int) []int {
	return argMaxAll(g.Rows(), func(k int) float64 { return g.PayoffRow(k, j) })
}

// BestResponseCols returns the columns that maximize Player1's payoff
// against row i, in increasing order.
func BestResponseCols(g *Game, i int) []int {
	return argMaxAll(g.Cols(), func(l int) float64 { return g.PayoffCol(i, l) })
}

func argMaxAll(n int, value func(int) float64) []int {
	var result []int
	best := value(0)
	for k := 0; k < n; k++ {
		v := value(k)
		if v > best {
			best = v
			result = result[:0]
		}
		if v == best {
			result = append(result, k)
		}
	}

	return result
}
