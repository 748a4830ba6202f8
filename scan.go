package bimatrix

// Class is the set of solution concepts a pure profile satisfies.
type Class uint8

const (
	NashOptimal Class = 1 << iota
	ParetoOptimal

	Unclassified Class = 0
	NashAndPareto      = NashOptimal | ParetoOptimal
)

// Has returns whether c includes all of the concepts in other.
func (c Class) Has(other Class) bool {
	return c&other == other
}

// String implements Stringer.
func (c Class) String() string {
	switch c {
	case NashOptimal:
		return "Nash"
	case ParetoOptimal:
		return "Pareto"
	case NashAndPareto:
		return "Nash+Pareto"
	default:
		return "None"
	}
}

// Classify evaluates both pure predicates at (i, j).
func Classify(g *Game, i, j int) Class {
	c := Unclassified
	if IsNashOptimal(g, i, j) {
		c |= NashOptimal
	}
	if IsParetoOptimal(g, i, j) {
		c |= ParetoOptimal
	}
	return c
}

// Classification holds the pure profiles of a Game that satisfy each
// solution concept, in row-major order.
type Classification struct {
	Nash   []Outcome
	Pareto []Outcome
	// Both is the intersection of Nash and Pareto.
	Both []Outcome
}

// Scan classifies every pure profile of g.
func Scan(g *Game) Classification {
	var result Classification
	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < g.Cols(); j++ {
			c := Classify(g, i, j)
			outcome := g.Outcome(i, j)
			if c.Has(NashOptimal) {
				result.Nash = append(result.Nash, outcome)
			}
			if c.Has(ParetoOptimal) {
				result.Pareto = append(result.Pareto, outcome)
			}
			if c.Has(NashAndPareto) {
				result.Both = append(result.Both, outcome)
			}
		}
	}

	return result
}
