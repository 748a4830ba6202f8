// Package catalog provides well-known bimatrix games and loads game
// definitions from YAML files.
package catalog

import (
	"github.com/timpalpant/bimatrix"
)

// Entry is a named game to analyse.
type Entry struct {
	Name string
	Game *bimatrix.Game
	// SolveMixed requests the closed-form mixed equilibrium in addition
	// to the pure analysis.
	SolveMixed bool
}

// Classic 2x2 games. Rows are Player0's strategies.
var (
	// Battle of the sexes: both prefer to coordinate, but disagree on where.
	FamilyQuarrel = Entry{
		Name: "Family Quarrel",
		Game: mustNewGame(
			[][]float64{{4, 0}, {0, 1}},
			[][]float64{{1, 0}, {0, 4}}),
	}

	// Two drivers at a crossing: go / wait, with a crash if both go.
	IntersectionGame = Entry{
		Name: "Intersection",
		Game: mustNewGame(
			[][]float64{{0, 0.5}, {2, -1}},
			[][]float64{{0, 2}, {0.7, -2}}),
	}

	// Strategies are (stay silent, confess); payoffs are years in prison.
	PrisonersDilemma = Entry{
		Name: "Prisoner's Dilemma",
		Game: mustNewGame(
			[][]float64{{-1, -10}, {0, -5}},
			[][]float64{{-1, 0}, {-10, -5}}),
	}

	// Two pure equilibria and a totally-mixed one.
	FourthOption = Entry{
		Name: "4-th option",
		Game: mustNewGame(
			[][]float64{{4, 5}, {0, 7}},
			[][]float64{{7, 2}, {2, 3}}),
		SolveMixed: true,
	}
)

// All lists the built-in games in presentation order.
var All = []Entry{
	FamilyQuarrel,
	IntersectionGame,
	PrisonersDilemma,
	FourthOption,
}

// Lookup returns the built-in game with the given name.
func Lookup(name string) (Entry, bool) {
	for _, e := range All {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func mustNewGame(rowPayoff, colPayoff [][]float64) *bimatrix.Game {
	g, err := bimatrix.NewGame(rowPayoff, colPayoff)
	if err != nil {
		panic(err)
	}
	return g
}
