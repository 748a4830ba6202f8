// Command analyze_games prints the pure and mixed equilibria of a random
// game and a catalog of well-known games.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/timpalpant/bimatrix"
	"github.com/timpalpant/bimatrix/catalog"
	"github.com/timpalpant/bimatrix/internal/npyio"
	"github.com/timpalpant/bimatrix/matrixgame"
	"github.com/timpalpant/bimatrix/render"
)

const separator = "-------"

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	rows := flag.Int("rows", 10, "Number of rows in the random game")
	cols := flag.Int("cols", 10, "Number of columns in the random game")
	minPayoff := flag.Int("min_payoff", bimatrix.DefaultRange.Min, "Smallest random payoff")
	maxPayoff := flag.Int("max_payoff", bimatrix.DefaultRange.Max, "Largest random payoff")
	color := flag.Bool("color", true, "Highlight Nash and Pareto optimal cells of the random game")
	gamesFile := flag.String("games", "", "YAML file of games to analyse (default: built-in catalog)")
	fpIter := flag.Int("fp_iter", 100000, "Fictitious play iterations when the closed form fails")
	fpLambda := flag.Float64("fp_lambda", 0.0, "Fictitious play mixing parameter")
	npzOutput := flag.String("npz", "", "Save the random game to this .npz file")
	flag.Parse()

	glog.Infof("Using seed %d", *seed)
	rng := rand.New(rand.NewSource(*seed))
	r := bimatrix.IntRange{Min: *minPayoff, Max: *maxPayoff}
	game, err := bimatrix.NewRandomGame(rng, *rows, *cols, r)
	if err != nil {
		glog.Fatal(err)
	}

	if *npzOutput != "" {
		glog.Infof("Saving random game to: %v", *npzOutput)
		if err := npyio.SaveGame(game, *npzOutput); err != nil {
			glog.Fatal(err)
		}
	}

	var style render.Style = render.Plain{}
	if *color {
		style = render.NewColored(nil)
	}

	fmt.Printf("Random %dx%d game:\n", *rows, *cols)
	mustRender(render.Matrix(os.Stdout, game, style))
	mustRender(render.Classification(os.Stdout, bimatrix.Scan(game)))

	entries := catalog.All
	if *gamesFile != "" {
		entries, err = catalog.LoadFile(*gamesFile, rng)
		if err != nil {
			glog.Fatal(err)
		}
	}

	for _, entry := range entries {
		fmt.Println(separator)
		fmt.Printf("%s:\n", entry.Name)
		mustRender(render.Matrix(os.Stdout, entry.Game, render.Plain{}))
		mustRender(render.Classification(os.Stdout, bimatrix.Scan(entry.Game)))
		if entry.SolveMixed {
			mustRender(analyzeMixed(os.Stdout, rng, entry, *fpIter, *fpLambda))
		}
	}
}

// analyzeMixed writes the closed-form mixed equilibrium of entry to w. If it
// does not exist or is not a pair of distributions, the raw result is still
// written and fictitious play is run instead.
func analyzeMixed(w io.Writer, rng *rand.Rand, entry catalog.Entry, fpIter int, fpLambda float64) error {
	result, err := bimatrix.SolveMixed(entry.Game)
	if err == nil {
		err = result.Validate(bimatrix.DefaultTolerance)
		if err == nil {
			return render.Mixed(w, "Mixed Nash equilibrium", result)
		}
		glog.Warningf("%s: closed-form strategies are not an equilibrium: %v", entry.Name, err)
		if err := render.Mixed(w, "Mixed strategies (invalid, not an equilibrium)", result); err != nil {
			return err
		}
	} else {
		glog.Warningf("%s: no closed-form mixed equilibrium: %v", entry.Name, err)
		if _, err := fmt.Fprintf(w, "No closed-form mixed equilibrium: %v\n", err); err != nil {
			return err
		}
	}

	if fpIter <= 0 {
		return nil
	}

	glog.Infof("%s: running %d iterations of fictitious play", entry.Name, fpIter)
	x, y := matrixgame.FictitiousPlay(rng, entry.Game, fpIter, fpLambda)
	rowValue, colValue, err := bimatrix.ExpectedPayoffs(entry.Game, x, y)
	if err != nil {
		return err
	}
	rowGain, colGain, err := bimatrix.DeviationGains(entry.Game, x, y)
	if err != nil {
		return err
	}
	glog.Infof("%s: deviation gains %.4f, %.4f", entry.Name, rowGain, colGain)

	return render.Mixed(w, "Approximate equilibrium (fictitious play)",
		&bimatrix.MixedStrategyResult{
			RowStrategy: x,
			ColStrategy: y,
			RowValue:    rowValue,
			ColValue:    colValue,
		})
}

func mustRender(err error) {
	if err != nil {
		glog.Fatal(err)
	}
}
