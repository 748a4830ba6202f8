// Command survey_games measures how often random games have pure and
// totally-mixed equilibria.
package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/timpalpant/bimatrix"
	"github.com/timpalpant/bimatrix/survey"
)

func main() {
	games := flag.Int("games", 10000, "Number of random games to analyse")
	rows := flag.Int("rows", 2, "Number of rows in each game")
	cols := flag.Int("cols", 2, "Number of columns in each game")
	minPayoff := flag.Int("min_payoff", bimatrix.DefaultRange.Min, "Smallest random payoff")
	maxPayoff := flag.Int("max_payoff", bimatrix.DefaultRange.Max, "Largest random payoff")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	workers := flag.Int("workers", 0, "Number of games to analyse in parallel (0: one per CPU)")
	output := flag.String("output", "", "Save the summary to this file")
	flag.Parse()

	cfg := survey.Config{
		Games:   *games,
		Rows:    *rows,
		Cols:    *cols,
		Range:   bimatrix.IntRange{Min: *minPayoff, Max: *maxPayoff},
		Seed:    *seed,
		Workers: *workers,
	}

	glog.Infof("Analysing %d random %dx%d games with seed %d", cfg.Games, cfg.Rows, cfg.Cols, cfg.Seed)
	start := time.Now()
	s, err := survey.Run(context.Background(), cfg)
	if err != nil {
		glog.Fatal(err)
	}
	glog.Infof("Finished in %v", time.Since(start))

	glog.Infof("Games with a pure Nash equilibrium: %d (%.3f %%)",
		s.WithPureNash, 100*s.Fraction(s.WithPureNash))
	glog.Infof("Pure Nash profiles: %d, Pareto optimal profiles: %d",
		s.PureNashTotal, s.ParetoTotal)
	glog.Infof("Games with a Nash and Pareto optimal profile: %d (%.3f %%)",
		s.WithNashPareto, 100*s.Fraction(s.WithNashPareto))
	if s.NonSquare > 0 {
		glog.Infof("Mixed solver skipped %d non-square games", s.NonSquare)
	} else {
		glog.Infof("Valid totally-mixed equilibria: %d (%.3f %%)",
			s.ValidMixed, 100*s.Fraction(s.ValidMixed))
		glog.Infof("Invalid mixed strategies: %d, singular: %d, undefined value: %d",
			s.InvalidMixed, s.Singular, s.UndefinedValue)
	}

	if *output != "" {
		if err := saveSummary(s, *output); err != nil {
			glog.Fatal(err)
		}
	}
}

func saveSummary(s *survey.Summary, filename string) error {
	glog.Infof("Saving summary to: %v", filename)
	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := s.SaveTo(w); err != nil {
		f.Close()
		return err
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
