// Package survey collects equilibrium statistics over many random games.
package survey

import (
	"context"
	"encoding/gob"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"sync/atomic"

	"github.com/golang/glog"
	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/timpalpant/bimatrix"
)

var ErrInvalidConfig = errors.New("invalid survey config")

// Config describes a survey.
type Config struct {
	// Games is the number of random games to analyse.
	Games int
	// Rows and Cols are the dimensions of every game.
	Rows, Cols int
	// Range bounds the integer payoffs.
	// The zero IntRange means bimatrix.DefaultRange.
	Range bimatrix.IntRange
	// Seed determines the games: game k is drawn from Seed+k.
	Seed int64
	// Workers is the number of games analysed concurrently.
	// Zero means runtime.NumCPU().
	Workers int
	// Tolerance is used by the mixed solver and for validating its result.
	// Zero means bimatrix.DefaultTolerance.
	Tolerance float64
}

func (c Config) validate() error {
	if c.Games < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative number of games: %d", c.Games)
	}
	if c.Rows <= 0 || c.Cols <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "game dimensions must be positive: %dx%d", c.Rows, c.Cols)
	}
	if c.Workers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative number of workers: %d", c.Workers)
	}
	if c.Tolerance < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative tolerance: %v", c.Tolerance)
	}
	return nil
}

// Summary aggregates the analysis of every game in a survey.
type Summary struct {
	Config Config

	NumGames int
	// WithPureNash counts games with at least one pure Nash equilibrium.
	WithPureNash int
	// PureNashTotal and ParetoTotal count profiles over all games.
	PureNashTotal int
	ParetoTotal   int
	// WithNashPareto counts games with a profile that is both.
	WithNashPareto int

	// Mixed solver outcomes. Only square games are solved.
	NonSquare      int
	Singular       int
	UndefinedValue int
	ValidMixed     int
	InvalidMixed   int
}

// Fraction returns n as a fraction of the games in the survey.
func (s *Summary) Fraction(n int) float64 {
	if s.NumGames == 0 {
		return 0
	}
	return float64(n) / float64(s.NumGames)
}

func (s *Summary) String() string {
	return fmt.Sprintf("Summary{games: %d, pure Nash: %d, Nash profiles: %d, "+
		"Pareto profiles: %d, Nash+Pareto: %d, non-square: %d, singular: %d, "+
		"undefined: %d, valid mixed: %d, invalid mixed: %d}",
		s.NumGames, s.WithPureNash, s.PureNashTotal, s.ParetoTotal,
		s.WithNashPareto, s.NonSquare, s.Singular, s.UndefinedValue,
		s.ValidMixed, s.InvalidMixed)
}

func (s *Summary) add(r gameResult) {
	s.NumGames++
	if r.nash > 0 {
		s.WithPureNash++
	}
	s.PureNashTotal += r.nash
	s.ParetoTotal += r.pareto
	if r.both > 0 {
		s.WithNashPareto++
	}

	switch r.mixed {
	case mixedNonSquare:
		s.NonSquare++
	case mixedSingular:
		s.Singular++
	case mixedUndefined:
		s.UndefinedValue++
	case mixedValid:
		s.ValidMixed++
	case mixedInvalid:
		s.InvalidMixed++
	}
}

// SaveTo writes the summary as gzipped gob.
func (s *Summary) SaveTo(w io.Writer) error {
	gzw := gzip.NewWriter(w)
	enc := gob.NewEncoder(gzw)
	if err := enc.Encode(s); err != nil {
		gzw.Close()
		return errors.Wrap(err, "encoding summary")
	}

	return gzw.Close()
}

// Load reads a summary written by SaveTo.
func Load(r io.Reader) (*Summary, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening summary")
	}
	defer gzr.Close()

	var s Summary
	dec := gob.NewDecoder(gzr)
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "decoding summary")
	}

	return &s, nil
}

type mixedOutcome uint8

const (
	mixedNonSquare mixedOutcome = iota
	mixedSingular
	mixedUndefined
	mixedValid
	mixedInvalid
)

type gameResult struct {
	nash, pareto, both int
	mixed              mixedOutcome
}

// Run analyses cfg.Games random games and aggregates the results.
// The summary depends only on cfg, not on the number of workers.
func Run(ctx context.Context, cfg Config) (*Summary, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Range == (bimatrix.IntRange{}) {
		cfg.Range = bimatrix.DefaultRange
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	opts := bimatrix.Options{SingularTolerance: cfg.Tolerance}
	if opts.SingularTolerance == 0 {
		opts = bimatrix.DefaultOptions
	}

	results := make([]gameResult, cfg.Games)
	logEvery := int64(cfg.Games / 10)
	var done int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k := 0; k < cfg.Games; k++ {
		k := k
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(cfg.Seed + int64(k)))
			game, err := bimatrix.NewRandomGame(rng, cfg.Rows, cfg.Cols, cfg.Range)
			if err != nil {
				return errors.Wrapf(err, "game %d", k)
			}

			results[k] = analyze(game, opts)
			if n := atomic.AddInt64(&done, 1); logEvery > 0 && n%logEvery == 0 {
				glog.V(1).Infof("Analysed %d of %d games", n, cfg.Games)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := &Summary{Config: cfg}
	for _, r := range results {
		s.add(r)
	}

	return s, nil
}

func analyze(g *bimatrix.Game, opts bimatrix.Options) gameResult {
	c := bimatrix.Scan(g)
	r := gameResult{
		nash:   len(c.Nash),
		pareto: len(c.Pareto),
		both:   len(c.Both),
	}

	mixed, err := bimatrix.SolveMixedWithOptions(g, opts)
	switch errors.Cause(err) {
	case nil:
		if mixed.Validate(opts.SingularTolerance) == nil {
			r.mixed = mixedValid
		} else {
			r.mixed = mixedInvalid
		}
	case bimatrix.ErrNonSquareGame:
		r.mixed = mixedNonSquare
	case bimatrix.ErrSingularMatrix:
		r.mixed = mixedSingular
	default:
		r.mixed = mixedUndefined
	}

	return r
}
