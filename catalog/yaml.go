package catalog

import (
	"io/ioutil"
	"math/rand"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/timpalpant/bimatrix"
)

var ErrInvalidEntry = errors.New("game entry must define either payoff matrices or random")

// yamlFile is the top-level structure of a game file.
type yamlFile struct {
	Games []yamlGame `yaml:"games"`
}

type yamlGame struct {
	Name       string      `yaml:"name"`
	RowPayoff  [][]float64 `yaml:"row_payoff,omitempty"`
	ColPayoff  [][]float64 `yaml:"col_payoff,omitempty"`
	Random     *yamlRandom `yaml:"random,omitempty"`
	SolveMixed bool        `yaml:"solve_mixed,omitempty"`
}

type yamlRandom struct {
	Rows int  `yaml:"rows"`
	Cols int  `yaml:"cols"`
	Min  *int `yaml:"min,omitempty"`
	Max  *int `yaml:"max,omitempty"`
}

// LoadFile reads a YAML game file. Random entries are generated with rng.
func LoadFile(path string, rng *rand.Rand) ([]Entry, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	entries, err := ParseYAML(data, rng)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	return entries, nil
}

// ParseYAML parses game definitions of the form:
//
//	games:
//	  - name: Family Quarrel
//	    row_payoff: [[4, 0], [0, 1]]
//	    col_payoff: [[1, 0], [0, 4]]
//	  - name: Random 10x10
//	    random: {rows: 10, cols: 10, min: 0, max: 99}
//
// Random entries without a min or max use bimatrix.DefaultRange.
func ParseYAML(data []byte, rng *rand.Rand) ([]Entry, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "yaml unmarshal")
	}

	entries := make([]Entry, 0, len(f.Games))
	for i, yg := range f.Games {
		g, err := yg.toGame(rng)
		if err != nil {
			return nil, errors.Wrapf(err, "game %d (%q)", i, yg.Name)
		}

		entries = append(entries, Entry{
			Name:       yg.Name,
			Game:       g,
			SolveMixed: yg.SolveMixed,
		})
	}

	return entries, nil
}

func (yg *yamlGame) toGame(rng *rand.Rand) (*bimatrix.Game, error) {
	hasLiteral := yg.RowPayoff != nil || yg.ColPayoff != nil
	if hasLiteral == (yg.Random != nil) {
		return nil, ErrInvalidEntry
	}

	if hasLiteral {
		return bimatrix.NewGame(yg.RowPayoff, yg.ColPayoff)
	}

	r := bimatrix.DefaultRange
	if yg.Random.Min != nil {
		r.Min = *yg.Random.Min
	}
	if yg.Random.Max != nil {
		r.Max = *yg.Random.Max
	}
	return bimatrix.NewRandomGame(rng, yg.Random.Rows, yg.Random.Cols, r)
}
