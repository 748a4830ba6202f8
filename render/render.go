// Package render formats games and analysis results as text.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/timpalpant/bimatrix"
)

// Style decorates the text of a cell according to its classification.
type Style interface {
	Render(c bimatrix.Class, text string) string
}

// Plain renders cells without decoration.
type Plain struct{}

// Render implements Style.
func (Plain) Render(_ bimatrix.Class, text string) string {
	return text
}

// Colored highlights Nash optimal cells in red, Pareto optimal cells in
// green, and cells that are both in yellow.
type Colored struct {
	nash   lipgloss.Style
	pareto lipgloss.Style
	both   lipgloss.Style
}

// NewColored creates a Colored style. If r is nil the default renderer,
// which detects the color support of stdout, is used.
func NewColored(r *lipgloss.Renderer) *Colored {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	return &Colored{
		nash:   r.NewStyle().Foreground(lipgloss.Color("1")),
		pareto: r.NewStyle().Foreground(lipgloss.Color("2")),
		both:   r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// Render implements Style.
func (s *Colored) Render(c bimatrix.Class, text string) string {
	switch c {
	case bimatrix.NashAndPareto:
		return s.both.Render(text)
	case bimatrix.NashOptimal:
		return s.nash.Render(text)
	case bimatrix.ParetoOptimal:
		return s.pareto.Render(text)
	default:
		return text
	}
}

// Matrix writes g with one line per row and one (rowPayoff, colPayoff)
// pair per column.
func Matrix(w io.Writer, g *bimatrix.Game, s Style) error {
	_, plain := s.(Plain)
	var buf bytes.Buffer
	for i := 0; i < g.Rows(); i++ {
		cells := make([]string, g.Cols())
		for j := range cells {
			text := fmt.Sprintf("(%5.2f, %5.2f)", g.PayoffRow(i, j), g.PayoffCol(i, j))
			class := bimatrix.Unclassified
			if !plain {
				class = bimatrix.Classify(g, i, j)
			}
			cells[j] = s.Render(class, text)
		}
		buf.WriteString(strings.Join(cells, ", "))
		buf.WriteByte('\n')
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Outcomes writes title followed by one line per outcome.
func Outcomes(w io.Writer, title string, outcomes []bimatrix.Outcome) error {
	var buf bytes.Buffer
	writeOutcomes(&buf, title, outcomes)
	_, err := w.Write(buf.Bytes())
	return err
}

func writeOutcomes(buf *bytes.Buffer, title string, outcomes []bimatrix.Outcome) {
	buf.WriteString(title)
	buf.WriteString(":\n")
	for _, o := range outcomes {
		fmt.Fprintf(buf, "%v -> (%g, %g)\n", o.Profile, o.RowPayoff, o.ColPayoff)
	}
}

// Classification writes the Nash, Pareto, and intersection sets of c.
func Classification(w io.Writer, c bimatrix.Classification) error {
	var buf bytes.Buffer
	writeOutcomes(&buf, "Nash optimal", c.Nash)
	writeOutcomes(&buf, "Pareto optimal", c.Pareto)
	writeOutcomes(&buf, "Intersection of Nash optimal and Pareto optimal situations", c.Both)
	_, err := w.Write(buf.Bytes())
	return err
}

// Mixed writes the strategies and values of a mixed equilibrium with
// four decimal places.
func Mixed(w io.Writer, title string, r *bimatrix.MixedStrategyResult) error {
	var buf bytes.Buffer
	buf.WriteString(title)
	buf.WriteString(":\n")
	fmt.Fprintf(&buf, "Player 1 strategy: %s\n", formatVector(r.RowStrategy))
	fmt.Fprintf(&buf, "Player 2 strategy: %s\n", formatVector(r.ColStrategy))
	fmt.Fprintf(&buf, "Player 1 payoff: %.4f\n", r.RowValue)
	fmt.Fprintf(&buf, "Player 2 payoff: %.4f\n", r.ColValue)
	_, err := w.Write(buf.Bytes())
	return err
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.4f", x)
	}
	return strings.Join(parts, " ")
}
