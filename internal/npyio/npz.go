package npyio

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"

	"github.com/timpalpant/bimatrix"
)

// MakeNPZ bundles the given .npy streams into a single .npz archive.
// Entries are written in name order.
func MakeNPZ(npyFiles map[string]io.Reader, output string) error {
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	b := bufio.NewWriter(f)
	z := zip.NewWriter(b)

	names := make([]string, 0, len(npyFiles))
	for name := range npyFiles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		w, err := z.Create(name)
		if err != nil {
			return err
		}

		if _, err := io.Copy(w, npyFiles[name]); err != nil {
			return errors.Wrapf(err, "writing %s", name)
		}
	}

	if err := z.Close(); err != nil {
		return err
	}
	if err := b.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// SaveGame writes the payoff matrices of g to output as row_payoff.npy
// and col_payoff.npy inside an .npz archive.
func SaveGame(g *bimatrix.Game, output string) error {
	var rowBuf, colBuf bytes.Buffer
	if err := WriteMatrix(&rowBuf, g.RowPayoff()); err != nil {
		return err
	}
	if err := WriteMatrix(&colBuf, g.ColPayoff()); err != nil {
		return err
	}

	err := MakeNPZ(map[string]io.Reader{
		"row_payoff.npy": &rowBuf,
		"col_payoff.npy": &colBuf,
	}, output)
	return errors.Wrapf(err, "saving game to %s", output)
}
