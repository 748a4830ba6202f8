// Package npyio writes payoff matrices in NumPy's .npy and .npz formats
// for analysis in Python.
package npyio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
)

var order = binary.LittleEndian

var magic = [6]byte{'\x93', 'N', 'U', 'M', 'P', 'Y'}

const (
	majorVersion = byte(1)
	minorVersion = byte(0)
	// The total header length, including magic and version, is padded
	// to a multiple of headerAlign.
	headerAlign = 64
	// magic + major + minor + uint16 header length.
	preambleLen = len(magic) + 2 + 2
)

// WriteMatrix writes m as a C-ordered little-endian float64 array.
func WriteMatrix(w io.Writer, m mat.Matrix) error {
	r, c := m.Dims()
	if err := writeHeader(w, fmt.Sprintf("(%d, %d)", r, c)); err != nil {
		return err
	}

	buf := make([]byte, 8*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			order.PutUint64(buf[8*j:], math.Float64bits(m.At(i, j)))
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}

	return nil
}

func writeHeader(w io.Writer, shape string) error {
	var hdr bytes.Buffer
	fmt.Fprintf(&hdr, "{'descr': '<f8', 'fortran_order': False, 'shape': %s, }", shape)

	// Pad with spaces so the data starts aligned; the header ends in '\n'.
	padding := headerAlign - (preambleLen+hdr.Len()+1)%headerAlign
	if padding == headerAlign {
		padding = 0
	}
	hdr.Write(bytes.Repeat([]byte{'\x20'}, padding))
	hdr.WriteByte('\n')

	hdrLen := hdr.Len()
	if hdrLen > math.MaxUint16 {
		return fmt.Errorf("npy header too long: %d bytes", hdrLen)
	}

	var preamble [preambleLen]byte
	copy(preamble[:], magic[:])
	preamble[6] = majorVersion
	preamble[7] = minorVersion
	order.PutUint16(preamble[8:], uint16(hdrLen))
	if _, err := w.Write(preamble[:]); err != nil {
		return err
	}

	if n, err := hdr.WriteTo(w); err != nil {
		return err
	} else if n < int64(hdrLen) {
		return io.ErrShortWrite
	}

	return nil
}
