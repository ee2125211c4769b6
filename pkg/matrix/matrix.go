// Package matrix wraps the module grid produced by a QR encoder.
//
// The engine never encodes payloads itself. It consumes a [Matrix], a square
// read-only boolean grid, produced by an [Encoder]. [QREncoder] is the default
// encoder and delegates to github.com/skip2/go-qrcode; any other encoder can
// be plugged in by implementing the one-method interface.
//
//	m, err := matrix.NewQREncoder().Encode("HELLO", matrix.LevelH)
//	if err != nil {
//	    return err
//	}
//	dark := m.IsSet(0, 0) // true: top-left locator corner
package matrix

import (
	"bytes"

	"github.com/matzehuels/qrsmith/pkg/errors"
)

// Matrix is an immutable square module grid.
// The zero value is an empty matrix of size 0.
type Matrix struct {
	size  int
	cells []bool
}

// New copies rows into a Matrix. Rows must be non-empty and square.
func New(rows [][]bool) (Matrix, error) {
	n := len(rows)
	if n == 0 {
		return Matrix{}, errors.Render("matrix is empty")
	}
	cells := make([]bool, n*n)
	for r, row := range rows {
		if len(row) != n {
			return Matrix{}, errors.Render("matrix row %d has %d cells, want %d", r, len(row), n)
		}
		copy(cells[r*n:], row)
	}
	return Matrix{size: n, cells: cells}, nil
}

// Size returns the number of modules per side.
func (m Matrix) Size() int { return m.size }

// IsSet reports whether the module at (row, col) is dark.
// Coordinates outside the grid read as light, which is what neighbor
// lookups at the edges want.
func (m Matrix) IsSet(row, col int) bool {
	if !m.inBounds(row, col) {
		return false
	}
	return m.cells[row*m.size+col]
}

// At is the bounds-checked accessor.
func (m Matrix) At(row, col int) (bool, error) {
	if !m.inBounds(row, col) {
		return false, errors.Render("cell (%d,%d) outside %dx%d matrix", row, col, m.size, m.size)
	}
	return m.cells[row*m.size+col], nil
}

// Count returns the number of dark modules.
func (m Matrix) Count() int {
	n := 0
	for _, c := range m.cells {
		if c {
			n++
		}
	}
	return n
}

func (m Matrix) inBounds(row, col int) bool {
	return row >= 0 && row < m.size && col >= 0 && col < m.size
}

// MarshalText encodes the grid as one line per row, '1' for dark modules
// and '0' for light ones.
func (m Matrix) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(m.size * (m.size + 1))
	for r := 0; r < m.size; r++ {
		for c := 0; c < m.size; c++ {
			if m.cells[r*m.size+c] {
				buf.WriteByte('1')
			} else {
				buf.WriteByte('0')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// UnmarshalText decodes the MarshalText format.
func (m *Matrix) UnmarshalText(text []byte) error {
	lines := bytes.Split(bytes.TrimRight(text, "\n"), []byte{'\n'})
	rows := make([][]bool, 0, len(lines))
	for i, line := range lines {
		row := make([]bool, len(line))
		for j, ch := range line {
			switch ch {
			case '1':
				row[j] = true
			case '0':
			default:
				return errors.Render("matrix row %d: unexpected byte %q", i, ch)
			}
		}
		rows = append(rows, row)
	}
	decoded, err := New(rows)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}
