package qr

import (
	"testing"

	"github.com/matzehuels/qrsmith/pkg/matrix"
)

// gridWith returns a size×size matrix with the three locator patterns drawn
// and the given data cells set.
func gridWith(t *testing.T, size int, cells ...[2]int) matrix.Matrix {
	t.Helper()
	rows := make([][]bool, size)
	for r := range rows {
		rows[r] = make([]bool, size)
	}
	for _, anchor := range [][2]int{{0, 0}, {0, size - 7}, {size - 7, 0}} {
		for dr := range 7 {
			for dc := range 7 {
				ring := dr == 0 || dr == 6 || dc == 0 || dc == 6
				center := dr >= 2 && dr <= 4 && dc >= 2 && dc <= 4
				rows[anchor[0]+dr][anchor[1]+dc] = ring || center
			}
		}
	}
	for _, c := range cells {
		rows[c[0]][c[1]] = true
	}
	m, err := matrix.New(rows)
	if err != nil {
		t.Fatalf("matrix.New() error: %v", err)
	}
	return m
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
