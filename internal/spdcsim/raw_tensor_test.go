package spdcsim

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func readRaw(t *testing.T, path string) (rows, cols int32, body []Real) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &cols); err != nil {
		t.Fatalf("read cols: %v", err)
	}
	body = make([]Real, rows*cols)
	if err := binary.Read(r, binary.LittleEndian, body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("%d trailing bytes", r.Len())
	}
	return rows, cols, body
}

func TestSaveRawTensor(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	path := filepath.Join(t.TempDir(), "sub", "tensor.raw")
	if err := SaveRawTensor(m, path); err != nil {
		t.Fatalf("SaveRawTensor: %v", err)
	}

	rows, cols, body := readRaw(t, path)
	if rows != 2 || cols != 3 {
		t.Fatalf("dims %dx%d, want 2x3", rows, cols)
	}
	for i, want := range []Real{1, 2, 3, 4, 5, 6} {
		if body[i] != want {
			t.Fatalf("body[%d] = %g, want %g", i, body[i], want)
		}
	}
}

func TestSaveRawMap(t *testing.T) {
	z := [][]Real{{1.5, -2.5}, {0, 4}}
	path := filepath.Join(t.TempDir(), "map.raw")
	if err := SaveRawMap(z, path); err != nil {
		t.Fatalf("SaveRawMap: %v", err)
	}
	rows, cols, body := readRaw(t, path)
	if rows != 2 || cols != 2 {
		t.Fatalf("dims %dx%d, want 2x2", rows, cols)
	}
	want := []Real{1.5, -2.5, 0, 4}
	for i := range want {
		if body[i] != want[i] {
			t.Fatalf("body[%d] = %g, want %g", i, body[i], want[i])
		}
	}
}
