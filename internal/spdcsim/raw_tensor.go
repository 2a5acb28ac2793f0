package spdcsim

import (
	"bufio"
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// SaveRawTensor writes a real matrix as little-endian binary: two int32 dims
// (rows, cols) followed by the row-major float64 body.
func SaveRawTensor(t *mat.Dense, path string) error {
	rows, cols := t.Dims()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create raw tensor file")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, int32(rows)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int32(cols)); err != nil {
		return err
	}
	for r := 0; r < rows; r++ {
		if err := binary.Write(w, binary.LittleEndian, t.RawRowView(r)); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_ = f.Sync()
	return nil
}

// SaveRawMap is the M x M convenience wrapper used for the reduced maps.
func SaveRawMap(z [][]Real, path string) error {
	rows := len(z)
	cols := 0
	if rows > 0 {
		cols = len(z[0])
	}
	t := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			t.Set(i, j, z[i][j])
		}
	}
	return SaveRawTensor(t, path)
}
