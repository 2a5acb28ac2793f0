package spdcsim

import (
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ffGrid adapts an M x M map with physical axes to plotter.GridXYZ. The first
// map index runs along X, the second along Y.
type ffGrid struct {
	z    [][]Real
	x, y []Real
}

func (g ffGrid) Dims() (int, int)   { return len(g.x), len(g.y) }
func (g ffGrid) Z(c, r int) float64 { return g.z[c][r] }
func (g ffGrid) X(c int) float64    { return g.x[c] }
func (g ffGrid) Y(r int) float64    { return g.y[r] }

// SaveHeatmap renders a 2D map with physical axis extents to a PNG file.
func SaveHeatmap(z [][]Real, xAxis, yAxis []Real, title, xLabel, yLabel, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	hm := plotter.NewHeatMap(ffGrid{z: z, x: xAxis, y: yAxis}, palette.Heat(48, 1))
	p.Add(hm)
	if err := p.Save(6*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrap(err, "save heatmap")
	}
	return nil
}

// SaveGrayPNG16 writes an M x M map as a 16-bit grayscale PNG, the raw
// lossless counterpart of the rendered heatmaps. The only quantization is the
// max-normalization and gamma mapping from float to 16 bits.
func SaveGrayPNG16(z [][]Real, gamma Real, path string) error {
	nx := len(z)
	ny := 0
	if nx > 0 {
		ny = len(z[0])
	}

	mapMax := 0.0
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if v := z[i][j]; v > mapMax {
				mapMax = v
			}
		}
	}
	if mapMax == 0 {
		mapMax = 1 // the image will be black
	}
	scale := 1.0 / mapMax

	toU16 := func(v Real) uint16 {
		if v <= 0 {
			return 0
		}
		n := v * scale
		if n > 1 {
			n = 1
		}
		if gamma != 1 {
			n = math.Pow(n, 1.0/gamma)
		}
		return uint16(math.Round(n * 65535.0))
	}

	img := image.NewGray16(image.Rect(0, 0, nx, ny))
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			v := toU16(z[i][j])
			// flip Y so up is up
			base := ((ny-1-j)*nx + i) * 2
			img.Pix[base] = uint8(v >> 8)
			img.Pix[base+1] = uint8(v)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create png")
	}
	defer f.Close()
	return png.Encode(f, img)
}
