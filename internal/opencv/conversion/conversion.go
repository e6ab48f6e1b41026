// Package conversion moves pixels between gocv Mats (BGR byte order) and
// raster grids (RGB float samples).
package conversion

import (
	"fmt"

	"gocv.io/x/gocv"

	"rasterkit/internal/raster"
)

// GridFromMat copies an 8-bit Mat into a new grid. Gray Mats become
// single-channel grids; BGR and BGRA Mats become RGB grids.
func GridFromMat(mat gocv.Mat) (*raster.Grid, error) {
	if mat.Empty() {
		return nil, raster.InvalidDimensions("empty Mat")
	}

	if !mat.IsContinuous() {
		cont := mat.Clone()
		defer cont.Close()
		mat = cont
	}

	rows, cols := mat.Rows(), mat.Cols()
	data, err := mat.DataPtrUint8()
	if err != nil {
		return nil, fmt.Errorf("Mat data access failed: %w", err)
	}

	switch mat.Type() {
	case gocv.MatTypeCV8UC1:
		values := make([]float64, rows*cols)
		for i, v := range data[:rows*cols] {
			values[i] = float64(v)
		}
		return raster.FromValues(cols, rows, 1, values)
	case gocv.MatTypeCV8UC3:
		return raster.FromInterleaved(swapRB(data, 3, rows*cols), cols, rows)
	case gocv.MatTypeCV8UC4:
		return raster.FromInterleaved(swapRB(data, 4, rows*cols), cols, rows)
	default:
		return nil, fmt.Errorf("unsupported Mat type: %v", mat.Type())
	}
}

// MatFromGrid renders the grid as a CV_8UC1 or CV_8UC3 (BGR) Mat. The
// caller owns the returned Mat.
func MatFromGrid(g *raster.Grid) (gocv.Mat, error) {
	if err := raster.ValidateGridForOperation(g, 1, 1, "Mat conversion"); err != nil {
		return gocv.NewMat(), err
	}

	n := g.Width() * g.Height()
	if g.Channels() == 1 {
		buf := make([]byte, n)
		for i, v := range g.Pix() {
			buf[i] = raster.ToUint8(v)
		}
		return gocv.NewMatFromBytes(g.Height(), g.Width(), gocv.MatTypeCV8UC1, buf)
	}

	return gocv.NewMatFromBytes(g.Height(), g.Width(), gocv.MatTypeCV8UC3, swapRB(g.Interleaved(), 3, n))
}

// Decode reads an encoded image with OpenCV into an RGB grid.
func Decode(data []byte) (*raster.Grid, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image with OpenCV: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("failed to decode image with OpenCV: empty result")
	}

	return GridFromMat(mat)
}

// swapRB converts between BGR(A) and RGB, dropping any fourth channel.
func swapRB(src []byte, stride, pixels int) []byte {
	out := make([]byte, pixels*3)
	for i := 0; i < pixels; i++ {
		out[i*3] = src[i*stride+2]
		out[i*3+1] = src[i*stride+1]
		out[i*3+2] = src[i*stride]
	}
	return out
}
