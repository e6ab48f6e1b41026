package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"rasterkit/internal/logger"
	"rasterkit/internal/raster"
)

// ImageData is a decoded image ready for filtering.
type ImageData struct {
	Grid   *raster.Grid
	Width  int
	Height int
	Format string
}

type Loader struct {
	logger logger.Logger
}

func NewLoader(log logger.Logger) *Loader {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Loader{logger: log}
}

func (l *Loader) LoadFile(path string) (*ImageData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	l.logger.Debug("ImageLoader", "loading image", map[string]interface{}{
		"path": path,
	})

	return l.LoadFromReader(f, strings.ToLower(filepath.Ext(path)))
}

func (l *Loader) LoadFromReader(reader io.Reader, extension string) (*ImageData, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	l.logger.Debug("ImageLoader", "image data read", map[string]interface{}{
		"size_bytes": len(data),
	})

	return l.LoadFromBytes(data, extension)
}

// LoadFromBytes decodes any registered format into a 3-channel RGB grid.
// Alpha is dropped after un-premultiplying.
func (l *Loader) LoadFromBytes(data []byte, extension string) (*ImageData, error) {
	start := time.Now()

	img, stdFormat, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	grid, err := raster.FromInterleaved(ToInterleaved(img), bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	imageData := &ImageData{
		Grid:   grid,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: determineActualFormat(extension, stdFormat),
	}

	l.logger.Info("ImageLoader", "image loaded successfully", map[string]interface{}{
		"width":    imageData.Width,
		"height":   imageData.Height,
		"format":   imageData.Format,
		"duration": time.Since(start).String(),
	})

	return imageData, nil
}

// ToInterleaved flattens img into width*height*3 RGB bytes.
func ToInterleaved(img image.Image) []byte {
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)

	w, h := bounds.Dx(), bounds.Dy()
	out := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < w; x++ {
			copy(out[(y*w+x)*3:(y*w+x)*3+3], row[x*4:x*4+3])
		}
	}
	return out
}

func determineActualFormat(extension, stdFormat string) string {
	switch extension {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	default:
		if stdFormat != "" {
			return stdFormat
		}
		return "unknown"
	}
}
