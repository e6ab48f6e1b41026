package pipeline

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"rasterkit/internal/logger"
	"rasterkit/internal/raster"
)

type Saver struct {
	logger      logger.Logger
	jpegQuality int
}

func NewSaver(log logger.Logger) *Saver {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Saver{logger: log, jpegQuality: 95}
}

// FormatFromPath maps a file extension to an encoder name. Unknown
// extensions fall back to png.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	default:
		return "png"
	}
}

func (s *Saver) SaveFile(path string, grid *raster.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	if err := s.SaveToWriter(f, grid, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Saver) SaveToWriter(writer io.Writer, grid *raster.Grid, format string) error {
	if grid == nil {
		return fmt.Errorf("no image data to save")
	}

	img := ToImage(grid)

	s.logger.Debug("ImageSaver", "saving image", map[string]interface{}{
		"format": format,
		"width":  grid.Width(),
		"height": grid.Height(),
	})

	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(writer, img, &jpeg.Options{Quality: s.jpegQuality})
	case "bmp":
		err = bmp.Encode(writer, img)
	case "tiff":
		err = tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate})
	case "png", "":
		err = png.Encode(writer, img)
	default:
		s.logger.Warning("ImageSaver", "format not supported, using PNG", map[string]interface{}{
			"requested_format": strings.ToUpper(format),
		})
		err = png.Encode(writer, img)
	}

	if err != nil {
		s.logger.Error("ImageSaver", err, map[string]interface{}{
			"format": format,
		})
		return err
	}

	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"format": format,
	})

	return nil
}

// ToImage renders the grid as an opaque RGBA image.
func ToImage(grid *raster.Grid) *image.RGBA {
	w, h := grid.Width(), grid.Height()
	rgb := grid.Interleaved()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for i := 0; i < w*h; i++ {
		copy(img.Pix[i*4:i*4+3], rgb[i*3:i*3+3])
		img.Pix[i*4+3] = 255
	}
	return img
}
