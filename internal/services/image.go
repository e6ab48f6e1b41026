package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rasterkit/internal/logger"
	"rasterkit/internal/models"
	"rasterkit/internal/opencv/conversion"
	"rasterkit/internal/pipeline"
	"rasterkit/internal/raster"
)

// Decoder selects the image decoding backend.
type Decoder string

const (
	DecoderGo     Decoder = "go"
	DecoderOpenCV Decoder = "opencv"
)

func ParseDecoder(name string) (Decoder, error) {
	switch d := Decoder(strings.ToLower(strings.TrimSpace(name))); d {
	case "", DecoderGo:
		return DecoderGo, nil
	case DecoderOpenCV:
		return d, nil
	default:
		return DecoderGo, fmt.Errorf("unknown decoder %q", name)
	}
}

// ImageService loads files into the working image and writes it back out.
type ImageService struct {
	repository *models.Image
	loader     *pipeline.Loader
	saver      *pipeline.Saver
	logger     logger.Logger
}

func NewImageService(repo *models.Image, log logger.Logger) *ImageService {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &ImageService{
		repository: repo,
		loader:     pipeline.NewLoader(log),
		saver:      pipeline.NewSaver(log),
		logger:     log,
	}
}

func (is *ImageService) LoadImage(ctx context.Context, path string, decoder Decoder) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	startTime := time.Now()

	var grid *raster.Grid
	switch decoder {
	case DecoderOpenCV:
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read image data: %w", err)
		}
		grid, err = conversion.Decode(data)
		if err != nil {
			return err
		}
	default:
		data, err := is.loader.LoadFile(path)
		if err != nil {
			return err
		}
		grid = data.Grid
	}

	is.repository.LoadGrid(grid)

	is.logger.Info("ImageService", "image loaded", map[string]interface{}{
		"path":      filepath.Base(path),
		"decoder":   string(decoder),
		"width":     grid.Width(),
		"height":    grid.Height(),
		"load_time": time.Since(startTime).String(),
	})
	return nil
}

func (is *ImageService) SaveImage(path string) error {
	current := is.repository.Current()
	if current == nil {
		return models.ErrNoImage
	}
	return is.saver.SaveFile(path, current)
}
