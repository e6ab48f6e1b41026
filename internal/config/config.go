// Package config loads processing recipes: an ordered list of filter steps
// plus runtime settings, from YAML or TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	YAML Format = iota
	TOML
)

// Step names a registered filter and overrides some of its defaults.
type Step struct {
	Filter string                 `yaml:"filter" toml:"filter"`
	Params map[string]interface{} `yaml:"params" toml:"params"`
}

type Recipe struct {
	Workers   int    `yaml:"workers" toml:"workers"`
	LogLevel  string `yaml:"log_level" toml:"log_level"`
	Grayscale string `yaml:"grayscale" toml:"grayscale"`
	Steps     []Step `yaml:"steps" toml:"steps"`
}

func Default() *Recipe {
	return &Recipe{
		Workers:  runtime.GOMAXPROCS(0),
		LogLevel: "info",
	}
}

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return YAML, fmt.Errorf("unsupported recipe extension %q", filepath.Ext(path))
	}
}

func Load(path string) (*Recipe, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe: %w", err)
	}

	return Parse(data, format)
}

func Parse(data []byte, format Format) (*Recipe, error) {
	recipe := Default()

	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(recipe); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml recipe: %w", err)
		}
	case TOML:
		meta, err := toml.Decode(string(data), recipe)
		if err != nil {
			return nil, fmt.Errorf("decode toml recipe: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown recipe keys: %v", undecoded)
		}
	default:
		return nil, fmt.Errorf("unknown recipe format %d", format)
	}

	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (r *Recipe) Validate() error {
	if r.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", r.Workers)
	}
	for i, step := range r.Steps {
		if strings.TrimSpace(step.Filter) == "" {
			return fmt.Errorf("step %d has no filter name", i)
		}
	}
	return nil
}
