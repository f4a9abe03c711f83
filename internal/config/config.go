// Package config loads the Mandelbrot CLI subcommand's viewport and window
// parameters from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/thunklang/thunklang/internal/examples"
)

// Mandelbrot holds the fields of examples.MandelbrotInput as they appear in
// a config file, with yaml tags for the snake_case keys a user would write.
type Mandelbrot struct {
	ViewportWidth  int64   `yaml:"viewport_width"`
	ViewportHeight int64   `yaml:"viewport_height"`
	X1             float32 `yaml:"x1"`
	Y1             float32 `yaml:"y1"`
	X2             float32 `yaml:"x2"`
	Y2             float32 `yaml:"y2"`
	MaxIterations  int64   `yaml:"max_iterations"`
}

// ToInput converts the config's fields into the host input struct the
// Mandelbrot program advertises.
func (m Mandelbrot) ToInput() examples.MandelbrotInput {
	return examples.MandelbrotInput{
		ViewportWidth:  m.ViewportWidth,
		ViewportHeight: m.ViewportHeight,
		X1:             m.X1,
		Y1:             m.Y1,
		X2:             m.X2,
		Y2:             m.Y2,
		MaxIterations:  m.MaxIterations,
	}
}

// DefaultMandelbrot mirrors the reference program's own example arguments,
// used whenever the CLI runs without a --config flag.
func DefaultMandelbrot() Mandelbrot {
	return Mandelbrot{
		ViewportWidth:  50,
		ViewportHeight: 20,
		X1:             -2.05,
		Y1:             -1.12,
		X2:             0.47,
		Y2:             1.12,
		MaxIterations:  100,
	}
}

// LoadMandelbrot reads and parses a YAML config file at path. A leading
// UTF-8 BOM (common in files saved by Windows editors) is stripped before
// parsing; thunklang's config files are hand-written YAML, not the
// script-source fixtures go-dws has to tolerate arbitrary encodings for, so
// there's no UTF-16 case to detect here.
func LoadMandelbrot(path string) (Mandelbrot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Mandelbrot{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}

	var cfg Mandelbrot
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Mandelbrot{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
