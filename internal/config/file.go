package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration of an example.
type File struct {
	Window Window `yaml:"window"`
	Render Render `yaml:"render"`
}

// Window describes the output surface.
type Window struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
}

// Render holds render loop settings.
type Render struct {
	Background string `yaml:"background"`
	FPSLimit   int    `yaml:"fps_limit"`
	VSync      *bool  `yaml:"vsync"`
	LogCursor  bool   `yaml:"log_cursor"`
}

// Default returns the configuration used when no file is given.
func Default() File {
	return File{
		Window: Window{
			Title:     "gl-basics",
			Width:     800,
			Height:    600,
			Resizable: true,
		},
		Render: Render{
			Background: "black",
		},
	}
}

// Load reads a YAML file on top of Default. An empty path returns the defaults.
func Load(path string) (File, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the window dimensions.
func (f File) Validate() error {
	if f.Window.Width <= 0 || f.Window.Height <= 0 {
		return errors.New("window width and height must be positive")
	}
	return nil
}

// Apply pushes the render section into the runtime settings.
func (f File) Apply() {
	SetFPSLimit(f.Render.FPSLimit)
	if f.Render.VSync != nil {
		SetVSync(*f.Render.VSync)
	}
	SetLogCursor(f.Render.LogCursor)
}
