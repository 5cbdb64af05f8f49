package config

import (
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the full pagelight configuration document.
type Config struct {
	ContentDir string     `yaml:"content_dir" validate:"required"`
	ImagesDir  string     `yaml:"images_dir,omitempty"`
	Theme      Theme      `yaml:"theme,omitempty"`
	Animations Animations `yaml:"animations,omitempty"`
	Log        Log        `yaml:"log,omitempty"`
}

// Theme holds the kiosk color palette.
type Theme struct {
	Accent  string `yaml:"accent,omitempty" validate:"omitempty,hexcolor"`
	Surface string `yaml:"surface,omitempty" validate:"omitempty,hexcolor"`
}

// Animations toggles the page presentation behaviors. Both default to on;
// editors disable them when capturing stable screenshots.
type Animations struct {
	Reveal   bool `yaml:"reveal"`
	HeroLoop bool `yaml:"hero_loop"`
}

// Log configures where kiosk logging goes. An empty file disables logging
// entirely while the TUI owns the terminal.
type Log struct {
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	File  string `yaml:"file,omitempty"`
}

// UnmarshalYAML applies the default-on behavior for animation toggles.
func (a *Animations) UnmarshalYAML(value *yaml.Node) error {
	type rawAnimations struct {
		Reveal   *bool `yaml:"reveal"`
		HeroLoop *bool `yaml:"hero_loop"`
	}

	var raw rawAnimations
	if err := value.Decode(&raw); err != nil {
		return err
	}

	a.Reveal = raw.Reveal == nil || *raw.Reveal
	a.HeroLoop = raw.HeroLoop == nil || *raw.HeroLoop
	return nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		ContentDir: "./content",
		Theme: Theme{
			Accent:  "#7D56F4",
			Surface: "#1A1A2E",
		},
		Animations: Animations{
			Reveal:   true,
			HeroLoop: true,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// ApplyDefaults fills derived and omitted fields. It runs after decoding
// and again after command line overrides, so the images directory tracks a
// moved content directory.
func (c *Config) ApplyDefaults() {
	defaults := Default()
	if c.ContentDir == "" {
		c.ContentDir = defaults.ContentDir
	}
	if c.ImagesDir == "" {
		c.ImagesDir = filepath.Join(c.ContentDir, "images")
	}
	if c.Theme.Accent == "" {
		c.Theme.Accent = defaults.Theme.Accent
	}
	if c.Theme.Surface == "" {
		c.Theme.Surface = defaults.Theme.Surface
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}
