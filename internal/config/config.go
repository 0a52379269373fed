// Package config loads the YAML configuration of the newuser command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/elizafairlady/creditform/ui/keyboard"
	"github.com/elizafairlady/creditform/ui/theme"
)

// Config holds user-configurable settings.
type Config struct {
	Title     string         `yaml:"title"`
	LogLevel  string         `yaml:"log_level"`
	LogFile   string         `yaml:"log_file"`
	AltScreen bool           `yaml:"alt_screen"`
	Keyboard  KeyboardConfig `yaml:"keyboard"`
	Theme     ThemeConfig    `yaml:"theme"`
}

// KeyboardConfig describes the on-screen keyboard. Each row is a
// space separated list of key labels.
type KeyboardConfig struct {
	Rows []string `yaml:"rows"`
}

// ThemeConfig overrides theme colors. Empty values keep the default.
type ThemeConfig struct {
	Primary string `yaml:"primary"`
	Danger  string `yaml:"danger"`
	Success string `yaml:"success"`
	Text    string `yaml:"text"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Title:    "New User Data",
		LogLevel: "info",
	}
}

// Path returns the default location of the config file.
func Path() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "creditform", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: path: %w", err)
	}
	return filepath.Join(home, ".config", "creditform", "config.yaml"), nil
}

// Load reads the config file at path. An empty path means the
// default location, where a missing file yields the defaults; an
// explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: read: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are errors.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be checked by decoding.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	for name, v := range map[string]string{
		"primary": c.Theme.Primary,
		"danger":  c.Theme.Danger,
		"success": c.Theme.Success,
		"text":    c.Theme.Text,
	} {
		if v == "" {
			continue
		}
		if _, ok := theme.ParseColor(v); !ok {
			return fmt.Errorf("theme.%s: bad color %q", name, v)
		}
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// KeyboardRows returns the keyboard layout, or keyboard.DefaultRows
// when none is configured.
func (c *Config) KeyboardRows() [][]string {
	var rows [][]string
	for _, r := range c.Keyboard.Rows {
		if f := strings.Fields(r); len(f) > 0 {
			rows = append(rows, f)
		}
	}
	if len(rows) == 0 {
		return keyboard.DefaultRows
	}
	return rows
}

// NewTheme returns the default theme with the configured colors.
func (c *Config) NewTheme() *theme.Theme {
	th := theme.Default()
	set := func(dst *lipgloss.Color, v string) {
		if col, ok := theme.ParseColor(v); ok {
			*dst = col
		}
	}
	set(&th.Primary, c.Theme.Primary)
	set(&th.Danger, c.Theme.Danger)
	set(&th.Success, c.Theme.Success)
	set(&th.Text, c.Theme.Text)
	return th
}
