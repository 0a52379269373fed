package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/elizafairlady/creditform/ui/keyboard"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	l, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, l)
	require.Equal(t, keyboard.DefaultRows, cfg.KeyboardRows())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
title: Kiosk
log_level: debug
log_file: /tmp/creditform.log
alt_screen: true
keyboard:
  rows:
    - "1 2 3"
    - ""
    - "- . ⌫"
theme:
  primary: blue
  danger: "#ff0000"
`))
	require.NoError(t, err)
	require.Equal(t, "Kiosk", cfg.Title)
	require.Equal(t, "/tmp/creditform.log", cfg.LogFile)
	require.True(t, cfg.AltScreen)

	l, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, l)

	require.Equal(t, [][]string{{"1", "2", "3"}, {"-", ".", "⌫"}}, cfg.KeyboardRows())

	th := cfg.NewTheme()
	require.Equal(t, lipgloss.Color("#4582ec"), th.Primary)
	require.Equal(t, lipgloss.Color("#ff0000"), th.Danger)
}

func TestParseErrors(t *testing.T) {
	for _, doc := range []string{
		"log_level: loud",
		"theme: {primary: chartreuse}",
		"unknown_key: 1",
		"title: [",
	} {
		_, err := Parse([]byte(doc))
		require.Error(t, err, doc)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load("")
	require.NoError(t, err, "missing default file yields defaults")
	require.Equal(t, Default(), cfg)

	path := filepath.Join(dir, "creditform", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("title: From XDG\n"), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, "From XDG", cfg.Title)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err, "an explicit path must exist")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("log_level: loud\n"), 0o644))
	_, err = Load(bad)
	require.ErrorContains(t, err, "log_level")
}
