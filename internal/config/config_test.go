package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigLayout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Len(t, cfg.Directories, 5)
	assert.Equal(t, 210, cfg.Layout.ColumnWidth+cfg.Layout.Gap)
	assert.Equal(t, 270, cfg.Layout.SlotHeight+cfg.Layout.Gap)
	assert.Equal(t, 1150, cfg.Window.Width)
	assert.False(t, cfg.Behavior.ConfirmDelete)
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name    string
		content string
	}{
		{"config.json", `{"directories":[{"path":"/a","label":"Keep"},{"path":"/b"}],"layout":{"gap":4}}`},
		{"config.toml", "[[directories]]\npath = \"/a\"\nlabel = \"Keep\"\n\n[[directories]]\npath = \"/b\"\n\n[layout]\ngap = 4\n"},
		{"config.yaml", "directories:\n  - path: /a\n    label: Keep\n  - path: /b\nlayout:\n  gap: 4\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, dir, tc.name, tc.content)
			m := NewManager()
			require.NoError(t, m.Load(path))
			require.NoError(t, m.ParseError())

			cfg := m.Get()
			require.Len(t, cfg.Directories, 2)
			assert.Equal(t, "/a", cfg.Directories[0].Path)
			assert.Equal(t, "Keep", cfg.Directories[0].DisplayLabel())
			assert.Equal(t, "b", cfg.Directories[1].DisplayLabel())
			assert.Equal(t, 4, cfg.Layout.Gap)
			// Fields absent from the file keep their defaults.
			assert.Equal(t, 200, cfg.Layout.ColumnWidth)
			assert.Equal(t, 8, cfg.Enlarge.CacheEntries)
			assert.Equal(t, path, m.Path())
		})
	}
}

func TestLoadParseErrorFallsBackToDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.json", `{"directories": [`)

	m := NewManager()
	require.NoError(t, m.Load(path))
	assert.Error(t, m.ParseError())
	assert.Equal(t, DefaultConfig().Directories, m.Get().Directories)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	m := NewManager()
	err := m.Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadCreatesDefaultConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	m := NewManager()
	require.NoError(t, m.Load(""))

	_, err := os.Stat(filepath.Join(home, ".config", "imgsort", "config.json"))
	assert.NoError(t, err)
	assert.Equal(t, *DefaultConfig(), m.Get())
}

func TestSaveRoundTrip(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[[directories]]\npath = \"/x\"\n")
	m := NewManager()
	require.NoError(t, m.Load(path))
	require.NoError(t, m.Save())

	again := NewManager()
	require.NoError(t, again.Load(path))
	assert.Equal(t, m.Get(), again.Get())
}

func TestGetReturnsCopy(t *testing.T) {
	m := NewManager()
	cfg := m.Get()
	cfg.Directories[0].Path = "changed"
	assert.NotEqual(t, "changed", m.Get().Directories[0].Path)
}

func TestValidate(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")
	require.NoError(t, os.Mkdir(a, 0o755))
	require.NoError(t, os.Mkdir(b, 0o755))
	file := writeFile(t, root, "file.png", "x")

	valid := func() Config {
		cfg := *DefaultConfig()
		cfg.Directories = []DirectoryConfig{{Path: a}, {Path: b}}
		return cfg
	}

	assert.NoError(t, valid().Validate())

	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no directories", func(c *Config) { c.Directories = nil }},
		{"missing directory", func(c *Config) { c.Directories[1].Path = filepath.Join(root, "missing") }},
		{"file instead of directory", func(c *Config) { c.Directories[1].Path = file }},
		{"empty path", func(c *Config) { c.Directories[0].Path = "" }},
		{"duplicate directory", func(c *Config) { c.Directories[1].Path = a + string(filepath.Separator) }},
		{"zero column width", func(c *Config) { c.Layout.ColumnWidth = 0 }},
		{"negative gap", func(c *Config) { c.Layout.Gap = -1 }},
		{"zero thumbnail", func(c *Config) { c.Layout.ThumbnailSize = 0 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
