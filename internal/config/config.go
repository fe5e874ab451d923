package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	Directories []DirectoryConfig `json:"directories" toml:"directories" yaml:"directories"`
	Layout      LayoutConfig      `json:"layout" toml:"layout" yaml:"layout"`
	Window      WindowConfig      `json:"window" toml:"window" yaml:"window"`
	Behavior    BehaviorConfig    `json:"behavior" toml:"behavior" yaml:"behavior"`
	Store       StoreConfig       `json:"store" toml:"store" yaml:"store"`
	Enlarge     EnlargeConfig     `json:"enlarge" toml:"enlarge" yaml:"enlarge"`
}

// DirectoryConfig is one directory slot, shown as one column
type DirectoryConfig struct {
	Path  string `json:"path" toml:"path" yaml:"path"`
	Label string `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"` // Defaults to the directory name
}

// DisplayLabel returns the column header text.
func (d DirectoryConfig) DisplayLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return filepath.Base(filepath.Clean(d.Path))
}

// LayoutConfig holds the fixed layout constants in dp
type LayoutConfig struct {
	ColumnWidth   int `json:"columnWidth" toml:"columnWidth" yaml:"columnWidth"`
	SlotHeight    int `json:"slotHeight" toml:"slotHeight" yaml:"slotHeight"`
	Gap           int `json:"gap" toml:"gap" yaml:"gap"`
	HeaderOffset  int `json:"headerOffset" toml:"headerOffset" yaml:"headerOffset"`
	Margin        int `json:"margin" toml:"margin" yaml:"margin"`
	ThumbnailSize int `json:"thumbnailSize" toml:"thumbnailSize" yaml:"thumbnailSize"` // In image pixels
}

// WindowConfig holds the initial window size in dp
type WindowConfig struct {
	Width  int `json:"width" toml:"width" yaml:"width"`
	Height int `json:"height" toml:"height" yaml:"height"`
}

// BehaviorConfig holds behavior settings
type BehaviorConfig struct {
	ConfirmDelete    bool `json:"confirmDelete" toml:"confirmDelete" yaml:"confirmDelete"`
	WatchDirectories bool `json:"watchDirectories" toml:"watchDirectories" yaml:"watchDirectories"`
}

// StoreConfig holds the order database location. An empty path disables it.
type StoreConfig struct {
	Path string `json:"path" toml:"path" yaml:"path"`
}

// EnlargeConfig holds enlarge window settings
type EnlargeConfig struct {
	CacheEntries int `json:"cacheEntries" toml:"cacheEntries" yaml:"cacheEntries"` // Full-size images kept decoded
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		config: DefaultConfig(),
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Directories: []DirectoryConfig{
			{Path: filepath.Join("images", "1")},
			{Path: filepath.Join("images", "2")},
			{Path: filepath.Join("images", "3")},
			{Path: filepath.Join("images", "4")},
			{Path: filepath.Join("images", "5")},
		},
		Layout: LayoutConfig{
			ColumnWidth:   200,
			SlotHeight:    260,
			Gap:           10,
			HeaderOffset:  50,
			Margin:        50,
			ThumbnailSize: 200,
		},
		Window: WindowConfig{
			Width:  1150,
			Height: 800,
		},
		Behavior: BehaviorConfig{
			ConfirmDelete:    false,
			WatchDirectories: true,
		},
		Store: StoreConfig{
			Path: DefaultStorePath(),
		},
		Enlarge: EnlargeConfig{
			CacheEntries: 8,
		},
	}
}

// ConfigDir returns ~/.config/imgsort on every platform.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "imgsort")
}

// ConfigPath returns the default config file path: ~/.config/imgsort/config.json
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// DefaultStorePath returns ~/.config/imgsort/imgsort.db
func DefaultStorePath() string {
	return filepath.Join(ConfigDir(), "imgsort.db")
}

// Load reads the configuration. An empty path means ConfigPath(), which is
// created with defaults if missing. An explicit path must exist.
// If parsing fails, the error is kept for ParseError and defaults are used.
func (m *Manager) Load(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	explicit := path != ""
	if !explicit {
		path = ConfigPath()
	}
	m.path = path
	m.parseErr = nil

	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		configDir := filepath.Dir(m.path)
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			log.Printf("Config: failed to create directory %s: %v", configDir, err)
			return err
		}
		log.Printf("Config: creating default config at %s", m.path)
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			log.Printf("Config: failed to save default config: %v", saveErr)
			return saveErr
		}
		return nil
	}
	if err != nil {
		log.Printf("Config: failed to read %s: %v", m.path, err)
		return err
	}

	cfg := DefaultConfig()
	if err := decode(m.path, data, cfg); err != nil {
		// Store error for UI display, use defaults
		log.Printf("Config: parse error in %s: %v", m.path, err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil
	}

	log.Printf("Config: loaded from %s", m.path)
	m.config = cfg
	return nil
}

// format picks the codec from the file extension; JSON is the default.
func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func decode(path string, data []byte, cfg *Config) error {
	switch format(path) {
	case "toml":
		return toml.Unmarshal(data, cfg)
	case "yaml":
		return yaml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

func encode(path string, cfg *Config) ([]byte, error) {
	switch format(path) {
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "yaml":
		return yaml.Marshal(cfg)
	default:
		return json.MarshalIndent(cfg, "", "  ")
	}
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	data, err := encode(m.path, m.config)
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	cfg := *m.config
	cfg.Directories = append([]DirectoryConfig(nil), m.config.Directories...)
	return cfg
}

// Path returns the file the configuration was loaded from
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// Validate checks that the directory slots exist and the layout is usable.
func (c Config) Validate() error {
	if len(c.Directories) == 0 {
		return errors.New("config: at least one directory is required")
	}
	seen := make(map[string]bool)
	for i, d := range c.Directories {
		if d.Path == "" {
			return fmt.Errorf("config: directory %d has no path", i)
		}
		abs, err := filepath.Abs(d.Path)
		if err != nil {
			return fmt.Errorf("config: directory %q: %w", d.Path, err)
		}
		if seen[abs] {
			return fmt.Errorf("config: directory %q listed twice", d.Path)
		}
		seen[abs] = true

		info, err := os.Stat(d.Path)
		if err != nil {
			return fmt.Errorf("config: directory %q: %w", d.Path, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("config: %q is not a directory", d.Path)
		}
	}

	l := c.Layout
	if l.ColumnWidth <= 0 || l.SlotHeight <= 0 || l.ThumbnailSize <= 0 {
		return errors.New("config: columnWidth, slotHeight and thumbnailSize must be positive")
	}
	if l.Gap < 0 || l.HeaderOffset < 0 || l.Margin < 0 {
		return errors.New("config: gap, headerOffset and margin must not be negative")
	}
	return nil
}
