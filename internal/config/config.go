package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Board is one tracked forum board.
type Board struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// FetchConfig holds the wall-clock and size budgets for remote operations.
type FetchConfig struct {
	PostTimeout       string `yaml:"post_timeout"`
	ImageTimeout      string `yaml:"image_timeout"`
	MaxItems          int    `yaml:"max_items"`
	MaxImageKB        int64  `yaml:"max_image_kb"`
	CleanupAfter      string `yaml:"cleanup_after"`
	AbstractThreshold int    `yaml:"abstract_threshold"`
}

// LogConfig configures the diagnostics sink. An empty File logs to stderr.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

type Config struct {
	RefreshInterval string      `yaml:"refresh_interval"`
	ShowImages      *bool       `yaml:"show_images,omitempty"`
	Boards          []Board     `yaml:"boards"`
	Fetch           FetchConfig `yaml:"fetch"`
	Log             LogConfig   `yaml:"log"`

	path string
}

func (c *Config) RefreshDuration() time.Duration {
	return parseDurationOr(c.RefreshInterval, 30*time.Minute)
}

func (c *Config) PostTimeout() time.Duration {
	return parseDurationOr(c.Fetch.PostTimeout, 10*time.Second)
}

func (c *Config) ImageTimeout() time.Duration {
	return parseDurationOr(c.Fetch.ImageTimeout, 25*time.Second)
}

func (c *Config) CleanupAfter() time.Duration {
	return parseDurationOr(c.Fetch.CleanupAfter, 72*time.Hour)
}

func (c *Config) MaxItems() int {
	if c.Fetch.MaxItems <= 0 {
		return 10
	}
	return c.Fetch.MaxItems
}

func (c *Config) MaxImageBytes() int64 {
	if c.Fetch.MaxImageKB <= 0 {
		return 1024 << 10
	}
	return c.Fetch.MaxImageKB << 10
}

func (c *Config) AbstractThreshold() int {
	if c.Fetch.AbstractThreshold <= 0 {
		return 60
	}
	return c.Fetch.AbstractThreshold
}

// ImagesEnabled reports the show_images display preference (default true).
func (c *Config) ImagesEnabled() bool {
	if c.ShowImages == nil {
		return true
	}
	return *c.ShowImages
}

// SetImagesEnabled updates the show_images display preference.
func (c *Config) SetImagesEnabled(on bool) {
	c.ShowImages = &on
}

func (c *Config) EnabledBoards() []Board {
	var out []Board
	for _, b := range c.Boards {
		if b.Enabled {
			out = append(out, b)
		}
	}
	return out
}

func (c *Config) BoardNames() []string {
	var names []string
	for _, b := range c.EnabledBoards() {
		names = append(names, b.Name)
	}
	return names
}

// Preference implements the read-only preference lookup consumed by the
// orchestrator. An environment variable of the form BOARDFEED_<KEY> takes
// precedence over the config file.
func (c *Config) Preference(key string) (string, bool) {
	if v := os.Getenv(envKey(key)); v != "" {
		return v, true
	}
	switch key {
	case "refresh_interval":
		if c.RefreshInterval != "" {
			return c.RefreshInterval, true
		}
	case "show_images":
		if c.ShowImages != nil {
			return fmt.Sprintf("%v", *c.ShowImages), true
		}
	}
	return "", false
}

func envKey(key string) string {
	out := make([]byte, 0, len(key)+10)
	out = append(out, "BOARDFEED_"...)
	for i := 0; i < len(key); i++ {
		ch := key[i]
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		out = append(out, ch)
	}
	return string(out)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "boardfeed", "config.yaml")
}

func CachePath() string {
	return filepath.Join(xdg.CacheHome, "boardfeed", "boardfeed.db")
}

// ImageRoot is the shared root directory under which each board gets its own
// image download directory.
func ImageRoot() string {
	return filepath.Join(xdg.CacheHome, "boardfeed", "images")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			defaults.path = path
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.path = path

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config back to the file it was loaded from. Used by the
// boards and images commands.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// AddBoard appends a tracked board, rejecting duplicates by name.
func (c *Config) AddBoard(b Board) error {
	for _, existing := range c.Boards {
		if existing.Name == b.Name {
			return fmt.Errorf("board %q already tracked", b.Name)
		}
	}
	if err := validateBoard(b, len(c.Boards)); err != nil {
		return err
	}
	c.Boards = append(c.Boards, b)
	return nil
}

// RemoveBoard removes a tracked board by name.
func (c *Config) RemoveBoard(name string) error {
	for i, b := range c.Boards {
		if b.Name == name {
			c.Boards = append(c.Boards[:i], c.Boards[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("board %q not tracked", name)
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	for i, b := range cfg.Boards {
		if err := validateBoard(b, i); err != nil {
			return err
		}
	}
	return nil
}

func validateBoard(b Board, idx int) error {
	if b.Name == "" {
		return fmt.Errorf("board %d: name is required", idx)
	}
	if b.URL == "" {
		return fmt.Errorf("board %q: url is required", b.Name)
	}
	u, err := url.Parse(b.URL)
	if err != nil {
		return fmt.Errorf("board %q: invalid url: %w", b.Name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("board %q: url scheme must be http or https, got %q", b.Name, u.Scheme)
	}
	return nil
}
