// Package config loads the palette configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/altinukshini/gha-palette/internal/history"
)

type Config struct {
	Repo     string         `yaml:"repo"`     // owner/repo for GitHub actions (empty = none)
	Language string         `yaml:"language"` // BCP 47 tag used for case folding
	Search   SearchConfig   `yaml:"search"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
	GitHub   GitHubConfig   `yaml:"github"`
	Actions  []ActionConfig `yaml:"actions"`

	// Owner and Name are derived from Repo by Validate.
	Owner string `yaml:"-"`
	Name  string `yaml:"-"`
}

type SearchConfig struct {
	ShowUnavailable bool `yaml:"show_unavailable"` // List insensitive actions too
	HistorySize     int  `yaml:"history_size"`     // Max remembered actions
}

type CacheConfig struct {
	TTL    time.Duration `yaml:"ttl"`     // How long fetched GitHub actions stay fresh
	SizeMB int           `yaml:"size_mb"` // Cache size cap
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path (overrides default)
}

type GitHubConfig struct {
	Ref        string        `yaml:"ref"`         // Ref used for workflow_dispatch (empty = default branch)
	RecentRuns int           `yaml:"recent_runs"` // Runs fetched to build run actions
	MaxRunAge  time.Duration `yaml:"max_run_age"` // Older runs get no actions
	Debug      bool          `yaml:"debug"`       // Rerun with debug logging
}

// ActionConfig is a user-defined shell action.
type ActionConfig struct {
	Name     string `yaml:"name"`
	Label    string `yaml:"label"`
	Tooltip  string `yaml:"tooltip"`
	Group    string `yaml:"group"`
	Accel    string `yaml:"accel"`
	Command  string `yaml:"command"`
	Shell    bool   `yaml:"shell"` // Run through sh -c instead of argv splitting
	Confirm  bool   `yaml:"confirm"`
	Disabled bool   `yaml:"disabled"`
}

func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			HistorySize: history.DefaultSize,
		},
		Cache: CacheConfig{
			TTL:    15 * time.Minute,
			SizeMB: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
		GitHub: GitHubConfig{
			RecentRuns: 20,
			MaxRunAge:  7 * 24 * time.Hour,
		},
	}
}

// LoadFromFile reads the config at path. A missing file yields defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnvOverrides lets GHA_PALETTE_REPO and GHA_PALETTE_DEBUG win over
// the file.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("GHA_PALETTE_REPO"); v != "" {
		c.Repo = v
	}
	if os.Getenv("GHA_PALETTE_DEBUG") == "1" {
		c.Log.Level = "debug"
	}
}

func (c *Config) HasRepo() bool {
	return c.Owner != "" && c.Name != ""
}

func (c *Config) RepoNWO() string {
	return fmt.Sprintf("%s/%s", c.Owner, c.Name)
}

// Validate checks the config and fills in derived fields.
func (c *Config) Validate() error {
	c.Owner, c.Name = "", ""
	if c.Repo != "" {
		parts := strings.SplitN(c.Repo, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("repo must be in owner/repo format, got %q", c.Repo)
		}
		c.Owner, c.Name = parts[0], parts[1]
	}

	if c.Search.HistorySize < 0 {
		return fmt.Errorf("search.history_size must not be negative")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("invalid log.level %q (valid: debug, info, warn, error)", c.Log.Level)
	}

	seen := make(map[string]bool, len(c.Actions))
	for i, a := range c.Actions {
		if a.Name == "" {
			return fmt.Errorf("actions[%d]: name is required", i)
		}
		if seen[a.Name] {
			return fmt.Errorf("actions[%d]: duplicate name %q", i, a.Name)
		}
		seen[a.Name] = true
		if strings.TrimSpace(a.Command) == "" {
			return fmt.Errorf("action %q: command is required", a.Name)
		}
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
