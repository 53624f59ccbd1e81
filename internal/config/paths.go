package config

import (
	"os"
	"path/filepath"
)

const appName = "gha-palette"

// Paths holds the per-user locations the palette reads and writes.
type Paths struct {
	ConfigDir string // ~/.config/gha-palette
	DataDir   string // ~/.local/share/gha-palette
	CacheDir  string // ~/.cache/gha-palette
}

// DefaultPaths follows the XDG base directory layout.
func DefaultPaths() *Paths {
	home := homeDir()

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome = filepath.Join(home, ".cache")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, appName),
		DataDir:   filepath.Join(dataHome, appName),
		CacheDir:  filepath.Join(cacheHome, appName),
	}
}

func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

func (p *Paths) HistoryFile() string {
	return filepath.Join(p.DataDir, "history.db")
}

func (p *Paths) LogFile() string {
	return filepath.Join(p.DataDir, "palette.log")
}

func (p *Paths) SnapshotCacheDir() string {
	return filepath.Join(p.CacheDir, "snapshots")
}

func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ConfigDir, p.DataDir, p.CacheDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.TempDir()
}
