package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/altinukshini/gha-palette/internal/api"
	"github.com/altinukshini/gha-palette/internal/cache"
	"github.com/altinukshini/gha-palette/internal/catalog"
	"github.com/altinukshini/gha-palette/internal/config"
	"github.com/altinukshini/gha-palette/internal/history"
	"github.com/altinukshini/gha-palette/internal/logging"
	"github.com/altinukshini/gha-palette/internal/ops"
	"github.com/altinukshini/gha-palette/internal/search"
)

// env is everything a command needs, built from config and flags.
type env struct {
	cfg       *config.Config
	paths     *config.Paths
	logger    *slog.Logger
	history   *history.Store
	client    *api.Client
	engine    *search.Engine
	providers []catalog.Provider
	closers   []io.Closer
}

func setup() (*env, error) {
	paths := config.DefaultPaths()
	if err := paths.EnsureDirectories(); err != nil {
		return nil, err
	}

	cfgPath := configFlag
	if cfgPath == "" {
		cfgPath = paths.ConfigFile()
	}
	cfg, err := config.LoadFromFile(cfgPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if repoFlag != "" {
		cfg.Repo = repoFlag
	}
	if showUnavailableFlag {
		cfg.Search.ShowUnavailable = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}

	e := &env{cfg: cfg, paths: paths}

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = paths.LogFile()
	}
	logger, closer, err := logging.OpenFile(logFile, cfg.Log.Level)
	if err != nil {
		// the palette still works without a log
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger = logging.Discard()
	} else {
		e.closers = append(e.closers, closer)
	}
	e.logger = logger

	store, err := history.Open(paths.HistoryFile(), cfg.Search.HistorySize)
	if err != nil {
		logger.Warn("history disabled", "error", err)
	} else {
		e.history = store
		e.closers = append(e.closers, store)
	}

	e.engine = search.New(search.NewMatcher(search.NewFoldTokenizer(cfg.Language)), history.Hidden)
	e.providers = append(e.providers, &catalog.Config{Actions: cfg.Actions})

	if cfg.HasRepo() {
		client, err := api.NewClient(cfg.Owner, cfg.Name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			fmt.Fprintln(os.Stderr, "Make sure you are authenticated with: gh auth login")
		} else {
			e.client = client
			e.providers = append(e.providers, e.githubProvider(client))
		}
	}

	logger.Info("palette ready", "repo", cfg.Repo, "providers", len(e.providers)+1)
	return e, nil
}

func (e *env) githubProvider(client *api.Client) *catalog.GitHub {
	sc, err := e.snapshotCache()
	if err != nil {
		e.logger.Warn("snapshot cache disabled", "error", err)
		sc = nil
	}
	return catalog.NewGitHub(client, sc, catalog.GitHubOptions{
		Repo:       e.cfg.RepoNWO(),
		Ref:        e.cfg.GitHub.Ref,
		RecentRuns: e.cfg.GitHub.RecentRuns,
		MaxRunAge:  e.cfg.GitHub.MaxRunAge,
		Refresh:    refreshFlag,
		Logger:     e.logger,
	})
}

func (e *env) snapshotCache() (*cache.SnapshotCache, error) {
	return cache.NewSnapshotCache(e.paths.SnapshotCacheDir(), e.cfg.Cache.SizeMB, e.cfg.Cache.TTL)
}

// github returns the client as ops.GitHub, or nil without a repository.
func (e *env) github() ops.GitHub {
	if e.client == nil {
		return nil
	}
	return e.client
}

func (e *env) repo() string {
	if !e.cfg.HasRepo() {
		return ""
	}
	return e.cfg.RepoNWO()
}

func (e *env) record(name string) {
	if e.history == nil {
		return
	}
	if err := e.history.Record(name, time.Now()); err != nil {
		e.logger.Warn("record history", "action", name, "error", err)
	}
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
}
