// Package catalog collects the actions the palette can search from a set of
// providers.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/altinukshini/gha-palette/internal/logging"
	"github.com/altinukshini/gha-palette/internal/model"
)

var ErrUnknownAction = errors.New("unknown action")

// Provider supplies groups of actions.
type Provider interface {
	Name() string
	Groups(ctx context.Context) ([]model.ActionGroup, error)
}

type Catalog struct {
	providers []Provider
	logger    *slog.Logger

	mu      sync.RWMutex
	loaded  map[string][]model.ActionGroup // by provider name
	byName  map[string]model.Action
	byAccel map[string]model.Action
	ordered []model.ActionGroup
}

func New(logger *slog.Logger, providers ...Provider) *Catalog {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Catalog{
		providers: providers,
		logger:    logger,
		loaded:    make(map[string][]model.ActionGroup),
		byName:    make(map[string]model.Action),
		byAccel:   make(map[string]model.Action),
	}
}

type fetchResult struct {
	groups []model.ActionGroup
	err    error
}

// Load fetches every provider concurrently. A provider that fails is logged
// and left out; Load only fails when all of them do.
func (c *Catalog) Load(ctx context.Context) error {
	results := make([]fetchResult, len(c.providers))

	var wg sync.WaitGroup
	for i, p := range c.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			groups, err := p.Groups(ctx)
			results[i] = fetchResult{groups: groups, err: err}
		}(i, p)
	}
	wg.Wait()

	var errs []error
	c.mu.Lock()
	for i, p := range c.providers {
		r := results[i]
		if r.err != nil {
			c.logger.Warn("provider failed", "provider", p.Name(), "error", r.err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), r.err))
			continue
		}
		c.loaded[p.Name()] = sortGroups(r.groups)
	}
	c.reindex()
	c.mu.Unlock()

	if len(c.providers) > 0 && len(errs) == len(c.providers) {
		return fmt.Errorf("load catalog: %w", errors.Join(errs...))
	}
	return nil
}

// Refresh reloads a single provider, keeping its previous groups on error.
func (c *Catalog) Refresh(ctx context.Context, name string) error {
	p, ok := lo.Find(c.providers, func(p Provider) bool { return p.Name() == name })
	if !ok {
		return fmt.Errorf("refresh %s: unknown provider", name)
	}
	groups, err := p.Groups(ctx)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded[name] = sortGroups(groups)
	c.reindex()
	return nil
}

// reindex rebuilds the ordered view and the name and accelerator indexes.
// Callers hold mu. When two actions share a name the one from the earlier
// provider wins and the other is dropped from the ordered view as well.
func (c *Catalog) reindex() {
	byName := make(map[string]model.Action)
	byAccel := make(map[string]model.Action)
	c.ordered = c.ordered[:0]
	for _, p := range c.providers {
		for _, g := range c.loaded[p.Name()] {
			actions := make([]model.Action, 0, len(g.Actions))
			for _, a := range g.Actions {
				if _, dup := byName[a.Name]; dup {
					c.logger.Debug("duplicate action name", "action", a.Name, "provider", p.Name())
					continue
				}
				byName[a.Name] = a
				actions = append(actions, a)
				if accel := strings.ToLower(strings.TrimSpace(a.Accel)); accel != "" {
					if _, taken := byAccel[accel]; !taken {
						byAccel[accel] = a
					}
				}
			}
			if len(actions) > 0 {
				c.ordered = append(c.ordered, model.ActionGroup{Name: g.Name, Actions: actions})
			}
		}
	}
	c.byName = byName
	c.byAccel = byAccel
}

func sortGroups(groups []model.ActionGroup) []model.ActionGroup {
	out := make([]model.ActionGroup, 0, len(groups))
	for _, g := range groups {
		actions := append([]model.Action(nil), g.Actions...)
		sort.SliceStable(actions, func(i, j int) bool {
			return actions[i].Name < actions[j].Name
		})
		out = append(out, model.ActionGroup{Name: g.Name, Actions: actions})
	}
	return out
}

// Groups returns the loaded groups in provider order.
func (c *Catalog) Groups() []model.ActionGroup {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.ActionGroup(nil), c.ordered...)
}

func (c *Catalog) Lookup(name string) (model.Action, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.byName[name]
	if !ok {
		return model.Action{}, fmt.Errorf("%s: %w", name, ErrUnknownAction)
	}
	return a, nil
}

// ByAccel returns the action bound to a key such as "ctrl+q". The first
// action claiming a key keeps it.
func (c *Catalog) ByAccel(key string) (model.Action, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.byAccel[strings.ToLower(key)]
	return a, ok
}

// Resolve maps history names to current actions, dropping names that no
// provider knows anymore.
func (c *Catalog) Resolve(names []string) []model.Action {
	c.mu.RLock()
	defer c.mu.RUnlock()
	known := lo.Filter(names, func(n string, _ int) bool {
		_, ok := c.byName[n]
		return ok
	})
	return lo.Map(known, func(n string, _ int) model.Action { return c.byName[n] })
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byName)
}
