package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/altinukshini/gha-palette/internal/api"
	"github.com/altinukshini/gha-palette/internal/cache"
	"github.com/altinukshini/gha-palette/internal/logging"
	"github.com/altinukshini/gha-palette/internal/model"
	"github.com/altinukshini/gha-palette/internal/ops"
)

const (
	GroupWorkflows = "workflows"
	GroupRuns      = "runs"
)

// GitHubClient is the part of the REST client the provider reads from.
type GitHubClient interface {
	ListWorkflows(perPage, page int) (*model.WorkflowsResponse, error)
	ListRuns(filter api.RunsFilter) (*model.RunsResponse, error)
}

type GitHubOptions struct {
	Repo       string // owner/repo, also the cache key
	Ref        string
	RecentRuns int
	MaxRunAge  time.Duration
	Refresh    bool // ignore the cached snapshot
	Logger     *slog.Logger
}

// GitHub turns the workflows and recent runs of a repository into actions.
type GitHub struct {
	client GitHubClient
	cache  *cache.SnapshotCache
	opts   GitHubOptions
	now    func() time.Time
}

// NewGitHub returns the provider. sc may be nil to disable caching.
func NewGitHub(client GitHubClient, sc *cache.SnapshotCache, opts GitHubOptions) *GitHub {
	if opts.RecentRuns <= 0 {
		opts.RecentRuns = 20
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &GitHub{client: client, cache: sc, opts: opts, now: time.Now}
}

func (g *GitHub) Name() string { return "github" }

// Groups builds the actions from the cached snapshot when it is fresh,
// otherwise from the API. Sensitivity and run age are evaluated now, not
// when the snapshot was taken.
func (g *GitHub) Groups(ctx context.Context) ([]model.ActionGroup, error) {
	snap, err := g.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	runs := ops.FilterRuns(snap.Runs, ops.RunFilter{MaxAge: g.opts.MaxRunAge}, g.now())
	return []model.ActionGroup{
		{Name: GroupWorkflows, Actions: g.workflowActions(snap.Workflows)},
		{Name: GroupRuns, Actions: runActions(runs)},
	}, nil
}

func (g *GitHub) snapshot(ctx context.Context) (cache.Snapshot, error) {
	if g.cache != nil && !g.opts.Refresh {
		snap, ok, err := g.cache.Load(g.opts.Repo)
		if err != nil {
			g.opts.Logger.Warn("read snapshot cache", "repo", g.opts.Repo, "error", err)
		} else if ok {
			g.opts.Logger.Debug("snapshot cache hit", "repo", g.opts.Repo)
			return snap, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return cache.Snapshot{}, err
	}
	wfResp, err := g.client.ListWorkflows(100, 1)
	if err != nil {
		return cache.Snapshot{}, fmt.Errorf("list workflows: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return cache.Snapshot{}, err
	}
	runResp, err := g.client.ListRuns(api.RunsFilter{PerPage: g.opts.RecentRuns})
	if err != nil {
		return cache.Snapshot{}, fmt.Errorf("list runs: %w", err)
	}
	snap := cache.Snapshot{Workflows: wfResp.Workflows, Runs: runResp.Runs}

	if g.cache != nil {
		if err := g.cache.Store(g.opts.Repo, snap); err != nil {
			g.opts.Logger.Warn("write snapshot cache", "repo", g.opts.Repo, "error", err)
		} else if err := g.cache.Evict(); err != nil {
			g.opts.Logger.Warn("evict snapshot cache", "error", err)
		}
	}
	return snap, nil
}

func (g *GitHub) workflowActions(workflows []model.Workflow) []model.Action {
	var actions []model.Action
	for _, wf := range workflows {
		enabled := wf.Enabled()
		actions = append(actions,
			model.Action{
				Name:       fmt.Sprintf("workflow-run-%d", wf.ID),
				Label:      "Run " + wf.Name,
				Tooltip:    fmt.Sprintf("Dispatch %s", wf.Path),
				Group:      GroupWorkflows,
				Sensitive:  enabled,
				Kind:       model.KindWorkflowDispatch,
				WorkflowID: wf.ID,
				Ref:        g.opts.Ref,
			},
			model.Action{
				Name:       fmt.Sprintf("workflow-enable-%d", wf.ID),
				Label:      "Enable " + wf.Name,
				Tooltip:    fmt.Sprintf("Enable %s", wf.Path),
				Group:      GroupWorkflows,
				Sensitive:  !enabled,
				Kind:       model.KindWorkflowEnable,
				WorkflowID: wf.ID,
			},
			model.Action{
				Name:       fmt.Sprintf("workflow-disable-%d", wf.ID),
				Label:      "Disable " + wf.Name,
				Tooltip:    fmt.Sprintf("Disable %s", wf.Path),
				Group:      GroupWorkflows,
				Sensitive:  enabled,
				Confirm:    true,
				Kind:       model.KindWorkflowDisable,
				WorkflowID: wf.ID,
			},
		)
	}
	return actions
}

func runActions(runs []model.Run) []model.Action {
	var actions []model.Action
	for _, r := range runs {
		title := fmt.Sprintf("%s #%d", r.Name, r.RunNumber)
		detail := fmt.Sprintf("%s on %s (%s)", r.DisplayTitle, r.HeadBranch, r.ShortSHA())
		actions = append(actions,
			model.Action{
				Name:      fmt.Sprintf("run-rerun-%d", r.ID),
				Label:     "Rerun " + title,
				Tooltip:   detail,
				Group:     GroupRuns,
				Sensitive: !r.Active(),
				Kind:      model.KindRunRerun,
				RunID:     r.ID,
			},
			model.Action{
				Name:      fmt.Sprintf("run-rerun-failed-%d", r.ID),
				Label:     "Rerun Failed Jobs of " + title,
				Tooltip:   detail,
				Group:     GroupRuns,
				Sensitive: r.Failed(),
				Kind:      model.KindRunRerunFailed,
				RunID:     r.ID,
			},
			model.Action{
				Name:      fmt.Sprintf("run-cancel-%d", r.ID),
				Label:     "Cancel " + title,
				Tooltip:   detail,
				Group:     GroupRuns,
				Sensitive: r.Active(),
				Confirm:   true,
				Kind:      model.KindRunCancel,
				RunID:     r.ID,
			},
		)
	}
	return actions
}
