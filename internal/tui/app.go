package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/gha-palette/internal/catalog"
	"github.com/altinukshini/gha-palette/internal/history"
	"github.com/altinukshini/gha-palette/internal/logging"
	"github.com/altinukshini/gha-palette/internal/model"
	"github.com/altinukshini/gha-palette/internal/search"
	"github.com/altinukshini/gha-palette/internal/tui/confirm"
	"github.com/altinukshini/gha-palette/internal/tui/searchview"
	"github.com/altinukshini/gha-palette/internal/ui"
)

// Options wires the app to the rest of the palette.
type Options struct {
	Repo            string
	Engine          *search.Engine
	Providers       []catalog.Provider // in addition to the builtin actions
	History         *history.Store     // nil disables history
	ShowUnavailable bool
	Logger          *slog.Logger
	Now             func() time.Time
}

// prefs is the state the builtin actions reflect. App is copied on every
// Update, so it is shared through a pointer.
type prefs struct {
	mu              sync.Mutex
	showUnavailable bool
	last            *model.Action
}

func (p *prefs) ShowUnavailable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.showUnavailable
}

func (p *prefs) toggleShowUnavailable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.showUnavailable = !p.showUnavailable
	return p.showUnavailable
}

func (p *prefs) LastAction() (model.Action, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return model.Action{}, false
	}
	return *p.last, true
}

func (p *prefs) setLast(a *model.Action) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = a
}

type App struct {
	repo    string
	engine  *search.Engine
	catalog *catalog.Catalog
	history *history.Store
	prefs   *prefs
	logger  *slog.Logger
	now     func() time.Time

	dialog        searchview.Model
	confirmDialog confirm.Model

	// Search state
	requestID   uint64
	cancel      context.CancelFunc
	lastRequest *ui.SearchRequestMsg
	recent      []model.Action // history resolved against the catalog

	catalogReady bool
	result       *model.Action
	width        int
	height       int
	status       string
}

func NewApp(opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	engine := opts.Engine
	if engine == nil {
		engine = search.New(search.NewMatcher(nil), history.Hidden)
	}

	p := &prefs{showUnavailable: opts.ShowUnavailable}
	builtin := &catalog.Builtin{ShowUnavailable: p.ShowUnavailable, LastAction: p.LastAction}
	providers := append([]catalog.Provider{builtin}, opts.Providers...)

	return App{
		repo:    opts.Repo,
		engine:  engine,
		catalog: catalog.New(logger, providers...),
		history: opts.History,
		prefs:   p,
		logger:  logger,
		now:     now,
		dialog:  searchview.New(),
		status:  "Loading actions...",
	}
}

// Result is the non-builtin action the user chose, if any. The caller runs
// it after the program exits.
func (a App) Result() (model.Action, bool) {
	if a.result == nil {
		return model.Action{}, false
	}
	return *a.result, true
}

func (a App) Catalog() *catalog.Catalog {
	return a.catalog
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.dialog.Init(), a.loadCatalog())
}

func (a App) loadCatalog() tea.Cmd {
	cat := a.catalog
	return func() tea.Msg {
		return ui.CatalogLoadedMsg{Err: cat.Load(context.Background())}
	}
}

func (a App) refreshProvider(name string) tea.Cmd {
	cat := a.catalog
	return func() tea.Msg {
		return ui.CatalogLoadedMsg{Provider: name, Err: cat.Refresh(context.Background(), name)}
	}
}

func (a App) loadHistory() tea.Cmd {
	store := a.history
	cat := a.catalog
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		names, err := store.Names()
		if err != nil {
			return ui.HistoryLoadedMsg{Err: err}
		}
		msg := ui.HistoryLoadedMsg{Actions: cat.Resolve(names)}
		entry, err := store.Last()
		if err != nil {
			if !errors.Is(err, history.ErrEmpty) {
				msg.Err = err
			}
			return msg
		}
		if last, err := cat.Lookup(entry.Name); err == nil {
			msg.Last = &last
		}
		return msg
	}
}

// search cancels the search in flight and starts req.
func (a *App) search(req ui.SearchRequestMsg) tea.Cmd {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.requestID++
	r := req
	a.lastRequest = &r

	if !req.All && req.Text == "" {
		a.dialog.Hide()
		return nil
	}

	query := search.AnyQuery()
	if !req.All {
		query = a.engine.Matcher().Query(req.Text)
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	id := a.requestID
	engine := a.engine
	searchReq := search.Request{
		Query:           query,
		History:         a.recent,
		Groups:          a.catalog.Groups(),
		ShowUnavailable: a.prefs.ShowUnavailable(),
	}
	return func() tea.Msg {
		results, err := engine.Search(ctx, searchReq)
		return ui.SearchDoneMsg{RequestID: id, Results: results, Err: err}
	}
}

// rerun repeats the last search so results follow catalog changes.
func (a *App) rerun() tea.Cmd {
	if a.lastRequest == nil {
		return nil
	}
	req := *a.lastRequest
	if !req.All && req.Text == "" {
		return nil
	}
	return a.search(req)
}

func (a *App) activate(action model.Action) tea.Cmd {
	if !action.Sensitive {
		a.status = fmt.Sprintf("%s is not available", action.Label)
		return nil
	}
	if !action.IsBuiltin() {
		a.result = &action
		return tea.Quit
	}

	a.logger.Info("builtin action", "action", action.Name)
	a.record(action.Name)

	switch action.Name {
	case catalog.ActionQuit:
		return tea.Quit
	case catalog.ActionHistoryClear:
		return a.clearHistory()
	case catalog.ActionShowUnavailable:
		on := a.prefs.toggleShowUnavailable()
		a.status = fmt.Sprintf("Show unavailable actions: %v", on)
		return a.refreshProvider("builtin")
	case catalog.ActionRepeatLast:
		last, ok := a.prefs.LastAction()
		if !ok {
			a.status = "Nothing to repeat"
			return nil
		}
		// the catalog may have a fresher copy than the one loaded with history
		if current, err := a.catalog.Lookup(last.Name); err == nil {
			last = current
		}
		if last.Name == catalog.ActionRepeatLast {
			return nil
		}
		// goes through ActivateMsg so confirmation still applies
		return func() tea.Msg { return ui.ActivateMsg{Action: last} }
	}
	a.status = fmt.Sprintf("Unknown action %s", action.Name)
	return nil
}

// accelerator returns the action bound to msg. Plain typing and the dialog's
// own navigation keys are never taken over.
func (a *App) accelerator(msg tea.KeyMsg) (model.Action, bool) {
	if !a.catalogReady || (msg.Type == tea.KeyRunes && !msg.Alt) {
		return model.Action{}, false
	}
	k := ui.Keys
	if key.Matches(msg, k.Enter, k.Back, k.Up, k.Down, k.PageUp, k.PageDown) {
		return model.Action{}, false
	}
	return a.catalog.ByAccel(msg.String())
}

func (a *App) record(name string) {
	if a.history == nil {
		return
	}
	if err := a.history.Record(name, a.now()); err != nil {
		a.logger.Warn("record history", "action", name, "error", err)
	}
}

func (a App) clearHistory() tea.Cmd {
	store := a.history
	return func() tea.Msg {
		if store == nil {
			return ui.ActionResultMsg{Action: "Clear history", Success: true}
		}
		err := store.Clear()
		return ui.ActionResultMsg{Action: "Clear history", Success: err == nil, Err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle confirm dialog result (arrives AFTER dialog deactivates itself)
	if result, ok := msg.(confirm.ResultMsg); ok {
		if result.Confirmed {
			cmds = append(cmds, a.activate(result.Action))
		} else {
			a.status = "Cancelled"
		}
		return &a, tea.Batch(cmds...)
	}

	if a.confirmDialog.IsActive() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			a.confirmDialog, cmd = a.confirmDialog.Update(msg)
			return &a, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, ui.Keys.Quit) {
			if a.cancel != nil {
				a.cancel()
			}
			return &a, tea.Quit
		}
		if action, ok := a.accelerator(msg); ok {
			return &a, func() tea.Msg { return ui.ActivateMsg{Action: action} }
		}
		var cmd tea.Cmd
		a.dialog, cmd = a.dialog.Update(msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// header and status bar take a line each
		a.dialog, _ = a.dialog.Update(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 2})

	case ui.SearchRequestMsg:
		cmds = append(cmds, a.search(msg))

	case ui.SearchDoneMsg:
		if msg.RequestID != a.requestID {
			a.logger.Debug("dropping stale results", "request", msg.RequestID, "current", a.requestID)
			break
		}
		a.cancel = nil
		if msg.Err != nil {
			if !errors.Is(msg.Err, context.Canceled) {
				a.status = fmt.Sprintf("Error: %v", msg.Err)
			}
			break
		}
		a.dialog.SetResults(msg.Results)
		a.status = fmt.Sprintf("%d matching actions", len(msg.Results))

	case ui.ActivateMsg:
		if msg.Action.Confirm {
			a.confirmDialog = confirm.New(msg.Action)
			break
		}
		cmds = append(cmds, a.activate(msg.Action))

	case ui.HideMsg:
		if a.cancel != nil {
			a.cancel()
		}
		return &a, tea.Quit

	case ui.CatalogLoadedMsg:
		if msg.Err != nil {
			a.logger.Warn("catalog load failed", "provider", msg.Provider, "error", msg.Err)
			a.status = fmt.Sprintf("Error: %v", msg.Err)
		} else if a.catalogReady {
			cmds = append(cmds, a.rerun())
		} else {
			a.status = fmt.Sprintf("%d actions", a.catalog.Len())
		}
		if msg.Provider == "" {
			a.catalogReady = true
			cmds = append(cmds, a.loadHistory(), a.rerun())
		}

	case ui.HistoryLoadedMsg:
		if msg.Err != nil {
			a.logger.Warn("history load failed", "error", msg.Err)
		}
		a.recent = msg.Actions
		a.prefs.setLast(msg.Last)
		cmds = append(cmds, a.refreshProvider("builtin"))

	case ui.ActionResultMsg:
		if msg.Err != nil {
			a.status = fmt.Sprintf("Error: %v", msg.Err)
		} else {
			a.status = fmt.Sprintf("%s: success", msg.Action)
			cmds = append(cmds, a.loadHistory())
		}

	case ui.StatusMsg:
		a.status = msg.Text

	default:
		var cmd tea.Cmd
		a.dialog, cmd = a.dialog.Update(msg)
		cmds = append(cmds, cmd)
	}

	return &a, tea.Batch(cmds...)
}

// --- View ---

func (a App) View() string {
	header := RenderHeader(a.repo, a.catalog.Len(), a.catalogReady, a.width)

	content := a.dialog.View()
	if a.confirmDialog.IsActive() {
		content = a.confirmDialog.View()
	}

	statusBar := RenderStatusBar(a.status, a.hints(), a.width)

	// header(1) + statusbar(1) = 2 lines of chrome
	maxContentLines := a.height - 2
	lines := strings.Split(content, "\n")
	if maxContentLines > 0 && len(lines) > maxContentLines {
		lines = lines[:maxContentLines]
	}
	for maxContentLines > 0 && len(lines) < maxContentLines {
		lines = append(lines, "")
	}
	content = strings.Join(lines, "\n")

	return header + "\n" + content + "\n" + statusBar
}

func (a App) hints() string {
	if a.confirmDialog.IsActive() {
		return "y:yes  n:no  tab:switch"
	}
	if a.dialog.Focus() == searchview.FocusList {
		return "enter:run  up/down:select  type:search  esc:close"
	}
	return "enter:run  down:browse  esc:close"
}
