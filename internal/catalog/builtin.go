package catalog

import (
	"context"
	"fmt"

	"github.com/altinukshini/gha-palette/internal/history"
	"github.com/altinukshini/gha-palette/internal/model"
)

// Names of the actions the palette handles itself.
const (
	ActionQuit            = "app-quit"
	ActionHistoryClear    = "history-clear"
	ActionShowUnavailable = "search-show-unavailable"
	ActionRepeatLast      = history.RepeatLast
)

const GroupPalette = "palette"

// Builtin provides the palette's own actions. Their state is read through
// the callbacks each time Groups is called.
type Builtin struct {
	ShowUnavailable func() bool
	LastAction      func() (model.Action, bool)
}

func (b *Builtin) Name() string { return "builtin" }

func (b *Builtin) Groups(ctx context.Context) ([]model.ActionGroup, error) {
	showUnavailable := b.ShowUnavailable != nil && b.ShowUnavailable()

	repeat := model.Action{
		Name:    ActionRepeatLast,
		Label:   "Repeat Last",
		Tooltip: "Run the last used action again",
		Group:   GroupPalette,
		Accel:   "ctrl+f",
		Kind:    model.KindBuiltin,
	}
	if b.LastAction != nil {
		if last, ok := b.LastAction(); ok {
			repeat.Sensitive = true
			repeat.Tooltip = fmt.Sprintf("Run %q again", last.Label)
		}
	}

	return []model.ActionGroup{{
		Name: GroupPalette,
		Actions: []model.Action{
			{
				Name:      ActionQuit,
				Label:     "Quit",
				Tooltip:   "Close the palette without running anything",
				Group:     GroupPalette,
				Accel:     "ctrl+q",
				Sensitive: true,
				Kind:      model.KindBuiltin,
			},
			{
				Name:      ActionHistoryClear,
				Label:     "Clear Action History",
				Tooltip:   "Forget which actions were used recently",
				Group:     GroupPalette,
				Sensitive: true,
				Confirm:   true,
				Kind:      model.KindBuiltin,
			},
			{
				Name:      ActionShowUnavailable,
				Label:     "Show Unavailable Actions",
				Tooltip:   "List actions that cannot run right now",
				Group:     GroupPalette,
				Sensitive: true,
				Toggle:    true,
				Active:    showUnavailable,
				Kind:      model.KindBuiltin,
			},
			repeat,
		},
	}}, nil
}
