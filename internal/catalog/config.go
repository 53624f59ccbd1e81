package catalog

import (
	"context"

	"github.com/altinukshini/gha-palette/internal/config"
	"github.com/altinukshini/gha-palette/internal/model"
)

const GroupCustom = "custom"

// Config provides the shell actions defined in the config file.
type Config struct {
	Actions []config.ActionConfig
}

func (c *Config) Name() string { return "config" }

// Groups keeps groups in the order they first appear in the file.
func (c *Config) Groups(ctx context.Context) ([]model.ActionGroup, error) {
	var groups []model.ActionGroup
	index := make(map[string]int)

	for _, ac := range c.Actions {
		group := ac.Group
		if group == "" {
			group = GroupCustom
		}
		label := ac.Label
		if label == "" {
			label = ac.Name
		}

		i, ok := index[group]
		if !ok {
			i = len(groups)
			index[group] = i
			groups = append(groups, model.ActionGroup{Name: group})
		}
		groups[i].Actions = append(groups[i].Actions, model.Action{
			Name:      ac.Name,
			Label:     label,
			Tooltip:   ac.Tooltip,
			Group:     group,
			Accel:     ac.Accel,
			Sensitive: !ac.Disabled,
			Confirm:   ac.Confirm,
			Kind:      model.KindShell,
			Command:   ac.Command,
			Shell:     ac.Shell,
		})
	}
	return groups, nil
}
