package ops

import (
	"strings"
	"time"

	"github.com/altinukshini/gha-palette/internal/model"
)

// RunFilter selects the runs that get palette actions.
type RunFilter struct {
	WorkflowName string
	Conclusion   string
	Branch       string
	Actor        string
	MaxAge       time.Duration
}

func FilterRuns(runs []model.Run, filter RunFilter, now time.Time) []model.Run {
	var matched []model.Run

	for _, r := range runs {
		if filter.WorkflowName != "" && !strings.EqualFold(r.Name, filter.WorkflowName) {
			continue
		}
		if filter.Conclusion != "" && string(r.Conclusion) != filter.Conclusion {
			continue
		}
		if filter.Branch != "" && r.HeadBranch != filter.Branch {
			continue
		}
		if filter.Actor != "" && r.Actor.Login != filter.Actor {
			continue
		}
		// Active runs are always interesting, whatever their age.
		if filter.MaxAge > 0 && !r.Active() && now.Sub(r.CreatedAt) > filter.MaxAge {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}
