package ops

import (
	"testing"
	"time"

	"github.com/altinukshini/gha-palette/internal/model"
)

func TestFilterRuns(t *testing.T) {
	now := time.Now()
	runs := []model.Run{
		{ID: 1, Name: "CI", Status: model.RunStatusCompleted, Conclusion: model.ConclusionFailure, HeadBranch: "main", Actor: model.Actor{Login: "alice"}, CreatedAt: now.Add(-48 * time.Hour)},
		{ID: 2, Name: "CI", Status: model.RunStatusCompleted, Conclusion: model.ConclusionSuccess, HeadBranch: "main", Actor: model.Actor{Login: "bob"}, CreatedAt: now.Add(-1 * time.Hour)},
		{ID: 3, Name: "Deploy", Status: model.RunStatusCompleted, Conclusion: model.ConclusionFailure, HeadBranch: "dev", Actor: model.Actor{Login: "alice"}, CreatedAt: now.Add(-72 * time.Hour)},
		{ID: 4, Name: "Deploy", Status: model.RunStatusInProgress, HeadBranch: "dev", Actor: model.Actor{Login: "carol"}, CreatedAt: now.Add(-96 * time.Hour)},
	}

	tests := []struct {
		name   string
		filter RunFilter
		want   int
	}{
		{
			name:   "no filter",
			filter: RunFilter{},
			want:   4,
		},
		{
			name:   "by workflow name",
			filter: RunFilter{WorkflowName: "ci"},
			want:   2,
		},
		{
			name:   "by conclusion",
			filter: RunFilter{Conclusion: "failure"},
			want:   2,
		},
		{
			name:   "by age keeps active runs",
			filter: RunFilter{MaxAge: 24 * time.Hour},
			want:   2,
		},
		{
			name:   "combined",
			filter: RunFilter{WorkflowName: "CI", Conclusion: "failure"},
			want:   1,
		},
		{
			name:   "by branch",
			filter: RunFilter{Branch: "dev"},
			want:   2,
		},
		{
			name:   "by actor",
			filter: RunFilter{Actor: "alice"},
			want:   2,
		},
		{
			name:   "no match",
			filter: RunFilter{WorkflowName: "Nonexistent"},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRuns(runs, tt.filter, now)
			if len(got) != tt.want {
				t.Errorf("FilterRuns() returned %d runs, want %d", len(got), tt.want)
			}
		})
	}
}
