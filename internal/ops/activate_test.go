package ops

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/gha-palette/internal/model"
)

type fakeGitHub struct {
	calls []string
	ref   string
	debug bool
	runs  map[int64]model.Run
}

func (f *fakeGitHub) GetRun(runID int64) (*model.Run, error) {
	run, ok := f.runs[runID]
	if !ok {
		return nil, fmt.Errorf("HTTP 404: run %d not found", runID)
	}
	return &run, nil
}

var (
	failedRun  = model.Run{ID: 1, Status: model.RunStatusCompleted, Conclusion: model.ConclusionFailure}
	runningRun = model.Run{ID: 2, Status: model.RunStatusInProgress}
)

func newFakeGitHub() *fakeGitHub {
	return &fakeGitHub{runs: map[int64]model.Run{failedRun.ID: failedRun, runningRun.ID: runningRun}}
}

func (f *fakeGitHub) DispatchWorkflow(workflowID int64, ref string, inputs map[string]string) error {
	f.calls = append(f.calls, "dispatch")
	f.ref = ref
	return nil
}

func (f *fakeGitHub) DefaultBranch() (string, error) { return "trunk", nil }

func (f *fakeGitHub) EnableWorkflow(workflowID int64) error {
	f.calls = append(f.calls, "enable")
	return nil
}

func (f *fakeGitHub) DisableWorkflow(workflowID int64) error {
	f.calls = append(f.calls, "disable")
	return nil
}

func (f *fakeGitHub) RerunWorkflow(runID int64, debug bool) error {
	f.calls = append(f.calls, "rerun")
	f.debug = debug
	return nil
}

func (f *fakeGitHub) RerunFailedJobs(runID int64, debug bool) error {
	f.calls = append(f.calls, "rerun-failed")
	return nil
}

func (f *fakeGitHub) CancelRun(runID int64) error {
	f.calls = append(f.calls, "cancel")
	return nil
}

func TestActivateGitHubActions(t *testing.T) {
	gh := newFakeGitHub()
	a := NewActivator(gh, Options{Debug: true})
	ctx := context.Background()

	actions := []model.Action{
		{Kind: model.KindWorkflowDispatch},
		{Kind: model.KindWorkflowEnable},
		{Kind: model.KindWorkflowDisable},
		{Kind: model.KindRunRerun, RunID: failedRun.ID},
		{Kind: model.KindRunRerunFailed, RunID: failedRun.ID},
		{Kind: model.KindRunCancel, RunID: runningRun.ID},
	}
	for _, action := range actions {
		action.Name = string(action.Kind)
		action.Sensitive = true
		require.NoError(t, a.Activate(ctx, action))
	}

	assert.Equal(t, []string{"dispatch", "enable", "disable", "rerun", "rerun-failed", "cancel"}, gh.calls)
	assert.Equal(t, "trunk", gh.ref, "dispatch without a ref uses the default branch")
	assert.True(t, gh.debug)
}

func TestActivateRechecksRunState(t *testing.T) {
	gh := newFakeGitHub()
	a := NewActivator(gh, Options{})
	ctx := context.Background()

	// built when the run was still going, but it has finished since
	err := a.Activate(ctx, model.Action{Name: "run-cancel-1", Kind: model.KindRunCancel, RunID: failedRun.ID, Sensitive: true})
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "completed/failure")

	err = a.Activate(ctx, model.Action{Name: "run-rerun-2", Kind: model.KindRunRerun, RunID: runningRun.ID, Sensitive: true})
	assert.ErrorIs(t, err, ErrUnavailable)

	err = a.Activate(ctx, model.Action{Name: "run-rerun-failed-2", Kind: model.KindRunRerunFailed, RunID: runningRun.ID, Sensitive: true})
	assert.ErrorIs(t, err, ErrUnavailable)

	err = a.Activate(ctx, model.Action{Name: "run-cancel-9", Kind: model.KindRunCancel, RunID: 9, Sensitive: true})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)

	assert.Empty(t, gh.calls, "nothing was posted")
}

func TestActivateDispatchUsesRef(t *testing.T) {
	gh := newFakeGitHub()
	a := NewActivator(gh, Options{})
	err := a.Activate(context.Background(), model.Action{
		Name: "workflow-run-1", Kind: model.KindWorkflowDispatch, Sensitive: true, Ref: "release",
	})
	require.NoError(t, err)
	assert.Equal(t, "release", gh.ref)
}

func TestActivateRefusals(t *testing.T) {
	ctx := context.Background()

	a := NewActivator(nil, Options{})
	err := a.Activate(ctx, model.Action{Name: "x", Kind: model.KindShell, Command: "true"})
	assert.ErrorIs(t, err, ErrUnavailable)

	err = a.Activate(ctx, model.Action{Name: "app-quit", Kind: model.KindBuiltin, Sensitive: true})
	assert.ErrorIs(t, err, ErrUnsupported)

	err = a.Activate(ctx, model.Action{Name: "run-cancel-1", Kind: model.KindRunCancel, Sensitive: true})
	assert.ErrorIs(t, err, ErrNoRepository)
}

func TestCommand(t *testing.T) {
	ctx := context.Background()

	cmd, err := Command(ctx, model.Action{Name: "a", Command: `git commit -m "fix: quoted message"`})
	require.NoError(t, err)
	assert.Equal(t, []string{"git", "commit", "-m", "fix: quoted message"}, cmd.Args)

	cmd, err = Command(ctx, model.Action{Name: "b", Command: "echo $HOME | wc -c", Shell: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"/bin/sh", "-c", "echo $HOME | wc -c"}, cmd.Args)

	_, err = Command(ctx, model.Action{Name: "c"})
	assert.Error(t, err)

	_, err = Command(ctx, model.Action{Name: "d", Command: `echo "unterminated`})
	assert.Error(t, err)
}

func TestActivateShell(t *testing.T) {
	var out bytes.Buffer
	a := NewActivator(nil, Options{Stdout: &out, Stderr: &out})

	err := a.Activate(context.Background(), model.Action{
		Name: "say", Kind: model.KindShell, Sensitive: true, Command: "printf '%s' palette", Shell: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "palette", out.String())

	err = a.Activate(context.Background(), model.Action{
		Name: "fail", Kind: model.KindShell, Sensitive: true, Command: "exit 3", Shell: true,
	})
	assert.Error(t, err)
}
