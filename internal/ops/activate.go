// Package ops runs the actions chosen in the palette.
package ops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/google/shlex"

	"github.com/altinukshini/gha-palette/internal/logging"
	"github.com/altinukshini/gha-palette/internal/model"
)

var (
	ErrUnavailable  = errors.New("action is not available")
	ErrUnsupported  = errors.New("action kind is not supported here")
	ErrNoRepository = errors.New("no repository configured")
)

// GitHub is the part of the API client that actions need.
type GitHub interface {
	DispatchWorkflow(workflowID int64, ref string, inputs map[string]string) error
	DefaultBranch() (string, error)
	EnableWorkflow(workflowID int64) error
	DisableWorkflow(workflowID int64) error
	RerunWorkflow(runID int64, debug bool) error
	RerunFailedJobs(runID int64, debug bool) error
	CancelRun(runID int64) error
	GetRun(runID int64) (*model.Run, error)
}

type Options struct {
	Debug  bool // rerun with debug logging
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

type Activator struct {
	github GitHub
	opts   Options
}

// NewActivator returns an activator. github may be nil when no repository
// is configured; GitHub actions then fail with ErrNoRepository.
func NewActivator(github GitHub, opts Options) *Activator {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Activator{github: github, opts: opts}
}

// Activate runs action. Built-in actions belong to the palette itself and
// are refused with ErrUnsupported.
func (a *Activator) Activate(ctx context.Context, action model.Action) error {
	if !action.Sensitive {
		return fmt.Errorf("%s: %w", action.Name, ErrUnavailable)
	}

	log := a.opts.Logger.With("action", action.Name, "kind", string(action.Kind))
	log.Info("activating action")

	var err error
	switch action.Kind {
	case model.KindShell:
		err = a.runShell(ctx, action)
	case model.KindWorkflowDispatch, model.KindWorkflowEnable, model.KindWorkflowDisable,
		model.KindRunRerun, model.KindRunRerunFailed, model.KindRunCancel:
		err = a.runGitHub(action)
	default:
		err = fmt.Errorf("%s (%s): %w", action.Name, action.Kind, ErrUnsupported)
	}

	if err != nil {
		log.Warn("action failed", "error", err)
		return err
	}
	log.Info("action done")
	return nil
}

func (a *Activator) runShell(ctx context.Context, action model.Action) error {
	cmd, err := Command(ctx, action)
	if err != nil {
		return err
	}
	cmd.Stdin = a.opts.Stdin
	cmd.Stdout = a.opts.Stdout
	cmd.Stderr = a.opts.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", action.Name, err)
	}
	return nil
}

// Command builds the process for a shell action: argv split with POSIX
// rules, or sh -c when the action asks for a shell.
func Command(ctx context.Context, action model.Action) (*exec.Cmd, error) {
	if action.Command == "" {
		return nil, fmt.Errorf("action %s has no command", action.Name)
	}
	if action.Shell {
		return exec.CommandContext(ctx, "/bin/sh", "-c", action.Command), nil
	}
	argv, err := shlex.Split(action.Command)
	if err != nil {
		return nil, fmt.Errorf("split command of %s: %w", action.Name, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("action %s has an empty command", action.Name)
	}
	return exec.CommandContext(ctx, argv[0], argv[1:]...), nil
}

func (a *Activator) runGitHub(action model.Action) error {
	if a.github == nil {
		return fmt.Errorf("%s: %w", action.Name, ErrNoRepository)
	}

	switch action.Kind {
	case model.KindWorkflowDispatch:
		ref := action.Ref
		if ref == "" {
			branch, err := a.github.DefaultBranch()
			if err != nil {
				return err
			}
			ref = branch
		}
		return a.github.DispatchWorkflow(action.WorkflowID, ref, nil)
	case model.KindWorkflowEnable:
		return a.github.EnableWorkflow(action.WorkflowID)
	case model.KindWorkflowDisable:
		return a.github.DisableWorkflow(action.WorkflowID)
	case model.KindRunRerun, model.KindRunRerunFailed, model.KindRunCancel:
		// the action may come from a cached snapshot; recheck before posting
		if err := a.checkRun(action); err != nil {
			return err
		}
		switch action.Kind {
		case model.KindRunRerun:
			return a.github.RerunWorkflow(action.RunID, a.opts.Debug)
		case model.KindRunRerunFailed:
			return a.github.RerunFailedJobs(action.RunID, a.opts.Debug)
		default:
			return a.github.CancelRun(action.RunID)
		}
	}
	return fmt.Errorf("%s (%s): %w", action.Name, action.Kind, ErrUnsupported)
}

// checkRun fetches the run and refuses actions its current state no longer
// allows.
func (a *Activator) checkRun(action model.Action) error {
	run, err := a.github.GetRun(action.RunID)
	if err != nil {
		return err
	}

	var ok bool
	switch action.Kind {
	case model.KindRunRerun:
		ok = !run.Active()
	case model.KindRunRerunFailed:
		ok = run.Failed()
	case model.KindRunCancel:
		ok = run.Active()
	}
	if !ok {
		status := string(run.Status)
		if run.Conclusion != "" {
			status += "/" + string(run.Conclusion)
		}
		return fmt.Errorf("%s: run %d is %s: %w", action.Name, action.RunID, status, ErrUnavailable)
	}
	return nil
}
