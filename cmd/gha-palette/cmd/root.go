package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/altinukshini/gha-palette/internal/model"
	"github.com/altinukshini/gha-palette/internal/ops"
	"github.com/altinukshini/gha-palette/internal/tui"
)

var (
	repoFlag            string
	configFlag          string
	showUnavailableFlag bool
	refreshFlag         bool
)

var rootCmd = &cobra.Command{
	Use:   "gha-palette",
	Short: "Search and run actions from the keyboard",
	Long: "gha-palette ranks built-in, user-defined and GitHub Actions operations " +
		"as you type and runs the one you pick.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPalette,
}

// Execute runs the root command.
func Execute(version string) error {
	versionString = version
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&repoFlag, "repo", "R", "", "repository in owner/repo format")
	flags.StringVar(&configFlag, "config", "", "config file (default $XDG_CONFIG_HOME/gha-palette/config.yaml)")
	flags.BoolVar(&showUnavailableFlag, "show-unavailable", false, "list actions that cannot run right now")
	flags.BoolVar(&refreshFlag, "refresh", false, "ignore cached GitHub actions")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
}

func runPalette(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	app := tui.NewApp(tui.Options{
		Repo:            env.repo(),
		Engine:          env.engine,
		Providers:       env.providers,
		History:         env.history,
		ShowUnavailable: env.cfg.Search.ShowUnavailable,
		Logger:          env.logger,
	})

	final, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run palette: %w", err)
	}

	var action model.Action
	var ok bool
	switch m := final.(type) {
	case *tui.App:
		action, ok = m.Result()
	case tui.App:
		action, ok = m.Result()
	}
	if !ok {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	activator := ops.NewActivator(env.github(), ops.Options{
		Debug:  env.cfg.GitHub.Debug,
		Logger: env.logger,
	})
	if err := activator.Activate(ctx, action); err != nil {
		if errors.Is(err, ops.ErrNoRepository) {
			return fmt.Errorf("%w (use -R owner/repo)", err)
		}
		return err
	}
	env.record(action.Name)
	if !action.IsBuiltin() && action.Kind != model.KindShell {
		fmt.Printf("%s: done\n", action.Label)
	}
	return nil
}
