package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/altinukshini/gha-palette/internal/catalog"
	"github.com/altinukshini/gha-palette/internal/model"
	"github.com/altinukshini/gha-palette/internal/search"
)

var searchAllFlag bool

var searchCmd = &cobra.Command{
	Use:   "search <keyword>...",
	Short: "Print the actions matching a keyword",
	Long: "Rank actions the way the palette does and print them with their section: " +
		"0 recently used, 1 label starts with the keyword, 2 in order, 3 any order, " +
		"4 description, 5 label and description.",
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&searchAllFlag, "all", "a", false, "list every action")
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword := strings.Join(args, " ")
	if !searchAllFlag && strings.TrimSpace(keyword) == "" {
		return fmt.Errorf("a keyword is required (or --all)")
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	builtin := &catalog.Builtin{
		ShowUnavailable: func() bool { return env.cfg.Search.ShowUnavailable },
	}
	cat := catalog.New(env.logger, append([]catalog.Provider{builtin}, env.providers...)...)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cat.Load(ctx); err != nil {
		return err
	}

	var recent []model.Action
	if env.history != nil {
		names, err := env.history.Names()
		if err != nil {
			return err
		}
		recent = cat.Resolve(names)
	}

	query := search.AnyQuery()
	if !searchAllFlag {
		query = env.engine.Matcher().Query(keyword)
	}
	results, err := env.engine.Search(ctx, search.Request{
		Query:           query,
		History:         recent,
		Groups:          cat.Groups(),
		ShowUnavailable: env.cfg.Search.ShowUnavailable,
	})
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "no matching actions")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SECTION\tNAME\tLABEL\tSTATE")
	for _, r := range results {
		state := "available"
		if !r.Action.Sensitive {
			state = "unavailable"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.Section, r.Action.Name, r.Action.Label, state)
	}
	return w.Flush()
}
