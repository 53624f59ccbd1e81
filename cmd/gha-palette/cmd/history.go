package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var historyClearFlag bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the action history",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyClearFlag, "clear", false, "forget every recorded action")
}

func runHistory(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	if env.history == nil {
		return fmt.Errorf("history is not available, see %s", env.paths.LogFile())
	}

	if historyClearFlag {
		if err := env.history.Clear(); err != nil {
			return err
		}
		fmt.Println("history cleared")
		return nil
	}

	entries, err := env.history.Entries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no actions used yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOUNT\tLAST USED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\n", e.Name, e.Count, e.LastUsed.Local().Format(time.DateTime))
	}
	return w.Flush()
}
