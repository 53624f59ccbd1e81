package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var cacheClearFlag bool

var cacheCmd = &cobra.Command{
	Use:   "cache [owner/repo]",
	Short: "Show or clear cached repository snapshots",
	Long: "List the cached workflows/runs snapshots with their size and age. " +
		"With --clear, delete the snapshot of the given repository, or all of them.",
	Args: cobra.MaximumNArgs(1),
	RunE: runCache,
}

func init() {
	cacheCmd.Flags().BoolVar(&cacheClearFlag, "clear", false, "delete cached snapshots")
}

func runCache(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	sc, err := env.snapshotCache()
	if err != nil {
		return err
	}

	if cacheClearFlag {
		if len(args) == 1 {
			if err := sc.DeleteEntry(args[0]); err != nil {
				return err
			}
			fmt.Printf("cleared %s\n", args[0])
			return nil
		}
		if err := sc.DeleteAll(); err != nil {
			return err
		}
		fmt.Println("cache cleared")
		return nil
	}

	entries, err := sc.ListEntries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("cache is empty")
		return nil
	}
	total, err := sc.TotalSize()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REPO\tSIZE\tAGE\tFRESH")
	for _, e := range entries {
		if len(args) == 1 && e.Key != args[0] {
			continue
		}
		age := time.Since(e.LastModified).Truncate(time.Second)
		fmt.Fprintf(w, "%s\t%d B\t%s\t%v\n", e.Key, e.Size, age, sc.Has(e.Key))
	}
	fmt.Fprintf(w, "total\t%d B\t\t\n", total)
	return w.Flush()
}
