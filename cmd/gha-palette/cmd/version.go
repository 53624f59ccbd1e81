package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionString = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and exit",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("gha-palette", versionString)
	},
}
