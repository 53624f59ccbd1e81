// gha-palette is a keyboard-driven action palette for GitHub Actions
// repositories and local commands.
package main

import (
	"os"
	"runtime/debug"

	"github.com/altinukshini/gha-palette/cmd/gha-palette/cmd"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	if err := cmd.Execute(version); err != nil {
		os.Exit(1)
	}
}
