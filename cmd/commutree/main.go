// Command commutree is the commute carbon calculator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/commutree/internal/cli"
	"github.com/rshade/commutree/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps the outcome to an exit code.
// Errors are printed here because the root command silences cobra's own
// error output.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
