// Command draw shuffles 36 entrants into four groups and lists their fixtures.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/draw/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "draw:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
