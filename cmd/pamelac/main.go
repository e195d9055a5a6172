// Command pamelac is the PAMELA front-end compiler CLI.
package main

import (
	"fmt"
	"os"

	"github.com/pamela-lang/pamela/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
