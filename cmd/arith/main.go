// Command arith evaluates type-checked arithmetic and runs arithmetic
// scenarios.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/arith/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}
