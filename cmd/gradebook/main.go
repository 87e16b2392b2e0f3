// Command gradebook manages student score records kept in a text file.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/gradebook/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// Commands render their own errors. Anything else comes from cobra
	// (bad flags, wrong argument count) and is a usage error.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCommandError)
	}
	os.Exit(exitErr.Code)
}
