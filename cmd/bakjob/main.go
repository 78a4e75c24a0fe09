// Package main is the entry point for the bakjob CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thoreinstein/bakjob/cmd/bakjob/commands"
	bakerrors "github.com/thoreinstein/bakjob/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var exitErr *bakerrors.ExitError
		if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "Suggestion: %s\n", exitErr.Suggestion)
		}

		os.Exit(bakerrors.CodeFor(err))
	}
}
