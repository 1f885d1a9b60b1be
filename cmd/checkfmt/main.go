package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/harrison/checkfmt/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	err := rootCmd.Execute()
	if err == nil {
		return
	}

	// A completed run with non-conforming files exits with the count; any
	// other error is a fatal run failure.
	var nonConforming *cmd.NonConformingError
	if errors.As(err, &nonConforming) {
		os.Exit(nonConforming.Count)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
