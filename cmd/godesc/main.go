package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/argus-labs/godesc/cmd/godesc/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, cmd.ErrIssuesFound) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
