package main

import (
	"fmt"
	"os"

	"task-list/internal/cli"
	"task-list/internal/config"
)

func main() {
	// Defaults, then the optional config file, then environment variables.
	// Flags are applied by the root command.
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	root := cli.NewRootCommand(cfg, os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
