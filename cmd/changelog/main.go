// Package main is the entry point for the release-changelog CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/runoshun/release-changelog/internal/app"
	"github.com/runoshun/release-changelog/internal/cli"
	"github.com/runoshun/release-changelog/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Create dependency injection container
	container, err := app.New(cwd)
	if err != nil {
		// Allow running without git repo for help/version and offline tools
		if errors.Is(err, domain.ErrNotGitRepository) {
			return runWithoutContainer(err)
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

// runWithoutContainer handles cases where git repo is not found.
func runWithoutContainer(gitErr error) error {
	if !canRunWithoutGit(os.Args[1:]) {
		return gitErr
	}
	return cli.NewRootCommand(nil, version).Execute()
}

// canRunWithoutGit reports whether args name a command that works outside a repository.
func canRunWithoutGit(args []string) bool {
	if len(args) == 0 {
		return true
	}
	switch args[0] {
	case "help", "completion", "extract", "tags":
		return true
	case "config":
		return len(args) > 1 && (args[1] == "template" || (args[1] == "init" && hasFlag(args[2:], "--global", "-g")))
	}
	return hasFlag(args, "--version", "-v", "--help", "-h")
}

func hasFlag(args []string, flags ...string) bool {
	for _, arg := range args {
		for _, f := range flags {
			if arg == f {
				return true
			}
		}
	}
	return false
}
