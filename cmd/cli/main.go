package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mlahtinen/tutorloop/cmd/cli/ask"
	"github.com/mlahtinen/tutorloop/cmd/cli/seed"
	"github.com/spf13/cobra"
)

func init() {
	// The .env file is optional for the CLI, flags and the environment win.
	_ = godotenv.Load()
	rootCmd.AddGroup(seed.Group)
	rootCmd.AddCommand(seed.Seed)
	rootCmd.AddGroup(ask.Group)
	rootCmd.AddCommand(ask.Ask)
}

var rootCmd = &cobra.Command{ //nolint:exhaustruct // rest are defaults
	Use:  "tutorloop-cli",
	Long: `Command line utilities for Tutorloop`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
