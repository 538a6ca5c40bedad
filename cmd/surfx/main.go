package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joestump/surfx/internal/build"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "surfx",
		Short:         "A privacy respecting meta search front-end",
		Long:          "surfx serves the search bar and the settings page whose choices live in a single preference cookie.",
		Version:       build.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newCookieCmd())
	return rootCmd
}
