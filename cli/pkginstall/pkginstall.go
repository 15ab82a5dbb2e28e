package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/pkginstall/internal/cli"
)

var (
	configPath   string
	verbose      bool
	noColor      bool
	outputFormat string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pkginstall",
		Short: "Install PS4 game, patch and add-on packages for an emulator",
		Long: `pkginstall installs PS4 packages into an emulator's game library:
- plan: show where a package would go
- install: extract games, patches and add-ons next to the base game
- info: show package metadata`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (text, json)")

	// Set up CLI package variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor
	cli.OutputFormat = &outputFormat

	cmd.AddCommand(
		cli.NewPlanCmd(),
		cli.NewInstallCmd(),
		cli.NewInfoCmd(),
		cli.NewConfigCmd(),
		cli.NewHooksCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
