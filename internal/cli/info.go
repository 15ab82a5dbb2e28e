package cli

import (
	"github.com/spf13/cobra"

	"github.com/glorpus-work/pkginstall/pkg/container"
)

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info PACKAGE",
		Short: "Show package metadata",
		Long:  "Display the container metadata and param.sfo entries of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			pkg, err := container.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printPackageInfo(cmd.OutOrStdout(), pkg, cfg.Settings.OutputFormat)
		},
	}

	return cmd
}
