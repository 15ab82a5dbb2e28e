package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/pkginstall/pkg/hooks"
)

// NewHooksCmd creates the hooks command.
func NewHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Install hook helpers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "template TYPE",
		Short:     "Print a hook script template",
		Long:      "Print a Tengo script template for the pre-install or post-install hook",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(hooks.PreInstall), string(hooks.PostInstall)},
		RunE: func(cmd *cobra.Command, args []string) error {
			hookType := hooks.HookType(args[0])
			if !hookType.Valid() {
				return hooks.ErrUnsupportedHookType(args[0])
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), hooks.HookTemplate(hookType))
			return err
		},
	})

	return cmd
}
