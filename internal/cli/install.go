package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/pkginstall/internal/logger"
	"github.com/glorpus-work/pkginstall/pkg/config"
	"github.com/glorpus-work/pkginstall/pkg/hooks"
	"github.com/glorpus-work/pkginstall/pkg/model"
	"github.com/glorpus-work/pkginstall/pkg/orchestrator"
	"github.com/glorpus-work/pkginstall/pkg/planner"
	"github.com/glorpus-work/pkginstall/pkg/scanner"
	"github.com/glorpus-work/pkginstall/pkg/sfo"
)

// installOptions holds flags shared by the plan and install commands.
type installOptions struct {
	yes            bool
	no             bool
	dryRun         bool
	concurrency    int
	installDir     string
	addonDir       string
	separateUpdate bool
}

func addTargetFlags(cmd *cobra.Command, opts *installOptions) {
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Answer yes to every confirmation")
	cmd.Flags().BoolVarP(&opts.no, "no", "n", false, "Answer no to every confirmation")
	cmd.Flags().StringVar(&opts.installDir, "install-dir", "", "Games folder (defaults to config)")
	cmd.Flags().StringVar(&opts.addonDir, "addon-dir", "", "Add-on folder (defaults to config)")
	cmd.Flags().BoolVar(&opts.separateUpdate, "separate-update", true, "Install patches to <TITLE_ID>-patch next to the game")
}

// installConfig projects the configuration and applies flag overrides.
func (o *installOptions) installConfig(cmd *cobra.Command, cfg *config.Config) model.InstallConfig {
	ic := cfg.InstallConfig()
	if o.installDir != "" {
		ic.InstallRoot = o.installDir
	}
	if o.addonDir != "" {
		ic.AddonRoot = o.addonDir
	}
	if cmd.Flags().Changed("separate-update") {
		ic.SeparateUpdateFolder = o.separateUpdate
	}
	return ic
}

// NewPlanCmd creates the plan command.
func NewPlanCmd() *cobra.Command {
	opts := &installOptions{}

	cmd := &cobra.Command{
		Use:   "plan PACKAGE",
		Short: "Show where a package would be installed",
		Long: `Read a package, look for an existing installation of its title and
print the resulting install plan. Nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.dryRun = true
			return runInstall(cmd, args[0], opts)
		},
	}

	addTargetFlags(cmd, opts)
	return cmd
}

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	opts := &installOptions{}

	cmd := &cobra.Command{
		Use:   "install PACKAGE",
		Short: "Install a package",
		Long: `Install a game, patch or add-on package.
Patches and add-ons are placed next to the installed base game; existing
content is only overwritten after confirmation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args[0], opts)
		},
	}

	addTargetFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Plan and print actions without executing")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Number of parallel extraction workers (0=config)")

	return cmd
}

func runInstall(cmd *cobra.Command, packagePath string, opts *installOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	r, err := newResolver(opts.yes, opts.no)
	if err != nil {
		return err
	}

	var hookExec orchestrator.HookExecutor
	if !opts.dryRun {
		executor, err := hooks.LoadFiles(map[hooks.HookType]string{
			hooks.PreInstall:  cfg.Settings.Hooks.PreInstall,
			hooks.PostInstall: cfg.Settings.Hooks.PostInstall,
		})
		if err != nil {
			return err
		}
		hookExec = executor
	}

	out := cmd.OutOrStdout()
	jsonOutput := cfg.Settings.OutputFormat == FormatJSON
	reporter := newProgressReporter(out, !jsonOutput)

	pl := planner.New(scanner.New(), sfo.NewReader(), planner.WithScanDepth(cfg.Settings.ScanDepth))
	orch := orchestrator.New(pl, hookExec)
	orch.Hooks = orchestrator.Hooks{OnEvent: reporter.OnEvent}

	concurrency := opts.concurrency
	if concurrency <= 0 {
		concurrency = cfg.Settings.MaxConcurrent
	}

	plan, err := orch.Install(cmd.Context(), packagePath, opts.installConfig(cmd, cfg), r, orchestrator.InstallOptions{
		Concurrency: concurrency,
		DryRun:      opts.dryRun,
	})

	var abortErr *model.AbortError
	if err != nil && !errors.As(err, &abortErr) {
		return fmt.Errorf("failed to install %s: %w", packagePath, err)
	}

	if printErr := printPlan(out, plan, cfg.Settings.OutputFormat); printErr != nil {
		return printErr
	}
	if abortErr != nil {
		return abortErr
	}

	if !opts.dryRun && !jsonOutput {
		logger.Success("Installed "+plan.TitleID, logger.Fields{"target": plan.TargetPath, "action": plan.Action})
	}
	return nil
}
