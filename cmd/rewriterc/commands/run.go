package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/log"
	"github.com/walteh/rewriterc/pkg/operation"
	"github.com/walteh/rewriterc/pkg/status"
	"github.com/walteh/rewriterc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates a new run command
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	var (
		dryRun   bool
		showDiff bool
		backup   bool
	)

	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Apply the configured rules to the configured files",
		Long: `Run applies every rule, in order, to each file in the list and writes the
file back only if it changed. It will:
1. Load the config file (or the built-in preset)
2. Compile every rule, stopping on the first invalid one
3. Process each file to completion before starting the next
4. Print one status line per file and a summary

Files given as arguments replace the configured file list and are
resolved against the config root. A file that
cannot be read or written is reported and the run continues; the exit
status is non-zero only when the config or a rule is invalid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := o.LoadConfig(ctx)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			if len(args) > 0 {
				cfg.Files = args
				if err := cfg.Resolve(ctx); err != nil {
					return errors.Errorf("resolving files: %w", err)
				}
			}

			rules, err := cfg.AllRules()
			if err != nil {
				return errors.Errorf("collecting rules: %w", err)
			}

			replacer, err := text.NewSimpleTextReplacer(rules)
			if err != nil {
				return errors.Errorf("compiling rules: %w", err)
			}

			proc, err := operation.NewProcessor(operation.Options{
				Replacer: replacer,
				Files:    status.NewManager(cfg.Root),
				Backup:   backup || cfg.Options.Backup,
				DryRun:   dryRun || cfg.Options.DryRun,
				ShowDiff: showDiff,
			})
			if err != nil {
				return errors.Errorf("creating processor: %w", err)
			}

			reporter := log.New(cmd.OutOrStdout(), nil)

			header := fmt.Sprintf("applying %d rules to %d files", len(replacer.Rules()), len(cfg.Paths()))
			if dryRun || cfg.Options.DryRun {
				header += " (dry run)"
			}
			reporter.Header(ctx, header)

			operation.NewRunner(proc, reporter).Run(ctx, cfg.Paths())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report what would change without writing")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff for every changed file")
	cmd.Flags().BoolVar(&backup, "backup", false, "copy each file to <file>.bak before overwriting it")

	return cmd
}
