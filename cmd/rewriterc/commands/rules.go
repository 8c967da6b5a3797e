package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/cmd/rewriterc/opts"
	"github.com/walteh/rewriterc/pkg/status"
	"github.com/walteh/rewriterc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

var escapeControl = strings.NewReplacer("\n", `\n`, "\t", `\t`, "\r", `\r`)

// NewRulesCmd creates a new rules command
func NewRulesCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the compiled rules in the order they run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := o.LoadConfig(ctx)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			rules, err := cfg.AllRules()
			if err != nil {
				return errors.Errorf("collecting rules: %w", err)
			}

			replacer, err := text.NewSimpleTextReplacer(rules)
			if err != nil {
				return errors.Errorf("compiling rules: %w", err)
			}

			table, err := RulesTable(replacer.Rules())
			if err != nil {
				return errors.Errorf("rendering rules: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	return cmd
}

// RulesTable renders rules as a table with one row per rule
func RulesTable(rules []*text.Rule) (string, error) {
	data := pterm.TableData{{"#", "Name", "Mode", "Match", "Replace"}}
	for _, r := range rules {
		data = append(data, []string{
			strconv.Itoa(r.Order()),
			r.Name(),
			r.Mode().String(),
			display(r.Matcher()),
			display(r.Replacement()),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func display(s string) string {
	return escapeControl.Replace(status.Printable(s))
}
