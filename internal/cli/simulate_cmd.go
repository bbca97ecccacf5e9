package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/focussim/internal/cli/formatter"
	"github.com/alexanderramin/focussim/internal/contract"
	"github.com/alexanderramin/focussim/internal/scenario"
	"github.com/alexanderramin/focussim/internal/service"
	"github.com/spf13/cobra"
)

var errNoHistory = errors.New("session history is not configured")

func newSimulateCmd(app *App) *cobra.Command {
	var path string
	var seed int64
	var archive, asJSON bool

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a scripted session on a virtual clock",
		Long: `Run a YAML scenario headless and print its session summary. The
virtual clock makes the run finish at once and, for a fixed seed,
produce the same result every time.`,
		Example: "  focussim simulate --scenario scenarios/desk_spiral.yaml --archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := scenario.Load(path)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				script.Seed = seed
			}

			var history service.HistoryService
			if archive {
				if app.History == nil {
					return errNoHistory
				}
				history = app.History
			}

			res, err := scenario.Run(cmd.Context(), script, scenario.Options{
				Config:    app.Config,
				Logger:    app.logger(),
				History:   history,
				Observers: app.Observers,
			})
			if err != nil {
				return fmt.Errorf("scenario %s: %w", path, err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if res.Summary == nil {
					return errors.New("scenario produced no summary")
				}
				return writeJSON(out, contract.NewSummaryJSON(*res.Summary))
			}

			if script.Name != "" {
				fmt.Fprintln(out, formatter.Header(script.Name))
			}
			fmt.Fprint(out, formatter.FormatSummary(res.Summary))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatRunStats(res.Stats))
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "scenario", "s", "", "scenario YAML file")
	cmd.Flags().Int64Var(&seed, "seed", 0, "override the scenario's seed")
	cmd.Flags().BoolVar(&archive, "archive", false, "archive the summary in the session history")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}
