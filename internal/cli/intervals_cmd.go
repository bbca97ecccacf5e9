package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderramin/focussim/internal/cli/formatter"
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/spf13/cobra"
)

func newIntervalsCmd(app *App) *cobra.Command {
	var env domain.Environment
	var all bool

	cmd := &cobra.Command{
		Use:   "intervals",
		Short: "Show stimulus timer intervals per level",
		Long: `Print the visual, audio and notification timer periods the current
configuration yields for each distraction level.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			envs := []domain.Environment{env}
			if all {
				envs = domain.Environments
			}
			out := cmd.OutOrStdout()
			for i, e := range envs {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, formatter.FormatIntervals(app.Config, e))
			}
			return nil
		},
	}

	cmd.Flags().VarP(newEnvValue(app.Config.Environment, &env), "env", "e", "environment: desk, hoersaal or supermarkt")
	cmd.Flags().BoolVar(&all, "all", false, "show every environment")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
