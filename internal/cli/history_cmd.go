package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/focussim/internal/app"
	"github.com/alexanderramin/focussim/internal/cli/formatter"
	"github.com/alexanderramin/focussim/internal/contract"
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/alexanderramin/focussim/internal/repository"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse archived session summaries",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return errNoHistory
			}
			return nil
		},
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryShowCmd(app),
		newHistoryDeleteCmd(app),
	)

	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	var env domain.Environment
	var asJSON bool
	filter := contract.NewHistoryFilter()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.Environment = env
			summaries, err := app.History.List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				rows := make([]contract.SummaryJSON, 0, len(summaries))
				for _, s := range summaries {
					rows = append(rows, contract.NewSummaryJSON(s))
				}
				return writeJSON(out, rows)
			}
			fmt.Fprint(out, formatter.FormatHistory(summaries, app.now()))
			return nil
		},
	}

	cmd.Flags().VarP(newEnvValue("", &env), "env", "e", "only sessions in this environment")
	cmd.Flags().IntVarP(&filter.Limit, "limit", "n", filter.Limit, "maximum number of sessions (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one session with its event timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSummaryID(ctx, app.History, args[0])
			if err != nil {
				return err
			}
			s, err := app.History.Get(ctx, id)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), contract.NewSummaryJSON(*s))
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionDetail(s))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newHistoryDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an archived session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSummaryID(ctx, app.History, args[0])
			if err != nil {
				return err
			}
			if err := app.History.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", id)
			return nil
		},
	}
}

// resolveSummaryID expands a unique ID prefix, as printed by history
// list, to the full ID. Full IDs pass through untouched.
func resolveSummaryID(ctx context.Context, history app.HistoryUseCase, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("session id: %w", repository.ErrNotFound)
	}
	if len(arg) >= 36 {
		return arg, nil
	}

	all, err := history.List(ctx, app.HistoryFilter{})
	if err != nil {
		return "", err
	}
	var matches []string
	for _, s := range all {
		if strings.HasPrefix(s.ID, arg) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("session %q: %w", arg, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("session id %q is ambiguous (%d matches)", arg, len(matches))
	}
}
