package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/focussim/internal/cli/formatter"
	"github.com/alexanderramin/focussim/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("run needs an interactive terminal; use 'focussim simulate' for scripted runs")

func newRunCmd(app *App) *cobra.Command {
	var env domain.Environment
	var level domain.Level
	var seed int64
	var noArchive bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive session in the terminal",
		Long: `Start a live session. Stimuli arrive in real time; react with the keys
shown at the bottom. Without --env or --level a short form asks for both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			if level == domain.LevelOff {
				return fmt.Errorf("%w: a session needs level 1-3", domain.ErrInvalidLevel)
			}

			if !cmd.Flags().Changed("env") && !cmd.Flags().Changed("level") {
				if err := sessionSetupForm(&env, &level).Run(); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			sess := app.startLive(ctx, liveOptions{env: env, seed: seed, archive: !noArchive})
			defer sess.Close()

			if err := sess.svc.Start(ctx, level); err != nil {
				return err
			}

			model := newSessionModel(sess.svc, sess.feed, sess.gaze, defaultFrame)
			final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}

			m, _ := final.(sessionModel)
			summary := m.Summary()
			if m.err != nil {
				return m.err
			}
			if summary == nil {
				// The program ended without a stop key, e.g. a cancelled context.
				if summary, err = sess.svc.Stop(ctx); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummary(summary))
			return nil
		},
	}

	registerSessionFlags(cmd.Flags(), &env, &level, app.Config.Environment, max(app.Config.Level, domain.LevelLow))
	cmd.Flags().Int64Var(&seed, "seed", app.Config.Seed, "random seed (0 picks one from the clock)")
	cmd.Flags().BoolVar(&noArchive, "no-archive", false, "do not archive the session summary")

	return cmd
}
