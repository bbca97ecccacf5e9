package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/focussim/internal/config"
	"github.com/alexanderramin/focussim/internal/service"
	"github.com/spf13/cobra"
)

// App holds the configuration and services shared by CLI commands.
type App struct {
	Config config.Config
	// History archives finished sessions. Commands that need it fail
	// when it is nil.
	History   service.HistoryService
	Observers []service.UseCaseObserver
	Logger    *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means yes.
	IsInteractive func() bool
	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (a *App) interactive() bool {
	return a.IsInteractive == nil || a.IsInteractive()
}

// NewRootCmd creates the top-level "focussim" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "focussim",
		Short:         "Attention and procrastination simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(app),
		newSimulateCmd(app),
		newHistoryCmd(app),
		newIntervalsCmd(app),
	)

	return root
}
