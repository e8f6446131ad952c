package cli

import (
	"io"
	"log/slog"

	"github.com/alexanderramin/carewise/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive intake and advice screens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

// runTUI takes over the terminal until the user quits. Without --log-file,
// logging is discarded so records cannot corrupt the alt screen.
func runTUI(cmd *cobra.Command, app *App) error {
	if app.logFile == "" {
		prev := slog.Default()
		slog.SetDefault(logging.Logger(io.Discard, false, slog.LevelError))
		defer slog.SetDefault(prev)
	}

	p := tea.NewProgram(newAppModel(app),
		tea.WithContext(cmd.Context()),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err := p.Run()
	return err
}
