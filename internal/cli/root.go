package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/alexanderramin/carewise/internal/intelligence"
	"github.com/alexanderramin/carewise/internal/llm"
	"github.com/alexanderramin/carewise/internal/logging"
	"github.com/alexanderramin/carewise/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Advice  intelligence.AdviceService
	Records service.RecordService
	History service.HistoryService

	// LLM is used for display only (model name, token caps).
	LLM llm.LLMConfig

	// Client, when set, lets "roles" report provider readiness.
	Client llm.LLMClient

	// HTTPAddr is the default listen address for "serve".
	HTTPAddr string

	// Clock defaults to time.Now.
	Clock domain.Clock

	// IsInteractive reports whether a bare "carewise" should open the TUI.
	IsInteractive func() bool

	logFile string
	logSink io.Closer
}

func (a *App) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now()
}

// Close releases the log file opened by --log-file, if any.
func (a *App) Close() error {
	if a.logSink == nil {
		return nil
	}
	err := a.logSink.Close()
	a.logSink = nil
	return err
}

// NewRootCmd creates the top-level "carewise" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var logLevel string
	var logJSON bool

	root := &cobra.Command{
		Use:           "carewise",
		Short:         "Patient and carer advice assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, ok := logging.ParseLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}

			var w io.Writer = cmd.ErrOrStderr()
			if app.logFile != "" {
				fw := logging.FileWriter(app.logFile)
				app.logSink = fw
				w = fw
			}
			slog.SetDefault(logging.Logger(w, logJSON, level))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "WARN", "Log level (DEBUG, INFO, WARN, ERROR)")
	root.PersistentFlags().StringVar(&app.logFile, "log-file", "", "Write logs to a rotated file instead of stderr")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")

	root.AddCommand(
		newAdviseCmd(app),
		newCollectCmd(app),
		newRecordCmd(app),
		newHistoryCmd(app),
		newRolesCmd(app),
		newServeCmd(app),
		newTUICmd(app),
	)

	return root
}
