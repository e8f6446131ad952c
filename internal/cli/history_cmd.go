package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/carewise/internal/cli/formatter"
	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/alexanderramin/carewise/internal/repository"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse past advice",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryShowCmd(app),
		newHistoryExportCmd(app),
		newHistoryRemoveCmd(app),
	)

	return cmd
}

func historyNotFound(id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("advice entry %s not found", id)
	}
	return err
}

func newHistoryListCmd(app *App) *cobra.Command {
	var roleName string
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent advice",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var role domain.Role
			if roleName != "" {
				r, err := domain.ParseRole(roleName)
				if err != nil {
					return err
				}
				role = r
			}
			entries, err := app.History.List(cmd.Context(), role, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistoryList(entries, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&roleName, "role", "", "Only show this role")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries")
	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	var showPrompt bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one advice entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.History.Get(cmd.Context(), args[0])
			if err != nil {
				return historyNotFound(args[0], err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatHistoryEntry(e, app.now(), outputWidth))
			if showPrompt {
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.Header("Prompt"))
				fmt.Fprintln(out, formatter.Dim(e.Prompt))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showPrompt, "prompt", false, "Also print the prompt that was sent")
	return cmd
}

func newHistoryExportCmd(app *App) *cobra.Command {
	var outPath, fontPath string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export one advice entry to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				outPath = fmt.Sprintf("advice-%s.pdf", shortID(args[0]))
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			err = app.History.ExportPDF(cmd.Context(), args[0], f, fontPath)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				_ = os.Remove(outPath)
				return historyNotFound(args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %s\n", formatter.StyleGreen.Render("✔"), outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default advice-<id>.pdf)")
	cmd.Flags().StringVar(&fontPath, "font", "", "TrueType font file (default: first installed DejaVu Sans)")
	return cmd
}

func newHistoryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete one advice entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.History.Delete(cmd.Context(), args[0]); err != nil {
				return historyNotFound(args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed advice entry %s\n", args[0])
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
