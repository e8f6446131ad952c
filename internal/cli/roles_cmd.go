package cli

import (
	"fmt"

	"github.com/alexanderramin/carewise/internal/cli/formatter"
	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/alexanderramin/carewise/internal/llm"
	"github.com/spf13/cobra"
)

func newRolesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List advice roles and their token caps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoles(func(r domain.Role) int {
				return app.LLM.Tasks[taskFor(r)].MaxTokens
			}))
			if app.LLM.Model != "" {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("\nmodel: "+app.LLM.Model))
			}
			if app.Client != nil {
				status := "unavailable"
				if app.Client.Available(cmd.Context()) {
					status = "ready"
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("provider: %s (%s)", app.LLM.Provider, status)))
			}
			return nil
		},
	}
}

func taskFor(r domain.Role) llm.TaskType {
	if r.IsQuestion() {
		return llm.TaskQuestion
	}
	return llm.TaskAdvice
}
