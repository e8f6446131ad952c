package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/carewise/internal/cli/formatter"
	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/alexanderramin/carewise/internal/intelligence"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const outputWidth = 88

func newAdviseCmd(app *App) *cobra.Command {
	var rf recordFlags
	var roleName, question string

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Request nursing advice for a patient record",
		Long: `Request nursing advice for a patient record.

The record comes from --record and/or the individual field flags. Question
roles (patient_question, carer_question, specific_advice) need --question.
The general_advice role first prints the collected record, as the intake
form does.`,
		Example: `  carewise advise --record jane.json --role carer_advice
  carewise advise --record jane.json --role patient_question --question "Can I shower?"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			role, err := domain.ParseRole(roleName)
			if err != nil {
				return err
			}
			rec, err := rf.build(ctx, app, cmd.Flags())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if role == domain.RoleGeneralAdvice {
				if err := rec.Validate(); err != nil {
					return adviceError(role, err)
				}
				collected, err := app.Records.Collect(ctx, *rec)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, collected.Summary)
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.Dim(collected.JSON))
				fmt.Fprintln(out)
				rec = collected.Record
			}

			stop := func() {}
			if isTerminal(out) {
				stop = formatter.StartSpinner(out, "Asking for "+role.Label()+"...")
			}
			res, err := app.Advice.RequestAdvice(ctx, intelligence.AdviceRequest{
				Role:     role,
				Record:   rec,
				Question: question,
			})
			stop()
			if err != nil {
				return adviceError(role, err)
			}

			fmt.Fprint(out, formatter.FormatAdvice(formatter.AdviceView{
				Role:      role,
				Question:  strings.TrimSpace(question),
				Text:      res.Text,
				Model:     res.Model,
				LatencyMs: res.LatencyMs,
				Timeline:  res.Timeline,
			}, outputWidth))
			return nil
		},
	}

	rf.bind(cmd.Flags())
	cmd.Flags().StringVar(&roleName, "role", string(domain.RoleGeneralAdvice), "Advice role (see 'carewise roles')")
	cmd.Flags().StringVarP(&question, "question", "q", "", "Question for question roles")
	_ = cmd.RegisterFlagCompletionFunc("role", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(domain.AllRoles))
		for _, r := range domain.AllRoles {
			names = append(names, string(r))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newCollectCmd(app *App) *cobra.Command {
	var rf recordFlags

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Stamp a patient record and print its summary and JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rec, err := rf.build(ctx, app, cmd.Flags())
			if err != nil {
				return err
			}
			collected, err := app.Records.Collect(ctx, *rec)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), collected.Summary)
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), collected.JSON)
			return nil
		},
	}
	rf.bind(cmd.Flags())
	return cmd
}

// userError carries a display message in place of the wrapped error text.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

// adviceError converts an advice failure into the text the user sees.
func adviceError(role domain.Role, err error) error {
	return &userError{msg: intelligence.UserMessage(role, err), err: err}
}

// shellError renders an error for display inside the TUI.
func shellError(err error) string {
	var ue *userError
	if errors.As(err, &ue) {
		return formatter.Failure(ue.msg)
	}
	return formatter.Failure("Error: " + err.Error())
}

func isTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
