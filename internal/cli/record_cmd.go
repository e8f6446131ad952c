package cli

import (
	"fmt"

	"github.com/alexanderramin/carewise/internal/cli/formatter"
	"github.com/alexanderramin/carewise/internal/service"
	"github.com/spf13/cobra"
)

func newRecordCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "record",
		Aliases: []string{"records"},
		Short:   "Save, load, and list patient records",
	}

	cmd.AddCommand(
		newRecordSaveCmd(app),
		newRecordLoadCmd(app),
		newRecordListCmd(app),
	)

	return cmd
}

func newRecordSaveCmd(app *App) *cobra.Command {
	var rf recordFlags

	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save a patient record as NAME.json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rec, err := rf.build(ctx, app, cmd.Flags())
			if err != nil {
				return err
			}
			filename, err := app.Records.Save(ctx, rec, args[0])
			status := service.SaveStatus(filename, err)
			if err != nil {
				return &userError{msg: status, err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), status)
			return nil
		},
	}
	rf.bind(cmd.Flags())
	return cmd
}

func newRecordLoadCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "load NAME",
		Short: "Show a saved patient record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Records.Load(cmd.Context(), args[0])
			if err != nil {
				return &userError{msg: service.LoadStatus(args[0], err), err: err}
			}
			if asJSON {
				data, err := rec.MarshalJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRecord(rec, app.now()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored document")
	return cmd
}

func newRecordListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved patient records",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := app.Records.Choices(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecordList(names))
			return nil
		},
	}
}
