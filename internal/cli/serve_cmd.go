package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/carewise/internal/cli/formatter"
	"github.com/alexanderramin/carewise/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve advice, records, and history as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}

			router := httpapi.NewRouter(httpapi.NewHandler(app.Advice, app.Records, app.History))
			srv := httpapi.NewServer(addr, router)

			fmt.Fprintf(cmd.OutOrStdout(), "%s Listening on %s %s\n",
				formatter.StyleGreen.Render("●"),
				formatter.Bold("http://"+ln.Addr().String()+"/api"),
				formatter.Dim("(ctrl+c to stop)"))
			return httpapi.Serve(ctx, srv, ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.HTTPAddr, "Listen address")
	return cmd
}
