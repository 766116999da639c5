package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/argus-labs/godesc/pkg/server"
)

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve parse, format and validate over HTTP",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			v, err := a.newValidator(ctx)
			if err != nil {
				return err
			}
			if port == "" {
				port = a.cfg.Port
			}
			s, err := server.New(v, a.tel.GetLogger("server"), server.Options{Port: port})
			if err != nil {
				return err
			}
			return s.Serve(ctx)
		}),
	}
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (default $GODESC_PORT or 4040)")
	return cmd
}
