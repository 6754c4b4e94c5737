package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordwise/internal/parent"
	"github.com/abhisek/wordwise/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the parent dashboard API",
	Long: `Serve statistics, history and bank management over HTTP for a browser
dashboard. Clients log in with the parent PIN and receive a bearer token.
Prometheus metrics are exposed at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = d.cfg.Server.Addr
		}

		auth, err := parent.NewAuthority(d.cfg.Server.JWTSecret, d.cfg.Server.TokenTTL)
		if err != nil {
			return fmt.Errorf("token authority: %w", err)
		}

		srv := server.New(server.Options{
			Bank:           d.env.Bank,
			History:        d.env.History,
			Guard:          d.env.Guard,
			Auth:           auth,
			Logger:         d.log,
			AllowedOrigins: d.cfg.Server.AllowedOrigins,
			Now:            d.env.Now,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.ErrOrStderr(), "Parent API listening on http://%s\n", addr)
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, 127.0.0.1:8787)")
}
