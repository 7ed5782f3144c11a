package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/balkashynov/landing/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the landing page over HTTP",
	Long: `Serve the landing page as HTML. The page shares the saved theme and the
contact relay with the terminal version.

Examples:
  landing serve                    # Listen on the configured address
  landing serve --addr :3000       # Listen on all interfaces, port 3000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setupApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = a.cfg.Server.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := web.NewServer(a.pref, a.newFlow, a.log)
		return server.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address, host:port (default from config, 127.0.0.1:8080)")
}
