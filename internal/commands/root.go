package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/landing/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Values of the persistent flags, shared by every subcommand
var (
	configPath string
	envFile    string
	dbPath     string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "landing",
	Short: "A landing page with a contact form, in your terminal",
	Long: `landing renders an agency landing page: a navbar with a light/dark theme
toggle and a contact form that is relayed through Web3Forms.

Run it with no arguments to open the interactive page, or use the
subcommands to submit, switch themes, manage the access key or serve
the page over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setupApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		return tui.RunLanding(a.landingOptions(nil))
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/landing/config.toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Dotenv file to read (default .env)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default ~/.landing/landing.db)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace|debug|info|warn|error")

	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
