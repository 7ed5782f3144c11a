package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/balkashynov/landing/internal/config"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for landing",
	Long:  `Display detailed help for all landing commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp(cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "landing %s (commit %s, built %s)\n", version, commit, date)
	},
}

func showCustomHelp(out io.Writer) {
	fmt.Fprintf(out, `
██╗      █████╗ ███╗   ██╗██████╗ ██╗███╗   ██╗ ██████╗
██║     ██╔══██╗████╗  ██║██╔══██╗██║████╗  ██║██╔════╝
██║     ███████║██╔██╗ ██║██║  ██║██║██╔██╗ ██║██║  ███╗
██║     ██╔══██║██║╚██╗██║██║  ██║██║██║╚██╗██║██║   ██║
███████╗██║  ██║██║ ╚████║██████╔╝██║██║ ╚████║╚██████╔╝
╚══════╝╚═╝  ╚═╝╚═╝  ╚═══╝╚═════╝ ╚═╝╚═╝  ╚═══╝ ╚═════╝

landing - agency landing page with a contact form

COMMANDS:

  (no command)            Open the interactive landing page

    Keys:
      Tab/Shift+Tab   Move between fields
      Enter           Next field / submit
      Ctrl+S          Submit the form
      Ctrl+T          Toggle light/dark theme
      Esc/Ctrl+C      Quit

  contact                 Send a message through the contact form
    -n, --name            Your name (required)
    -e, --email           Your email (required)
    -m, --message         Message body
    --no-ui               Fail instead of opening the form when fields are missing

    Example:
      landing contact --name Ada --email ada@example.com -m "Need a website"

  theme [light|dark|toggle]
                          Show or change the saved theme

  key set [key]           Store the Web3Forms access key in the keyring
  key show                Show the access key in use, masked
  key delete              Remove the access key from the keyring

  serve                   Serve the landing page over HTTP
    --addr                Listen address (host:port)

  version                 Print version information
  help                    Show this help

GLOBAL FLAGS:

  --config                Config file (TOML)
  --env-file              Dotenv file (default .env)
  --db                    SQLite database path
  --log-level             trace|debug|info|warn|error

ENVIRONMENT:

  %s   Web3Forms access key
  %s          Relay endpoint override
  %s               Log level
  %s                      Database path

`, config.EnvAccessKey, config.EnvEndpoint, config.EnvLogLevel, config.EnvDBPath)
}
