package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/balkashynov/landing/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|toggle]",
	Short: "Show or change the color theme",
	Long: `Show or change the color theme. The choice is saved and used by the
interactive page and by 'landing serve'.

Examples:
  landing theme          # Print the current theme
  landing theme dark     # Switch to dark
  landing theme toggle   # Flip between light and dark`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setupApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		return runTheme(cmd.OutOrStdout(), a, args)
	},
}

func runTheme(out io.Writer, a *app, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(out, "Current theme: %s\n", a.pref.Current())
		return nil
	}

	var next theme.Theme
	if args[0] == "toggle" {
		next = theme.Opposite(a.pref.Current())
	} else {
		parsed, err := theme.Parse(args[0])
		if err != nil {
			return err
		}
		next = parsed
	}

	if err := a.pref.Set(next); err != nil {
		return err
	}

	fmt.Fprintf(out, "🎨 Theme set to %s\n", next)
	return nil
}
