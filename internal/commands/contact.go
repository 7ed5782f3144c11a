package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/landing/internal/contact"
	"github.com/balkashynov/landing/internal/tui"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message through the contact form",
	Long: `Send a message through the contact form.

Modes:
  Interactive: landing contact (opens the page with the form pre-filled from flags)
  Direct: landing contact --name Ada --email ada@example.com --message "Hi"

Name and email are required for a direct submission. If either is missing
the interactive form opens instead, unless --no-ui is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		noUI, _ := cmd.Flags().GetBool("no-ui")
		fields := contactFlagFields(cmd)

		if missing := missingRequired(fields); len(missing) > 0 {
			if noUI {
				return fmt.Errorf("missing required flags with --no-ui: %s", strings.Join(missing, ", "))
			}

			a, err := setupApp(true)
			if err != nil {
				return err
			}
			defer a.Close()
			return tui.RunLanding(a.landingOptions(fields))
		}

		a, err := setupApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runDirectContact(ctx, cmd.OutOrStdout(), a, fields)
	},
}

// contactFlagFields collects the form values given on the command line
func contactFlagFields(cmd *cobra.Command) map[string]string {
	fields := make(map[string]string)
	if name, _ := cmd.Flags().GetString("name"); name != "" {
		fields[contact.FieldName] = name
	}
	if email, _ := cmd.Flags().GetString("email"); email != "" {
		fields[contact.FieldEmail] = email
	}
	if message, _ := cmd.Flags().GetString("message"); message != "" {
		fields[contact.FieldMessage] = message
	}
	return fields
}

func missingRequired(fields map[string]string) []string {
	var missing []string
	for _, name := range []string{contact.FieldName, contact.FieldEmail} {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, "--"+name)
		}
	}
	return missing
}

// runDirectContact submits fields once and prints the outcome. A rejected or
// failed submission has already been reported to the user, so it is not
// returned as a command error.
func runDirectContact(ctx context.Context, out io.Writer, a *app, fields map[string]string) error {
	if _, ok := fields[contact.FieldMessage]; !ok {
		fields[contact.FieldMessage] = ""
	}

	flow := a.newFlow(printNotifier{out: out})
	ev := contact.NewFormEvent(fields, nil)

	err := flow.Submit(ctx, ev)
	if errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// printNotifier reports submission outcomes as terminal lines
type printNotifier struct {
	out io.Writer
}

func (n printNotifier) Success(message string) {
	fmt.Fprintf(n.out, "✅ %s\n", message)
}

func (n printNotifier) Error(message string) {
	fmt.Fprintf(n.out, "❌ %s\n", message)
}

func init() {
	contactCmd.Flags().StringP("name", "n", "", "Your name")
	contactCmd.Flags().StringP("email", "e", "", "Your email")
	contactCmd.Flags().StringP("message", "m", "", "Message body")
	contactCmd.Flags().Bool("no-ui", false, "Never open the interactive form")
}
