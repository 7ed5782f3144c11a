package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/landing/internal/config"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the Web3Forms access key",
	Long: fmt.Sprintf(`Manage the Web3Forms access key stored in the system keyring.

The key is looked up in this order:
  1. The %s environment variable
  2. A .env file in the working directory
  3. The system keyring (set with 'landing key set')`, config.EnvAccessKey),
}

var keySetCmd = &cobra.Command{
	Use:   "set [access-key]",
	Short: "Store the access key in the system keyring",
	Long: `Store the access key in the system keyring.
With no argument the key is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			read, err := readKey(cmd.InOrStdin())
			if err != nil {
				return err
			}
			key = read
		}
		return runKeySet(cmd.OutOrStdout(), key)
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the access key in use, masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.LoadOptions{Path: configPath, EnvFile: envFile})
		if err != nil {
			return err
		}
		runKeyShow(cmd.OutOrStdout(), cfg)
		return nil
	},
}

var keyDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the access key from the system keyring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeyDelete(cmd.OutOrStdout())
	},
}

func readKey(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && f == os.Stdin {
		fmt.Fprint(os.Stderr, "Access key: ")
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read access key: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func runKeySet(out io.Writer, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("access key cannot be empty")
	}
	if err := config.StoreAccessKey(key); err != nil {
		return err
	}
	fmt.Fprintf(out, "🔑 Access key %s saved to keyring\n", config.MaskKey(key))
	return nil
}

func runKeyShow(out io.Writer, cfg *config.Config) {
	if cfg.AccessKey == "" {
		fmt.Fprintln(out, "No access key configured")
		fmt.Fprintf(out, "Set %s or run 'landing key set'\n", config.EnvAccessKey)
		return
	}
	fmt.Fprintf(out, "Access key: %s (from %s)\n", config.MaskKey(cfg.AccessKey), cfg.AccessKeySource)
}

func runKeyDelete(out io.Writer) error {
	if err := config.DeleteAccessKey(); err != nil {
		if errors.Is(err, config.ErrNoStoredKey) {
			fmt.Fprintln(out, "No access key in keyring")
			return nil
		}
		return err
	}
	fmt.Fprintln(out, "🗑️  Access key removed from keyring")
	return nil
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
	keyCmd.AddCommand(keyDeleteCmd)
}
