package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/streamchat/internal/config"
)

var revealKeys bool

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show or set stream API keys",
	Long: `Manage the credentials stored in ~/.streamchat/.secrets.env.

Environment variables with the same names take precedence over the file.`,
}

var keysShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List every known key and whether it is set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeysShow(cmd.OutOrStdout())
	},
}

var keysSetCmd = &cobra.Command{
	Use:   "set <NAME> [value]",
	Short: "Store a key; an empty or missing value removes it",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := ""
		if len(args) == 2 {
			value = args[1]
		}
		return runKeysSet(cmd.OutOrStdout(), args[0], value)
	},
}

func init() {
	keysShowCmd.Flags().BoolVar(&revealKeys, "reveal", false, "Print values unmasked")
	keysCmd.AddCommand(keysShowCmd, keysSetCmd)
	rootCmd.AddCommand(keysCmd)
}

func runKeysShow(out io.Writer) error {
	store, err := loadCredentials()
	if err != nil {
		return err
	}
	values, err := store.Read()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Credentials (%s):\n", store.Path())
	for _, name := range config.CredentialNames {
		v := values[name]
		switch {
		case v == "":
			v = "(not set)"
		case !revealKeys:
			v = config.Masked(v)
		}
		fmt.Fprintf(out, "  %-22s %s\n", name, v)
	}
	return nil
}

func runKeysSet(out io.Writer, name, value string) error {
	name = strings.ToUpper(strings.TrimSpace(name))
	if !slices.Contains(config.CredentialNames, name) {
		return fmt.Errorf("unknown key %q (known: %s)", name, strings.Join(config.CredentialNames, ", "))
	}

	store, err := loadCredentials()
	if err != nil {
		return err
	}
	if err := store.Save(map[string]string{name: value}); err != nil {
		return err
	}

	if strings.TrimSpace(value) == "" {
		fmt.Fprintf(out, "Removed %s\n", name)
	} else {
		fmt.Fprintf(out, "Saved %s\n", name)
	}
	if _, ok := os.LookupEnv(name); ok {
		fmt.Fprintf(out, "Note: %s is also set in the environment, which takes precedence.\n", name)
	}
	return nil
}
