package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/streamchat/internal/logger"
)

var (
	skipConfirm      bool
	cleanCredentials bool
)

// Overridden in tests.
var clearLog = logger.ClearLog

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the debug log and reset settings",
	Long: `Removes the debug log and ~/.streamchat/config.json so the next run starts
with default settings. Stored API keys are kept unless --credentials is given.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClean(os.Stdin, cmd.OutOrStdout())
	},
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cleanCmd.Flags().BoolVar(&cleanCredentials, "credentials", false, "Also remove stored API keys")
	rootCmd.AddCommand(cleanCmd)
}

// runClean allows injecting the reader and writer for testing
func runClean(input io.Reader, out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	store, err := loadCredentials()
	if err != nil {
		return fmt.Errorf("error locating credentials: %w", err)
	}

	targets := []string{cfg.Path()}
	if cleanCredentials {
		targets = append(targets, store.Path())
	}

	var existing []string
	for _, path := range targets {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	_, logErr := os.Stat(logger.Path())
	hasLog := logErr == nil

	if len(existing) == 0 && !hasLog {
		fmt.Fprintln(out, "Nothing to clean.")
		return nil
	}

	fmt.Fprintln(out, "This will remove:")
	for _, path := range existing {
		fmt.Fprintf(out, "  - %s\n", path)
	}
	if hasLog {
		fmt.Fprintf(out, "  - %s\n", logger.Path())
	}

	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	removed := 0
	for _, path := range existing {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: error removing %s: %v\n", path, err)
			continue
		}
		removed++
	}
	if hasLog {
		ok, err := clearLog()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error clearing log: %v\n", err)
		}
		if ok {
			removed++
		}
	}

	fmt.Fprintf(out, "\nRemoved %d file(s).\n", removed)
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
