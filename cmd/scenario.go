package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/streamchat/internal/bridge"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Work with simulated stream scenarios",
	Long: `Scenarios are YAML scripts of chat messages, follows, donations and
subscriptions replayed by the simulated stream. Run one with:

  streamchat --scenario raid.yaml`,
}

var scenarioValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a scenario file without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenarioValidate(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	scenarioCmd.AddCommand(scenarioValidateCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func runScenarioValidate(out io.Writer, path string) error {
	s, err := bridge.LoadScenario(path)
	if err != nil {
		return err
	}
	loop := ""
	if s.Loop {
		loop = ", loops"
	}
	fmt.Fprintf(out, "%s: %d step(s), %s per pass%s\n", s.Name, len(s.Steps), s.Duration(), loop)
	return nil
}
