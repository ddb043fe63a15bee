package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/streamchat/internal/app"
	"github.com/zhubert/streamchat/internal/bridge"
	"github.com/zhubert/streamchat/internal/bridge/twitch"
	"github.com/zhubert/streamchat/internal/config"
	"github.com/zhubert/streamchat/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	mockMode              bool
	scenarioPath          string
	version, commit, date string
)

// Overridden in tests.
var (
	loadConfig      = config.Load
	loadCredentials = config.DefaultCredentials
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "streamchat",
	Short: "Terminal dashboard for live stream chat and activity",
	Long: `streamchat shows a live stream's chat next to a feed of follows, donations
and subscriptions, and lets you reply from the terminal.

Without a Twitch channel configured it runs against a simulated stream. With
--mock and a channel, live chat is joined and simulated follows, donations and
subscriptions are mixed in.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().BoolVar(&mockMode, "mock", false, "Generate simulated stream activity")
	rootCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Replay a scenario `file` on the simulated stream (implies --mock)")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("streamchat %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("streamchat %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	store, err := loadCredentials()
	if err != nil {
		return fmt.Errorf("error locating credentials: %w", err)
	}
	creds, err := store.Read()
	if err != nil {
		return fmt.Errorf("error reading credentials: %w", err)
	}

	defer logger.Close()

	conn, err := newConnection(cfg, store, creds, mockMode, scenarioPath)
	if err != nil {
		return err
	}
	defer conn.bridge.Close()

	m := app.New(app.Options{
		Config:  cfg,
		Bridge:  conn.bridge,
		Version: version,
		Channel: conn.channel,
		Mock:    conn.mock,
	})
	defer m.Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// connection is the bridge the TUI runs against and how to label it
type connection struct {
	bridge  bridge.Bridge
	channel string
	mock    bool
}

// newConnection picks the Twitch bridge when a channel is configured and
// the simulated stream otherwise. A scenario always selects the simulation.
func newConnection(cfg *config.Config, store bridge.CredentialStore, creds map[string]string, mock bool, scenario string) (*connection, error) {
	log := logger.WithComponent("cmd")

	channel := cfg.GetTwitchChannel()
	if channel == "" {
		channel = creds[config.TwitchChannel]
	}
	username := cfg.GetTwitchUsername()
	if username == "" {
		username = creds[config.TwitchUsername]
	}

	if scenario != "" || channel == "" {
		opts := bridge.MockOptions{Credentials: store, Username: username}
		if scenario != "" {
			s, err := bridge.LoadScenario(scenario)
			if err != nil {
				return nil, fmt.Errorf("error loading scenario: %w", err)
			}
			opts.Scenario = s
		}
		if channel == "" {
			channel = "mock"
		}
		log.Info("using simulated stream", "channel", channel, "scenario", scenario)
		return &connection{bridge: bridge.NewMock(opts), channel: channel, mock: true}, nil
	}

	log.Info("connecting to twitch", "channel", channel, "username", username, "mock", mock)
	b := twitch.New(twitch.Options{
		Username:      username,
		AccessToken:   creds[config.TwitchAccessToken],
		Channel:       channel,
		ClientID:      creds[config.TwitchClientID],
		BroadcasterID: creds[config.TwitchBroadcasterID],
		Credentials:   store,
	})
	return &connection{bridge: b, channel: channel, mock: mock}, nil
}
