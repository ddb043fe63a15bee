package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	pErrors "github.com/zhubert/streamchat/internal/errors"
	"github.com/zhubert/streamchat/internal/layout"
)

// Config holds the persisted user settings
type Config struct {
	DockEdge          string `json:"dock_edge,omitempty"`           // Where the activity feed is docked (right, left, top, bottom, none)
	DockSize          int    `json:"dock_size,omitempty"`           // Activity feed size as a percentage of the window
	DockMin           int    `json:"dock_min,omitempty"`            // Lower bound for DockSize
	DockMax           int    `json:"dock_max,omitempty"`            // Upper bound for DockSize
	HideActivityFeed  bool   `json:"hide_activity_feed,omitempty"`  // Stored inverted so an empty file shows the feed
	DisableAutoScroll bool   `json:"disable_auto_scroll,omitempty"` // Stored inverted so an empty file follows the tail

	Theme                string `json:"theme,omitempty"`
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notifications for donations and subscriptions

	TwitchChannel  string `json:"twitch_channel,omitempty"`  // Channel to join when no TWITCH_CHANNEL credential is set
	TwitchUsername string `json:"twitch_username,omitempty"` // Account used for sending messages

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".streamchat"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from ~/.streamchat, or returns defaults if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, pErrors.ConfigLoadFailed("~/.streamchat/config.json", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields defaults that
// will be written to path on Save.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.ensureInitialized()
		return cfg, nil
	}
	if err != nil {
		return nil, pErrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, pErrors.ConfigLoadFailed(path, err)
	}

	// Defaults must be filled in before Validate, which only reads
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized fills in zero-valued fields with defaults.
//
// Not thread-safe: only called from LoadFrom before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.DockEdge == "" {
		c.DockEdge = string(layout.EdgeRight)
	}
	if c.DockMin == 0 && c.DockMax == 0 {
		c.DockMin = layout.DefaultRange.Min
		c.DockMax = layout.DefaultRange.Max
	}
	if c.DockSize == 0 {
		c.DockSize = layout.DefaultSize
	}
}

// Validate checks the loaded settings for values the UI cannot represent
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := layout.ParseEdge(c.DockEdge); !ok {
		return pErrors.ConfigInvalid(fmt.Sprintf("unknown dock edge %q", c.DockEdge))
	}
	r := layout.Range{Min: c.DockMin, Max: c.DockMax}
	if !r.Valid() {
		return pErrors.ConfigInvalid(fmt.Sprintf("invalid dock range [%d,%d]", c.DockMin, c.DockMax))
	}
	if strings.ContainsAny(c.TwitchChannel, " \t") {
		return pErrors.ConfigInvalid(fmt.Sprintf("twitch channel %q contains whitespace", c.TwitchChannel))
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return pErrors.ConfigSaveFailed("", fmt.Errorf("config has no file path"))
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return pErrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config is saved to
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetLayout returns the dock settings with the size clamped to the range
func (c *Config) GetLayout() layout.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	edge, ok := layout.ParseEdge(c.DockEdge)
	if !ok {
		edge = layout.EdgeRight
	}
	return layout.Config{
		Edge:          edge,
		Size:          c.dockRange().Clamp(c.DockSize),
		ShowSecondary: !c.HideActivityFeed,
	}
}

// SetLayout stores the dock settings. The size is clamped before storing.
func (c *Config) SetLayout(lc layout.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DockEdge = string(lc.Edge)
	c.DockSize = c.dockRange().Clamp(lc.Size)
	c.HideActivityFeed = !lc.ShowSecondary
}

// GetDockRange returns the allowed dock size range
func (c *Config) GetDockRange() layout.Range {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dockRange()
}

func (c *Config) dockRange() layout.Range {
	r := layout.Range{Min: c.DockMin, Max: c.DockMax}
	if !r.Valid() {
		return layout.DefaultRange
	}
	return r
}

// GetShowActivityFeed returns whether the activity feed panel is visible
func (c *Config) GetShowActivityFeed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.HideActivityFeed
}

// SetShowActivityFeed sets whether the activity feed panel is visible
func (c *Config) SetShowActivityFeed(show bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.HideActivityFeed = !show
}

// GetAutoScroll returns whether feeds follow new entries
func (c *Config) GetAutoScroll() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.DisableAutoScroll
}

// SetAutoScroll sets whether feeds follow new entries
func (c *Config) SetAutoScroll(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DisableAutoScroll = !enabled
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetTwitchChannel returns the configured channel login
func (c *Config) GetTwitchChannel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.TwitchChannel
}

// SetTwitchChannel sets the channel login. A leading '#' is dropped.
func (c *Config) SetTwitchChannel(channel string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.TwitchChannel = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(channel), "#"))
}

// GetTwitchUsername returns the account used for sending
func (c *Config) GetTwitchUsername() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.TwitchUsername
}

// SetTwitchUsername sets the account used for sending
func (c *Config) SetTwitchUsername(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.TwitchUsername = strings.TrimSpace(username)
}
