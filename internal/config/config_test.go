package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	pErrors "github.com/zhubert/streamchat/internal/errors"
	"github.com/zhubert/streamchat/internal/layout"
)

func TestLoad_NewConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	// Load should return defaults when no file exists
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Path() != filepath.Join(tmpDir, ".streamchat", "config.json") {
		t.Errorf("Path() = %q", cfg.Path())
	}

	got := cfg.GetLayout()
	want := layout.Config{Edge: layout.EdgeRight, Size: layout.DefaultSize, ShowSecondary: true}
	if got != want {
		t.Errorf("GetLayout() = %+v, want %+v", got, want)
	}
	if !cfg.GetAutoScroll() {
		t.Error("auto-scroll should default to on")
	}
	if cfg.GetNotificationsEnabled() {
		t.Error("notifications should default to off")
	}
}

func TestLoad_ExistingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
  "dock_edge": "bottom",
  "dock_size": 45,
  "hide_activity_feed": true,
  "disable_auto_scroll": true,
  "notifications_enabled": true,
  "theme": "nord",
  "twitch_channel": "streamer"
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	lc := cfg.GetLayout()
	if lc.Edge != layout.EdgeBottom || lc.Size != 45 || lc.ShowSecondary {
		t.Errorf("layout = %+v", lc)
	}
	if cfg.GetAutoScroll() {
		t.Error("auto-scroll should be off")
	}
	if !cfg.GetNotificationsEnabled() {
		t.Error("notifications should be on")
	}
	if cfg.GetTheme() != "nord" || cfg.GetTwitchChannel() != "streamer" {
		t.Errorf("theme/channel = %q/%q", cfg.GetTheme(), cfg.GetTwitchChannel())
	}
	if cfg.GetDockRange() != layout.DefaultRange {
		t.Errorf("range should default, got %+v", cfg.GetDockRange())
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if !pErrors.Is(err, pErrors.KindConfig) {
		t.Errorf("LoadFrom() error = %v, want config error", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{
			name: "defaults",
			cfg:  &Config{DockEdge: "right", DockMin: 10, DockMax: 50, DockSize: 30},
		},
		{
			name: "edge none",
			cfg:  &Config{DockEdge: "none", DockMin: 10, DockMax: 50},
		},
		{
			name:    "unknown edge",
			cfg:     &Config{DockEdge: "diagonal", DockMin: 10, DockMax: 50},
			wantErr: "unknown dock edge",
		},
		{
			name:    "inverted range",
			cfg:     &Config{DockEdge: "left", DockMin: 60, DockMax: 20},
			wantErr: "invalid dock range",
		},
		{
			name:    "range above 100",
			cfg:     &Config{DockEdge: "left", DockMin: 10, DockMax: 120},
			wantErr: "invalid dock range",
		},
		{
			name:    "channel with space",
			cfg:     &Config{DockEdge: "left", DockMin: 10, DockMax: 50, TwitchChannel: "two words"},
			wantErr: "whitespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
			if !pErrors.Is(err, pErrors.KindInvalid) {
				t.Errorf("Validate() kind = %v, want invalid", pErrors.GetKind(err))
			}
		})
	}
}

func TestLoad_RejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"dock_edge":"middle"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); !pErrors.Is(err, pErrors.KindInvalid) {
		t.Errorf("LoadFrom() = %v, want invalid", err)
	}
}

func TestConfig_EnsureInitialized(t *testing.T) {
	cfg := &Config{}
	cfg.ensureInitialized()

	if cfg.DockEdge != "right" {
		t.Errorf("DockEdge = %q", cfg.DockEdge)
	}
	if cfg.DockMin != 10 || cfg.DockMax != 50 {
		t.Errorf("range = [%d,%d]", cfg.DockMin, cfg.DockMax)
	}
	if cfg.DockSize != layout.DefaultSize {
		t.Errorf("DockSize = %d", cfg.DockSize)
	}

	// Explicit values are kept
	cfg = &Config{DockEdge: "top", DockMin: 20, DockMax: 40, DockSize: 25}
	cfg.ensureInitialized()
	if cfg.DockEdge != "top" || cfg.DockMin != 20 || cfg.DockMax != 40 || cfg.DockSize != 25 {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}

func TestConfig_LayoutClamping(t *testing.T) {
	cfg := &Config{DockEdge: "left", DockMin: 20, DockMax: 40, DockSize: 90}

	if got := cfg.GetLayout().Size; got != 40 {
		t.Errorf("stored size should be clamped on read, got %d", got)
	}

	cfg.SetLayout(layout.Config{Edge: layout.EdgeTop, Size: 5, ShowSecondary: true})
	if cfg.DockSize != 20 {
		t.Errorf("SetLayout should clamp, stored %d", cfg.DockSize)
	}
	if cfg.DockEdge != "top" || cfg.HideActivityFeed {
		t.Errorf("SetLayout stored %+v", cfg)
	}

	cfg.SetShowActivityFeed(false)
	if cfg.GetLayout().ShowSecondary {
		t.Error("activity feed should be hidden")
	}
}

func TestConfig_TwitchChannelNormalized(t *testing.T) {
	cfg := &Config{}
	cfg.SetTwitchChannel("  #StreamerName ")
	if got := cfg.GetTwitchChannel(); got != "streamername" {
		t.Errorf("GetTwitchChannel() = %q", got)
	}
	cfg.SetTwitchUsername(" Me ")
	if got := cfg.GetTwitchUsername(); got != "Me" {
		t.Errorf("GetTwitchUsername() = %q", got)
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.SetLayout(layout.Config{Edge: layout.EdgeLeft, Size: 35, ShowSecondary: true})
	cfg.SetAutoScroll(false)
	cfg.SetNotificationsEnabled(true)
	cfg.SetTheme("dracula")
	cfg.SetTwitchChannel("somebody")

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var onDisk map[string]any
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("saved file is not JSON: %v", err)
	}
	if onDisk["dock_edge"] != "left" {
		t.Errorf("dock_edge on disk = %v", onDisk["dock_edge"])
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.GetLayout() != cfg.GetLayout() {
		t.Errorf("layout = %+v, want %+v", loaded.GetLayout(), cfg.GetLayout())
	}
	if loaded.GetAutoScroll() || !loaded.GetNotificationsEnabled() {
		t.Error("toggles not persisted")
	}
	if loaded.GetTheme() != "dracula" || loaded.GetTwitchChannel() != "somebody" {
		t.Error("strings not persisted")
	}
}

func TestConfig_SaveWithoutPath(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Save(); !pErrors.Is(err, pErrors.KindConfig) {
		t.Errorf("Save() = %v, want config error", err)
	}
}

func TestConfig_ConcurrentAccess(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				cfg.SetLayout(layout.Config{Edge: layout.EdgeBottom, Size: 10 + id + j, ShowSecondary: true})
				cfg.SetTheme(fmt.Sprintf("theme-%d", id))
			}
		}(i)
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = cfg.GetLayout()
			if err := cfg.Save(); err != nil {
				t.Errorf("Save() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if _, err := LoadFrom(cfg.Path()); err != nil {
		t.Errorf("file corrupted by concurrent saves: %v", err)
	}
}
