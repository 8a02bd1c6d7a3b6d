package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/schedfootball/internal/football"
	"github.com/Iron-Ham/schedfootball/internal/sched"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	// Verify default game config
	if cfg.Game.GameTime != 10*time.Second {
		t.Errorf("Game.GameTime = %v, want 10s", cfg.Game.GameTime)
	}
	if cfg.Game.Players != 0 {
		t.Errorf("Game.Players = %d, want 0 (one per CPU)", cfg.Game.Players)
	}
	if cfg.Game.CheckinTimeout != 30*time.Second {
		t.Errorf("Game.CheckinTimeout = %v, want 30s", cfg.Game.CheckinTimeout)
	}
	if cfg.Game.IndexMapping != "same" {
		t.Errorf("Game.IndexMapping = %q, want %q", cfg.Game.IndexMapping, "same")
	}
	if cfg.Game.Runs != 1 {
		t.Errorf("Game.Runs = %d, want 1", cfg.Game.Runs)
	}
	if !cfg.Game.DisableGC {
		t.Error("Game.DisableGC should be true by default")
	}

	// Verify default levels
	want := LevelsConfig{LowDefense: 2, MidDefense: 3, Offense: 5, HiDefense: 10, CrazyFan: 15, Referee: 20}
	if cfg.Game.Levels != want {
		t.Errorf("Game.Levels = %+v, want %+v", cfg.Game.Levels, want)
	}

	// Verify default sched config
	if cfg.Sched.Policy != "fifo" {
		t.Errorf("Sched.Policy = %q, want %q", cfg.Sched.Policy, "fifo")
	}
	if cfg.Sched.Lock != "pi" {
		t.Errorf("Sched.Lock = %q, want %q", cfg.Sched.Lock, "pi")
	}

	// Verify default logging config
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.MaxSizeMB != 10 {
		t.Errorf("Logging.MaxSizeMB = %d, want 10", cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxBackups != 3 {
		t.Errorf("Logging.MaxBackups = %d, want 3", cfg.Logging.MaxBackups)
	}

	if cfg.TUI.Enabled {
		t.Error("TUI.Enabled should be false by default")
	}
}

func TestConfig_Options(t *testing.T) {
	cfg := Default()
	cfg.Game.Players = 3
	cfg.Game.IndexMapping = "reversed"
	cfg.Sched.Lock = "plain"

	opts := cfg.Options()

	if opts.Players != 3 {
		t.Errorf("Players = %d, want 3", opts.Players)
	}
	if opts.IndexMapping != football.MappingReversed {
		t.Errorf("IndexMapping = %q, want %q", opts.IndexMapping, football.MappingReversed)
	}
	if opts.LockKind != sched.LockPlain {
		t.Errorf("LockKind = %q, want %q", opts.LockKind, sched.LockPlain)
	}
	if opts.Levels != football.DefaultLevels() {
		t.Errorf("Levels = %v, want %v", opts.Levels, football.DefaultLevels())
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("options from default config should be valid: %v", err)
	}
}

func TestConfig_LoggerOptions(t *testing.T) {
	cfg := Default()
	cfg.Logging.Dir = "/tmp/logs"
	cfg.Logging.MaxSizeMB = 7

	opts := cfg.LoggerOptions()
	if opts.Dir != "/tmp/logs" {
		t.Errorf("Dir = %q, want /tmp/logs", opts.Dir)
	}
	if opts.Rotation.MaxSizeMB != 7 {
		t.Errorf("Rotation.MaxSizeMB = %d, want 7", opts.Rotation.MaxSizeMB)
	}
}

func TestTUIConfig_RefreshInterval(t *testing.T) {
	tests := []struct {
		ms       int
		expected time.Duration
	}{
		{100, 100 * time.Millisecond},
		{1000, time.Second},
		{0, 0},
	}

	for _, tt := range tests {
		cfg := TUIConfig{RefreshMs: tt.ms}
		if got := cfg.RefreshInterval(); got != tt.expected {
			t.Errorf("RefreshInterval() with %dms = %v, want %v", tt.ms, got, tt.expected)
		}
	}
}

func TestSetDefaultsAndLoad(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	def := Default()
	if cfg.Game != def.Game {
		t.Errorf("Game = %+v, want %+v", cfg.Game, def.Game)
	}
	if cfg.Sched != def.Sched {
		t.Errorf("Sched = %+v, want %+v", cfg.Sched, def.Sched)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	SetDefaults()
	viper.Set("sched.lock", "spin")
	viper.Set("game.runs", 0)

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail for invalid config")
	}
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Load() error type = %T, want ValidationErrors", err)
	}
	if len(verrs) != 2 {
		t.Errorf("got %d validation errors, want 2: %v", len(verrs), verrs)
	}
}

func TestBindEnv(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	SetDefaults()
	BindEnv()
	t.Setenv("SCHEDFOOTBALL_GAME_GAME_TIME", "3s")
	t.Setenv("SCHEDFOOTBALL_SCHED_LOCK", "plain")
	t.Setenv("SCHEDFOOTBALL_GAME_LEVELS_REFEREE", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Game.GameTime != 3*time.Second {
		t.Errorf("Game.GameTime = %v, want 3s", cfg.Game.GameTime)
	}
	if cfg.Sched.Lock != "plain" {
		t.Errorf("Sched.Lock = %q, want plain", cfg.Sched.Lock)
	}
	if cfg.Game.Levels.Referee != 50 {
		t.Errorf("Game.Levels.Referee = %d, want 50", cfg.Game.Levels.Referee)
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	written := Default()
	written.Game.GameTime = 2500 * time.Millisecond
	written.Game.CheckinTimeout = 0
	written.Game.IndexMapping = "reversed"
	written.Game.Levels.Referee = 42

	if err := WriteFile(path, written, false); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "game_time: 2.5s") {
		t.Errorf("durations should be written human-readable:\n%s", data)
	}

	SetDefaults()
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Game != written.Game {
		t.Errorf("Game = %+v, want %+v", cfg.Game, written.Game)
	}
}

func TestWriteFile_NoOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("keep: me\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(path, Default(), false); err == nil {
		t.Error("WriteFile() should refuse to replace an existing file")
	}
	if err := WriteFile(path, Default(), true); err != nil {
		t.Errorf("WriteFile() with overwrite error = %v", err)
	}
}

func TestGameConfig_UnmarshalYAML_BadDuration(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte("game:\n  game_time: soon\n"), &cfg)
	if err == nil || !strings.Contains(err.Error(), "game.game_time") {
		t.Errorf("unmarshal error = %v, want game.game_time error", err)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := ConfigDir(); got != filepath.Join("/xdg", "schedfootball") {
		t.Errorf("ConfigDir() = %q", got)
	}
	if got := ConfigFile(); got != filepath.Join("/xdg", "schedfootball", "config.yaml") {
		t.Errorf("ConfigFile() = %q", got)
	}
}
