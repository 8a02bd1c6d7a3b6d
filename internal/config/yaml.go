package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// gameYAML mirrors GameConfig with durations spelled the way viper reads
// them back ("10s" rather than nanoseconds).
type gameYAML struct {
	GameTime       string       `yaml:"game_time"`
	Players        int          `yaml:"players"`
	CheckinTimeout string       `yaml:"checkin_timeout"`
	CheckinPoll    string       `yaml:"checkin_poll"`
	FanSpin        string       `yaml:"fan_spin"`
	FanSleep       string       `yaml:"fan_sleep"`
	IndexMapping   string       `yaml:"index_mapping"`
	Runs           int          `yaml:"runs"`
	DisableGC      bool         `yaml:"disable_gc"`
	StopFile       string       `yaml:"stop_file"`
	Levels         LevelsConfig `yaml:"levels"`
}

// MarshalYAML implements yaml.Marshaler.
func (g GameConfig) MarshalYAML() (any, error) {
	return gameYAML{
		GameTime:       g.GameTime.String(),
		Players:        g.Players,
		CheckinTimeout: g.CheckinTimeout.String(),
		CheckinPoll:    g.CheckinPoll.String(),
		FanSpin:        g.FanSpin.String(),
		FanSleep:       g.FanSleep.String(),
		IndexMapping:   g.IndexMapping,
		Runs:           g.Runs,
		DisableGC:      g.DisableGC,
		StopFile:       g.StopFile,
		Levels:         g.Levels,
	}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (g *GameConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw gameYAML
	if err := node.Decode(&raw); err != nil {
		return err
	}

	durations := []struct {
		field string
		in    string
		out   *time.Duration
	}{
		{"game_time", raw.GameTime, &g.GameTime},
		{"checkin_timeout", raw.CheckinTimeout, &g.CheckinTimeout},
		{"checkin_poll", raw.CheckinPoll, &g.CheckinPoll},
		{"fan_spin", raw.FanSpin, &g.FanSpin},
		{"fan_sleep", raw.FanSleep, &g.FanSleep},
	}
	for _, d := range durations {
		if d.in == "" {
			continue
		}
		v, err := time.ParseDuration(d.in)
		if err != nil {
			return fmt.Errorf("game.%s: %w", d.field, err)
		}
		*d.out = v
	}

	g.Players = raw.Players
	g.IndexMapping = raw.IndexMapping
	g.Runs = raw.Runs
	g.DisableGC = raw.DisableGC
	g.StopFile = raw.StopFile
	g.Levels = raw.Levels
	return nil
}

// Marshal renders cfg as a YAML config file.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteFile writes cfg to path, creating the parent directory. An existing
// file is only replaced when overwrite is set.
func WriteFile(path string, cfg *Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
