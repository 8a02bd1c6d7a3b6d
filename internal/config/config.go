package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/schedfootball/internal/football"
	"github.com/Iron-Ham/schedfootball/internal/logging"
	"github.com/Iron-Ham/schedfootball/internal/sched"
)

// AppName names the config directory and the env prefix.
const AppName = "schedfootball"

// EnvPrefix is the prefix for environment overrides, e.g.
// SCHEDFOOTBALL_GAME_GAME_TIME=5s.
const EnvPrefix = "SCHEDFOOTBALL"

// Config represents the complete schedfootball configuration
type Config struct {
	Game    GameConfig    `mapstructure:"game" yaml:"game"`
	Sched   SchedConfig   `mapstructure:"sched" yaml:"sched"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Report  ReportConfig  `mapstructure:"report" yaml:"report"`
	TUI     TUIConfig     `mapstructure:"tui" yaml:"tui"`
}

// GameConfig controls a single game and how many are played
type GameConfig struct {
	// GameTime is how long the referee measures the ball (default: 10s)
	GameTime time.Duration `mapstructure:"game_time" yaml:"game_time"`
	// Players per team. 0 uses one per available CPU.
	Players int `mapstructure:"players" yaml:"players"`
	// CheckinTimeout bounds each team's check-in (default: 30s, 0 = wait forever)
	CheckinTimeout time.Duration `mapstructure:"checkin_timeout" yaml:"checkin_timeout"`
	// CheckinPoll is how often the referee polls the check-in count (default: 1ms)
	CheckinPoll time.Duration `mapstructure:"checkin_poll" yaml:"checkin_poll"`
	// FanSpin and FanSleep shape each crazy fan burst (default: 1ms, 2ms)
	FanSpin  time.Duration `mapstructure:"fan_spin" yaml:"fan_spin"`
	FanSleep time.Duration `mapstructure:"fan_sleep" yaml:"fan_sleep"`
	// IndexMapping is "same" or "reversed" (default: "same")
	IndexMapping string `mapstructure:"index_mapping" yaml:"index_mapping"`
	// Runs is the number of games played back to back (default: 1)
	Runs int `mapstructure:"runs" yaml:"runs"`
	// DisableGC turns the garbage collector off while games run (default: true)
	DisableGC bool `mapstructure:"disable_gc" yaml:"disable_gc"`
	// StopFile ends the current game when this file appears. Empty disables it.
	StopFile string `mapstructure:"stop_file" yaml:"stop_file"`
	// Levels are the scheduler levels of each priority class
	Levels LevelsConfig `mapstructure:"levels" yaml:"levels"`
}

// LevelsConfig holds one scheduler level per priority class
type LevelsConfig struct {
	LowDefense int `mapstructure:"low_defense" yaml:"low_defense"`
	MidDefense int `mapstructure:"mid_defense" yaml:"mid_defense"`
	Offense    int `mapstructure:"offense" yaml:"offense"`
	HiDefense  int `mapstructure:"hi_defense" yaml:"hi_defense"`
	CrazyFan   int `mapstructure:"crazy_fan" yaml:"crazy_fan"`
	Referee    int `mapstructure:"referee" yaml:"referee"`
}

// SchedConfig selects the scheduling policy and lock implementation
type SchedConfig struct {
	// Policy is "fifo" or "other" (default: "fifo")
	Policy string `mapstructure:"policy" yaml:"policy"`
	// Lock is "pi" or "plain" (default: "pi")
	Lock string `mapstructure:"lock" yaml:"lock"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// Format is "text" or "json" (default: "text")
	Format string `mapstructure:"format" yaml:"format"`
	// Dir is where the log file is written. Empty logs to stderr.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
}

// ReportConfig controls the YAML run report
type ReportConfig struct {
	// File receives a YAML report of every run. Empty disables the report.
	File string `mapstructure:"file" yaml:"file"`
}

// TUIConfig controls the live scoreboard
type TUIConfig struct {
	// Enabled shows the scoreboard instead of plain log output (default: false)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// RefreshMs is how often the scoreboard samples the ball (default: 100)
	RefreshMs int `mapstructure:"refresh_ms" yaml:"refresh_ms"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	opts := football.DefaultOptions()
	levels := opts.Levels
	return &Config{
		Game: GameConfig{
			GameTime:       opts.GameTime,
			Players:        0, // One per available CPU
			CheckinTimeout: opts.CheckinTimeout,
			CheckinPoll:    opts.CheckinPoll,
			FanSpin:        opts.FanSpin,
			FanSleep:       opts.FanSleep,
			IndexMapping:   string(opts.IndexMapping),
			Runs:           1,
			DisableGC:      true,
			StopFile:       "",
			Levels: LevelsConfig{
				LowDefense: levels.Level(football.PriorityLowDefense),
				MidDefense: levels.Level(football.PriorityMidDefense),
				Offense:    levels.Level(football.PriorityOffense),
				HiDefense:  levels.Level(football.PriorityHiDefense),
				CrazyFan:   levels.Level(football.PriorityCrazyFan),
				Referee:    levels.Level(football.PriorityReferee),
			},
		},
		Sched: SchedConfig{
			Policy: string(sched.PolicyFIFO),
			Lock:   string(opts.LockKind),
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     logging.FormatText,
			Dir:        "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Report: ReportConfig{
			File: "",
		},
		TUI: TUIConfig{
			Enabled:   false,
			RefreshMs: 100,
		},
	}
}

// Levels converts the configured levels into football.Levels.
func (l LevelsConfig) Levels() football.Levels {
	var out football.Levels
	out[football.PriorityLowDefense] = l.LowDefense
	out[football.PriorityMidDefense] = l.MidDefense
	out[football.PriorityOffense] = l.Offense
	out[football.PriorityHiDefense] = l.HiDefense
	out[football.PriorityCrazyFan] = l.CrazyFan
	out[football.PriorityReferee] = l.Referee
	return out
}

// Options builds the football options for one game. Values are assumed to
// have passed Validate.
func (c *Config) Options() football.Options {
	return football.Options{
		Players:        c.Game.Players,
		GameTime:       c.Game.GameTime,
		CheckinTimeout: c.Game.CheckinTimeout,
		CheckinPoll:    c.Game.CheckinPoll,
		FanSpin:        c.Game.FanSpin,
		FanSleep:       c.Game.FanSleep,
		IndexMapping:   football.IndexMapping(c.Game.IndexMapping),
		LockKind:       sched.LockKind(c.Sched.Lock),
		Levels:         c.Game.Levels.Levels(),
	}
}

// LoggerOptions builds the logging options.
func (c *Config) LoggerOptions() logging.Options {
	return logging.Options{
		Dir:    c.Logging.Dir,
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Rotation: logging.RotationConfig{
			MaxSizeMB:  c.Logging.MaxSizeMB,
			MaxBackups: c.Logging.MaxBackups,
		},
	}
}

// RefreshInterval returns the scoreboard refresh interval as a time.Duration
func (c *TUIConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshMs) * time.Millisecond
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Game defaults
	viper.SetDefault("game.game_time", defaults.Game.GameTime)
	viper.SetDefault("game.players", defaults.Game.Players)
	viper.SetDefault("game.checkin_timeout", defaults.Game.CheckinTimeout)
	viper.SetDefault("game.checkin_poll", defaults.Game.CheckinPoll)
	viper.SetDefault("game.fan_spin", defaults.Game.FanSpin)
	viper.SetDefault("game.fan_sleep", defaults.Game.FanSleep)
	viper.SetDefault("game.index_mapping", defaults.Game.IndexMapping)
	viper.SetDefault("game.runs", defaults.Game.Runs)
	viper.SetDefault("game.disable_gc", defaults.Game.DisableGC)
	viper.SetDefault("game.stop_file", defaults.Game.StopFile)
	viper.SetDefault("game.levels.low_defense", defaults.Game.Levels.LowDefense)
	viper.SetDefault("game.levels.mid_defense", defaults.Game.Levels.MidDefense)
	viper.SetDefault("game.levels.offense", defaults.Game.Levels.Offense)
	viper.SetDefault("game.levels.hi_defense", defaults.Game.Levels.HiDefense)
	viper.SetDefault("game.levels.crazy_fan", defaults.Game.Levels.CrazyFan)
	viper.SetDefault("game.levels.referee", defaults.Game.Levels.Referee)

	// Sched defaults
	viper.SetDefault("sched.policy", defaults.Sched.Policy)
	viper.SetDefault("sched.lock", defaults.Sched.Lock)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	// Report defaults
	viper.SetDefault("report.file", defaults.Report.File)

	// TUI defaults
	viper.SetDefault("tui.enabled", defaults.TUI.Enabled)
	viper.SetDefault("tui.refresh_ms", defaults.TUI.RefreshMs)
}

// BindEnv makes every key overridable from the environment:
// game.game_time is read from SCHEDFOOTBALL_GAME_GAME_TIME.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
