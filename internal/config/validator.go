package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/schedfootball/internal/football"
	"github.com/Iron-Ham/schedfootball/internal/logging"
	"github.com/Iron-Ham/schedfootball/internal/sched"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "game.game_time")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// maxRuns caps back-to-back games; each one pins every CPU.
const maxRuns = 1000

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateGame()...)
	errors = append(errors, c.validateLevels()...)
	errors = append(errors, c.validateSched()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateTUI()...)

	return errors
}

// validateGame validates the GameConfig
func (c *Config) validateGame() []ValidationError {
	var errors []ValidationError
	g := c.Game

	if g.GameTime <= 0 {
		errors = append(errors, ValidationError{
			Field:   "game.game_time",
			Value:   g.GameTime,
			Message: "must be positive",
		})
	}

	if g.Players < 0 {
		errors = append(errors, ValidationError{
			Field:   "game.players",
			Value:   g.Players,
			Message: "must be non-negative (0 uses one player per CPU)",
		})
	}

	if g.CheckinTimeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "game.checkin_timeout",
			Value:   g.CheckinTimeout,
			Message: "must be non-negative (0 waits forever)",
		})
	}

	if g.CheckinPoll <= 0 {
		errors = append(errors, ValidationError{
			Field:   "game.checkin_poll",
			Value:   g.CheckinPoll,
			Message: "must be positive",
		})
	} else if g.CheckinTimeout > 0 && g.CheckinPoll > g.CheckinTimeout {
		errors = append(errors, ValidationError{
			Field:   "game.checkin_poll",
			Value:   g.CheckinPoll,
			Message: fmt.Sprintf("must not exceed game.checkin_timeout (%v)", g.CheckinTimeout),
		})
	}

	if g.FanSpin < 0 {
		errors = append(errors, ValidationError{
			Field:   "game.fan_spin",
			Value:   g.FanSpin,
			Message: "must be non-negative",
		})
	}

	if g.FanSleep < 0 {
		errors = append(errors, ValidationError{
			Field:   "game.fan_sleep",
			Value:   g.FanSleep,
			Message: "must be non-negative",
		})
	}

	if !slices.Contains(football.ValidIndexMappings(), g.IndexMapping) {
		errors = append(errors, ValidationError{
			Field:   "game.index_mapping",
			Value:   g.IndexMapping,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(football.ValidIndexMappings(), ", ")),
		})
	}

	if g.Runs < 1 || g.Runs > maxRuns {
		errors = append(errors, ValidationError{
			Field:   "game.runs",
			Value:   g.Runs,
			Message: fmt.Sprintf("must be between 1 and %d", maxRuns),
		})
	}

	return errors
}

// validateLevels checks range and ordering of the priority levels
func (c *Config) validateLevels() []ValidationError {
	if err := c.Game.Levels.Levels().Validate(); err != nil {
		return []ValidationError{{
			Field:   "game.levels",
			Value:   c.Game.Levels,
			Message: err.Error(),
		}}
	}
	return nil
}

// validateSched validates the SchedConfig
func (c *Config) validateSched() []ValidationError {
	var errors []ValidationError

	if _, err := sched.ParsePolicy(c.Sched.Policy); err != nil {
		errors = append(errors, ValidationError{
			Field:   "sched.policy",
			Value:   c.Sched.Policy,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(sched.ValidPolicies(), ", ")),
		})
	}

	if _, err := sched.ParseLockKind(c.Sched.Lock); err != nil {
		errors = append(errors, ValidationError{
			Field:   "sched.lock",
			Value:   c.Sched.Lock,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(sched.ValidLockKinds(), ", ")),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(logging.ValidLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.ValidLevels(), ", ")),
		})
	}

	if c.Logging.Format != "" && !slices.Contains(logging.ValidFormats(), c.Logging.Format) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   c.Logging.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.ValidFormats(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	if c.TUI.RefreshMs < 10 {
		return []ValidationError{{
			Field:   "tui.refresh_ms",
			Value:   c.TUI.RefreshMs,
			Message: "must be at least 10",
		}}
	}
	return nil
}
