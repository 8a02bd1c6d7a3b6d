// Package logging provides structured logging for football runs.
//
// It wraps log/slog with persistent context attributes (run, phase, team)
// and an optional size-rotated log file, so that a batch of runs can be
// analyzed after the fact.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(logging.Options{Level: "info", Format: "text"})
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	runLogger := logger.WithRun(runID)
//	runLogger.WithPhase("measuring").Info("game started", "game_time", "10s")
//
// # Where Logs Go
//
// With an empty Options.Dir the logger writes to Options.Output (stderr by
// default). With a directory it writes to {dir}/schedfootball.log through a
// [RotatingWriter].
//
// # Thread Safety
//
// All types are safe for concurrent use. Child loggers share the parent's
// writer.
package logging
