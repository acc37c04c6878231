// Package logging configures the side-channel diagnostic log. Grading
// results go to stdout as NDJSON; everything else goes here, so the two
// streams never mix.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Verbosity levels, matching the LOG_LEVEL contract:
// 0 = silent, 1 = info, 2 = debug.
const (
	LevelSilent = 0
	LevelInfo   = 1
	LevelDebug  = 2
)

// Env vars the CLI flags fall back to.
const (
	EnvLogFile  = "LOG_FILE"
	EnvLogLevel = "LOG_LEVEL"
)

const fileMode = 0600

// Options describe where and how verbosely to log.
type Options struct {
	// FilePath is the log file destination. Empty means stderr.
	FilePath string
	// Level is one of LevelSilent, LevelInfo, LevelDebug.
	Level int
}

// ParseLevel converts a numeric level string to a verbosity level,
// defaulting to info for anything unrecognized.
func ParseLevel(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < LevelSilent || n > LevelDebug {
		return LevelInfo
	}
	return n
}

// Setup installs the default slog logger per the given options and
// returns a close function for the log file (a no-op for stderr).
// The log file is truncated on each run.
func Setup(opts Options) (func() error, error) {
	var w io.Writer = os.Stderr
	closer := func() error { return nil }

	if opts.FilePath != "" {
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", opts.FilePath, err)
		}
		w = f
		closer = f.Close
	}

	var level slog.Level
	switch opts.Level {
	case LevelSilent:
		w = io.Discard
		level = slog.LevelError
	case LevelDebug:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))

	return closer, nil
}
