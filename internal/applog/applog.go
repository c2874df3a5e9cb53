// Package applog wraps zerolog with the two console levels the CDN prints
// during startup and on request-handling faults: an info line and a fatal
// error line that exits the process.
package applog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// Info logs a console-pretty informational line.
func Info(msg string, args ...any) {
	logger.Info().Msgf(msg, args...)
}

// Warn logs a warning, used for auth rejections (§4.5, §4.7).
func Warn(msg string, args ...any) {
	logger.Warn().Msgf(msg, args...)
}

// Fatal logs an error and terminates the process non-zero. Used for
// FatalStartup conditions: config load failure, cache dial failure, a
// release build missing CDN_SECRET, or a failed port bind.
func Fatal(msg string, args ...any) {
	logger.Error().Msgf(msg, args...)
	os.Exit(1)
}

// Banner prints the startup banner. Deliberately minimal: spec.md scopes
// command-line banner printing out as an external collaborator concern.
func Banner(version string, firewallEnabled bool) {
	state := "disabled"
	if firewallEnabled {
		state = "enabled"
	}
	logger.Info().Msgf("imagecdn %s starting (firewall: %s)", version, state)
}
