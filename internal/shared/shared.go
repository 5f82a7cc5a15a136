// package shared defines shared helpers
package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger creates a new [log.Logger] instance with the specified [io.Writer], with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr]. The level is read once from the
// LIKEDSYNC_LOG_LEVEL environment variable (info when unset or unparseable).
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true, Level: LevelFromEnv()}
	return log.NewWithOptions(w, opts)
}

// LevelFromEnv parses the LIKEDSYNC_LOG_LEVEL environment variable into a [log.Level].
func LevelFromEnv() log.Level {
	raw := os.Getenv("LIKEDSYNC_LOG_LEVEL")
	if raw == "" {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(raw)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// GenerateState generates a random state token for the OAuth authorization request.
func GenerateState() string {
	return uuid.New().String()
}
