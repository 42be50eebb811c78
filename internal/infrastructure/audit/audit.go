// Package audit provides a durable append-only log for authentication
// failures. Each entry carries a timestamp and a correlation id so individual
// attempts can be traced across log files. Write failures are swallowed: the
// audit trail must never mask or fail the request that triggered it.
package audit

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Log writes authentication failure records as JSON lines to a file.
type Log struct {
	log zerolog.Logger
}

// Open creates (or appends to) the audit file at path, creating parent
// directories as needed. When the file cannot be opened the returned Log
// discards entries and the error is reported once to the caller.
func Open(path string) (*Log, error) {
	var w io.Writer
	var openErr error

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		openErr = err
	} else if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err != nil {
		openErr = err
	} else {
		w = f
	}
	if w == nil {
		w = io.Discard
	}

	l := zerolog.New(w).With().Timestamp().Logger()
	return &Log{log: l}, openErr
}

// AuthFailure records a failed authentication attempt. The username may be
// empty when the attempt carried no identity (e.g. a tampered refresh token).
func (a *Log) AuthFailure(username, reason string) {
	a.log.Warn().
		Str("correlation_id", uuid.NewString()).
		Str("username", username).
		Str("reason", reason).
		Msg("authentication failure")
}
