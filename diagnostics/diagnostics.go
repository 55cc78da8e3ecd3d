// Package diagnostics re-expresses the teacher's absent global debug
// state as an explicit struct threaded at construction time, per the
// spec's re-architecture note ("Re-express global state as explicit
// Diagnostics struct"). It is deliberately kept out of the core codec
// packages, which are pure-library and carry no logging dependency of
// their own; callers that want visibility into malformed-but-recoverable
// input wire one of these into codec.Parser/codec.Writer explicitly.
package diagnostics

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Diagnostics bundles a structured logger with a per-session
// correlation ID, the same role github.com/google/uuid plays for
// request/session correlation elsewhere in the retrieval pack.
type Diagnostics struct {
	Logger        *log.Logger
	CorrelationID uuid.UUID
}

// New creates a Diagnostics writing to w (os.Stderr if w is nil),
// stamping a fresh correlation ID.
func New(w io.Writer) *Diagnostics {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "exicore",
	})
	return &Diagnostics{
		Logger:        logger,
		CorrelationID: uuid.New(),
	}
}

// Warning logs a recoverable, malformed-but-tolerated condition (a
// header field that could be defaulted, an ignored unknown PI, etc.).
func (d *Diagnostics) Warning(msg string, keyvals ...any) {
	if d == nil || d.Logger == nil {
		return
	}
	d.Logger.With("correlation_id", d.CorrelationID.String()).Warn(msg, keyvals...)
}

// Error logs a non-recoverable condition the caller is about to return
// as an ExiError, for post-mortem visibility.
func (d *Diagnostics) Error(msg string, keyvals ...any) {
	if d == nil || d.Logger == nil {
		return
	}
	d.Logger.With("correlation_id", d.CorrelationID.String()).Error(msg, keyvals...)
}

// Noop is a Diagnostics whose logger discards everything, the explicit
// equivalent of the teacher's DefaultErrorHandler no-op pair, for
// callers that don't want any output.
func Noop() *Diagnostics {
	return New(io.Discard)
}
