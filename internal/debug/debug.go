// Package debug provides opt-in diagnostics for the line editor.
//
// Nothing is written unless INTERACTIVE_DEBUG_LOG names a file, because the
// terminal itself is owned by the editor while a prompt is active and any
// stray output would corrupt the line being edited.
package debug

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	envEnableLog   = "INTERACTIVE_DEBUG_LOG"
	envAssertPanic = "INTERACTIVE_ASSERT"
)

var (
	enableAssert bool
	logger       = zerolog.Nop()
	logfile      io.WriteCloser
)

func init() {
	_, enableAssert = os.LookupEnv(envAssertPanic)
	if path := os.Getenv(envEnableLog); path != "" {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		if err != nil {
			return
		}
		setOutput(f)
	}
}

func setOutput(w io.WriteCloser) {
	logfile = w
	logger = zerolog.New(w).With().Timestamp().Logger()
}

// Log writes a debug record. kv is a flat list of alternating keys and values.
func Log(msg string, kv ...any) {
	ev := logger.Debug()
	if len(kv) > 0 {
		ev = ev.Fields(kv)
	}
	ev.Msg(msg)
}

// Logf writes a formatted debug record.
func Logf(format string, args ...any) {
	logger.Debug().Msgf(format, args...)
}

// Assert records a violated condition. It panics only when INTERACTIVE_ASSERT is set.
func Assert(cond bool, msg string) {
	if cond {
		return
	}
	logger.Error().Str("assert", msg).Msg("assertion failed")
	if enableAssert {
		panic(msg)
	}
}

// AssertNoError is Assert for an error value.
func AssertNoError(err error) {
	if err == nil {
		return
	}
	logger.Error().Err(err).Msg("unexpected error")
	if enableAssert {
		panic(err)
	}
}

// Fatal records a broken contract and panics unconditionally.
func Fatal(err error) {
	logger.Error().Err(err).Msg("fatal")
	panic(fmt.Errorf("interactive: %w", err))
}

// Close flushes and closes the debug log file, if any.
func Close() {
	if logfile == nil {
		return
	}
	_ = logfile.Close()
	logfile = nil
	logger = zerolog.Nop()
}
