package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// NewTestLogger returns a Logger backed by a nop zerolog instance.
func NewTestLogger() Logger {
	return Logger{Logger: zerolog.Nop()}
}

// NewBufferedTestLogger returns a Logger that writes JSON events to w,
// so tests can assert on emitted log lines. It resets the zerolog global
// level so events are not suppressed by a level set in an earlier test.
func NewBufferedTestLogger(w io.Writer) Logger {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	return Logger{Logger: zerolog.New(w)}
}
