// internal/logging/logging.go
package logging

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to w at the given level. format is "json" for
// structured output; anything else selects the text formatter.
func New(level logrus.Level, format string, w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.DateTime,
		})
	}
	return l
}

// Discard returns a logger that drops everything, for tests and one-shot CLI runs.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
