package lotmap

import (
	"io"

	"github.com/sirupsen/logrus"
)

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// logger is the active package logger. lotmap is single-threaded; call
// SetLogger before building composites.
var logger = newNopLogger()

// SetLogger configures the logger for lotmap and its sub-packages. By
// default nothing is logged. Pass nil to restore the silent default.
//
// Levels used:
//   - Debug: recreate, unsupported orientation pairs, tree dumps
//   - Warn: unresolved or cyclic lots
//
// Example:
//
//	l := logrus.New()
//	l.SetLevel(logrus.DebugLevel)
//	lotmap.SetLogger(l)
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = newNopLogger()
	}
	logger = l
}

// Logger returns the current logger. Sub-packages (mapfs, paint) call this
// to share the same configuration.
func Logger() logrus.FieldLogger {
	return logger
}
