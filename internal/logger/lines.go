package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Lines adapts a sugared logger to the hal.Logger line interface.
// Lines starting with "clock panic" are logged at error level, everything
// else at info.
type Lines struct {
	l *zap.SugaredLogger
}

// NewLines wraps l. A nil l means the global logger at the time of each write.
func NewLines(l *zap.SugaredLogger) *Lines {
	return &Lines{l: l}
}

func (w *Lines) logger() *zap.SugaredLogger {
	if w.l != nil {
		return w.l
	}

	return global
}

// WriteLineString logs s as one message.
func (w *Lines) WriteLineString(s string) {
	s = strings.TrimRight(s, "\r\n")
	if strings.HasPrefix(s, "clock panic") {
		w.logger().Error(s)

		return
	}

	w.logger().Info(s)
}

// WriteLineBytes logs b as one message.
func (w *Lines) WriteLineBytes(b []byte) {
	w.WriteLineString(string(b))
}
