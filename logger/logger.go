// Package logger provides the minimal leveled logger used by huffpack.
package logger

import (
	"io"
	"log"
)

// Logger is the logging interface accepted by huffpack.Codec.
type Logger interface {
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type stdLogger struct {
	l *log.Logger
}

// New returns a Logger that writes timestamped lines to w.
func New(w io.Writer) Logger {
	return &stdLogger{l: log.New(w, "", log.LstdFlags)}
}

// Std returns a Logger that writes through the standard log package.
func Std() Logger {
	return &stdLogger{l: log.Default()}
}

func (s *stdLogger) Infof(format string, v ...any)  { s.l.Printf("[INFO] "+format, v...) }
func (s *stdLogger) Errorf(format string, v ...any) { s.l.Printf("[ERROR] "+format, v...) }

type discard struct{}

// Discard is a Logger that drops every message.
var Discard Logger = discard{}

func (discard) Infof(string, ...any)  {}
func (discard) Errorf(string, ...any) {}
