package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

type LogLevel int

const (
	LevelInfo LogLevel = iota + 1
	LevelWarn
	LevelError
	LevelFatal
)

// ParseLevel maps info, warn, error and fatal to a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(s) {
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// Interface logger interface
type Logger interface {
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Errorf(string, ...interface{})
	Fatalf(string, ...interface{})
}

type logger struct {
	sync.Mutex
	lvl        LogLevel
	infoLabel  string
	warnLabel  string
	errorLabel string
	fatalLabel string
	w          io.Writer
}

// NewLogger writes log lines to w.
func NewLogger(w io.Writer) *logger {
	return &logger{
		lvl:        LevelInfo,
		infoLabel:  "[INFO] ",
		warnLabel:  "[WARN] ",
		errorLabel: "[ERROR] ",
		fatalLabel: "[FATAL] ",
		w:          w,
	}
}

// Nop discards everything.
func Nop() *logger {
	return NewLogger(io.Discard)
}

func (l *logger) SetLevel(lvl LogLevel) {
	l.Lock()
	defer l.Unlock()
	l.lvl = lvl
}

func (l *logger) logf(lvl LogLevel, label, format string, v ...interface{}) {
	l.Lock()
	defer l.Unlock()
	if lvl < l.lvl {
		return
	}
	fmt.Fprintf(l.w, label+format+"\n", v...)
}

func (l *logger) Infof(format string, v ...interface{}) {
	l.logf(LevelInfo, l.infoLabel, format, v...)
}

func (l *logger) Warnf(format string, v ...interface{}) {
	l.logf(LevelWarn, l.warnLabel, format, v...)
}

func (l *logger) Errorf(format string, v ...interface{}) {
	l.logf(LevelError, l.errorLabel, format, v...)
}

func (l *logger) Fatalf(format string, v ...interface{}) {
	l.logf(LevelFatal, l.fatalLabel, format, v...)
}
