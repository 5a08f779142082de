// Package log provides named, leveled loggers backed by go-logging.
//
// One go-logging backend is installed at init and never replaced. SetSink
// and SetLevel only change state behind that backend, so they are safe to
// call while other goroutines log.
package log

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	sink    = &swapWriter{w: os.Stderr}
	leveled = &levelBackend{}
)

// Logger is the leveled logging surface used across the renderer.
type Logger interface {
	Debug(v ...any)
	Debugf(format string, v ...any)

	Info(v ...any)
	Infof(format string, v ...any)

	Notice(v ...any)
	Noticef(format string, v ...any)

	Warning(v ...any)
	Warningf(format string, v ...any)

	Error(v ...any)
	Errorf(format string, v ...any)
}

// New returns a logger tagged with the given module name.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects all loggers to w. A record being written while the sink
// changes goes entirely to the old or the new writer; once SetSink returns,
// nothing more is written to the old one.
func SetSink(w io.Writer) {
	sink.swap(w)
}

// SetLevel sets the verbosity for every module.
func SetLevel(level Level) {
	leveled.SetLevel(toLogging(level), "")
}

// swapWriter serializes writes and lets the destination change between them.
type swapWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *swapWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *swapWriter) swap(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = w
}

// levelBackend applies one level to every module. go-logging's own module
// leveler keeps its levels in an unguarded map.
type levelBackend struct {
	backend logging.Backend
	level   atomic.Int32
}

func (b *levelBackend) Log(level logging.Level, calldepth int, rec *logging.Record) error {
	return b.backend.Log(level, calldepth+1, rec)
}

func (b *levelBackend) GetLevel(string) logging.Level {
	return logging.Level(b.level.Load())
}

func (b *levelBackend) SetLevel(level logging.Level, _ string) {
	b.level.Store(int32(level))
}

func (b *levelBackend) IsEnabledFor(level logging.Level, module string) bool {
	return level <= b.GetLevel(module)
}

func toLogging(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	default:
		return logging.NOTICE
	}
}

func init() {
	backend := logging.NewLogBackend(sink, "", 0)
	leveled.backend = logging.NewBackendFormatter(backend, format)
	leveled.SetLevel(logging.NOTICE, "")
	logging.SetBackend(leveled)
}
