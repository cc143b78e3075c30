package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/dtforest/pkg/errors"
)

// ZerologLogger is the default Logger, backed by rs/zerolog.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger writes JSON records to w at or above level.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	zl := zerolog.New(w).With().Timestamp().Logger().Level(toZerologLevel(level))
	return &ZerologLogger{zl: zl}
}

// NewConsoleLogger writes human-readable records to w, for the CLI. Colours
// are used only when w is a terminal.
func NewConsoleLogger(w io.Writer, level Level) *ZerologLogger {
	cw := zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w)}
	zl := zerolog.New(cw).With().Timestamp().Logger().Level(toZerologLevel(level))
	return &ZerologLogger{zl: zl}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// Debug implements Logger.Debug.
func (z *ZerologLogger) Debug(msg string, fields ...any) {
	z.emit(z.zl.Debug(), msg, fields)
}

// Info implements Logger.Info.
func (z *ZerologLogger) Info(msg string, fields ...any) {
	z.emit(z.zl.Info(), msg, fields)
}

// Warn implements Logger.Warn.
func (z *ZerologLogger) Warn(msg string, fields ...any) {
	z.emit(z.zl.Warn(), msg, fields)
}

// Error implements Logger.Error.
func (z *ZerologLogger) Error(msg string, fields ...any) {
	z.emit(z.zl.Error(), msg, fields)
}

// With implements Logger.With.
func (z *ZerologLogger) With(fields ...any) Logger {
	return &ZerologLogger{zl: z.zl.With().Fields(keyValues(fields)).Logger()}
}

// Enabled implements Logger.Enabled.
func (z *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= z.zl.GetLevel()
}

func (z *ZerologLogger) emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			e = e.Err(err)
			if st := extractStacktrace(err); st != "" {
				e = e.Str(StacktraceAttrKey, st)
			}
			fields = fields[1:]
		}
	}
	e.Fields(keyValues(fields)).Msg(msg)
}

// keyValues normalises keys to strings and drops a dangling key.
func keyValues(fields []any) []interface{} {
	out := make([]interface{}, 0, len(fields))
	for i := 0; i+1 < len(fields); i += 2 {
		out = append(out, fmt.Sprint(fields[i]), fields[i+1])
	}
	return out
}

// warnObject logs a warning, embedding its structured form when it has one.
func (z *ZerologLogger) warnObject(w error) {
	e := z.zl.Warn()
	if m, ok := w.(zerolog.LogObjectMarshaler); ok {
		e = e.EmbedObject(m)
	}
	e.Msg(w.Error())
}

// RouteWarnings sends pkg/errors warnings to l instead of the standard
// logger. A nil l restores the standard logger.
func RouteWarnings(l Logger) {
	switch l := l.(type) {
	case nil:
		errors.SetLoggerWarnFunc(nil)
	case *ZerologLogger:
		errors.SetLoggerWarnFunc(l.warnObject)
	default:
		errors.SetLoggerWarnFunc(func(w error) {
			l.Warn(w.Error(), ErrorTypeKey, fmt.Sprintf("%T", w))
		})
	}
}

// ===========================================================================
//
//	global provider
//
// ===========================================================================

type defaultProvider struct {
	mu     sync.RWMutex
	logger Logger
	level  Level
}

var provider = &defaultProvider{
	logger: NewZerologLogger(os.Stderr, LevelWarn),
	level:  LevelWarn,
}

func (p *defaultProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.logger
}

func (p *defaultProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

func (p *defaultProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	if z, ok := p.logger.(*ZerologLogger); ok {
		p.logger = &ZerologLogger{zl: z.zl.Level(toZerologLevel(level))}
	}
}

// GetLogger returns the process-wide logger used by the estimators.
func GetLogger() Logger {
	return provider.GetLogger()
}

// GetLoggerWithName returns the process-wide logger tagged with a component.
func GetLoggerWithName(name string) Logger {
	return provider.GetLoggerWithName(name)
}

// SetLogger replaces the process-wide logger. A nil logger is ignored.
func SetLogger(l Logger) {
	if l == nil {
		return
	}
	provider.mu.Lock()
	defer provider.mu.Unlock()
	provider.logger = l
}

// SetLevel changes the level of the process-wide zerolog logger.
func SetLevel(level Level) {
	provider.SetLevel(level)
}
