package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// ZerologLogger is a Logger backed by rs/zerolog, for applications that
// already standardize on zerolog and want go-modbus logs in the same stream.
type ZerologLogger struct {
	mu     sync.Mutex
	logger zerolog.Logger
	level  Level
}

var _ Logger = (*ZerologLogger)(nil)

// NewZerolog creates a zerolog-backed Logger writing to stderr.
func NewZerolog(level Level) Logger {
	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()

	return NewZerologWith(zl, level)
}

// NewZerologWith wraps an existing zerolog.Logger.
func NewZerologWith(zl zerolog.Logger, level Level) Logger {
	inst := &ZerologLogger{logger: zl}
	inst.SetLevel(level)

	return inst
}

func (l *ZerologLogger) Debug(msg string, keysAndValues ...any) {
	l.emit(l.logger.Debug(), msg, keysAndValues)
}

func (l *ZerologLogger) Info(msg string, keysAndValues ...any) {
	l.emit(l.logger.Info(), msg, keysAndValues)
}

func (l *ZerologLogger) Warn(msg string, keysAndValues ...any) {
	l.emit(l.logger.Warn(), msg, keysAndValues)
}

func (l *ZerologLogger) Error(msg string, keysAndValues ...any) {
	l.emit(l.logger.Error(), msg, keysAndValues)
}

func (l *ZerologLogger) Fatal(msg string, keysAndValues ...any) {
	l.emit(l.logger.Fatal(), msg, keysAndValues)
}

func (l *ZerologLogger) With(keyValues ...any) Logger {
	ctx := l.logger.With()
	for i := 0; i+1 < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, keyValues[i+1])
	}

	return &ZerologLogger{logger: ctx.Logger(), level: l.level}
}

func (l *ZerologLogger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.level
}

func (l *ZerologLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.level = level
	l.logger = l.logger.Level(toZerologLevel(level))
}

// emit attaches key-value pairs to the event and sends it. Dangling keys
// without a value are dropped.
func (l *ZerologLogger) emit(ev *zerolog.Event, msg string, keyValues []any) {
	if ev == nil {
		return
	}

	for i := 0; i+1 < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, keyValues[i+1])
	}

	ev.Msg(msg)
}

func toZerologLevel(level Level) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.ErrorLevel
	}
}
