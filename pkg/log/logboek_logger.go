package log

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/gookit/color"

	"github.com/werf/logboek"
	"github.com/werf/logboek/pkg/level"
)

const LogboekLoggerCtxKeyName = "logboek_logger"

var _ Logger = (*LogboekLogger)(nil)

func NewLogboekLogger() *LogboekLogger {
	return &LogboekLogger{
		warnStash: make(map[string][]string),
		level:     InfoLevel,
	}
}

type LogboekLogger struct {
	mu        sync.RWMutex
	warnStash map[string][]string
	level     Level
}

func (l *LogboekLogger) Trace(ctx context.Context, format string, a ...interface{}) {
	if !l.AcceptLevel(ctx, TraceLevel) {
		return
	}

	logboek.Context(ctx).Debug().LogF(format+"\n", a...)
}

func (l *LogboekLogger) TraceStruct(ctx context.Context, obj interface{}, format string, a ...interface{}) {
	if !l.AcceptLevel(ctx, TraceLevel) {
		return
	}

	dump := spew.Sdump(obj)

	logboek.Context(ctx).Debug().LogF(fmt.Sprintf(format+"\n", a...) + dump + "\n")
}

func (l *LogboekLogger) Debug(ctx context.Context, format string, a ...interface{}) {
	if !l.AcceptLevel(ctx, DebugLevel) {
		return
	}

	logboek.Context(ctx).Debug().LogF(format+"\n", a...)
}

func (l *LogboekLogger) Info(ctx context.Context, format string, a ...interface{}) {
	if !l.AcceptLevel(ctx, InfoLevel) {
		return
	}

	logboek.Context(ctx).Default().LogF(format+"\n", a...)
}

func (l *LogboekLogger) Warn(ctx context.Context, format string, a ...interface{}) {
	if !l.AcceptLevel(ctx, WarningLevel) {
		return
	}

	logboek.Context(ctx).Warn().LogFWithCustomStyle(color.Style{color.FgRed}, format+"\n", a...)
}

// WarnPush stashes a warning under group until WarnPop prints it.
func (l *LogboekLogger) WarnPush(ctx context.Context, group, format string, a ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.warnStash[group] = append(l.warnStash[group], fmt.Sprintf(format, a...))
}

func (l *LogboekLogger) WarnPop(ctx context.Context, group string) {
	l.mu.Lock()
	msgs := l.warnStash[group]
	delete(l.warnStash, group)
	l.mu.Unlock()

	for _, msg := range msgs {
		l.Warn(ctx, "%s", msg)
	}
}

func (l *LogboekLogger) Error(ctx context.Context, format string, a ...interface{}) {
	if !l.AcceptLevel(ctx, ErrorLevel) {
		return
	}

	logboek.Context(ctx).Error().LogFWithCustomStyle(color.Style{color.FgRed, color.Bold}, format+"\n", a...)
}

func (l *LogboekLogger) InfoBlock(ctx context.Context, opts BlockOptions, fn func()) {
	logboek.Context(ctx).Default().LogBlock(opts.BlockTitle).Do(fn)
}

func (l *LogboekLogger) InfoBlockErr(ctx context.Context, opts BlockOptions, fn func() error) error {
	return logboek.Context(ctx).Default().LogBlock(opts.BlockTitle).DoError(fn)
}

func (l *LogboekLogger) SetLevel(ctx context.Context, lvl Level) {
	switch lvl {
	case DebugLevel, TraceLevel:
		logboek.Context(ctx).SetAcceptedLevel(level.Debug)
	case InfoLevel:
		logboek.Context(ctx).SetAcceptedLevel(level.Default)
	case WarningLevel:
		logboek.Context(ctx).SetAcceptedLevel(level.Warn)
	case ErrorLevel:
		logboek.Context(ctx).SetAcceptedLevel(level.Error)
	case SilentLevel:
		logboek.Context(ctx).Streams().Mute()
	default:
		panic(fmt.Sprintf("unsupported log level %q", lvl))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.level = lvl
}

func (l *LogboekLogger) Level(context.Context) Level {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.level
}

func (l *LogboekLogger) AcceptLevel(ctx context.Context, lvl Level) bool {
	return slices.Index(Levels, l.Level(ctx)) >= slices.Index(Levels, lvl)
}
