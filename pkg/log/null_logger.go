package log

import (
	"context"
)

var _ Logger = (*NullLogger)(nil)

func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

type NullLogger struct{}

func (l *NullLogger) Trace(ctx context.Context, format string, a ...interface{}) {}

func (l *NullLogger) TraceStruct(ctx context.Context, obj interface{}, format string, a ...interface{}) {
}

func (l *NullLogger) Debug(ctx context.Context, format string, a ...interface{}) {}

func (l *NullLogger) Info(ctx context.Context, format string, a ...interface{}) {}

func (l *NullLogger) Warn(ctx context.Context, format string, a ...interface{}) {}

func (l *NullLogger) WarnPush(ctx context.Context, group, format string, a ...interface{}) {}

func (l *NullLogger) WarnPop(ctx context.Context, group string) {}

func (l *NullLogger) Error(ctx context.Context, format string, a ...interface{}) {}

func (l *NullLogger) InfoBlock(ctx context.Context, opts BlockOptions, fn func()) {
	fn()
}

func (l *NullLogger) InfoBlockErr(ctx context.Context, opts BlockOptions, fn func() error) error {
	return fn()
}

func (l *NullLogger) SetLevel(ctx context.Context, lvl Level) {}

func (l *NullLogger) Level(ctx context.Context) Level {
	return SilentLevel
}

func (l *NullLogger) AcceptLevel(ctx context.Context, lvl Level) bool {
	return false
}
