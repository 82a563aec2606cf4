package log

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"
)

var _ resty.Logger = (*RestyLogger)(nil)

// RestyLogger forwards resty client messages to the Default logger.
type RestyLogger struct {
	ctx context.Context
}

func NewRestyLogger(ctx context.Context) *RestyLogger {
	return &RestyLogger{ctx: ctx}
}

func (l *RestyLogger) Errorf(format string, v ...interface{}) {
	Default.Error(l.ctx, strings.TrimSuffix(format, "\n"), v...)
}

func (l *RestyLogger) Warnf(format string, v ...interface{}) {
	Default.Warn(l.ctx, strings.TrimSuffix(format, "\n"), v...)
}

func (l *RestyLogger) Debugf(format string, v ...interface{}) {
	Default.Debug(l.ctx, strings.TrimSuffix(format, "\n"), v...)
}
