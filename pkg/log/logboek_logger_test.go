package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/werf/logboek"

	"github.com/acmload/clustertime/pkg/log"
)

func TestLogboekLoggerAcceptLevel(t *testing.T) {
	ctx := logboek.NewContext(context.Background(), logboek.DefaultLogger())
	logger := log.NewLogboekLogger()

	assert.Equal(t, log.InfoLevel, logger.Level(ctx))
	assert.True(t, logger.AcceptLevel(ctx, log.ErrorLevel))
	assert.True(t, logger.AcceptLevel(ctx, log.InfoLevel))
	assert.False(t, logger.AcceptLevel(ctx, log.DebugLevel))

	logger.SetLevel(ctx, log.TraceLevel)

	assert.Equal(t, log.TraceLevel, logger.Level(ctx))
	assert.True(t, logger.AcceptLevel(ctx, log.DebugLevel))
	assert.True(t, logger.AcceptLevel(ctx, log.TraceLevel))
}

func TestNullLoggerRunsBlocks(t *testing.T) {
	logger := log.NewNullLogger()

	var called bool
	logger.InfoBlock(context.Background(), log.BlockOptions{BlockTitle: "block"}, func() {
		called = true
	})

	assert.True(t, called)
	assert.False(t, logger.AcceptLevel(context.Background(), log.ErrorLevel))
}
