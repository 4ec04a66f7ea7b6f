package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	t.Run("creates logger with defaults", func(t *testing.T) {
		log, err := New(DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("production config uses json format", func(t *testing.T) {
		cfg := ProductionConfig()
		assert.Equal(t, "json", cfg.Format)

		log, err := New(cfg)
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
		assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
		assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	})
}

func TestContext(t *testing.T) {
	t.Run("round-trips logger through context", func(t *testing.T) {
		log := zap.NewNop()
		ctx := WithContext(context.Background(), log)
		assert.Same(t, log, FromContext(ctx))
	})

	t.Run("missing logger yields a no-op", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("request id travels with the context", func(t *testing.T) {
		ctx, enriched := WithRequestID(context.Background(), zap.NewNop(), "req-123")
		assert.NotNil(t, enriched)
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("unknown"))
}
