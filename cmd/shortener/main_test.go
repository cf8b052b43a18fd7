package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Totarae/brevly/internal/config"
	"github.com/Totarae/brevly/internal/repositories"
	"github.com/Totarae/brevly/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("warn")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = newLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = newLogger("chatty")
	assert.Error(t, err)
}

func TestOpenRepository(t *testing.T) {
	ctx := context.Background()

	repo, closeFn, err := openRepository(ctx, &config.Config{Mode: config.ModeMemory}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStorage{}, repo)
	closeFn()

	path := filepath.Join(t.TempDir(), "links.db")
	repo, closeFn, err = openRepository(ctx, &config.Config{Mode: config.ModeSQLite, SQLitePath: path}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &repositories.SQLiteRepository{}, repo)
	assert.NoError(t, repo.Ping(ctx))
	closeFn()

	_, _, err = openRepository(ctx, &config.Config{Mode: "file"}, zap.NewNop())
	assert.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := &config.Config{
		ServerAddress:   "127.0.0.1:0",
		GRPCAddress:     "127.0.0.1:0",
		Mode:            config.ModeMemory,
		ShutdownTimeout: time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, zap.NewNop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_ListenError(t *testing.T) {
	cfg := &config.Config{
		ServerAddress:   "127.0.0.1:-1",
		Mode:            config.ModeMemory,
		ShutdownTimeout: time.Second,
	}

	err := run(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "listen http")
}
