package logger

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kagren/solana-sdk/logger"
	"github.com/kagren/solana-sdk/types"
)

func Test_logger_for_tests(t *testing.T) {
	t.Run("debug", func(t *testing.T) {
		l := New(t)
		require.NotNil(t, l)
		l.Debug("lets investigate", logger.Account(types.SystemProgramID))
		l.Error("now thats really bad", logger.Error(fmt.Errorf("what now")))
	})

	t.Run("info", func(t *testing.T) {
		l := NewLvl(t, slog.LevelInfo)
		require.False(t, l.Enabled(context.Background(), slog.LevelDebug))
		require.True(t, l.Enabled(context.Background(), slog.LevelInfo))
	})

	t.Run("nop", func(t *testing.T) {
		require.False(t, NOP().Enabled(context.Background(), slog.LevelError))
	})
}
