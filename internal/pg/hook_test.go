package pg_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/filestorage/internal/logger"
	"github.com/rise-and-shine/filestorage/internal/pg"
)

func TestQueryHook(t *testing.T) {
	const query = `SELECT "f"."id" FROM "files" AS "f"`

	tests := []struct {
		name      string
		opts      []pg.QueryHookOption
		err       error
		elapsed   time.Duration
		wantLevel zapcore.Level
		wantMsg   string
		wantLog   bool
	}{
		{name: "quiet success", wantLog: false},
		{name: "no rows is not a failure", err: sql.ErrNoRows, wantLog: false},
		{
			name:      "failure",
			err:       errors.New("connection reset"),
			wantLevel: zapcore.ErrorLevel,
			wantMsg:   "[sql] SELECT",
			wantLog:   true,
		},
		{
			name:      "slow",
			opts:      []pg.QueryHookOption{pg.WithSlowQueryThreshold(10 * time.Millisecond)},
			elapsed:   time.Second,
			wantLevel: zapcore.WarnLevel,
			wantMsg:   "[sql] SELECT (slow)",
			wantLog:   true,
		},
		{
			name:      "verbose",
			opts:      []pg.QueryHookOption{pg.WithVerbose(true)},
			wantLevel: zapcore.DebugLevel,
			wantMsg:   "[sql] SELECT",
			wantLog:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			hook := pg.NewQueryHook(logger.FromZap(zap.New(core)), tc.opts...)

			event := &bun.QueryEvent{
				Query:     query,
				StartTime: time.Now().Add(-tc.elapsed),
				Err:       tc.err,
			}
			ctx := hook.BeforeQuery(context.Background(), event)
			hook.AfterQuery(ctx, event)

			if !tc.wantLog {
				assert.Zero(t, logs.Len())
				return
			}

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tc.wantLevel, entry.Level)
			assert.Equal(t, tc.wantMsg, entry.Message)
			assert.Equal(t, `SELECT f.id FROM files AS f`, entry.ContextMap()["query"])
		})
	}
}
