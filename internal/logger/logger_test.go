package logger

import (
	"context"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/filestorage/internal/meta"
)

func newObserved() (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return FromZap(zap.New(core)), logs
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "json", cfg: Config{Level: "info", Encoding: EncodingJSON}},
		{name: "pretty", cfg: Config{Level: "debug", Encoding: EncodingPretty}},
		{name: "disabled ignores level", cfg: Config{Level: "bogus", Disable: true}},
		{name: "invalid level", cfg: Config{Level: "bogus", Encoding: EncodingJSON}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := New(tc.cfg)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestErrorxExpandsFields(t *testing.T) {
	l, logs := newObserved()

	l.Errorx(errx.New("boom", errx.WithCode("FILE_NOT_FOUND"), errx.WithType(errx.T_NotFound)))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "boom", entry.Message)
	assert.Equal(t, "FILE_NOT_FOUND", entry.ContextMap()["error_code"])
}

func TestWarnxPlainError(t *testing.T) {
	l, logs := newObserved()

	l.Warnx(context.Canceled)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, context.Canceled.Error(), logs.All()[0].Message)
}

func TestWithContext(t *testing.T) {
	l, logs := newObserved()

	ctx := meta.InjectMetaToContext(t.Context(), map[meta.ContextKey]string{meta.TraceID: "trace-1"})
	l.WithContext(ctx).Named("test").Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "trace-1", logs.All()[0].ContextMap()["trace_id"])
	assert.Equal(t, "test", logs.All()[0].LoggerName)
}
