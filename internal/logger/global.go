package logger

import (
	"context"
	"sync"
	"sync/atomic"
)

//nolint:gochecknoglobals // process-wide default logger
var (
	global   atomic.Value // stores Logger
	setOnce  sync.Once
	initOnce sync.Once
)

// SetGlobal configures the process-wide logger. It panics when called twice.
func SetGlobal(cfg Config) {
	called := false
	setOnce.Do(func() {
		initOnce.Do(func() {})

		l, err := New(cfg)
		if err != nil {
			panic("[logger]: failed to initialize global logger: " + err.Error())
		}
		global.Store(l)
		called = true
	})
	if !called {
		panic("[logger]: SetGlobal can only be called once")
	}
}

// Global returns the process-wide logger, lazily creating a debug/pretty one.
func Global() Logger {
	if l, ok := global.Load().(Logger); ok {
		return l
	}
	initOnce.Do(func() {
		l, err := New(Config{Level: levelDebug, Encoding: EncodingPretty})
		if err != nil {
			panic("[logger]: failed to initialize default logger: " + err.Error())
		}
		global.Store(l)
	})
	return global.Load().(Logger) //nolint:errcheck // always a Logger
}

// Named adds a sub-scope to the global logger's name.
func Named(name string) Logger {
	return Global().Named(name)
}

// WithContext returns the global logger enriched with metadata from ctx.
func WithContext(ctx context.Context) Logger {
	return Global().WithContext(ctx)
}

// Sync flushes the global logger.
func Sync() error {
	return Global().Sync()
}
