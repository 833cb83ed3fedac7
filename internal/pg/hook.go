package pg

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/rise-and-shine/filestorage/internal/logger"
)

var _ bun.QueryHook = (*QueryHook)(nil)

// QueryHook logs failed and slow statements, and every statement in verbose mode.
type QueryHook struct {
	log                logger.Logger
	verbose            bool
	slowQueryThreshold time.Duration
}

// QueryHookOption configures a QueryHook.
type QueryHookOption func(*QueryHook)

// WithVerbose enables logging of successful statements at debug level.
func WithVerbose(verbose bool) QueryHookOption {
	return func(h *QueryHook) { h.verbose = verbose }
}

// WithSlowQueryThreshold sets the duration after which a statement is logged
// as slow. Zero disables slow query detection.
func WithSlowQueryThreshold(threshold time.Duration) QueryHookOption {
	return func(h *QueryHook) { h.slowQueryThreshold = threshold }
}

// NewQueryHook creates a QueryHook writing to log.
func NewQueryHook(log logger.Logger, opts ...QueryHookOption) *QueryHook {
	h := &QueryHook{log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// BeforeQuery implements bun.QueryHook.
func (h *QueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

// AfterQuery implements bun.QueryHook.
func (h *QueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)

	noRows := errors.Is(event.Err, sql.ErrNoRows)
	failed := event.Err != nil && !noRows && !errors.Is(event.Err, sql.ErrTxDone)
	slow := h.slowQueryThreshold > 0 && duration >= h.slowQueryThreshold

	if !h.verbose && !failed && !slow {
		return
	}

	log := h.log.
		WithContext(ctx).
		With("query", strings.ReplaceAll(event.Query, `"`, ``)).
		With("duration", duration.Round(time.Microsecond))

	op := "[sql] " + event.Operation()
	switch {
	case failed:
		log.With("error", event.Err.Error()).Error(op)
	case slow:
		log.Warn(op + " (slow)")
	default:
		log.Debug(op)
	}
}
