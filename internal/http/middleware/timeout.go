package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/filestorage/internal/http/server"
)

// CodeRequestTimeout is reported for requests that failed after the handle
// timeout expired.
const CodeRequestTimeout = "REQUEST_TIMEOUT"

// NewTimeoutMW bounds the request context by duration. A non-positive
// duration leaves the context unbounded.
//
// Errors returned after the deadline are rendered as CodeRequestTimeout by
// the error handler middleware, which runs inside this one.
func NewTimeoutMW(duration time.Duration) server.Middleware {
	return server.Middleware{
		Priority: 800,
		Handler: func(c *fiber.Ctx) error {
			if duration <= 0 {
				return c.Next()
			}

			ctx, cancel := context.WithTimeout(c.UserContext(), duration)
			defer cancel()

			c.SetUserContext(ctx)

			return c.Next()
		},
	}
}

// asTimeout replaces err with a CodeRequestTimeout error when ctx ran past
// its deadline. Any other error is returned as is.
func asTimeout(ctx context.Context, err error) error {
	if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return err
	}

	details := errx.D{"cause": err.Error()}
	if deadline, ok := ctx.Deadline(); ok {
		details["deadline"] = deadline.Format(time.RFC3339Nano)
	}

	return errx.New(
		"request timed out",
		errx.WithCode(CodeRequestTimeout),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(details),
	)
}
