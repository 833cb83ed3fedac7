package server

import (
	"errors"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/filestorage/internal/meta"
)

// codeRouterError is used when the router itself rejects a request.
const codeRouterError = "ROUTER_ERROR"

//nolint:gochecknoglobals // static lookup table
var statusByType = map[errx.Type]int{
	errx.T_Authentication: fiber.StatusUnauthorized,
	errx.T_Forbidden:      fiber.StatusForbidden,
	errx.T_NotFound:       fiber.StatusNotFound,
	errx.T_Validation:     fiber.StatusBadRequest,
	errx.T_Conflict:       fiber.StatusConflict,
	errx.T_Throttling:     fiber.StatusTooManyRequests,
	errx.T_Internal:       fiber.StatusInternalServerError,
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	TraceID string    `json:"trace_id"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Cause   string            `json:"cause"`
	Trace   string            `json:"trace,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details map[string]any    `json:"details,omitempty"`
}

// WriteErrorResponse renders err as an errorResponse with the status of its
// errx type and returns it converted to an errx.ErrorX. The message is translated to
// the request's Accept-Language. Trace and details are left out when
// hideDetails is set.
func WriteErrorResponse(c *fiber.Ctx, err error, hideDetails bool) errx.ErrorX {
	e := toErrorX(err)

	body := errorBody{
		Code:    e.Code(),
		Message: meta.Tr(e.Code(), c.Get(fiber.HeaderAcceptLanguage)),
		Cause:   e.Error(),
		Fields:  e.Fields(),
	}
	if !hideDetails {
		body.Trace = e.Trace()
		body.Details = e.Details()
	}

	_ = c.Status(statusOf(e.Type())).JSON(errorResponse{
		TraceID: meta.Find(c.UserContext(), meta.TraceID),
		Error:   body,
	})

	return e
}

// customErrorHandler renders errors that escaped the middleware chain.
// Responses that already carry an error status are left untouched.
func customErrorHandler(hideDetails bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if c.Response().StatusCode() >= fiber.StatusBadRequest {
			return nil
		}

		_ = WriteErrorResponse(c, err, hideDetails)
		return nil
	}
}

func statusOf(t errx.Type) int {
	if status, ok := statusByType[t]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

// typeOf is the inverse of statusOf. Unlisted 4xx statuses are validation errors.
func typeOf(status int) errx.Type {
	for t, s := range statusByType {
		if s == status {
			return t
		}
	}
	if status >= fiber.StatusBadRequest && status < fiber.StatusInternalServerError {
		return errx.T_Validation
	}
	return errx.T_Internal
}

// toErrorX converts err to an errx.ErrorX. Router errors such as unknown
// routes keep their HTTP status through the matching errx type.
func toErrorX(err error) errx.ErrorX {
	var fiberErr *fiber.Error
	if !errors.As(err, &fiberErr) {
		return errx.AsErrorX(err)
	}

	return errx.AsErrorX(errx.New(
		fiberErr.Message,
		errx.WithCode(codeRouterError),
		errx.WithType(typeOf(fiberErr.Code)),
		errx.WithDetails(errx.D{"status": fiberErr.Code}),
	))
}
