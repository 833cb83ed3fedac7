// Package forward adapts plain service methods into Fiber handlers.
package forward

import (
	"context"
	"reflect"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/filestorage/internal/val"
)

// Error codes of requests whose params cannot be decoded.
const (
	CodeInvalidQueryParams = "INVALID_QUERY_PARAMS"
	CodeInvalidPathParams  = "INVALID_PATH_PARAMS"
)

// useCaseMethod is a method that takes a request and returns a response.
type useCaseMethod[I, O any] func(context.Context, I) (O, error)

// ToUseCase forwards a request to uc and writes its result as JSON.
// Path and query params are decoded into I, which must be a pointer to a
// struct, and validated before uc runs.
func ToUseCase[I, O any](uc useCaseMethod[I, O]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := Decode[I](c)
		if err != nil {
			return errx.Wrap(err)
		}

		resp, err := uc(c.UserContext(), req)
		if err != nil {
			return errx.Wrap(err)
		}

		return errx.Wrap(c.JSON(resp))
	}
}

// Decode builds a new I from the path and query params of c and validates it.
func Decode[I any](c *fiber.Ctx) (I, error) {
	req, err := newRequest[I]()
	if err != nil {
		return req, errx.Wrap(err)
	}

	if err = decodePath(c, req); err != nil {
		return req, errx.Wrap(err)
	}

	if err = decodeQuery(c, req); err != nil {
		return req, errx.Wrap(err)
	}

	if err = val.ValidateSchema(req); err != nil {
		return req, errx.Wrap(err)
	}

	return req, nil
}

// newRequest creates a new request of type I, which must be a pointer to a struct.
func newRequest[I any]() (I, error) {
	var req I

	reqType := reflect.TypeOf((*I)(nil)).Elem()
	if reqType.Kind() != reflect.Pointer || reqType.Elem().Kind() != reflect.Struct {
		return req, errx.New("request type must be a pointer to a struct")
	}

	reqVal := reflect.New(reqType.Elem()).Interface().(I) //nolint:errcheck // safe type assertion
	return reqVal, nil
}

func decodePath(c *fiber.Ctx, req any) error {
	if len(c.Route().Params) == 0 {
		return nil
	}

	if err := c.ParamsParser(req); err != nil {
		return errx.Wrap(
			err,
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidPathParams),
		)
	}

	return nil
}

func decodeQuery(c *fiber.Ctx, req any) error {
	if len(c.Queries()) == 0 {
		return nil
	}

	if err := c.QueryParser(req); err != nil {
		return errx.Wrap(
			err,
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeInvalidQueryParams),
		)
	}

	return nil
}
