package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/filestorage/internal/http/server"
)

// HeaderErrorCode carries the error code of a failed request. HEAD responses
// have no body, so this header is their only way to report it.
const HeaderErrorCode = "X-Error-Code"

// NewErrorHandlerMW creates a middleware that renders handler errors as JSON
// responses. When hideDetails is false the error trace and details are included.
func NewErrorHandlerMW(hideDetails bool) server.Middleware {
	return server.Middleware{
		Priority: 400,
		Handler: func(c *fiber.Ctx) error {
			err := c.Next()
			if err == nil || rendered(c) {
				return err
			}

			e := server.WriteErrorResponse(c, asTimeout(c.UserContext(), err), hideDetails)
			if code := e.Code(); code != "" {
				c.Set(HeaderErrorCode, code)
			}
			c.Set(fiber.HeaderCacheControl, "no-store")

			return e
		},
	}
}

// rendered reports whether a handler already wrote an error response.
func rendered(c *fiber.Ctx) bool {
	return c.Response().StatusCode() >= fiber.StatusBadRequest
}
