package server

import (
	"cmp"
	"slices"

	"github.com/gofiber/fiber/v2"
)

// Middleware is a fiber handler installed on every route. Middlewares with
// a higher Priority wrap those with a lower one; equal priorities keep their
// order.
type Middleware struct {
	Priority int
	Handler  fiber.Handler
}

func applyMiddlewares(app *fiber.App, middlewares []Middleware) {
	ordered := slices.Clone(middlewares)
	slices.SortStableFunc(ordered, func(a, b Middleware) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	for _, mw := range ordered {
		if mw.Handler != nil {
			app.Use(mw.Handler)
		}
	}
}
