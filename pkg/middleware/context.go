package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/TechnoServe/pima-integration/pkg/context"
)

// HeaderActorID is the header key for the acting user id.
const HeaderActorID = "X-Actor-ID"

// Context seeds the request context with the request id and acting user.
func Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := req.Context()
			ctx = context.SetRequestID(ctx, requestID)
			ctx = context.SetActorID(ctx, req.Header.Get(HeaderActorID))

			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
