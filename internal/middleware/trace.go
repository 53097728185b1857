package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const TraceIDHeader = "X-Trace-ID"

// TraceID attaches a request trace ID, reusing the caller's when present.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			c.Set("trace_id", traceID)
			c.Response().Header().Set(TraceIDHeader, traceID)

			return next(c)
		}
	}
}
