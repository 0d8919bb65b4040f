package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	ports "blog-post-service/internal/domain/ports/output"
)

// RequestLogger logs every finished request at a level matching its status.
func RequestLogger(log ports.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			attrs := []any{
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", res.Status),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
				slog.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
			}
			switch {
			case res.Status >= 500:
				log.Error("Request completed", attrs...)
			case res.Status >= 400:
				log.Warn("Request completed", attrs...)
			default:
				log.Info("Request completed", attrs...)
			}
			return nil
		}
	}
}

// Metrics records request counts and latencies labelled by route template.
func Metrics(metrics ports.MetricsProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)
			metrics.IncrementHTTPRequests(method, route, status)
			metrics.RecordHTTPRequestDuration(method, route, status, time.Since(start))
			return nil
		}
	}
}
