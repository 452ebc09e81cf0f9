package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// Identity headers are set by the authentication gateway in front of the service.
const (
	HeaderCustomerID = "X-Customer-ID"
	HeaderStaffID    = "X-Staff-ID"
)

// AccessLog logs one line per request.
func AccessLog(logger *log.Entry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			entry := logger.WithFields(log.Fields{
				"status":     status,
				"latency":    time.Since(start),
				"client_ip":  c.RealIP(),
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"request_id": c.Request().Header.Get(echo.HeaderXRequestID),
			})

			switch {
			case status >= 500:
				entry.Error("Server error")
			case status >= 400:
				entry.Warn("Client error")
			default:
				entry.Info("Request processed")
			}
			return nil
		}
	}
}

// identity reads a positive numeric id from header. Missing or malformed values yield 0,
// which the commands reject as an unauthorized actor.
func identity(c echo.Context, header string) int64 {
	raw := strings.TrimSpace(c.Request().Header.Get(header))
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
