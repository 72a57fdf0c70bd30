package middleware

import (
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/veljkom/meetlite-api/internal/telemetry"
)

// Metrics records request count and duration. Paths are deliberately not
// labelled to keep cardinality bounded.
func Metrics() drift.HandlerFunc {
	return func(c *drift.Context) {
		start := time.Now()
		c.Next()
		telemetry.CountRequest(c.Request.Method, time.Since(start).Seconds())
	}
}
