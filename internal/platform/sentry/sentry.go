// Package sentry wires panic/error capture for the API process.
package sentry

import (
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// Init configures the global Sentry client. A blank dsn disables reporting
// rather than erroring, so local development never needs a Sentry account.
func Init(dsn, environment string) error {
	if dsn == "" {
		return nil
	}
	return sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		AttachStacktrace: true,
		TracesSampleRate: 0,
	})
}

// Middleware returns the Gin middleware capturing panics recovered further
// up the chain and reporting any error set on the context via c.Error.
// Mounted immediately after gin.Recovery() in cmd/api/main.go.
func Middleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic:         false,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// Flush blocks up to timeout waiting for buffered events to send, called on
// graceful shutdown.
func Flush(timeout time.Duration) {
	sentrygo.Flush(timeout)
}
