package utils

import (
	"context"
	"time"
)

// Query timeouts for rule and history access.
const (
	FastQueryTimeout    = 5 * time.Second
	DefaultQueryTimeout = 15 * time.Second
	SlowQueryTimeout    = 45 * time.Second
)

// GetQueryContext bounds parentCtx by timeout. A nil parent means Background.
func GetQueryContext(parentCtx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	return context.WithTimeout(parentCtx, timeout)
}

func GetFastQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parentCtx, FastQueryTimeout)
}

func GetDefaultQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parentCtx, DefaultQueryTimeout)
}

// GetSlowQueryContext is for loading whole rule revisions.
func GetSlowQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parentCtx, SlowQueryTimeout)
}
