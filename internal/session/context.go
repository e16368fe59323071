package session

import (
	"context"

	"github.com/gin-gonic/gin"
)

type ctxKey struct{}

// ginStateKey is the gin context key holding the hydrated State.
const ginStateKey = "session_state"

func WithState(ctx context.Context, st State) context.Context {
	return context.WithValue(ctx, ctxKey{}, st)
}

// FromContext returns the State stored by the hydration middleware,
// or an anonymous State.
func FromContext(ctx context.Context) State {
	st, _ := ctx.Value(ctxKey{}).(State)
	return st
}

// FromGin returns the request's State.
func FromGin(c *gin.Context) State {
	if v, ok := c.Get(ginStateKey); ok {
		if st, ok := v.(State); ok {
			return st
		}
	}
	return FromContext(c.Request.Context())
}

func setState(c *gin.Context, st State) {
	c.Set(ginStateKey, st)
	c.Request = c.Request.WithContext(WithState(c.Request.Context(), st))
}
