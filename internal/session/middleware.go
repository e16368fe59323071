package session

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"timesheet-web/internal/api"
	"timesheet-web/internal/auth"
	"timesheet-web/pkg/logger"
)

// Hydrate rebuilds the session from the token cookie on every request.
// The user comes from the cache when login or register stored one,
// otherwise from the token claims. Claims-derived users are not cached.
//
// Claims are decoded without verification. They drive navigation only;
// the backend re-authorizes every call made with the bearer token.
func (m *Manager) Hydrate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.store.Token(c)
		if token == "" {
			setState(c, State{})
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := logger.FromGin(c)

		user, err := m.users.Get(ctx, token)
		if err != nil {
			log.Warn("user cache read failed", slog.String("error", err.Error()))
		}
		if user == nil {
			user = auth.ResolveUser(token)
		}

		setState(c, State{Token: token, User: user})
		c.Request = c.Request.WithContext(api.WithBearer(c.Request.Context(), token))
		c.Next()
	}
}
