package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"timesheet-web/internal/api"
	"timesheet-web/internal/audit"
	"timesheet-web/internal/auth"
	"timesheet-web/internal/metrics"
	"timesheet-web/pkg/logger"
)

// ErrNoToken is returned by Require when the request carries no session.
var ErrNoToken = errors.New("session: no token")

// AuthClient is the subset of the backend client the session layer needs.
type AuthClient interface {
	Login(ctx context.Context, req api.LoginRequest) (api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (api.AuthResponse, error)
	Logout(ctx context.Context) error
}

// Auditor records session events. Implemented by *audit.Service.
type Auditor interface {
	LogSession(ctx context.Context, typ audit.EventType, userID, email, ip, landing string) error
}

// Manager owns the session lifecycle: it is the only writer of the token
// cookie and the cached user.
type Manager struct {
	auth  AuthClient
	store *CookieStore
	users UserCache
	audit Auditor
}

func NewManager(client AuthClient, store *CookieStore, users UserCache, auditor Auditor) *Manager {
	if users == nil {
		users = NewMemoryUserCache(DefaultMemoryCacheSize, 0)
	}
	return &Manager{auth: client, store: store, users: users, audit: auditor}
}

// Login exchanges credentials for a token, stores it and returns the new
// state together with the path to navigate to. Backend errors are returned
// as-is and leave the current session untouched.
func (m *Manager) Login(c *gin.Context, req api.LoginRequest) (State, string, error) {
	res, err := m.auth.Login(c.Request.Context(), req)
	metrics.ObserveSessionOp("login", err)
	if err != nil {
		return State{}, "", err
	}
	return m.establish(c, audit.EventTypeLogin, res)
}

func (m *Manager) Register(c *gin.Context, req api.RegisterRequest) (State, string, error) {
	res, err := m.auth.Register(c.Request.Context(), req)
	metrics.ObserveSessionOp("register", err)
	if err != nil {
		return State{}, "", err
	}
	return m.establish(c, audit.EventTypeRegister, res)
}

func (m *Manager) establish(c *gin.Context, typ audit.EventType, res api.AuthResponse) (State, string, error) {
	ctx := c.Request.Context()
	log := logger.FromGin(c)

	// The response body is the source of the user; the token is only
	// consulted for roles.
	st := State{
		Token: res.Token,
		User:  &auth.User{UserID: res.UserID, Email: res.Email},
	}
	if prev := m.store.Token(c); prev != "" && prev != st.Token {
		if err := m.users.Delete(ctx, prev); err != nil {
			log.Warn("user cache delete failed", slog.String("error", err.Error()))
		}
	}
	m.store.Save(c, st.Token)
	if err := m.users.Set(ctx, st.Token, *st.User); err != nil {
		log.Warn("user cache write failed", slog.String("error", err.Error()))
	}
	setState(c, st)

	landing := st.Landing()
	m.record(c, typ, st.User, landing)
	log.Info("session established",
		slog.String("event", string(typ)),
		slog.String("user_id", st.User.UserID),
		slog.String("landing", landing),
	)
	return st, landing, nil
}

// Logout revokes the token on the backend and clears the session. The local
// session is cleared even when the revoke call fails; that failure is only
// logged. It returns the path to navigate to.
func (m *Manager) Logout(c *gin.Context) string {
	ctx := c.Request.Context()
	log := logger.FromGin(c)

	st := FromGin(c)
	token := st.Token
	if token == "" {
		token = m.store.Token(c)
	}

	err := m.auth.Logout(api.WithBearer(ctx, token))
	metrics.ObserveSessionOp("logout", err)
	if err != nil {
		log.Warn("token revoke failed", slog.String("error", err.Error()))
	}

	if token != "" {
		if err := m.users.Delete(ctx, token); err != nil {
			log.Warn("user cache delete failed", slog.String("error", err.Error()))
		}
	}
	m.store.Clear(c)
	setState(c, State{})

	m.record(c, audit.EventTypeLogout, st.User, auth.PathLogin)
	return auth.PathLogin
}

// Require returns the request's state, or ErrNoToken for anonymous requests.
func (m *Manager) Require(c *gin.Context) (State, error) {
	st := FromGin(c)
	if !st.Authenticated() {
		return State{}, ErrNoToken
	}
	return st, nil
}

func (m *Manager) record(c *gin.Context, typ audit.EventType, u *auth.User, landing string) {
	if m.audit == nil {
		return
	}
	var userID, email string
	if u != nil {
		userID, email = u.UserID, u.Email
	}
	if err := m.audit.LogSession(c.Request.Context(), typ, userID, email, c.ClientIP(), landing); err != nil {
		logger.FromGin(c).Warn("audit append failed", slog.String("error", err.Error()))
	}
}
