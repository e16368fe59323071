package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet-web/internal/api"
	"timesheet-web/internal/audit"
	"timesheet-web/internal/auth"
)

type fakeAuth struct {
	res       api.AuthResponse
	err       error
	logoutErr error

	logoutBearer string
	logoutCalls  int
}

func (f *fakeAuth) Login(_ context.Context, _ api.LoginRequest) (api.AuthResponse, error) {
	return f.res, f.err
}

func (f *fakeAuth) Register(_ context.Context, _ api.RegisterRequest) (api.AuthResponse, error) {
	return f.res, f.err
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalls++
	f.logoutBearer = api.BearerFrom(ctx)
	return f.logoutErr
}

type recordingAuditor struct {
	events []audit.EventType
	err    error
}

func (r *recordingAuditor) LogSession(_ context.Context, typ audit.EventType, _, _, _, _ string) error {
	r.events = append(r.events, typ)
	return r.err
}

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func newTestContext(cookie *http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	if cookie != nil {
		c.Request.AddCookie(cookie)
	}
	return c, w
}

func responseCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestManager_LoginStoresTokenAndUserFromBody(t *testing.T) {
	// Claims disagree with the body on purpose: the user must come from the body.
	token := mintToken(t, jwt.MapClaims{auth.ClaimSubject: "claims-user", auth.ClaimRole: "employee"})
	fa := &fakeAuth{res: api.AuthResponse{UserID: "body-user", Email: "ada@example.com", Token: token}}
	users := NewMemoryUserCache(0, 0)
	aud := &recordingAuditor{}
	m := NewManager(fa, NewCookieStore("", false), users, aud)

	c, w := newTestContext(nil)
	st, landing, err := m.Login(c, api.LoginRequest{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, token, st.Token)
	require.NotNil(t, st.User)
	assert.Equal(t, auth.User{UserID: "body-user", Email: "ada@example.com"}, *st.User)
	assert.Equal(t, auth.PathTimesheets, landing)

	ck := responseCookie(t, w, DefaultCookieName)
	assert.Equal(t, token, ck.Value)
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.False(t, ck.HttpOnly)
	assert.Zero(t, ck.MaxAge)

	cached, err := users.Get(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "body-user", cached.UserID)

	assert.Equal(t, st, FromGin(c))
	assert.Equal(t, []audit.EventType{audit.EventTypeLogin}, aud.events)
}

func TestManager_LandingFollowsNewToken(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{auth.ClaimRoles: []string{"employee", "manager"}})
	fa := &fakeAuth{res: api.AuthResponse{UserID: "u", Token: token}}
	m := NewManager(fa, NewCookieStore("", false), nil, nil)

	// An old restricted session must not influence the landing.
	old := mintToken(t, jwt.MapClaims{auth.ClaimRole: "employee"})
	c, _ := newTestContext(&http.Cookie{Name: DefaultCookieName, Value: old})

	_, landing, err := m.Register(c, api.RegisterRequest{Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, auth.PathDashboard, landing)
}

func TestManager_LoginPropagatesBackendError(t *testing.T) {
	backendErr := &api.Error{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
	fa := &fakeAuth{err: backendErr}
	aud := &recordingAuditor{}
	m := NewManager(fa, NewCookieStore("", false), nil, aud)

	c, w := newTestContext(nil)
	st, landing, err := m.Login(c, api.LoginRequest{})

	assert.Same(t, backendErr, err)
	assert.False(t, st.Authenticated())
	assert.Empty(t, landing)
	assert.Empty(t, w.Result().Cookies())
	assert.Empty(t, aud.events)
}

func TestManager_LoginDropsPreviousTokenFromCache(t *testing.T) {
	old := mintToken(t, jwt.MapClaims{auth.ClaimSubject: "u-1"})
	fresh := mintToken(t, jwt.MapClaims{auth.ClaimSubject: "u-1", auth.ClaimRole: "manager"})
	users := NewMemoryUserCache(0, 0)
	require.NoError(t, users.Set(context.Background(), old, auth.User{UserID: "u-1"}))
	fa := &fakeAuth{res: api.AuthResponse{UserID: "u-1", Token: fresh}}
	m := NewManager(fa, NewCookieStore("", false), users, nil)

	c, _ := newTestContext(&http.Cookie{Name: DefaultCookieName, Value: old})
	_, _, err := m.Login(c, api.LoginRequest{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)

	gone, err := users.Get(context.Background(), old)
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.Equal(t, 1, users.Len())
}

func TestManager_LogoutClearsEvenWhenRevokeFails(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{auth.ClaimSubject: "u-1"})
	fa := &fakeAuth{logoutErr: &api.Error{Err: errors.New("connection refused")}}
	users := NewMemoryUserCache(0, 0)
	require.NoError(t, users.Set(context.Background(), token, auth.User{UserID: "u-1"}))
	aud := &recordingAuditor{err: errors.New("db down")}
	m := NewManager(fa, NewCookieStore("", false), users, aud)

	c, w := newTestContext(&http.Cookie{Name: DefaultCookieName, Value: token})
	m.Hydrate()(c)

	redirect := m.Logout(c)

	assert.Equal(t, auth.PathLogin, redirect)
	assert.Equal(t, 1, fa.logoutCalls)
	assert.Equal(t, token, fa.logoutBearer)

	st := FromGin(c)
	assert.Empty(t, st.Token)
	assert.Nil(t, st.User)

	ck := responseCookie(t, w, DefaultCookieName)
	assert.Empty(t, ck.Value)
	assert.Negative(t, ck.MaxAge)

	cached, err := users.Get(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, cached)
	assert.Equal(t, []audit.EventType{audit.EventTypeLogout}, aud.events)
}

func TestManager_LogoutWithoutSessionStillRevokesAndRedirects(t *testing.T) {
	fa := &fakeAuth{}
	m := NewManager(fa, NewCookieStore("", false), nil, nil)

	c, _ := newTestContext(nil)
	assert.Equal(t, auth.PathLogin, m.Logout(c))
	assert.Equal(t, 1, fa.logoutCalls)
	assert.Empty(t, fa.logoutBearer)
}

func TestManager_Require(t *testing.T) {
	m := NewManager(&fakeAuth{}, NewCookieStore("", false), nil, nil)

	c, _ := newTestContext(nil)
	m.Hydrate()(c)
	_, err := m.Require(c)
	assert.ErrorIs(t, err, ErrNoToken)

	c, _ = newTestContext(&http.Cookie{Name: DefaultCookieName, Value: "opaque"})
	m.Hydrate()(c)
	st, err := m.Require(c)
	require.NoError(t, err)
	assert.Equal(t, "opaque", st.Token)
}
