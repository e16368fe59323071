package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet-web/internal/api"
	"timesheet-web/internal/auth"
)

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (*auth.User, error) {
	return nil, errors.New("cache down")
}
func (brokenCache) Set(context.Context, string, auth.User) error { return errors.New("cache down") }
func (brokenCache) Delete(context.Context, string) error         { return errors.New("cache down") }

func TestHydrate_AnonymousRequest(t *testing.T) {
	m := NewManager(&fakeAuth{}, NewCookieStore("", false), nil, nil)
	c, _ := newTestContext(nil)

	m.Hydrate()(c)

	st := FromGin(c)
	assert.False(t, st.Authenticated())
	assert.Nil(t, st.User)
	assert.Empty(t, api.BearerFrom(c.Request.Context()))
}

func TestHydrate_DerivesUserFromClaimsWithoutCaching(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{auth.ClaimSubjectLegacy: "u-7", auth.ClaimEmail: "x@y.z"})
	users := NewMemoryUserCache(0, 0)
	m := NewManager(&fakeAuth{}, NewCookieStore("", false), users, nil)
	c, _ := newTestContext(&http.Cookie{Name: DefaultCookieName, Value: token})

	m.Hydrate()(c)

	st := FromContext(c.Request.Context())
	require.NotNil(t, st.User)
	assert.Equal(t, auth.User{UserID: "u-7", Email: "x@y.z"}, *st.User)
	assert.Equal(t, token, api.BearerFrom(c.Request.Context()))

	cached, err := users.Get(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestHydrate_UnknownCookiesDoNotGrowCache(t *testing.T) {
	users := NewMemoryUserCache(0, 0)
	m := NewManager(&fakeAuth{}, NewCookieStore("", false), users, nil)

	for i := 0; i < 500; i++ {
		payload := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"sub":"anon-%d"}`, i)))
		c, _ := newTestContext(&http.Cookie{Name: DefaultCookieName, Value: "x." + payload + ".x"})
		m.Hydrate()(c)
		require.NotNil(t, FromGin(c).User)
	}

	assert.Zero(t, users.Len())
}

func TestHydrate_PrefersCachedUser(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{auth.ClaimSubject: "from-claims"})
	users := NewMemoryUserCache(0, 0)
	require.NoError(t, users.Set(context.Background(), token, auth.User{UserID: "from-login", Email: "a@b.c"}))
	m := NewManager(&fakeAuth{}, NewCookieStore("", false), users, nil)
	c, _ := newTestContext(&http.Cookie{Name: DefaultCookieName, Value: token})

	m.Hydrate()(c)

	require.NotNil(t, FromGin(c).User)
	assert.Equal(t, "from-login", FromGin(c).User.UserID)
}

func TestHydrate_UndecodableTokenKeepsSessionWithoutUser(t *testing.T) {
	m := NewManager(&fakeAuth{}, NewCookieStore("", false), nil, nil)
	c, _ := newTestContext(&http.Cookie{Name: DefaultCookieName, Value: "garbage"})

	m.Hydrate()(c)

	st := FromGin(c)
	assert.True(t, st.Authenticated())
	assert.Nil(t, st.User)
	assert.False(t, st.Restricted())
	assert.Equal(t, auth.PathDashboard, st.Landing())
}

func TestHydrate_CacheFailuresAreNotFatal(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{auth.ClaimSubject: "u-1", auth.ClaimRole: "Employee"})
	m := NewManager(&fakeAuth{}, NewCookieStore("", false), brokenCache{}, nil)
	c, _ := newTestContext(&http.Cookie{Name: DefaultCookieName, Value: token})

	m.Hydrate()(c)

	st := FromGin(c)
	require.NotNil(t, st.User)
	assert.Equal(t, "u-1", st.User.UserID)
	assert.True(t, st.Restricted())
	assert.Equal(t, auth.PathTimesheets, st.Landing())
}

func TestHydrate_CustomCookieName(t *testing.T) {
	m := NewManager(&fakeAuth{}, NewCookieStore("tok", true), nil, nil)
	c, _ := newTestContext(&http.Cookie{Name: "tok", Value: "abc"})

	m.Hydrate()(c)
	assert.Equal(t, "abc", FromGin(c).Token)
}
