package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultCookieName is the cookie the SPA reads its bearer token from.
const DefaultCookieName = "auth_token"

// CookieStore persists the bearer token in a browser-session cookie.
// The cookie has no expiry and is readable by the SPA.
type CookieStore struct {
	Name   string
	Secure bool
}

func NewCookieStore(name string, secure bool) *CookieStore {
	if name == "" {
		name = DefaultCookieName
	}
	return &CookieStore{Name: name, Secure: secure}
}

// Token returns the persisted token, or "" when absent.
func (s *CookieStore) Token(c *gin.Context) string {
	v, err := c.Cookie(s.Name)
	if err != nil {
		return ""
	}
	return v
}

func (s *CookieStore) Save(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, token, 0, "/", "", s.Secure, false)
}

func (s *CookieStore) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, "", -1, "/", "", s.Secure, false)
}
