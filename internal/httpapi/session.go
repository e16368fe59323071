package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timesheet-web/internal/api"
	"timesheet-web/internal/auth"
	"timesheet-web/internal/nav"
	"timesheet-web/internal/session"
)

type sessionView struct {
	Authenticated bool       `json:"authenticated"`
	User          *auth.User `json:"user"`
	Roles         []string   `json:"roles"`
	Restricted    bool       `json:"restricted"`
	Landing       string     `json:"landing,omitempty"`
}

func viewOf(st session.State) sessionView {
	v := sessionView{
		Authenticated: st.Authenticated(),
		User:          st.User,
		Roles:         st.Roles().Sorted(),
		Restricted:    st.Restricted(),
	}
	if v.Authenticated {
		v.Landing = st.Landing()
	}
	return v
}

// Login signs in with email and password. On success the token cookie is
// set and the body names the page to navigate to.
func (h Handlers) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st, redirect, err := h.Sessions.Login(c, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": st.User, "redirect": redirect})
}

func (h Handlers) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st, redirect, err := h.Sessions.Register(c, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": st.User, "redirect": redirect})
}

// Logout always succeeds from the browser's point of view.
func (h Handlers) Logout(c *gin.Context) {
	redirect := h.Sessions.Logout(c)
	c.JSON(http.StatusOK, gin.H{"redirect": redirect})
}

func (h Handlers) Session(c *gin.Context) {
	c.JSON(http.StatusOK, viewOf(session.FromGin(c)))
}

func (h Handlers) Nav(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"groups": nav.ForToken(session.FromGin(c).Token)})
}
