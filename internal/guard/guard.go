// Package guard gates page and API routes on the hydrated session.
//
// Role checks here are navigation affordances built on unverified token
// claims. They are not a security boundary: the backend re-authorizes every
// request made with the bearer token.
package guard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"timesheet-web/internal/api"
	"timesheet-web/internal/auth"
	"timesheet-web/internal/metrics"
	"timesheet-web/internal/session"
	"timesheet-web/pkg/logger"
)

// Decision is the outcome of a guard: allow, or redirect to Redirect.
type Decision struct {
	Allow    bool
	Redirect string
}

var allow = Decision{Allow: true}

func redirect(to string) Decision { return Decision{Redirect: to} }

// Authenticated sends anonymous sessions to the login page.
func Authenticated(st session.State) Decision {
	if !st.Authenticated() {
		return redirect(auth.PathLogin)
	}
	return allow
}

// ManagerOnly sends employee-only sessions to their home page. Sessions
// without any decodable role are allowed.
func ManagerOnly(st session.State) Decision {
	if st.Restricted() {
		return redirect(auth.PathTimesheets)
	}
	return allow
}

// Deny turns a refusing Decision into a response. It must abort c.
type Deny func(c *gin.Context, d Decision)

// RedirectTo answers page requests with a 302 to the decision's target.
func RedirectTo(c *gin.Context, d Decision) {
	c.Redirect(http.StatusFound, d.Redirect)
	c.Abort()
}

// JSONStatus answers API requests with status and the redirect target,
// leaving navigation to the caller.
func JSONStatus(status int) Deny {
	return func(c *gin.Context, d Decision) {
		c.AbortWithStatusJSON(status, gin.H{
			"error":    http.StatusText(status),
			"redirect": d.Redirect,
		})
	}
}

func enforce(name string, check func(c *gin.Context) Decision, deny Deny) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := check(c)
		if d.Allow {
			c.Next()
			return
		}
		metrics.GuardRedirects.WithLabelValues(name).Inc()
		logger.FromGin(c).Debug("guard refused request",
			slog.String("guard", name),
			slog.String("redirect", d.Redirect),
		)
		deny(c, d)
	}
}

// RequireAuth must run after session.Manager.Hydrate.
func RequireAuth(deny Deny) gin.HandlerFunc {
	return enforce("auth", func(c *gin.Context) Decision {
		return Authenticated(session.FromGin(c))
	}, deny)
}

// RequireManager is independent of RequireAuth; chain both when a route
// needs both.
func RequireManager(deny Deny) gin.HandlerFunc {
	return enforce("manager", func(c *gin.Context) Decision {
		return ManagerOnly(session.FromGin(c))
	}, deny)
}

// OrganizationLister reports the organizations of the current bearer.
type OrganizationLister interface {
	MyOrganizations(ctx context.Context) ([]api.Organization, error)
}

// HasOrganization sends sessions without an organization to onboarding.
// A failed lookup counts as having none.
func HasOrganization(ctx context.Context, path string, orgs OrganizationLister) Decision {
	if path == auth.PathOnboarding {
		return allow
	}
	list, err := orgs.MyOrganizations(ctx)
	if err != nil || len(list) == 0 {
		return redirect(auth.PathOnboarding)
	}
	return allow
}

// RequireOrganization must run after RequireAuth.
func RequireOrganization(orgs OrganizationLister, deny Deny) gin.HandlerFunc {
	return enforce("organization", func(c *gin.Context) Decision {
		return HasOrganization(c.Request.Context(), c.Request.URL.Path, orgs)
	}, deny)
}
