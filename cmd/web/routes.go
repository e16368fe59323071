package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timesheet-web/internal/auth"
	"timesheet-web/internal/guard"
	"timesheet-web/internal/httpapi"
	"timesheet-web/internal/metrics"
	"timesheet-web/internal/session"
)

type routeDeps struct {
	handlers httpapi.Handlers
	proxy    *httpapi.Proxy
	orgs     guard.OrganizationLister
}

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, d routeDeps) {
	h := d.handlers

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	s := r.Group("/", h.Sessions.Hydrate())

	s.GET("/", func(c *gin.Context) {
		st := session.FromGin(c)
		if !st.Authenticated() {
			c.Redirect(http.StatusFound, auth.PathLogin)
			return
		}
		c.Redirect(http.StatusFound, st.Landing())
	})

	// public
	s.GET(auth.PathLogin, h.Page("Sign in"))
	s.GET("/register", h.Page("Create account"))
	s.POST("/auth/login", h.Login)
	s.POST("/auth/register", h.Register)
	s.POST("/auth/logout", h.Logout)
	s.GET("/session", h.Session)
	s.GET("/nav", h.Nav)
	s.Any("/api/*path", d.proxy.Handle)

	// pages
	pages := s.Group("/", guard.RequireAuth(guard.RedirectTo))
	pages.GET(auth.PathOnboarding, h.Page("Create organization"))

	member := pages.Group("/", guard.RequireOrganization(d.orgs, guard.RedirectTo))
	member.GET("/track", h.Page("Track"))
	member.GET(auth.PathTimesheets, h.Page("Timesheet"))
	member.GET("/profile", h.Page("My Profile"))

	manager := member.Group("/", guard.RequireManager(guard.RedirectTo))
	manager.GET(auth.PathDashboard, h.Page("Dashboard"))
	manager.GET("/approvals", h.Page("Approvals"))
	manager.GET("/reports", h.Page("Reports"))
	manager.GET("/projects", h.Page("Projects"))
	manager.GET("/clients", h.Page("Clients"))
	manager.GET("/team", h.Page("Team"))

	// app API
	app := s.Group("/app/api", guard.RequireAuth(guard.JSONStatus(http.StatusUnauthorized)))
	app.GET("/timesheet", h.GetWeek)
	app.POST("/timesheets/:timesheetId/entries", h.CreateEntry)
	app.PATCH("/timesheets/:timesheetId/entries/:id", h.UpdateEntry)
	app.DELETE("/timesheets/:timesheetId/entries/:id", h.DeleteEntry)
	app.GET("/projects", h.ListProjects)
	app.GET("/projects/:id", h.GetProject)
	app.GET("/clients", h.ListClients)
	app.GET("/notifications", h.ListNotifications)
	app.POST("/notifications/mark-read", h.MarkNotificationsRead)
	app.POST("/notifications/mark-all-read", h.MarkAllNotificationsRead)
	app.POST("/organizations", h.CreateOrganization)

	mgr := app.Group("", guard.RequireManager(guard.JSONStatus(http.StatusForbidden)))
	mgr.POST("/projects", h.CreateProject)
	mgr.PATCH("/projects/:id", h.UpdateProject)
	mgr.POST("/clients", h.CreateClient)
	mgr.POST("/notifications/reminder", h.CreateReminder)
}
