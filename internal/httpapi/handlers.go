package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"timesheet-web/internal/api"
	"timesheet-web/internal/auth"
	"timesheet-web/internal/session"
	"timesheet-web/internal/timesheet"
	"timesheet-web/internal/uierror"
	"timesheet-web/pkg/logger"
)

// Backend is the part of *api.Client the app API forwards to.
type Backend interface {
	CreateOrganization(ctx context.Context, req api.CreateOrganizationRequest) (api.Organization, error)

	ListProjects(ctx context.Context, organizationID string, f api.ProjectFilter) ([]api.Project, error)
	GetProject(ctx context.Context, organizationID, projectID string) (api.Project, error)
	CreateProject(ctx context.Context, organizationID string, req api.CreateProjectRequest) (api.Project, error)
	UpdateProject(ctx context.Context, organizationID, projectID string, req api.UpdateProjectRequest) (api.Project, error)

	ListCustomers(ctx context.Context, organizationID string) ([]api.Customer, error)
	CreateCustomer(ctx context.Context, organizationID string, req api.CreateCustomerRequest) (api.Customer, error)

	ListNotifications(ctx context.Context, organizationID string, f api.NotificationFilter) ([]api.Notification, error)
	MarkNotificationsRead(ctx context.Context, organizationID string, ids []string) (api.UpdatedCount, error)
	MarkAllNotificationsRead(ctx context.Context, organizationID string) (api.UpdatedCount, error)
	CreateReminder(ctx context.Context, organizationID string) (*api.Notification, error)
}

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Sessions   *session.Manager
	Timesheets *timesheet.Service
	Backend    Backend
}

var (
	errNoOrganization = uierror.UIError{
		Title:   "No organization",
		Message: "Create an organization first.",
	}
	errMissingDetails = uierror.UIError{
		Title:   "Missing details",
		Message: "Project and work date are required before saving.",
	}
	errInvalidRequest = uierror.UIError{
		Title:   "Invalid request",
		Message: "Please check your details and try again.",
	}
)

// writeError answers with the user-facing form of err.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, timesheet.ErrNoOrganization):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":    errNoOrganization,
			"redirect": auth.PathOnboarding,
		})
		return
	case errors.Is(err, timesheet.ErrMissingDetails):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errMissingDetails})
		return
	}

	status := uierror.Status(err)
	if status >= http.StatusInternalServerError {
		logger.FromGin(c).Error("request failed", slog.String("error", err.Error()))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": uierror.From(err)})
}

func badRequest(c *gin.Context, err error) {
	if err != nil {
		logger.FromGin(c).Debug("invalid request", slog.String("error", err.Error()))
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errInvalidRequest})
}

// organizationID resolves the caller's organization or answers the request.
func (h Handlers) organizationID(c *gin.Context) (string, bool) {
	org, err := h.Timesheets.CurrentOrganization(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return "", false
	}
	return org.ID, true
}
