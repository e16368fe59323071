package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"timesheet-web/internal/api"
	"timesheet-web/internal/timesheet"
)

// --- Timesheet ---

// GetWeek loads the week containing ?week=YYYY-MM-DD, or the current week.
func (h Handlers) GetWeek(c *gin.Context) {
	start, err := timesheet.ParseWeek(c.Query("week"), h.Timesheets.Now())
	if err != nil {
		badRequest(c, err)
		return
	}
	week, err := h.Timesheets.LoadWeek(c.Request.Context(), start)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, week)
}

func (h Handlers) CreateEntry(c *gin.Context) {
	var e timesheet.Entry
	if err := c.ShouldBindJSON(&e); err != nil {
		badRequest(c, err)
		return
	}
	e.ID = ""
	h.saveEntry(c, http.StatusCreated, e)
}

func (h Handlers) UpdateEntry(c *gin.Context) {
	var e timesheet.Entry
	if err := c.ShouldBindJSON(&e); err != nil {
		badRequest(c, err)
		return
	}
	e.ID = c.Param("id")
	h.saveEntry(c, http.StatusOK, e)
}

func (h Handlers) saveEntry(c *gin.Context, status int, e timesheet.Entry) {
	saved, err := h.Timesheets.SaveEntry(c.Request.Context(), c.Param("timesheetId"), e)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, saved)
}

func (h Handlers) DeleteEntry(c *gin.Context) {
	if err := h.Timesheets.DeleteEntry(c.Request.Context(), c.Param("timesheetId"), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Organizations ---

func (h Handlers) CreateOrganization(c *gin.Context) {
	var req api.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	org, err := h.Backend.CreateOrganization(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, org)
}

// --- Projects ---

func (h Handlers) ListProjects(c *gin.Context) {
	orgID, ok := h.organizationID(c)
	if !ok {
		return
	}
	f := api.ProjectFilter{ClientID: c.Query("clientId")}
	if v := c.Query("isActive"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(c, err)
			return
		}
		f.IsActive = &active
	}
	projects, err := h.Backend.ListProjects(c.Request.Context(), orgID, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h Handlers) GetProject(c *gin.Context) {
	orgID, ok := h.organizationID(c)
	if !ok {
		return
	}
	p, err := h.Backend.GetProject(c.Request.Context(), orgID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h Handlers) CreateProject(c *gin.Context) {
	var req api.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	orgID, ok := h.organizationID(c)
	if !ok {
		return
	}
	p, err := h.Backend.CreateProject(c.Request.Context(), orgID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h Handlers) UpdateProject(c *gin.Context) {
	var req api.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	orgID, ok := h.organizationID(c)
	if !ok {
		return
	}
	p, err := h.Backend.UpdateProject(c.Request.Context(), orgID, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// --- Clients ---

func (h Handlers) ListClients(c *gin.Context) {
	orgID, ok := h.organizationID(c)
	if !ok {
		return
	}
	out, err := h.Backend.ListCustomers(c.Request.Context(), orgID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) CreateClient(c *gin.Context) {
	var req api.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	orgID, ok := h.organizationID(c)
	if !ok {
		return
	}
	out, err := h.Backend.CreateCustomer(c.Request.Context(), orgID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// --- Notifications ---

func (h Handlers) ListNotifications(c *gin.Context) {
	var f api.NotificationFilter
	if v := c.Query("unreadOnly"); v != "" {
		unread, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(c, err)
			return
		}
		f.UnreadOnly = &unread
	}
	if v := c.Query("take"); v != "" {
		take, err := strconv.Atoi(v)
		if err != nil || take <= 0 {
			badRequest(c, err)
			return
		}
		f.Take = &take
	}

	orgID, ok := h.organizationID(c)
	if !ok {
		return
	}
	out, err := h.Backend.ListNotifications(c.Request.Context(), orgID, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) MarkNotificationsRead(c *gin.Context) {
	var req api.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	orgID, ok := h.organizationID(c)
	if !ok {
		return
	}
	out, err := h.Backend.MarkNotificationsRead(c.Request.Context(), orgID, req.IDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) MarkAllNotificationsRead(c *gin.Context) {
	orgID, ok := h.organizationID(c)
	if !ok {
		return
	}
	out, err := h.Backend.MarkAllNotificationsRead(c.Request.Context(), orgID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CreateReminder answers 204 when the backend had nobody to remind.
func (h Handlers) CreateReminder(c *gin.Context) {
	orgID, ok := h.organizationID(c)
	if !ok {
		return
	}
	n, err := h.Backend.CreateReminder(c.Request.Context(), orgID)
	if err != nil {
		writeError(c, err)
		return
	}
	if n == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, n)
}
