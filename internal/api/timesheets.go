package api

import (
	"context"
	"net/http"
	"net/url"
)

type Timesheet struct {
	ID             string `json:"id"`
	WeekStartDate  string `json:"weekStartDate"`
	OrganizationID string `json:"organizationId,omitempty"`
	CreatedAtUTC   string `json:"createdAtUtc,omitempty"`
	UpdatedAtUTC   string `json:"updatedAtUtc,omitempty"`
}

type CreateTimesheetRequest struct {
	WeekStartDate string `json:"weekStartDate"`
}

// TimesheetFilter narrows ListTimesheets; WeekStartDate is YYYY-MM-DD.
type TimesheetFilter struct {
	WeekStartDate string
}

func (c *Client) ListTimesheets(ctx context.Context, organizationID string, f TimesheetFilter) ([]Timesheet, error) {
	q := url.Values{}
	if f.WeekStartDate != "" {
		q.Set("weekStartDate", f.WeekStartDate)
	}
	var out []Timesheet
	err := c.do(ctx, http.MethodGet, orgPath(organizationID, "timesheets"), q, nil, &out)
	return out, err
}

func (c *Client) CreateTimesheet(ctx context.Context, organizationID string, req CreateTimesheetRequest) (Timesheet, error) {
	var out Timesheet
	err := c.do(ctx, http.MethodPost, orgPath(organizationID, "timesheets"), nil, req, &out)
	return out, err
}

type TimesheetEntry struct {
	ID              string  `json:"id"`
	TimesheetID     string  `json:"timesheetId,omitempty"`
	ProjectID       string  `json:"projectId"`
	TaskID          *string `json:"taskId,omitempty"`
	WorkDate        string  `json:"workDate"`
	StartTime       *string `json:"startTime,omitempty"`
	EndTime         *string `json:"endTime,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAtUTC    string  `json:"createdAtUtc,omitempty"`
	UpdatedAtUTC    string  `json:"updatedAtUtc,omitempty"`
}

// TimesheetEntryPayload is sent on create and update; nil fields are sent as null.
type TimesheetEntryPayload struct {
	ProjectID       string  `json:"projectId"`
	TaskID          *string `json:"taskId"`
	WorkDate        string  `json:"workDate"`
	StartTime       *string `json:"startTime"`
	EndTime         *string `json:"endTime"`
	DurationMinutes *int    `json:"durationMinutes"`
	Notes           *string `json:"notes"`
}

func (c *Client) ListTimesheetEntries(ctx context.Context, organizationID, timesheetID string) ([]TimesheetEntry, error) {
	var out []TimesheetEntry
	err := c.do(ctx, http.MethodGet, orgPath(organizationID, "timesheets", timesheetID, "entries"), nil, nil, &out)
	return out, err
}

func (c *Client) CreateTimesheetEntry(ctx context.Context, organizationID, timesheetID string, p TimesheetEntryPayload) (TimesheetEntry, error) {
	var out TimesheetEntry
	err := c.do(ctx, http.MethodPost, orgPath(organizationID, "timesheets", timesheetID, "entries"), nil, p, &out)
	return out, err
}

func (c *Client) UpdateTimesheetEntry(ctx context.Context, organizationID, timesheetID, entryID string, p TimesheetEntryPayload) (TimesheetEntry, error) {
	var out TimesheetEntry
	err := c.do(ctx, http.MethodPatch, orgPath(organizationID, "timesheets", timesheetID, "entries", entryID), nil, p, &out)
	return out, err
}

func (c *Client) RemoveTimesheetEntry(ctx context.Context, organizationID, timesheetID, entryID string) error {
	return c.do(ctx, http.MethodDelete, orgPath(organizationID, "timesheets", timesheetID, "entries", entryID), nil, nil, nil)
}
