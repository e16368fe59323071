// Package timesheet implements the weekly timesheet workflow on top of the
// backend REST API.
package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"timesheet-web/internal/api"
)

var (
	// ErrNoOrganization means the caller belongs to no organization yet.
	ErrNoOrganization = errors.New("timesheet: no organization")
	// ErrMissingDetails means an entry lacks its project or work date.
	ErrMissingDetails = errors.New("timesheet: project and work date are required")
)

// Backend is the subset of *api.Client the workflow uses.
type Backend interface {
	MyOrganizations(ctx context.Context) ([]api.Organization, error)
	ListProjects(ctx context.Context, organizationID string, f api.ProjectFilter) ([]api.Project, error)
	ListTimesheets(ctx context.Context, organizationID string, f api.TimesheetFilter) ([]api.Timesheet, error)
	CreateTimesheet(ctx context.Context, organizationID string, req api.CreateTimesheetRequest) (api.Timesheet, error)
	ListTimesheetEntries(ctx context.Context, organizationID, timesheetID string) ([]api.TimesheetEntry, error)
	CreateTimesheetEntry(ctx context.Context, organizationID, timesheetID string, p api.TimesheetEntryPayload) (api.TimesheetEntry, error)
	UpdateTimesheetEntry(ctx context.Context, organizationID, timesheetID, entryID string, p api.TimesheetEntryPayload) (api.TimesheetEntry, error)
	RemoveTimesheetEntry(ctx context.Context, organizationID, timesheetID, entryID string) error
}

// Week is everything the timesheet page renders.
type Week struct {
	Organization api.Organization     `json:"organization"`
	Projects     []api.Project        `json:"projects"`
	Timesheet    api.Timesheet        `json:"timesheet"`
	Entries      []api.TimesheetEntry `json:"entries"`
	WeekStart    string               `json:"weekStartDate"`
	Label        string               `json:"weekLabel"`
}

// Entry is an entry as edited in the UI. An empty ID means it has not been
// saved yet.
type Entry struct {
	ID              string  `json:"id"`
	ProjectID       string  `json:"projectId"`
	TaskID          *string `json:"taskId"`
	WorkDate        string  `json:"workDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes *int    `json:"durationMinutes"`
	Notes           string  `json:"notes"`
}

type Service struct {
	backend Backend
	clock   func() time.Time
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend, clock: time.Now}
}

// Now is the service clock.
func (s *Service) Now() time.Time { return s.clock() }

// CurrentOrganization is the caller's first organization.
func (s *Service) CurrentOrganization(ctx context.Context) (api.Organization, error) {
	orgs, err := s.backend.MyOrganizations(ctx)
	if err != nil {
		return api.Organization{}, err
	}
	if len(orgs) == 0 || orgs[0].ID == "" {
		return api.Organization{}, ErrNoOrganization
	}
	return orgs[0], nil
}

// LoadWeek loads the week starting at weekStart, creating its timesheet
// when the backend has none yet.
func (s *Service) LoadWeek(ctx context.Context, weekStart time.Time) (Week, error) {
	org, err := s.CurrentOrganization(ctx)
	if err != nil {
		return Week{}, err
	}

	start := FormatDate(weekStart)
	week := Week{Organization: org, WeekStart: start, Label: Label(weekStart)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, err := s.backend.ListProjects(gctx, org.ID, api.ProjectFilter{})
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		week.Projects = projects
		return nil
	})
	g.Go(func() error {
		ts, err := s.ensureTimesheet(gctx, org.ID, start)
		if err != nil {
			return err
		}
		week.Timesheet = ts
		return nil
	})
	if err := g.Wait(); err != nil {
		return Week{}, err
	}

	entries, err := s.backend.ListTimesheetEntries(ctx, org.ID, week.Timesheet.ID)
	if err != nil {
		return Week{}, fmt.Errorf("failed to list entries: %w", err)
	}
	week.Entries = entries
	return week, nil
}

func (s *Service) ensureTimesheet(ctx context.Context, organizationID, weekStart string) (api.Timesheet, error) {
	existing, err := s.backend.ListTimesheets(ctx, organizationID, api.TimesheetFilter{WeekStartDate: weekStart})
	if err != nil {
		return api.Timesheet{}, fmt.Errorf("failed to list timesheets: %w", err)
	}
	if len(existing) > 0 {
		return existing[0], nil
	}
	ts, err := s.backend.CreateTimesheet(ctx, organizationID, api.CreateTimesheetRequest{WeekStartDate: weekStart})
	if err != nil {
		return api.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}
	return ts, nil
}

// SaveEntry creates e when it has no ID, otherwise updates it.
func (s *Service) SaveEntry(ctx context.Context, timesheetID string, e Entry) (api.TimesheetEntry, error) {
	if e.ProjectID == "" || e.WorkDate == "" {
		return api.TimesheetEntry{}, ErrMissingDetails
	}
	org, err := s.CurrentOrganization(ctx)
	if err != nil {
		return api.TimesheetEntry{}, err
	}

	p := e.payload()
	if e.ID == "" {
		return s.backend.CreateTimesheetEntry(ctx, org.ID, timesheetID, p)
	}
	return s.backend.UpdateTimesheetEntry(ctx, org.ID, timesheetID, e.ID, p)
}

func (s *Service) DeleteEntry(ctx context.Context, timesheetID, entryID string) error {
	org, err := s.CurrentOrganization(ctx)
	if err != nil {
		return err
	}
	return s.backend.RemoveTimesheetEntry(ctx, org.ID, timesheetID, entryID)
}

// payload maps empty optional text fields to null.
func (e Entry) payload() api.TimesheetEntryPayload {
	return api.TimesheetEntryPayload{
		ProjectID:       e.ProjectID,
		TaskID:          e.TaskID,
		WorkDate:        e.WorkDate,
		StartTime:       nullable(e.StartTime),
		EndTime:         nullable(e.EndTime),
		DurationMinutes: e.DurationMinutes,
		Notes:           nullable(e.Notes),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
