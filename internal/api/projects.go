package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type Project struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ClientID       string `json:"clientId,omitempty"`
	ClientName     string `json:"clientName,omitempty"`
	IsActive       *bool  `json:"isActive,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
}

type CreateProjectRequest struct {
	Name     string `json:"name" binding:"required"`
	ClientID string `json:"clientId,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
}

type UpdateProjectRequest struct {
	Name     *string `json:"name,omitempty"`
	ClientID *string `json:"clientId,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ProjectFilter narrows ListProjects. Zero values are not sent.
type ProjectFilter struct {
	IsActive *bool
	ClientID string
}

func (f ProjectFilter) values() url.Values {
	q := url.Values{}
	if f.IsActive != nil {
		q.Set("isActive", strconv.FormatBool(*f.IsActive))
	}
	if f.ClientID != "" {
		q.Set("clientId", f.ClientID)
	}
	return q
}

func (c *Client) CreateProject(ctx context.Context, organizationID string, req CreateProjectRequest) (Project, error) {
	var out Project
	err := c.do(ctx, http.MethodPost, orgPath(organizationID, "projects"), nil, req, &out)
	return out, err
}

func (c *Client) ListProjects(ctx context.Context, organizationID string, f ProjectFilter) ([]Project, error) {
	var out []Project
	err := c.do(ctx, http.MethodGet, orgPath(organizationID, "projects"), f.values(), nil, &out)
	return out, err
}

func (c *Client) GetProject(ctx context.Context, organizationID, projectID string) (Project, error) {
	var out Project
	err := c.do(ctx, http.MethodGet, orgPath(organizationID, "projects", projectID), nil, nil, &out)
	return out, err
}

func (c *Client) UpdateProject(ctx context.Context, organizationID, projectID string, req UpdateProjectRequest) (Project, error) {
	var out Project
	err := c.do(ctx, http.MethodPatch, orgPath(organizationID, "projects", projectID), nil, req, &out)
	return out, err
}
