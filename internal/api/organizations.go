package api

import (
	"context"
	"net/http"
)

type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
}

// MyOrganizations lists the organizations the caller belongs to.
func (c *Client) MyOrganizations(ctx context.Context) ([]Organization, error) {
	var out []Organization
	err := c.do(ctx, http.MethodGet, "/v1/organizations/mine", nil, nil, &out)
	return out, err
}

func (c *Client) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (Organization, error) {
	var out Organization
	err := c.do(ctx, http.MethodPost, "/v1/organizations", nil, req, &out)
	return out, err
}
