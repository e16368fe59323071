package api

import (
	"context"
	"net/http"
)

// Customer is a client of the organization (the billing party, not an HTTP client).
type Customer struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	IsActive       *bool  `json:"isActive,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
	CreatedAtUTC   string `json:"createdAtUtc,omitempty"`
	UpdatedAtUTC   string `json:"updatedAtUtc,omitempty"`
}

type CreateCustomerRequest struct {
	Name string `json:"name" binding:"required"`
}

func (c *Client) ListCustomers(ctx context.Context, organizationID string) ([]Customer, error) {
	var out []Customer
	err := c.do(ctx, http.MethodGet, orgPath(organizationID, "clients"), nil, nil, &out)
	return out, err
}

func (c *Client) CreateCustomer(ctx context.Context, organizationID string, req CreateCustomerRequest) (Customer, error) {
	var out Customer
	err := c.do(ctx, http.MethodPost, orgPath(organizationID, "clients"), nil, req, &out)
	return out, err
}
