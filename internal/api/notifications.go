package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type Notification struct {
	ID              string  `json:"id"`
	OrganizationID  string  `json:"organizationId"`
	RecipientUserID string  `json:"recipientUserId"`
	ActorUserID     *string `json:"actorUserId,omitempty"`
	TimesheetID     *string `json:"timesheetId,omitempty"`
	Type            int     `json:"type"`
	Title           string  `json:"title"`
	Message         string  `json:"message"`
	CreatedAtUTC    string  `json:"createdAtUtc"`
	ReadAtUTC       *string `json:"readAtUtc,omitempty"`
	IsRead          bool    `json:"isRead"`
}

// NotificationFilter narrows ListNotifications. Nil fields are not sent.
type NotificationFilter struct {
	UnreadOnly *bool
	Take       *int
}

type MarkReadRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type UpdatedCount struct {
	Updated int `json:"updated"`
}

func (c *Client) ListNotifications(ctx context.Context, organizationID string, f NotificationFilter) ([]Notification, error) {
	q := url.Values{}
	if f.UnreadOnly != nil {
		q.Set("unreadOnly", strconv.FormatBool(*f.UnreadOnly))
	}
	if f.Take != nil {
		q.Set("take", strconv.Itoa(*f.Take))
	}
	var out []Notification
	err := c.do(ctx, http.MethodGet, orgPath(organizationID, "notifications"), q, nil, &out)
	return out, err
}

func (c *Client) MarkNotificationsRead(ctx context.Context, organizationID string, ids []string) (UpdatedCount, error) {
	var out UpdatedCount
	err := c.do(ctx, http.MethodPost, orgPath(organizationID, "notifications", "mark-read"), nil, MarkReadRequest{IDs: ids}, &out)
	return out, err
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context, organizationID string) (UpdatedCount, error) {
	var out UpdatedCount
	err := c.do(ctx, http.MethodPost, orgPath(organizationID, "notifications", "mark-all-read"), nil, nil, &out)
	return out, err
}

// CreateReminder asks the backend to nudge members; it may return no notification.
func (c *Client) CreateReminder(ctx context.Context, organizationID string) (*Notification, error) {
	var out *Notification
	err := c.do(ctx, http.MethodPost, orgPath(organizationID, "notifications", "reminder"), nil, nil, &out)
	return out, err
}
