package client

import (
	"context"
	"net/url"
)

// NotificationsClient reads the notification list.
type NotificationsClient struct {
	client *Client
}

// NotificationList is the list with its unread count.
type NotificationList struct {
	Items  []Notification `json:"items"`
	Unread int            `json:"unread"`
}

// List returns every notification, oldest first.
func (n *NotificationsClient) List(ctx context.Context) (*NotificationList, error) {
	var out NotificationList
	if err := n.client.get(ctx, "/api/v1/notifications", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UnreadCount returns the badge count.
func (n *NotificationsClient) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Unread int `json:"unread"`
	}
	if err := n.client.get(ctx, "/api/v1/notifications/unread-count", &out); err != nil {
		return 0, err
	}
	return out.Unread, nil
}

// MarkRead flags one notification as read.
func (n *NotificationsClient) MarkRead(ctx context.Context, id string) error {
	return n.client.post(ctx, "/api/v1/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

// Scan runs a deadline scan on the server.  Requires an admin session.
func (n *NotificationsClient) Scan(ctx context.Context) (*ScanResult, error) {
	var out ScanResult
	if err := n.client.post(ctx, "/api/v1/admin/notifications/scan", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

//Personal.AI order the ending
