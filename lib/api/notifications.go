// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListNotifications returns a page of the calling user's
// notifications, newest first (server-ordered).
func (c *Client) ListNotifications(ctx context.Context, page, size int) (Page[Notification], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	body, err := c.doRequest(ctx, http.MethodGet, "/notifications", query, nil)
	if err != nil {
		return Page[Notification]{}, fmt.Errorf("api: listing notifications: %w", err)
	}
	return decodePage[Notification](body)
}

// UnreadCount returns the number of unread notifications. The body is
// a bare JSON number.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/notifications/unread-count", nil, nil)
	if err != nil {
		return 0, fmt.Errorf("api: fetching unread count: %w", err)
	}

	var count int
	if err := json.Unmarshal(body, &count); err != nil {
		return 0, fmt.Errorf("api: parsing unread count: %w", err)
	}
	return count, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodPut, "/notifications/"+strconv.FormatInt(id, 10)+"/read", nil, nil)
	if err != nil {
		return fmt.Errorf("api: marking notification %d read: %w", id, err)
	}
	return nil
}
