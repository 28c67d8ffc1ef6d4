// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// CreateComment posts a comment on a ticket. The returned Comment is
// the server's canonical copy (with ID, author, and timestamp filled
// in); callers append it to their local thread without re-fetching
// the whole ticket.
func (c *Client) CreateComment(ctx context.Context, ticketID int64, content string) (*Comment, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/comments", nil, map[string]any{
		"ticketId": ticketID,
		"content":  content,
	})
	if err != nil {
		return nil, fmt.Errorf("api: posting comment on ticket %d: %w", ticketID, err)
	}

	var comment Comment
	if err := json.Unmarshal(body, &comment); err != nil {
		return nil, fmt.Errorf("api: parsing posted comment: %w", err)
	}
	return &comment, nil
}

// ListComments returns the comment thread for a ticket. GetTicket
// already embeds the thread; this exists for refreshing a thread
// without re-fetching ticket metadata.
func (c *Client) ListComments(ctx context.Context, ticketID int64) ([]Comment, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/comments/ticket/"+strconv.FormatInt(ticketID, 10), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: listing comments for ticket %d: %w", ticketID, err)
	}

	var comments []Comment
	if err := json.Unmarshal(body, &comments); err != nil {
		return nil, fmt.Errorf("api: parsing comments for ticket %d: %w", ticketID, err)
	}
	return comments, nil
}

// DeleteComment removes a comment. Admin-only on the backend.
func (c *Client) DeleteComment(ctx context.Context, commentID int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/comments/"+strconv.FormatInt(commentID, 10), nil, nil)
	if err != nil {
		return fmt.Errorf("api: deleting comment %d: %w", commentID, err)
	}
	return nil
}
