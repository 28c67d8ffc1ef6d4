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

// ListCategories returns all ticket categories. The set is small
// (tens, not thousands) so the endpoint is unpaginated.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/categories", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: listing categories: %w", err)
	}

	// Tolerate both a bare array and an envelope.
	page, err := decodePage[Category](body)
	if err != nil {
		return nil, err
	}
	return page.Content, nil
}

// CategoryRequest is the create/update payload for a category.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateCategory adds a category. Admin-only on the backend.
func (c *Client) CreateCategory(ctx context.Context, request CategoryRequest) (*Category, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/categories", nil, request)
	if err != nil {
		return nil, fmt.Errorf("api: creating category: %w", err)
	}
	return parseCategory(body)
}

// UpdateCategory edits a category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, request CategoryRequest) (*Category, error) {
	body, err := c.doRequest(ctx, http.MethodPut, "/categories/"+strconv.FormatInt(id, 10), nil, request)
	if err != nil {
		return nil, fmt.Errorf("api: updating category %d: %w", id, err)
	}
	return parseCategory(body)
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/categories/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return fmt.Errorf("api: deleting category %d: %w", id, err)
	}
	return nil
}

func parseCategory(body []byte) (*Category, error) {
	var category Category
	if err := json.Unmarshal(body, &category); err != nil {
		return nil, fmt.Errorf("api: parsing category: %w", err)
	}
	return &category, nil
}
