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

// TopLevelLocations returns all PROVINCE nodes, the roots of the
// location tree and the first level of the cascade selector.
func (c *Client) TopLevelLocations(ctx context.Context) ([]LocationNode, error) {
	return c.locationList(ctx, "/locations/top-level", nil)
}

// LocationsByParent returns the direct children of a node: districts
// of a province, sectors of a district, and so on. The cascade
// selector calls this each time a parent level changes.
func (c *Client) LocationsByParent(ctx context.Context, parentID int64) ([]LocationNode, error) {
	return c.locationList(ctx, "/locations/parent/"+strconv.FormatInt(parentID, 10), nil)
}

// LocationsByType returns every node of one hierarchy level.
func (c *Client) LocationsByType(ctx context.Context, locationType LocationType) ([]LocationNode, error) {
	return c.locationList(ctx, "/locations/type/"+string(locationType), nil)
}

// ListLocations returns nodes filtered by type and/or parent. Both
// filters optional.
func (c *Client) ListLocations(ctx context.Context, locationType LocationType, parentID int64) ([]LocationNode, error) {
	query := url.Values{}
	if locationType != "" {
		query.Set("type", string(locationType))
	}
	if parentID != 0 {
		query.Set("parentId", strconv.FormatInt(parentID, 10))
	}
	return c.locationList(ctx, "/locations", query)
}

// PaginatedLocations returns the admin management view of the tree,
// page by page.
func (c *Client) PaginatedLocations(ctx context.Context, page, size int) (Page[LocationNode], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	body, err := c.doRequest(ctx, http.MethodGet, "/locations/paginated", query, nil)
	if err != nil {
		return Page[LocationNode]{}, fmt.Errorf("api: listing locations: %w", err)
	}
	return decodePage[LocationNode](body)
}

// CreateLocationRequest adds a node to the tree. ParentID must be 0
// for a PROVINCE and the ID of a node one level up for everything
// else; the backend rejects violations of the hierarchy invariant.
type CreateLocationRequest struct {
	Name     string       `json:"name"`
	Type     LocationType `json:"type"`
	ParentID int64        `json:"parentId,omitempty"`
}

// CreateLocation adds a location node. Admin-only on the backend.
func (c *Client) CreateLocation(ctx context.Context, request CreateLocationRequest) (*LocationNode, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/locations", nil, request)
	if err != nil {
		return nil, fmt.Errorf("api: creating location: %w", err)
	}

	var node LocationNode
	if err := json.Unmarshal(body, &node); err != nil {
		return nil, fmt.Errorf("api: parsing created location: %w", err)
	}
	return &node, nil
}

// DeleteLocation removes a node (and, server-side, its subtree).
func (c *Client) DeleteLocation(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/locations/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return fmt.Errorf("api: deleting location %d: %w", id, err)
	}
	return nil
}

func (c *Client) locationList(ctx context.Context, path string, query url.Values) ([]LocationNode, error) {
	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, fmt.Errorf("api: listing locations: %w", err)
	}

	var nodes []LocationNode
	if err := json.Unmarshal(body, &nodes); err != nil {
		return nil, fmt.Errorf("api: parsing location list: %w", err)
	}
	return nodes, nil
}
