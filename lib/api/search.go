// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// SearchHit is one row of the global search response: a flat, tagged
// record whose Type discriminator says which entity it refers to.
type SearchHit struct {
	Type    string `json:"type"` // "TICKET", "USER", "CATEGORY", or "LOCATION".
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
}

// SearchResults is the client-side partitioning of the flat hit list
// by the Type discriminator, ready for sectioned display.
type SearchResults struct {
	Tickets    []SearchHit
	Users      []SearchHit
	Categories []SearchHit
	Locations  []SearchHit
	Other      []SearchHit // Unknown discriminators, kept rather than dropped.
}

// Total returns the number of hits across all partitions.
func (results SearchResults) Total() int {
	return len(results.Tickets) + len(results.Users) +
		len(results.Categories) + len(results.Locations) + len(results.Other)
}

// PartitionHits splits a flat tagged hit list by entity type,
// preserving server order within each partition.
func PartitionHits(hits []SearchHit) SearchResults {
	var results SearchResults
	for _, hit := range hits {
		switch hit.Type {
		case "TICKET":
			results.Tickets = append(results.Tickets, hit)
		case "USER":
			results.Users = append(results.Users, hit)
		case "CATEGORY":
			results.Categories = append(results.Categories, hit)
		case "LOCATION":
			results.Locations = append(results.Locations, hit)
		default:
			results.Other = append(results.Other, hit)
		}
	}
	return results
}

// Search runs a global search. entityType narrows the search
// server-side ("all" searches everything); the response is always the
// flat tagged list, partitioned here before returning.
func (c *Client) Search(ctx context.Context, query, entityType string, page, size int) (SearchResults, error) {
	if entityType == "" {
		entityType = "all"
	}
	body, err := c.doRequest(ctx, http.MethodPost, "/search", nil, map[string]any{
		"query":      query,
		"entityType": entityType,
		"page":       page,
		"size":       size,
	})
	if err != nil {
		return SearchResults{}, fmt.Errorf("api: search failed: %w", err)
	}

	// The endpoint returns either a bare array of hits or an envelope
	// with the hits under "content", depending on backend version.
	hitsPage, err := decodePage[SearchHit](body)
	if err != nil {
		var hits []SearchHit
		if jsonErr := json.Unmarshal(body, &hits); jsonErr != nil {
			return SearchResults{}, err
		}
		return PartitionHits(hits), nil
	}
	return PartitionHits(hitsPage.Content), nil
}
