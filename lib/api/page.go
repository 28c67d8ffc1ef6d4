// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page is the pagination envelope returned by every list endpoint:
// {content, page, size, totalElements, totalPages}. Pages are
// zero-indexed. The client mirrors this shape into local UI state
// unchanged.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// decodePage decodes a list response into a Page. Some endpoints
// return a bare JSON array instead of the envelope depending on which
// filters were present (a backend inconsistency the whole client
// would otherwise have to special-case); bare arrays are wrapped into
// a single-page envelope so every caller sees one canonical shape.
func decodePage[T any](body []byte) (Page[T], error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var content []T
		if err := json.Unmarshal(body, &content); err != nil {
			return Page[T]{}, fmt.Errorf("api: decoding list response: %w", err)
		}
		return singlePage(content), nil
	}

	var page Page[T]
	if err := json.Unmarshal(body, &page); err != nil {
		return Page[T]{}, fmt.Errorf("api: decoding paginated response: %w", err)
	}
	if page.Content == nil {
		page.Content = []T{}
	}
	return page, nil
}

// singlePage wraps an already-complete slice in the envelope shape.
func singlePage[T any](content []T) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		Page:          0,
		Size:          len(content),
		TotalElements: int64(len(content)),
		TotalPages:    1,
	}
}
