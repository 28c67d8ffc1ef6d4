// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import "testing"

func TestDecodePageEnvelope(t *testing.T) {
	body := []byte(`{
		"content": [{"id": 1, "name": "Water"}, {"id": 2, "name": "Power"}],
		"page": 3,
		"size": 2,
		"totalElements": 8,
		"totalPages": 4
	}`)

	page, err := decodePage[Category](body)
	if err != nil {
		t.Fatalf("decodePage: %v", err)
	}
	if len(page.Content) != 2 || page.Content[0].Name != "Water" {
		t.Errorf("unexpected content: %+v", page.Content)
	}
	if page.Page != 3 || page.TotalElements != 8 || page.TotalPages != 4 {
		t.Errorf("unexpected envelope: %+v", page)
	}
}

func TestDecodePageBareArray(t *testing.T) {
	body := []byte(` [{"id": 5, "name": "Roads"}]`)

	page, err := decodePage[Category](body)
	if err != nil {
		t.Fatalf("decodePage: %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].ID != 5 {
		t.Errorf("unexpected content: %+v", page.Content)
	}
	if page.Page != 0 || page.TotalElements != 1 || page.TotalPages != 1 {
		t.Errorf("bare array not canonicalized: %+v", page)
	}
}

func TestDecodePageEmptyStates(t *testing.T) {
	t.Run("empty array", func(t *testing.T) {
		page, err := decodePage[Ticket]([]byte(`[]`))
		if err != nil {
			t.Fatalf("decodePage: %v", err)
		}
		if page.Content == nil {
			t.Error("empty array decoded to nil content")
		}
	})
	t.Run("envelope without content", func(t *testing.T) {
		page, err := decodePage[Ticket]([]byte(`{"page": 0, "totalElements": 0, "totalPages": 0}`))
		if err != nil {
			t.Fatalf("decodePage: %v", err)
		}
		if page.Content == nil {
			t.Error("missing content field decoded to nil content")
		}
	})
}

func TestDecodePageMalformed(t *testing.T) {
	if _, err := decodePage[Ticket]([]byte(`[{"id": "not a number"`)); err == nil {
		t.Error("malformed array accepted")
	}
	if _, err := decodePage[Ticket]([]byte(`{"content": 7}`)); err == nil {
		t.Error("malformed envelope accepted")
	}
}
