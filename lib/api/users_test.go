// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestListUsersNormalizesBareArray(t *testing.T) {
	var gotRole string
	client := testClient(t, ClientConfig{}, func(w http.ResponseWriter, r *http.Request) {
		gotRole = r.URL.Query().Get("role")
		if gotRole == "" {
			// Unfiltered listing comes back as a bare array.
			w.Write([]byte(`[{"id": 1, "role": "AGENT"}, {"id": 2, "role": "CUSTOMER"}]`))
			return
		}
		w.Write([]byte(`{"content": [{"id": 1, "role": "AGENT"}], "page": 0, "size": 10, "totalElements": 1, "totalPages": 1}`))
	})

	t.Run("unfiltered", func(t *testing.T) {
		page, err := client.ListUsers(context.Background(), 0, 10, "")
		if err != nil {
			t.Fatalf("ListUsers: %v", err)
		}
		if len(page.Content) != 2 || page.TotalElements != 2 || page.TotalPages != 1 {
			t.Errorf("bare array not normalized: %+v", page)
		}
	})
	t.Run("role filtered", func(t *testing.T) {
		page, err := client.ListUsers(context.Background(), 0, 10, RoleAgent)
		if err != nil {
			t.Fatalf("ListUsers: %v", err)
		}
		if gotRole != "AGENT" {
			t.Errorf("role query = %q, want AGENT", gotRole)
		}
		if len(page.Content) != 1 || page.Content[0].Role != RoleAgent {
			t.Errorf("unexpected page: %+v", page)
		}
	})
}

func TestToggleUserStatus(t *testing.T) {
	var gotMethod, gotPath string
	client := testClient(t, ClientConfig{}, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"id": 6, "enabled": false}`))
	})

	user, err := client.ToggleUserStatus(context.Background(), 6)
	if err != nil {
		t.Fatalf("ToggleUserStatus: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/api/users/6/status" {
		t.Errorf("request = %s %s, want PATCH /api/users/6/status", gotMethod, gotPath)
	}
	if user.Enabled {
		t.Error("toggled user still enabled")
	}
}

func TestUploadAvatarMultipart(t *testing.T) {
	var gotContentType string
	var gotField, gotFileName, gotContent string
	client := testClient(t, ClientConfig{}, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for field, headers := range r.MultipartForm.File {
			gotField = field
			gotFileName = headers[0].Filename
			file, err := headers[0].Open()
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			defer file.Close()
			content, err := io.ReadAll(file)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			gotContent = string(content)
		}
		w.Write([]byte(`{"id": 3, "avatarUrl": "/static/avatars/3.png"}`))
	})

	user, err := client.UploadAvatar(context.Background(), "me.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("UploadAvatar: %v", err)
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Errorf("Content-Type = %q, want multipart/form-data", gotContentType)
	}
	if gotField != "file" || gotFileName != "me.png" {
		t.Errorf("multipart field = %q file %q, want file/me.png", gotField, gotFileName)
	}
	if gotContent != "png-bytes" {
		t.Errorf("uploaded content = %q", gotContent)
	}
	if user.AvatarURL == "" {
		t.Error("avatar URL not decoded")
	}
}
