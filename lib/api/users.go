// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// ListUsers returns a page of accounts, optionally filtered by role.
// The backend returns a bare array when no role filter is applied and
// an envelope when one is; decodePage hides the difference.
func (c *Client) ListUsers(ctx context.Context, page, size int, role Role) (Page[User], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	if role != "" {
		query.Set("role", string(role))
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/users", query, nil)
	if err != nil {
		return Page[User]{}, fmt.Errorf("api: listing users: %w", err)
	}
	return decodePage[User](body)
}

// SearchUsers matches accounts by name or email. The backend returns
// a bare list; it is wrapped into the standard envelope.
func (c *Client) SearchUsers(ctx context.Context, queryText string) (Page[User], error) {
	query := url.Values{}
	query.Set("query", queryText)

	body, err := c.doRequest(ctx, http.MethodGet, "/users/search", query, nil)
	if err != nil {
		return Page[User]{}, fmt.Errorf("api: searching users: %w", err)
	}
	return decodePage[User](body)
}

// GetUser returns one account by ID.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/users/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: fetching user %d: %w", id, err)
	}
	return parseUser(body)
}

// CreateUserRequest creates an account with an explicit role. This is
// how admins provision agents.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// CreateUser provisions an account. Admin-only on the backend.
func (c *Client) CreateUser(ctx context.Context, request CreateUserRequest) (*User, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/users", nil, request)
	if err != nil {
		return nil, fmt.Errorf("api: creating user: %w", err)
	}
	return parseUser(body)
}

// UpdateUserRequest carries the editable account fields. Empty
// strings leave the field unchanged server-side.
type UpdateUserRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// UpdateUser edits another account. Admin-only on the backend.
func (c *Client) UpdateUser(ctx context.Context, id int64, request UpdateUserRequest) (*User, error) {
	body, err := c.doRequest(ctx, http.MethodPut, "/users/"+strconv.FormatInt(id, 10), nil, request)
	if err != nil {
		return nil, fmt.Errorf("api: updating user %d: %w", id, err)
	}
	return parseUser(body)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/users/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return fmt.Errorf("api: deleting user %d: %w", id, err)
	}
	return nil
}

// ToggleUserStatus flips an account between enabled and disabled.
// The backend decides the new state from the current one; the client
// sends no body.
func (c *Client) ToggleUserStatus(ctx context.Context, id int64) (*User, error) {
	body, err := c.doRequest(ctx, http.MethodPatch, "/users/"+strconv.FormatInt(id, 10)+"/status", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: toggling status of user %d: %w", id, err)
	}
	return parseUser(body)
}

// MyProfile returns the calling user's own profile.
func (c *Client) MyProfile(ctx context.Context) (*User, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/users/me", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: fetching profile: %w", err)
	}
	return parseUser(body)
}

// UpdateMyProfile edits the calling user's own profile.
func (c *Client) UpdateMyProfile(ctx context.Context, request UpdateUserRequest) (*User, error) {
	body, err := c.doRequest(ctx, http.MethodPut, "/users/me", nil, request)
	if err != nil {
		return nil, fmt.Errorf("api: updating profile: %w", err)
	}
	return parseUser(body)
}

// UploadAvatar replaces the calling user's avatar with the given
// image, sent as a multipart "file" field.
func (c *Client) UploadAvatar(ctx context.Context, fileName string, file io.Reader) (*User, error) {
	body, err := c.doRequestMultipart(ctx, http.MethodPost, "/users/me/avatar", "file", fileName, file)
	if err != nil {
		return nil, fmt.Errorf("api: uploading avatar: %w", err)
	}
	return parseUser(body)
}

func parseUser(body []byte) (*User, error) {
	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("api: parsing user: %w", err)
	}
	return &user, nil
}
