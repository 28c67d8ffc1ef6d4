// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/KhalidiZib/supporthub/lib/netutil"
)

// TokenSource supplies the current bearer token for outgoing
// requests. Returning "" sends the request unauthenticated (login,
// register, password reset). The client calls it on every request so
// that token rotation after 2FA completion is picked up immediately.
type TokenSource func() string

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the backend base path including the API prefix
	// (e.g., "http://localhost:8081/api"). Required.
	BaseURL string

	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger

	// TokenSource supplies the bearer token. If nil, all requests go
	// out unauthenticated.
	TokenSource TokenSource

	// OnUnauthorized is invoked once per 401 response, after the
	// response body has been read. The session layer registers a
	// callback here to clear its durable token. May be nil.
	OnUnauthorized func()
}

// Client issues requests against the SupportHub backend. Safe for
// concurrent use; it holds no per-request state.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	logger         *slog.Logger
	tokenSource    TokenSource
	onUnauthorized func()
}

// NewClient creates a Client for the given backend.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:        strings.TrimRight(config.BaseURL, "/"),
		httpClient:     httpClient,
		logger:         logger,
		tokenSource:    config.TokenSource,
		onUnauthorized: config.OnUnauthorized,
	}, nil
}

// CloseIdleConnections closes idle HTTP connections in the underlying
// transport's pool. Call after a network disruption to force fresh
// TCP connections instead of reusing a poisoned pooled connection.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// doRequest performs an HTTP request and returns the response body.
// On 2xx, returns the body. On any other status, returns a *Error
// carrying the status code and the server's message. query may be nil
// for endpoints without query parameters; requestBody may be nil for
// bodyless requests.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, requestBody any) ([]byte, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	contentType := ""
	if requestBody != nil {
		contentType = "application/json"
	}
	return c.send(ctx, method, path, query, contentType, bodyReader)
}

// doRequestMultipart performs a multipart/form-data upload with a
// single file field. Used by the avatar upload endpoint.
func (c *Client) doRequestMultipart(ctx context.Context, method, path, fieldName, fileName string, file io.Reader) ([]byte, error) {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return nil, fmt.Errorf("api: creating multipart field %q: %w", fieldName, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("api: writing multipart payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("api: finalizing multipart payload: %w", err)
	}

	return c.send(ctx, method, path, nil, writer.FormDataContentType(), &buffer)
}

// send is the shared request path: builds the URL, attaches the
// bearer token and a fresh X-Request-Id, executes, and classifies the
// response. The 401 hook fires here so that every call site, from
// list fetches to the /auth/me probe, gets identical forced-logout
// behavior.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}

	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}
	requestID := uuid.NewString()
	request.Header.Set("X-Request-Id", requestID)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: request %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("api: reading response body for %s %s: %w", method, path, err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	if response.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	apiErr := &Error{StatusCode: response.StatusCode, RequestID: requestID}
	if jsonErr := json.Unmarshal(responseBody, apiErr); jsonErr != nil || apiErr.Message == "" {
		// Server returned a non-JSON or messageless error body. Fail
		// loud with the raw body so the real response is visible.
		apiErr.Message = strings.TrimSpace(string(responseBody))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(response.StatusCode)
		}
	}

	c.logger.Debug("api request failed",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"request_id", requestID,
	)

	return responseBody, apiErr
}
