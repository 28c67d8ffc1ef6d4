// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a structured error response from the backend. Callers use
// errors.As to extract the status code for classification:
//
//	var apiErr *api.Error
//	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
//	    ...
//	}
//
// Connection and encoding failures are returned as plain wrapped
// errors, never as *Error: an *Error always means the server
// answered.
type Error struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int `json:"-"`

	// Message is the server's error message. The backend returns
	// either {"message": ...} or {"error": ...} depending on which
	// layer rejected the request; both decode into this field.
	Message string `json:"message"`

	// RequestID is the X-Request-Id the client attached to the failed
	// request, for correlating with server logs.
	RequestID string `json:"-"`
}

// UnmarshalJSON accepts both error body shapes the backend produces.
func (e *Error) UnmarshalJSON(data []byte) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	e.Message = body.Message
	if e.Message == "" {
		e.Message = body.Error
	}
	return nil
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *Error with the given HTTP
// status code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool { return IsStatus(err, http.StatusUnauthorized) }

// IsForbidden reports whether err is a 403 response.
func IsForbidden(err error) bool { return IsStatus(err, http.StatusForbidden) }

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool { return IsStatus(err, http.StatusNotFound) }

// IsTransient reports whether err is a 5xx response, a server-side
// failure that may clear on manual retry. Network errors are not
// *Error values and are classified by the caller.
func IsTransient(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 500
}
