// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/KhalidiZib/supporthub/lib/api"
)

// ErrorCategory classifies command failures so scripts can branch on
// the category line instead of parsing message text.
type ErrorCategory string

const (
	// CategoryValidation: the caller provided bad input and should
	// fix it before retrying.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound: a referenced resource does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden: the signed-in role lacks permission.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryAuth: no valid session; sign in again.
	CategoryAuth ErrorCategory = "auth"

	// CategoryTransient: network failure or backend 5xx; retrying may
	// succeed.
	CategoryTransient ErrorCategory = "transient"
)

// ToolError carries a category alongside the wrapped error. The
// message is unchanged; the category travels separately so main can
// print it as a suffix.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

func (e *ToolError) Error() string { return e.Err.Error() }

// Unwrap lets errors.Is and errors.As walk through the wrapper.
func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error for bad command input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// Classify attaches a category to backend errors by HTTP status.
// Errors that already carry a category, and nil, pass through; errors
// with no backend response (network, timeout) become transient.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return err
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized:
			return &ToolError{Category: CategoryAuth, Err: fmt.Errorf("%w (run 'supporthub login')", err)}
		case apiErr.StatusCode == http.StatusForbidden:
			return &ToolError{Category: CategoryForbidden, Err: err}
		case apiErr.StatusCode == http.StatusNotFound:
			return &ToolError{Category: CategoryNotFound, Err: err}
		case apiErr.StatusCode >= 500:
			return &ToolError{Category: CategoryTransient, Err: err}
		case apiErr.StatusCode >= 400:
			return &ToolError{Category: CategoryValidation, Err: err}
		}
		return err
	}

	// No server response. Connection and timeout failures may clear on
	// retry; url.Error and net.OpError both satisfy net.Error.
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return &ToolError{Category: CategoryTransient, Err: err}
	}
	return err
}
