// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package authflow implements the two-factor step-up login state
// machine. Primary credentials may complete authentication directly
// or may come back with a step-up flag; the flow then holds the
// pending email, collects a short numeric code, and exchanges it for
// the final token.
//
// Failure messages are deliberately generic: "wrong password" and
// "unknown account" are indistinguishable to the user, as are wrong
// and expired codes. This anti-enumeration property is part of the
// product's security posture and must not be "improved" with more
// helpful messages.
package authflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/KhalidiZib/supporthub/lib/api"
)

// State is the flow's position.
type State int

const (
	// StateCredentials is the initial state: collecting email and
	// password.
	StateCredentials State = iota

	// StateStepUp means the backend accepted the password but
	// requires a second factor. The flow holds the pending email.
	StateStepUp

	// StateAuthenticated is terminal: a session has been installed.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateCredentials:
		return "credentials"
	case StateStepUp:
		return "step-up"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// ErrInvalidCredentials is the generic primary-credential failure.
// Deliberately does not distinguish wrong password from unknown user.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidCode is the generic second-factor failure. Deliberately
// does not distinguish wrong, reused, and expired codes.
var ErrInvalidCode = errors.New("invalid verification code")

// Authenticator is the slice of the API client the flow needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Verify2FA(ctx context.Context, email, code string) (*api.LoginResult, error)
}

// SessionInstaller receives the completed login. Satisfied by
// *session.Manager.
type SessionInstaller interface {
	Login(result *api.LoginResult) error
}

// Config configures a Flow.
type Config struct {
	// Client performs the authentication calls. Required.
	Client Authenticator

	// Sessions receives the completed login result. Required.
	Sessions SessionInstaller

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Flow is a single login attempt's state machine. Create one per
// login screen; it is not reused after reaching StateAuthenticated.
// Not safe for concurrent use; it belongs to one UI flow.
type Flow struct {
	client   Authenticator
	sessions SessionInstaller
	logger   *slog.Logger

	state        State
	pendingEmail string
}

// New creates a Flow in StateCredentials.
func New(config Config) *Flow {
	if config.Client == nil {
		panic("authflow: Client is required")
	}
	if config.Sessions == nil {
		panic("authflow: Sessions is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Flow{
		client:   config.Client,
		sessions: config.Sessions,
		logger:   logger,
	}
}

// State returns the flow's current state.
func (flow *Flow) State() State { return flow.state }

// PendingEmail returns the email held for step-up verification, or ""
// outside StateStepUp.
func (flow *Flow) PendingEmail() string { return flow.pendingEmail }

// SubmitCredentials submits email and password. On a step-up
// response the flow moves to StateStepUp without installing any
// session; on a direct success it installs the session and moves to
// StateAuthenticated. Authentication rejections return
// ErrInvalidCredentials and leave the flow in StateCredentials;
// transport failures are returned as-is.
func (flow *Flow) SubmitCredentials(ctx context.Context, email, password string) error {
	if flow.state != StateCredentials {
		return fmt.Errorf("authflow: not accepting credentials in state %s", flow.state)
	}

	result, err := flow.client.Login(ctx, email, password)
	if err != nil {
		if isAuthRejection(err) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("authflow: login: %w", err)
	}

	if result.TwoFactorRequired {
		flow.pendingEmail = result.Email
		if flow.pendingEmail == "" {
			flow.pendingEmail = email
		}
		flow.state = StateStepUp
		flow.logger.Debug("login requires second factor")
		return nil
	}

	return flow.complete(result)
}

// SubmitCode exchanges the second-factor code for the final token.
// On rejection the flow stays in StateStepUp with the pending email
// intact, so the user can retry without re-entering credentials.
func (flow *Flow) SubmitCode(ctx context.Context, code string) error {
	if flow.state != StateStepUp {
		return fmt.Errorf("authflow: no step-up pending in state %s", flow.state)
	}

	result, err := flow.client.Verify2FA(ctx, flow.pendingEmail, code)
	if err != nil {
		if isAuthRejection(err) {
			return ErrInvalidCode
		}
		return fmt.Errorf("authflow: 2fa verification: %w", err)
	}
	if result.Token == "" {
		// A verify response without a token is a server contract
		// violation; treat it like a rejection rather than installing
		// a broken session.
		return ErrInvalidCode
	}

	return flow.complete(result)
}

// Cancel abandons a pending step-up and returns to StateCredentials,
// discarding the held email. No-op in other states.
func (flow *Flow) Cancel() {
	if flow.state != StateStepUp {
		return
	}
	flow.state = StateCredentials
	flow.pendingEmail = ""
}

func (flow *Flow) complete(result *api.LoginResult) error {
	if err := flow.sessions.Login(result); err != nil {
		return fmt.Errorf("authflow: installing session: %w", err)
	}
	flow.state = StateAuthenticated
	flow.pendingEmail = ""
	return nil
}

// isAuthRejection reports whether the server answered and said no,
// as opposed to the request not getting through. 400s cover malformed
// or rejected credential payloads, 401s wrong credentials or codes.
func isAuthRejection(err error) bool {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized ||
		apiErr.StatusCode == http.StatusBadRequest ||
		apiErr.StatusCode == http.StatusForbidden
}
