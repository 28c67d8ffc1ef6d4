// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// LoginResult is the response to a credential or 2FA-code submission.
// When TwoFactorRequired is set the backend has accepted the password
// but withheld the token; the caller must follow up with Verify2FA.
// Otherwise Token carries the bearer token and the identity fields
// describe the authenticated account.
type LoginResult struct {
	Token             string `json:"token"`
	TwoFactorRequired bool   `json:"twoFactorRequired"`
	ID                int64  `json:"id"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	Role              Role   `json:"role"`
}

// Login submits primary credentials. A step-up response (see
// [LoginResult.TwoFactorRequired]) is a success at this layer; the
// 2FA state machine in lib/authflow decides what happens next.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("api: login failed: %w", err)
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("api: parsing login response: %w", err)
	}
	return &result, nil
}

// Verify2FA exchanges a short numeric code for the final token after
// a step-up login response.
func (c *Client) Verify2FA(ctx context.Context, email, code string) (*LoginResult, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/auth/verify-2fa", nil, map[string]string{
		"email": email,
		"code":  code,
	})
	if err != nil {
		return nil, fmt.Errorf("api: 2fa verification failed: %w", err)
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("api: parsing 2fa response: %w", err)
	}
	return &result, nil
}

// CurrentUser returns the account behind the current bearer token.
// This is the "who am I" probe used during session restore; a 401
// here means the durable token is no longer valid.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: fetching current user: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("api: parsing current user: %w", err)
	}
	return &user, nil
}

// RegisterRequest creates a new customer account. Only customers
// self-register; agents and admins are created via the users API.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// Register creates a customer account.
func (c *Client) Register(ctx context.Context, request RegisterRequest) (*User, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/auth/register", nil, request)
	if err != nil {
		return nil, fmt.Errorf("api: registration failed: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("api: parsing registration response: %w", err)
	}
	return &user, nil
}

// RequestPasswordReset starts the three-step OTP reset flow by
// mailing a reset code to the given address. The backend responds
// identically whether or not the address exists; the client must not
// surface any distinction.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/auth/password/reset/request", nil, map[string]string{
		"email": email,
	})
	if err != nil {
		return fmt.Errorf("api: password reset request failed: %w", err)
	}
	return nil
}

// VerifyPasswordReset checks a reset code before the user is asked
// for a new password (step two of the OTP flow).
func (c *Client) VerifyPasswordReset(ctx context.Context, token string) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/auth/password/reset/verify", nil, map[string]string{
		"token": token,
	})
	if err != nil {
		return fmt.Errorf("api: password reset verification failed: %w", err)
	}
	return nil
}

// ConfirmPasswordReset completes the reset flow with the verified
// code and the new password.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/auth/password/reset/confirm", nil, map[string]string{
		"token":       token,
		"newPassword": newPassword,
	})
	if err != nil {
		return fmt.Errorf("api: password reset confirmation failed: %w", err)
	}
	return nil
}

// TwoFactorSetup is returned by EnableTwoFactor: the shared secret
// and an otpauth:// provisioning URI for authenticator apps. The
// enrollment is not active until ConfirmTwoFactor succeeds.
type TwoFactorSetup struct {
	Secret     string `json:"secret"`
	OtpauthURL string `json:"otpauthUrl"`
}

// TwoFactorStatus reports whether 2FA is enabled on the current
// account.
func (c *Client) TwoFactorStatus(ctx context.Context) (bool, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/auth/2fa/status", nil, nil)
	if err != nil {
		return false, fmt.Errorf("api: fetching 2fa status: %w", err)
	}

	var status struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return false, fmt.Errorf("api: parsing 2fa status: %w", err)
	}
	return status.Enabled, nil
}

// EnableTwoFactor begins 2FA enrollment for the current account.
func (c *Client) EnableTwoFactor(ctx context.Context) (*TwoFactorSetup, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/auth/2fa/enable", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: enabling 2fa: %w", err)
	}

	var setup TwoFactorSetup
	if err := json.Unmarshal(body, &setup); err != nil {
		return nil, fmt.Errorf("api: parsing 2fa setup: %w", err)
	}
	return &setup, nil
}

// ConfirmTwoFactor activates a pending 2FA enrollment by proving
// possession of the secret with a current code.
func (c *Client) ConfirmTwoFactor(ctx context.Context, code string) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/auth/2fa/confirm", nil, map[string]string{
		"code": code,
	})
	if err != nil {
		return fmt.Errorf("api: confirming 2fa: %w", err)
	}
	return nil
}

// DisableTwoFactor turns off 2FA for the current account.
func (c *Client) DisableTwoFactor(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/auth/2fa/disable", nil, nil)
	if err != nil {
		return fmt.Errorf("api: disabling 2fa: %w", err)
	}
	return nil
}
