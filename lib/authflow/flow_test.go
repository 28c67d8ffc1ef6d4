// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package authflow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/KhalidiZib/supporthub/lib/api"
)

// fakeAuthenticator scripts the backend's answers and records what it
// was asked.
type fakeAuthenticator struct {
	loginResult  *api.LoginResult
	loginErr     error
	verifyResult *api.LoginResult
	verifyErr    error

	gotEmail    string
	gotPassword string
	gotCode     string
	verifyEmail string
}

func (fake *fakeAuthenticator) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	fake.gotEmail = email
	fake.gotPassword = password
	if fake.loginErr != nil {
		return nil, fake.loginErr
	}
	return fake.loginResult, nil
}

func (fake *fakeAuthenticator) Verify2FA(ctx context.Context, email, code string) (*api.LoginResult, error) {
	fake.verifyEmail = email
	fake.gotCode = code
	if fake.verifyErr != nil {
		return nil, fake.verifyErr
	}
	return fake.verifyResult, nil
}

// fakeInstaller records installed sessions.
type fakeInstaller struct {
	installed []*api.LoginResult
	err       error
}

func (fake *fakeInstaller) Login(result *api.LoginResult) error {
	if fake.err != nil {
		return fake.err
	}
	fake.installed = append(fake.installed, result)
	return nil
}

func newTestFlow(client Authenticator, sessions SessionInstaller) *Flow {
	return New(Config{
		Client:   client,
		Sessions: sessions,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestDirectLogin(t *testing.T) {
	client := &fakeAuthenticator{loginResult: &api.LoginResult{
		Token: "tok", ID: 1, Email: "user@example.com", Role: api.RoleCustomer,
	}}
	sessions := &fakeInstaller{}
	flow := newTestFlow(client, sessions)

	if err := flow.SubmitCredentials(context.Background(), "user@example.com", "pw"); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	if flow.State() != StateAuthenticated {
		t.Errorf("state = %v, want authenticated", flow.State())
	}
	if len(sessions.installed) != 1 || sessions.installed[0].Token != "tok" {
		t.Errorf("installed sessions = %+v", sessions.installed)
	}
}

func TestStepUpLogin(t *testing.T) {
	client := &fakeAuthenticator{
		loginResult:  &api.LoginResult{TwoFactorRequired: true, Email: "user@example.com"},
		verifyResult: &api.LoginResult{Token: "tok", Email: "user@example.com", Role: api.RoleAgent},
	}
	sessions := &fakeInstaller{}
	flow := newTestFlow(client, sessions)

	if err := flow.SubmitCredentials(context.Background(), "user@example.com", "pw"); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	if flow.State() != StateStepUp {
		t.Fatalf("state = %v, want step-up", flow.State())
	}
	if flow.PendingEmail() != "user@example.com" {
		t.Errorf("PendingEmail = %q", flow.PendingEmail())
	}
	if len(sessions.installed) != 0 {
		t.Fatal("session installed before the second factor")
	}

	if err := flow.SubmitCode(context.Background(), "123456"); err != nil {
		t.Fatalf("SubmitCode: %v", err)
	}
	if flow.State() != StateAuthenticated {
		t.Errorf("state = %v, want authenticated", flow.State())
	}
	if client.verifyEmail != "user@example.com" || client.gotCode != "123456" {
		t.Errorf("verify called with %q/%q", client.verifyEmail, client.gotCode)
	}
	if len(sessions.installed) != 1 {
		t.Errorf("installed sessions = %+v", sessions.installed)
	}
	if flow.PendingEmail() != "" {
		t.Error("pending email retained after completion")
	}
}

func TestRejectedCredentialsAreGeneric(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusBadRequest, http.StatusForbidden} {
		client := &fakeAuthenticator{loginErr: &api.Error{StatusCode: status, Message: "user not found"}}
		flow := newTestFlow(client, &fakeInstaller{})

		err := flow.SubmitCredentials(context.Background(), "user@example.com", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("status %d: err = %v, want ErrInvalidCredentials", status, err)
		}
		if flow.State() != StateCredentials {
			t.Errorf("status %d: state = %v, want credentials", status, flow.State())
		}
	}
}

func TestTransportFailurePassesThrough(t *testing.T) {
	netErr := errors.New("connection refused")
	client := &fakeAuthenticator{loginErr: netErr}
	flow := newTestFlow(client, &fakeInstaller{})

	err := flow.SubmitCredentials(context.Background(), "user@example.com", "pw")
	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("transport failure reported as bad credentials")
	}
	if !errors.Is(err, netErr) {
		t.Errorf("err = %v, want wrapped transport error", err)
	}
}

func TestRejectedCodeKeepsStepUp(t *testing.T) {
	client := &fakeAuthenticator{
		loginResult: &api.LoginResult{TwoFactorRequired: true, Email: "user@example.com"},
		verifyErr:   &api.Error{StatusCode: http.StatusUnauthorized, Message: "code expired"},
	}
	flow := newTestFlow(client, &fakeInstaller{})

	if err := flow.SubmitCredentials(context.Background(), "user@example.com", "pw"); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	err := flow.SubmitCode(context.Background(), "000000")
	if !errors.Is(err, ErrInvalidCode) {
		t.Errorf("err = %v, want ErrInvalidCode", err)
	}
	if flow.State() != StateStepUp {
		t.Errorf("state = %v, want step-up retained for retry", flow.State())
	}
	if flow.PendingEmail() != "user@example.com" {
		t.Error("pending email lost on code rejection")
	}
}

func TestVerifyWithoutTokenIsRejection(t *testing.T) {
	client := &fakeAuthenticator{
		loginResult:  &api.LoginResult{TwoFactorRequired: true, Email: "user@example.com"},
		verifyResult: &api.LoginResult{},
	}
	sessions := &fakeInstaller{}
	flow := newTestFlow(client, sessions)

	if err := flow.SubmitCredentials(context.Background(), "user@example.com", "pw"); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	if err := flow.SubmitCode(context.Background(), "123456"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("err = %v, want ErrInvalidCode", err)
	}
	if len(sessions.installed) != 0 {
		t.Error("tokenless verify response installed a session")
	}
}

func TestCancelReturnsToCredentials(t *testing.T) {
	client := &fakeAuthenticator{loginResult: &api.LoginResult{TwoFactorRequired: true, Email: "user@example.com"}}
	flow := newTestFlow(client, &fakeInstaller{})

	if err := flow.SubmitCredentials(context.Background(), "user@example.com", "pw"); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	flow.Cancel()
	if flow.State() != StateCredentials {
		t.Errorf("state = %v, want credentials", flow.State())
	}
	if flow.PendingEmail() != "" {
		t.Error("pending email survived cancel")
	}

	// Cancel outside step-up is a no-op.
	flow.Cancel()
	if flow.State() != StateCredentials {
		t.Errorf("state = %v after repeated cancel", flow.State())
	}
}

func TestStateGuards(t *testing.T) {
	client := &fakeAuthenticator{loginResult: &api.LoginResult{Token: "tok"}}
	flow := newTestFlow(client, &fakeInstaller{})

	if err := flow.SubmitCode(context.Background(), "123456"); err == nil {
		t.Error("SubmitCode accepted with no step-up pending")
	}
	if err := flow.SubmitCredentials(context.Background(), "a@example.com", "pw"); err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	if err := flow.SubmitCredentials(context.Background(), "a@example.com", "pw"); err == nil {
		t.Error("SubmitCredentials accepted after authentication")
	}
}
