// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package session owns the client-side authentication lifecycle: the
// in-memory identity of the signed-in user and the single durable
// artifact behind it, a bearer-token file in the state directory.
//
// Everything except the token is re-derivable from the backend's
// "who am I" endpoint, so [Manager.Restore] rebuilds the session on
// startup from the token alone and treats every failure (missing
// file, expired token, network error, 401) the same way: settle into
// the logged-out state without surfacing an error. Exactly one of
// {session populated, session empty} holds once Loading() is false.
//
// Consumers read the session through the narrow [Reader] interface so
// tests can substitute a fixed session without touching the
// filesystem.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KhalidiZib/supporthub/lib/api"
)

// tokenFileName is the durable token's file name inside the state
// directory. Its presence is the sole signal that a previous login
// may still be valid.
const tokenFileName = "token"

// Session is the authenticated identity held in memory. Destroyed on
// logout and on any 401 from the backend.
type Session struct {
	ID        int64
	Name      string
	Email     string
	Role      api.Role
	AvatarURL string
}

// Reader is the read-only view consumers depend on. The TUI, the
// role gate, and the notification poller all take a Reader, never the
// concrete Manager.
type Reader interface {
	// Current returns the session and whether one is populated.
	Current() (Session, bool)

	// Loading is true from construction until Restore settles. While
	// true, callers should show a neutral pending state rather than
	// acting on the (not yet known) session.
	Loading() bool
}

// Prober fetches the account behind the current bearer token.
// Satisfied by *api.Client; tests substitute fakes.
type Prober interface {
	CurrentUser(ctx context.Context) (*api.User, error)
}

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// StateDir is the directory holding the durable token file.
	// Created with 0700 on first login if absent. Required.
	StateDir string

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Manager is the owned, injectable session store. All methods are
// safe for concurrent use; change callbacks run without the internal
// lock held.
type Manager struct {
	stateDir string
	logger   *slog.Logger

	mu       sync.Mutex
	current  *Session
	token    string
	loading  bool
	onChange []func(populated bool)
}

// NewManager creates a Manager in the loading state. Call Restore
// once at startup to settle it; until then Loading() reports true.
func NewManager(config ManagerConfig) (*Manager, error) {
	if config.StateDir == "" {
		return nil, fmt.Errorf("session: StateDir is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		stateDir: config.StateDir,
		logger:   logger,
		loading:  true,
	}, nil
}

// Current returns the in-memory session, if populated.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// Loading reports whether Restore has settled yet.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Token returns the current bearer token, or "" when logged out.
// Wired into the API client as its TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// OnChange registers a callback invoked whenever the session
// transitions between populated and empty (login, logout, restore,
// forced logout). The callback receives the new populated state and
// must not call back into the Manager.
func (m *Manager) OnChange(callback func(populated bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, callback)
}

// Login installs a session from a completed authentication (plain
// login or 2FA verification) and persists the token. The token file
// is written before the in-memory state changes so a crash between
// the two leaves the durable state ahead, never behind.
func (m *Manager) Login(result *api.LoginResult) error {
	if result.Token == "" {
		return fmt.Errorf("session: login result carries no token")
	}
	if err := m.writeToken(result.Token); err != nil {
		return err
	}

	m.mu.Lock()
	m.token = result.Token
	m.current = &Session{
		ID:    result.ID,
		Name:  result.Name,
		Email: result.Email,
		Role:  result.Role,
	}
	m.loading = false
	callbacks := m.onChange
	m.mu.Unlock()

	m.logger.Info("logged in", "email", result.Email, "role", result.Role)
	for _, callback := range callbacks {
		callback(true)
	}
	return nil
}

// Logout clears the durable token and the in-memory session. Safe to
// call when already logged out.
func (m *Manager) Logout() {
	m.clear("logged out")
}

// ForceLogout is the 401 handler: the backend has declared the token
// invalid, so drop it. Wired into the API client's OnUnauthorized
// hook. Idempotent; concurrent 401s from parallel requests collapse
// into one transition.
func (m *Manager) ForceLogout() {
	m.mu.Lock()
	alreadyOut := m.current == nil && m.token == ""
	m.mu.Unlock()
	if alreadyOut {
		return
	}
	m.clear("session invalidated by server")
}

func (m *Manager) clear(reason string) {
	if err := os.Remove(m.tokenPath()); err != nil && !os.IsNotExist(err) {
		m.logger.Warn("removing token file", "error", err)
	}

	m.mu.Lock()
	wasPopulated := m.current != nil
	m.current = nil
	m.token = ""
	m.loading = false
	callbacks := m.onChange
	m.mu.Unlock()

	m.logger.Info(reason)
	if wasPopulated {
		for _, callback := range callbacks {
			callback(false)
		}
	}
}

// Restore rebuilds the session from the durable token at startup.
// With no token file it settles empty without any network call; with
// a token whose JWT expiry has already passed it likewise settles
// empty locally. Otherwise it probes the "who am I" endpoint and
// populates the session from the answer. Restore never returns an
// error: failure is indistinguishable from being logged out, and the
// caller observes only Loading() turning false.
func (m *Manager) Restore(ctx context.Context, prober Prober) {
	token, err := os.ReadFile(m.tokenPath())
	if err != nil || len(token) == 0 {
		m.settleEmpty()
		return
	}

	if expired(string(token), time.Now()) {
		m.logger.Info("stored token expired, discarding")
		m.clear("session expired")
		return
	}

	// Install the token before probing so the probe request carries
	// it (the API client reads the token through this Manager).
	m.mu.Lock()
	m.token = string(token)
	m.mu.Unlock()

	user, err := prober.CurrentUser(ctx)
	if err != nil {
		m.logger.Warn("session restore failed", "error", err)
		m.clear("stored session rejected")
		return
	}

	m.mu.Lock()
	m.current = &Session{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		AvatarURL: user.AvatarURL,
	}
	m.loading = false
	callbacks := m.onChange
	m.mu.Unlock()

	m.logger.Info("session restored", "email", user.Email, "role", user.Role)
	for _, callback := range callbacks {
		callback(true)
	}
}

// UpdateUser shallow-merges edited profile fields into the current
// session without a round trip. Empty fields are left unchanged.
// No-op when logged out.
func (m *Manager) UpdateUser(name, email, avatarURL string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return
	}
	if name != "" {
		m.current.Name = name
	}
	if email != "" {
		m.current.Email = email
	}
	if avatarURL != "" {
		m.current.AvatarURL = avatarURL
	}
}

func (m *Manager) settleEmpty() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

func (m *Manager) tokenPath() string {
	return filepath.Join(m.stateDir, tokenFileName)
}

func (m *Manager) writeToken(token string) error {
	if err := os.MkdirAll(m.stateDir, 0o700); err != nil {
		return fmt.Errorf("session: creating state directory %s: %w", m.stateDir, err)
	}
	path := m.tokenPath()
	if err := os.WriteFile(path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("session: writing token to %s: %w", path, err)
	}
	return nil
}

// expired reports whether token is a JWT whose exp claim has passed.
// The signature is NOT verified; verification is the server's job.
// This is purely a local fast path that avoids a doomed network probe
// when the expiry is already in the past. Opaque (non-JWT) tokens and
// tokens without an exp claim report false and go to the server for
// the real answer.
func expired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
