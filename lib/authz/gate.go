// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package authz is the client-side role gate: a pure decision
// function that mirrors (never replaces) the backend's RBAC. The
// backend rejects unauthorized requests regardless; the gate exists
// so the UI routes users away from screens they cannot use instead of
// letting them hit 403s.
package authz

import (
	"slices"

	"github.com/KhalidiZib/supporthub/lib/api"
	"github.com/KhalidiZib/supporthub/lib/session"
)

// Decision is the outcome of a gate evaluation.
type Decision int

const (
	// Pending means the session is still loading; show a neutral
	// waiting state, not a redirect.
	Pending Decision = iota

	// Render means the current user may see the guarded screen.
	Render

	// RedirectLogin means no one is signed in.
	RedirectLogin

	// RedirectHome means the user is signed in but lacks the required
	// role; send them to their own role's home screen.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Render:
		return "render"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	}
	return "unknown"
}

// Decide evaluates a guarded screen. It holds no state and must be
// re-evaluated on every navigation and on every session change.
// An empty required set means any authenticated user may enter.
func Decide(required []api.Role, reader session.Reader) Decision {
	if reader.Loading() {
		return Pending
	}
	current, ok := reader.Current()
	if !ok {
		return RedirectLogin
	}
	if len(required) == 0 || slices.Contains(required, current.Role) {
		return Render
	}
	return RedirectHome
}

// HomeRoute returns the role-appropriate home screen for a user.
// Deny redirects land here rather than on a fixed page, so an agent
// or admin denied a route is never dumped onto the customer
// dashboard.
func HomeRoute(role api.Role) string {
	switch role {
	case api.RoleAdmin:
		return "/admin/dashboard"
	case api.RoleAgent:
		return "/agent/dashboard"
	default:
		return "/customer/dashboard"
	}
}
