// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package authz

import (
	"testing"

	"github.com/KhalidiZib/supporthub/lib/api"
	"github.com/KhalidiZib/supporthub/lib/session"
)

// fixedReader is a session.Reader with a predetermined answer.
type fixedReader struct {
	session   session.Session
	populated bool
	loading   bool
}

func (reader fixedReader) Current() (session.Session, bool) {
	return reader.session, reader.populated
}

func (reader fixedReader) Loading() bool { return reader.loading }

func loggedInAs(role api.Role) fixedReader {
	return fixedReader{session: session.Session{ID: 1, Role: role}, populated: true}
}

func TestDecide(t *testing.T) {
	cases := []struct {
		name     string
		required []api.Role
		reader   fixedReader
		want     Decision
	}{
		{
			name:     "loading session defers",
			required: []api.Role{api.RoleAdmin},
			reader:   fixedReader{loading: true},
			want:     Pending,
		},
		{
			name:     "anonymous goes to login",
			required: []api.Role{api.RoleCustomer},
			reader:   fixedReader{},
			want:     RedirectLogin,
		},
		{
			name:     "matching role renders",
			required: []api.Role{api.RoleAgent},
			reader:   loggedInAs(api.RoleAgent),
			want:     Render,
		},
		{
			name:     "any of several roles renders",
			required: []api.Role{api.RoleAdmin, api.RoleAgent},
			reader:   loggedInAs(api.RoleAgent),
			want:     Render,
		},
		{
			name:     "no required roles admits any session",
			required: nil,
			reader:   loggedInAs(api.RoleCustomer),
			want:     Render,
		},
		{
			name:     "customer denied admin screen",
			required: []api.Role{api.RoleAdmin},
			reader:   loggedInAs(api.RoleCustomer),
			want:     RedirectHome,
		},
		{
			name:     "admin denied customer screen",
			required: []api.Role{api.RoleCustomer},
			reader:   loggedInAs(api.RoleAdmin),
			want:     RedirectHome,
		},
		{
			name:     "agent denied admin screen",
			required: []api.Role{api.RoleAdmin},
			reader:   loggedInAs(api.RoleAgent),
			want:     RedirectHome,
		},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			if got := Decide(test.required, test.reader); got != test.want {
				t.Errorf("Decide = %v, want %v", got, test.want)
			}
		})
	}
}

func TestHomeRoute(t *testing.T) {
	cases := []struct {
		role api.Role
		want string
	}{
		{api.RoleAdmin, "/admin/dashboard"},
		{api.RoleAgent, "/agent/dashboard"},
		{api.RoleCustomer, "/customer/dashboard"},
	}
	for _, test := range cases {
		if got := HomeRoute(test.role); got != test.want {
			t.Errorf("HomeRoute(%s) = %q, want %q", test.role, got, test.want)
		}
	}
}

// A denied agent must land on the agent home, never on another role's.
func TestDenialRoutesToOwnHome(t *testing.T) {
	reader := loggedInAs(api.RoleAgent)
	if Decide([]api.Role{api.RoleAdmin}, reader) != RedirectHome {
		t.Fatal("agent not redirected from admin screen")
	}
	current, _ := reader.Current()
	if got := HomeRoute(current.Role); got != "/agent/dashboard" {
		t.Errorf("denied agent routed to %q", got)
	}
}
