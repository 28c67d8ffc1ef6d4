// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package helpdeskui is the full-screen terminal client for SupportHub.
// It is a single bubbletea model covering sign-in (including the
// two-factor step-up), the role-scoped ticket list with server-side
// filters and paging, the ticket detail view with markdown rendering
// and optimistic comments, and the customer's new-ticket form with the
// cascading location selector.
//
// The model performs no blocking work in Update; every backend call
// runs as a tea.Cmd and reports back through a typed message. List
// responses carry the listview request that produced them so stale
// pages are discarded, and location fetches carry their cascade
// generation for the same reason.
//
// Two messages cross the program boundary from outside: UnreadMsg from
// the notification poller and SessionExpiredMsg from the session
// manager's forced-logout callback. Both are delivered with
// Program.Send.
package helpdeskui
