// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package listview implements the paginated, server-filtered list
// state machine shared by every list screen (tickets, users,
// locations, notifications).
//
// The view does not perform I/O itself. Each parameter change mints a
// [Request], a numbered snapshot of (page, size, filters), which the
// caller executes however its environment wants (a goroutine, a
// bubbletea command, a plain blocking call) and resolves with
// [View.Apply]. Requests are numbered monotonically, and Apply
// discards any resolution that is not from the newest issued request.
// This is the fencing that closes the stale-response race: when a
// slow page-1 fetch resolves after the user already switched filters,
// its payload is dropped instead of overwriting the newer list.
package listview

import "github.com/KhalidiZib/supporthub/lib/api"

// Request is a numbered fetch order. The caller passes its fields to
// the list endpoint verbatim and hands the outcome back to Apply
// together with the Request itself.
type Request[F any] struct {
	id      uint64
	Page    int
	Size    int
	Filters F
}

// View holds one list screen's state: current parameters, the last
// applied page of items, and the fencing bookkeeping. Not safe for
// concurrent use: it belongs to a single UI loop; resolutions
// arriving from other goroutines must be marshalled onto that loop
// before calling Apply (bubbletea does this naturally with messages).
type View[T, F any] struct {
	page    int
	size    int
	filters F

	items         []T
	totalElements int64
	totalPages    int

	issued   uint64 // ID of the newest minted request.
	resolved uint64 // ID of the newest request that came back (applied or discarded).
	failed   error  // Failure of the newest resolved request, if any.
}

// New creates a View with the given page size and initial filters.
// The view starts empty; call Reload for the first fetch.
func New[T, F any](size int, filters F) *View[T, F] {
	return &View[T, F]{size: size, filters: filters}
}

// Items returns the last applied page of items. Empty result sets are
// an empty slice, never nil; "no matches" is a defined state, not an
// error.
func (view *View[T, F]) Items() []T {
	if view.items == nil {
		return []T{}
	}
	return view.items
}

// Page returns the current zero-based page number.
func (view *View[T, F]) Page() int { return view.page }

// Size returns the page size.
func (view *View[T, F]) Size() int { return view.size }

// Filters returns the current filter set.
func (view *View[T, F]) Filters() F { return view.filters }

// TotalElements returns the server-reported total across all pages.
func (view *View[T, F]) TotalElements() int64 { return view.totalElements }

// TotalPages returns the server-reported page count.
func (view *View[T, F]) TotalPages() int { return view.totalPages }

// Loading reports whether a minted request is still outstanding.
func (view *View[T, F]) Loading() bool { return view.issued > view.resolved }

// Err returns the failure of the most recently resolved request, or
// nil. Cleared by the next successful Apply.
func (view *View[T, F]) Err() error { return view.failed }

// Reload mints a request for the current parameters. Used for the
// initial fetch and for manual refresh after a mutation.
func (view *View[T, F]) Reload() Request[F] {
	return view.mint()
}

// SetPage moves to a page and mints exactly one request. Negative
// pages clamp to zero.
func (view *View[T, F]) SetPage(page int) Request[F] {
	if page < 0 {
		page = 0
	}
	view.page = page
	return view.mint()
}

// SetSize changes the page size, returns to the first page, and
// mints exactly one request.
func (view *View[T, F]) SetSize(size int) Request[F] {
	view.size = size
	view.page = 0
	return view.mint()
}

// SetFilters replaces the filter set, resets the page to zero, and
// mints exactly one request.
func (view *View[T, F]) SetFilters(filters F) Request[F] {
	view.filters = filters
	view.page = 0
	return view.mint()
}

// Apply resolves a request. The result is installed only when the
// request is the newest one issued; resolutions of superseded
// requests are discarded entirely (including their errors). Returns
// true when the result was installed.
func (view *View[T, F]) Apply(request Request[F], result api.Page[T], err error) bool {
	if request.id != view.issued {
		// A newer request was minted while this one was in flight.
		return false
	}
	view.resolved = request.id
	if err != nil {
		view.failed = err
		return false
	}
	view.failed = nil
	view.items = result.Content
	view.totalElements = result.TotalElements
	view.totalPages = result.TotalPages
	return true
}

func (view *View[T, F]) mint() Request[F] {
	view.issued++
	return Request[F]{
		id:      view.issued,
		Page:    view.page,
		Size:    view.size,
		Filters: view.filters,
	}
}
