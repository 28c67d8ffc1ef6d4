// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package cascade models the five-level dependent location selector:
// province → district → sector → cell → village. Selecting a value at
// one level invalidates everything below it; a level is enabled only
// once its parent has a selection; submission requires the hierarchy
// to be complete down to the village.
//
// Like listview, the model performs no I/O. Select reports whether
// the caller needs to fetch children (and for which parent); the
// fetched options come back through SetOptions. A generation counter
// guards against a slow child fetch resolving after the parent
// changed again.
package cascade

import (
	"fmt"

	"github.com/KhalidiZib/supporthub/lib/api"
)

// Levels indexes the hierarchy top-down. Level 0 is PROVINCE,
// level 4 VILLAGE.
const Levels = 5

// LevelType returns the location type at a level index.
func LevelType(level int) api.LocationType {
	return api.LocationTypes[level]
}

// ChildFetch tells the caller to load the children of ParentID for
// installation at Level via SetOptions. Generation must be passed
// back unchanged.
type ChildFetch struct {
	Level      int
	ParentID   int64
	Generation uint64
}

// Selector is the cascading selection state. Not safe for concurrent
// use; it belongs to one form.
type Selector struct {
	options    [Levels][]api.LocationNode
	selected   [Levels]int64 // 0 = no selection.
	generation [Levels]uint64
}

// NewSelector creates an empty Selector. The caller fetches the
// top-level provinces and installs them with SetOptions(0, ...).
func NewSelector() *Selector {
	return &Selector{}
}

// Options returns the option list at a level (nil when not loaded).
func (selector *Selector) Options(level int) []api.LocationNode {
	return selector.options[level]
}

// Selected returns the selected node ID at a level, or 0.
func (selector *Selector) Selected(level int) int64 {
	return selector.selected[level]
}

// SelectedNode returns the full node selected at a level.
func (selector *Selector) SelectedNode(level int) (api.LocationNode, bool) {
	id := selector.selected[level]
	if id == 0 {
		return api.LocationNode{}, false
	}
	for _, node := range selector.options[level] {
		if node.ID == id {
			return node, true
		}
	}
	return api.LocationNode{}, false
}

// Enabled reports whether the select control at a level is usable:
// the top level always is, every other level only while its immediate
// parent has a selection.
func (selector *Selector) Enabled(level int) bool {
	if level == 0 {
		return true
	}
	return selector.selected[level-1] != 0
}

// SelectNode records a selection at a level, clears all selections
// and option lists below it, and returns the child fetch the caller
// must perform. At the deepest level there is nothing further to
// load. Selecting id 0 (clearing the level) also clears everything
// below and requests no fetch.
func (selector *Selector) SelectNode(level int, id int64) (ChildFetch, bool) {
	selector.selected[level] = id
	for deeper := level + 1; deeper < Levels; deeper++ {
		selector.selected[deeper] = 0
		selector.options[deeper] = nil
		selector.generation[deeper]++
	}
	if id == 0 || level == Levels-1 {
		return ChildFetch{}, false
	}
	return ChildFetch{
		Level:      level + 1,
		ParentID:   id,
		Generation: selector.generation[level+1],
	}, true
}

// SetOptions installs a fetched child list. The fetch's generation
// must still be current; a stale fetch (its parent was reselected or
// cleared while it was in flight) is discarded. Returns true when the
// options were installed.
func (selector *Selector) SetOptions(fetch ChildFetch, nodes []api.LocationNode) bool {
	if fetch.Generation != selector.generation[fetch.Level] {
		return false
	}
	selector.options[fetch.Level] = nodes
	return true
}

// SetTopLevel installs the province list. Used once at form load.
func (selector *Selector) SetTopLevel(nodes []api.LocationNode) {
	selector.options[0] = nodes
}

// Validate checks that the hierarchy is completely selected down to
// the village. Called before any submission network call; a partial
// hierarchy never leaves the client.
func (selector *Selector) Validate() error {
	for level := 0; level < Levels; level++ {
		if selector.selected[level] == 0 {
			return fmt.Errorf("cascade: no %s selected", LevelType(level))
		}
	}
	return nil
}

// LocationID returns the village node ID for submission. Valid only
// after Validate returns nil.
func (selector *Selector) LocationID() int64 {
	return selector.selected[Levels-1]
}
