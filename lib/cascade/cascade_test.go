// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package cascade

import (
	"testing"

	"github.com/KhalidiZib/supporthub/lib/api"
)

func nodes(locationType api.LocationType, ids ...int64) []api.LocationNode {
	result := make([]api.LocationNode, len(ids))
	for i, id := range ids {
		result[i] = api.LocationNode{ID: id, Type: locationType}
	}
	return result
}

// fill selects a complete hierarchy 1..5, loading options as the
// selector requests them.
func fill(t *testing.T, selector *Selector) {
	t.Helper()
	selector.SetTopLevel(nodes(api.LocationProvince, 1))
	for level := 0; level < Levels; level++ {
		fetch, needed := selector.SelectNode(level, int64(level+1))
		if level == Levels-1 {
			if needed {
				t.Fatal("village selection requested a child fetch")
			}
			continue
		}
		if !needed {
			t.Fatalf("level %d selection requested no child fetch", level)
		}
		if !selector.SetOptions(fetch, nodes(LevelType(level+1), int64(level+2))) {
			t.Fatalf("current fetch for level %d discarded", level+1)
		}
	}
}

func TestSelectionCascade(t *testing.T) {
	selector := NewSelector()
	fill(t, selector)

	if err := selector.Validate(); err != nil {
		t.Fatalf("complete hierarchy failed validation: %v", err)
	}
	if selector.LocationID() != 5 {
		t.Errorf("LocationID = %d, want the village", selector.LocationID())
	}
}

func TestReselectionClearsDeeperLevels(t *testing.T) {
	selector := NewSelector()
	fill(t, selector)

	// Changing the district must drop the sector, cell, and village.
	fetch, needed := selector.SelectNode(1, 99)
	if !needed || fetch.Level != 2 || fetch.ParentID != 99 {
		t.Fatalf("reselection fetch = %+v, needed=%v", fetch, needed)
	}
	for level := 2; level < Levels; level++ {
		if selector.Selected(level) != 0 {
			t.Errorf("level %d selection survived parent change", level)
		}
		if selector.Options(level) != nil {
			t.Errorf("level %d options survived parent change", level)
		}
	}
	if selector.Selected(0) != 1 {
		t.Error("province selection lost on district change")
	}
	if err := selector.Validate(); err == nil {
		t.Error("partial hierarchy passed validation")
	}
}

func TestClearingSelectionClearsDeeperLevels(t *testing.T) {
	selector := NewSelector()
	fill(t, selector)

	if _, needed := selector.SelectNode(0, 0); needed {
		t.Error("clearing a level requested a child fetch")
	}
	for level := 1; level < Levels; level++ {
		if selector.Selected(level) != 0 {
			t.Errorf("level %d selection survived clearing the province", level)
		}
	}
}

func TestEnabled(t *testing.T) {
	selector := NewSelector()
	selector.SetTopLevel(nodes(api.LocationProvince, 1))

	if !selector.Enabled(0) {
		t.Error("top level not enabled")
	}
	for level := 1; level < Levels; level++ {
		if selector.Enabled(level) {
			t.Errorf("level %d enabled without a parent selection", level)
		}
	}

	fetch, _ := selector.SelectNode(0, 1)
	selector.SetOptions(fetch, nodes(api.LocationDistrict, 2))
	if !selector.Enabled(1) {
		t.Error("district not enabled after province selection")
	}
	if selector.Enabled(2) {
		t.Error("sector enabled without a district selection")
	}
}

func TestStaleChildFetchDiscarded(t *testing.T) {
	selector := NewSelector()
	selector.SetTopLevel(nodes(api.LocationProvince, 1, 2))

	slowFetch, _ := selector.SelectNode(0, 1)
	freshFetch, _ := selector.SelectNode(0, 2)

	if !selector.SetOptions(freshFetch, nodes(api.LocationDistrict, 20)) {
		t.Fatal("current fetch discarded")
	}
	if selector.SetOptions(slowFetch, nodes(api.LocationDistrict, 10)) {
		t.Fatal("stale fetch installed")
	}
	options := selector.Options(1)
	if len(options) != 1 || options[0].ID != 20 {
		t.Errorf("district options = %+v, stale payload leaked", options)
	}
}

func TestValidateNamesTheMissingLevel(t *testing.T) {
	selector := NewSelector()
	selector.SetTopLevel(nodes(api.LocationProvince, 1))
	fetch, _ := selector.SelectNode(0, 1)
	selector.SetOptions(fetch, nodes(api.LocationDistrict, 2))

	err := selector.Validate()
	if err == nil {
		t.Fatal("incomplete hierarchy passed validation")
	}
}

func TestSelectedNode(t *testing.T) {
	selector := NewSelector()
	selector.SetTopLevel([]api.LocationNode{{ID: 7, Name: "Kigali City", Type: api.LocationProvince}})
	selector.SelectNode(0, 7)

	node, ok := selector.SelectedNode(0)
	if !ok || node.Name != "Kigali City" {
		t.Errorf("SelectedNode = %+v, ok=%v", node, ok)
	}
	if _, ok := selector.SelectedNode(1); ok {
		t.Error("SelectedNode reported a selection at an empty level")
	}
}
