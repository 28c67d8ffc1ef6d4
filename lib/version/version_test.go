// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package version

import "testing"

func TestInfoCarriesVersion(t *testing.T) {
	info := Info()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
}
