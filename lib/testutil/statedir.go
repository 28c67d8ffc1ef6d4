// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// StateDir creates a temporary client state directory, optionally
// pre-seeded with a durable token file. Pass "" to start logged out.
// The directory is removed when the test completes.
func StateDir(t *testing.T, token string) string {
	t.Helper()
	directory := t.TempDir()
	if token != "" {
		tokenPath := filepath.Join(directory, "token")
		if err := os.WriteFile(tokenPath, []byte(token), 0o600); err != nil {
			t.Fatalf("seeding token file: %v", err)
		}
	}
	return directory
}
