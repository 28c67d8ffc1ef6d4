// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"reflect"
	"testing"
)

func TestExtractGlobalFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		path      string
		remaining []string
	}{
		{
			name:      "no config flag",
			args:      []string{"ticket", "list", "--page", "2"},
			path:      "",
			remaining: []string{"ticket", "list", "--page", "2"},
		},
		{
			name:      "separate value",
			args:      []string{"--config", "/tmp/supporthub.yaml", "whoami"},
			path:      "/tmp/supporthub.yaml",
			remaining: []string{"whoami"},
		},
		{
			name:      "equals form after the command",
			args:      []string{"ticket", "list", "--config=/tmp/alt.yaml"},
			path:      "/tmp/alt.yaml",
			remaining: []string{"ticket", "list"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Cleanup(func() { configPath = "" })
			configPath = ""

			remaining, err := ExtractGlobalFlags(test.args)
			if err != nil {
				t.Fatalf("ExtractGlobalFlags(%v): %v", test.args, err)
			}
			if configPath != test.path {
				t.Errorf("configPath = %q, want %q", configPath, test.path)
			}
			if !reflect.DeepEqual(remaining, test.remaining) {
				t.Errorf("remaining = %v, want %v", remaining, test.remaining)
			}
		})
	}
}

func TestExtractGlobalFlagsMissingValue(t *testing.T) {
	t.Cleanup(func() { configPath = "" })

	_, err := ExtractGlobalFlags([]string{"whoami", "--config"})
	if err == nil {
		t.Fatal("expected an error for --config without a path")
	}
}
