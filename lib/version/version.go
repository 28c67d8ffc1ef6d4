// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the client's build identity.
package version

import "runtime/debug"

// Version is the release version, overridden at build time with
// -ldflags "-X .../lib/version.Version=v1.2.3". The default marks
// source builds.
var Version = "dev"

// BuildInfo identifies a supporthub build.
type BuildInfo struct {
	Version   string `json:"version"`
	Revision  string `json:"revision,omitempty"`
	GoVersion string `json:"goVersion"`
	Modified  bool   `json:"modified,omitempty"`
}

// Info collects the version and, when built from a module with VCS
// stamping, the source revision.
func Info() BuildInfo {
	info := BuildInfo{Version: Version}
	build, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = build.GoVersion
	for _, setting := range build.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Revision = setting.Value
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}
	return info
}
