// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface components for
// the SupportHub client. Built on bubbletea (Elm architecture), these
// components handle common patterns like dropdown overlays, scrollbar
// rendering, and ANSI-aware text manipulation.
//
// The help desk viewer imports this package for consistent look and
// behavior: same theme, same keyboard conventions, same overlay
// mechanics. The viewer owns its own data sources, layout, and
// domain-specific rendering.
package tui
