// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for SupportHub
// packages.
//
// [RequireReceive], [RequireSend], and [RequireClosed] encapsulate
// the timeout safety valve pattern (select with time.After fallback)
// so that individual tests do not need direct time.After calls. They
// are used wherever tests observe asynchronous work, such as the
// notification poller or session change callbacks.
//
// [StateDir] creates a temporary state directory shaped like the
// client's real one, for tests that exercise token persistence.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no SupportHub-internal dependencies.
package testutil
