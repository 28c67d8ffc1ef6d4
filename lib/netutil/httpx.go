// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP I/O utilities shared by the API
// client.
//
// ReadResponse bounds body reads at MaxResponseSize to prevent
// unbounded memory allocation from a misbehaving server. It is for
// JSON API responses, not for streaming downloads, which should be
// read incrementally with io.Copy.
package netutil

import (
	"io"
)

// MaxResponseSize is the bound on JSON API response body reads: 64 MB.
// This exists solely to prevent a pathological response from
// exhausting memory. Legitimate responses (ticket pages, comment
// threads) are orders of magnitude smaller; the limit is generous so
// that it never interferes with normal operation.
const MaxResponseSize int64 = 64 << 20

// ReadResponse reads a JSON API response body up to MaxResponseSize
// bytes. Use instead of io.ReadAll when reading HTTP response bodies.
// The bytes are returned rather than decoded in place because some
// endpoints need two decode attempts against the same body, and error
// responses reuse the body for diagnostics.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}
