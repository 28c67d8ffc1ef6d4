// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the typed HTTP client for the SupportHub REST
// backend. It owns everything about the wire: bearer-token
// attachment, request correlation IDs, JSON encoding/decoding,
// pagination envelope normalization, and structured error responses.
//
// The client is deliberately thin. All validation, persistence, and
// access control happen server-side; this package's job is to make
// every endpoint callable as a plain Go method with typed inputs and
// outputs, and to report failures as [*Error] values that carry the
// HTTP status code for classification by callers.
//
// Two hooks connect the client to the session layer without an import
// cycle: TokenSource supplies the current bearer token (or "" when
// logged out), and OnUnauthorized fires once per 401 response so the
// session manager can clear its durable token and force
// re-authentication. The hooks are plain funcs; the api package has
// no knowledge of how sessions are stored.
package api
