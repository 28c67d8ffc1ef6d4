// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package notify polls the unread-notification count while a user is
// signed in. The count is a badge, not data: a failed poll is logged
// at debug level and the next tick tries again. Polling starts when a
// session appears and stops when it goes away, driven by the session
// manager's change callbacks, so an idle login screen generates no
// background traffic.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KhalidiZib/supporthub/lib/session"
)

// DefaultInterval is the poll cadence when PollerConfig leaves
// Interval zero.
const DefaultInterval = 30 * time.Second

// Counter is the slice of the API client the poller needs.
type Counter interface {
	UnreadCount(ctx context.Context) (int, error)
}

// PollerConfig configures a Poller.
type PollerConfig struct {
	// Client fetches the unread count. Required.
	Client Counter

	// Sessions gates polling on whether anyone is signed in. Required.
	Sessions session.Reader

	// Interval is the poll cadence. Zero means DefaultInterval.
	Interval time.Duration

	// OnCount is invoked with each successfully fetched count,
	// including an immediate fetch when polling starts. Called from
	// the poller's goroutine. Required.
	OnCount func(count int)

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Poller owns the polling goroutine. Create one per process with
// NewPoller, wire Track into the session manager's OnChange, and call
// Stop on shutdown.
type Poller struct {
	client   Counter
	sessions session.Reader
	interval time.Duration
	onCount  func(int)
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a stopped Poller.
func NewPoller(config PollerConfig) *Poller {
	if config.Client == nil {
		panic("notify: Client is required")
	}
	if config.Sessions == nil {
		panic("notify: Sessions is required")
	}
	if config.OnCount == nil {
		panic("notify: OnCount is required")
	}
	interval := config.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		client:   config.Client,
		sessions: config.Sessions,
		interval: interval,
		onCount:  config.OnCount,
		logger:   logger,
	}
}

// Track reacts to a session transition: start polling when a session
// appears, stop when it goes away. Shaped to plug directly into
// session.Manager.OnChange.
func (poller *Poller) Track(populated bool) {
	if populated {
		poller.start()
	} else {
		poller.stop()
	}
}

// Stop halts polling and waits for the poll goroutine to exit. Safe
// to call when not polling.
func (poller *Poller) Stop() {
	poller.stop()
}

func (poller *Poller) start() {
	poller.mu.Lock()
	defer poller.mu.Unlock()
	if poller.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	poller.cancel = cancel
	poller.done = done
	go poller.run(ctx, done)
}

func (poller *Poller) stop() {
	poller.mu.Lock()
	cancel := poller.cancel
	done := poller.done
	poller.cancel = nil
	poller.done = nil
	poller.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (poller *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	// Fetch immediately so the badge is current right after login,
	// then settle into the steady cadence.
	poller.fetch(ctx)

	ticker := time.NewTicker(poller.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poller.fetch(ctx)
		}
	}
}

func (poller *Poller) fetch(ctx context.Context) {
	if _, ok := poller.sessions.Current(); !ok {
		return
	}
	count, err := poller.client.UnreadCount(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		poller.logger.Debug("unread count poll failed", "error", err)
		return
	}
	poller.onCount(count)
}
