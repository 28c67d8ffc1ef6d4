// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/KhalidiZib/supporthub/lib/session"
	"github.com/KhalidiZib/supporthub/lib/testutil"
)

// fakeCounter answers unread-count fetches from a scripted sequence.
type fakeCounter struct {
	mu     sync.Mutex
	counts []int
	err    error
	calls  int
}

func (fake *fakeCounter) UnreadCount(ctx context.Context) (int, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.calls++
	if fake.err != nil {
		return 0, fake.err
	}
	if len(fake.counts) == 0 {
		return 0, nil
	}
	count := fake.counts[0]
	if len(fake.counts) > 1 {
		fake.counts = fake.counts[1:]
	}
	return count, nil
}

func (fake *fakeCounter) callCount() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.calls
}

// switchableReader is a session.Reader whose populated state tests can
// flip.
type switchableReader struct {
	mu        sync.Mutex
	populated bool
}

func (reader *switchableReader) Current() (session.Session, bool) {
	reader.mu.Lock()
	defer reader.mu.Unlock()
	if !reader.populated {
		return session.Session{}, false
	}
	return session.Session{ID: 1}, true
}

func (reader *switchableReader) Loading() bool { return false }

func (reader *switchableReader) set(populated bool) {
	reader.mu.Lock()
	defer reader.mu.Unlock()
	reader.populated = populated
}

func newTestPoller(counter Counter, reader session.Reader, counts chan<- int) *Poller {
	return NewPoller(PollerConfig{
		Client:   counter,
		Sessions: reader,
		Interval: 10 * time.Millisecond,
		OnCount:  func(count int) { counts <- count },
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestPollerFetchesImmediatelyOnLogin(t *testing.T) {
	counter := &fakeCounter{counts: []int{3}}
	reader := &switchableReader{populated: true}
	counts := make(chan int, 16)
	poller := newTestPoller(counter, reader, counts)
	t.Cleanup(poller.Stop)

	poller.Track(true)

	count := testutil.RequireReceive(t, counts, 5*time.Second, "first unread count")
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestPollerKeepsTicking(t *testing.T) {
	counter := &fakeCounter{counts: []int{1, 2, 5}}
	reader := &switchableReader{populated: true}
	counts := make(chan int, 16)
	poller := newTestPoller(counter, reader, counts)
	t.Cleanup(poller.Stop)

	poller.Track(true)

	first := testutil.RequireReceive(t, counts, 5*time.Second, "first count")
	second := testutil.RequireReceive(t, counts, 5*time.Second, "second count")
	if first != 1 || second != 2 {
		t.Errorf("counts = %d, %d, want 1, 2", first, second)
	}
}

func TestPollerStopsOnLogout(t *testing.T) {
	counter := &fakeCounter{counts: []int{1}}
	reader := &switchableReader{populated: true}
	counts := make(chan int, 16)
	poller := newTestPoller(counter, reader, counts)
	t.Cleanup(poller.Stop)

	poller.Track(true)
	testutil.RequireReceive(t, counts, 5*time.Second, "count before logout")

	reader.set(false)
	poller.Track(false)

	calls := counter.callCount()
	time.Sleep(50 * time.Millisecond)
	if counter.callCount() != calls {
		t.Error("poller kept fetching after logout")
	}
}

func TestPollerSurvivesFetchFailures(t *testing.T) {
	counter := &fakeCounter{err: errors.New("bad gateway")}
	reader := &switchableReader{populated: true}
	counts := make(chan int, 16)
	poller := newTestPoller(counter, reader, counts)
	t.Cleanup(poller.Stop)

	poller.Track(true)

	// Failures are swallowed; the poller keeps trying.
	deadline := time.Now().Add(5 * time.Second)
	for counter.callCount() < 3 {
		if time.Now().After(deadline) {
			t.Fatal("poller gave up after fetch failures")
		}
		time.Sleep(5 * time.Millisecond)
	}
	select {
	case count := <-counts:
		t.Errorf("failed fetches produced a count %d", count)
	default:
	}
}

func TestPollerSkipsFetchWhenSessionGone(t *testing.T) {
	// The session can empty between the change callback and the next
	// tick; the fetch itself re-checks.
	counter := &fakeCounter{counts: []int{1}}
	reader := &switchableReader{populated: false}
	counts := make(chan int, 16)
	poller := newTestPoller(counter, reader, counts)
	t.Cleanup(poller.Stop)

	poller.Track(true)

	time.Sleep(30 * time.Millisecond)
	select {
	case count := <-counts:
		t.Errorf("count %d reported with no session", count)
	default:
	}
}

func TestTrackIsIdempotent(t *testing.T) {
	counter := &fakeCounter{counts: []int{1}}
	reader := &switchableReader{populated: true}
	counts := make(chan int, 64)
	poller := newTestPoller(counter, reader, counts)
	t.Cleanup(poller.Stop)

	poller.Track(true)
	poller.Track(true)
	testutil.RequireReceive(t, counts, 5*time.Second, "first count")

	poller.Track(false)
	poller.Track(false)
	poller.Stop()
}
