package client

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("condition not met in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestPollerTicks(t *testing.T) {
	var ticks atomic.Int64
	poller := NewPoller(20*time.Millisecond, func() { ticks.Add(1) })

	poller.Start()
	defer poller.Stop()

	waitFor(t, 2*time.Second, func() bool { return ticks.Load() >= 2 })
}

func TestPollerDoesNotRunImmediately(t *testing.T) {
	var ticks atomic.Int64
	poller := NewPoller(time.Hour, func() { ticks.Add(1) })

	poller.Start()
	defer poller.Stop()

	// The first run belongs to the caller, not the poller
	time.Sleep(30 * time.Millisecond)
	if ticks.Load() != 0 {
		t.Errorf("poller must not fire before the first interval, got %d ticks", ticks.Load())
	}
}

func TestPollerStop(t *testing.T) {
	var ticks atomic.Int64
	poller := NewPoller(10*time.Millisecond, func() { ticks.Add(1) })

	poller.Start()
	waitFor(t, 2*time.Second, func() bool { return ticks.Load() >= 1 })
	poller.Stop()

	settled := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	if ticks.Load() != settled {
		t.Errorf("poller kept ticking after Stop: %d -> %d", settled, ticks.Load())
	}

	// Stop again is safe
	poller.Stop()
}

func TestPollerRestartSwapsCallback(t *testing.T) {
	var old, next atomic.Int64
	poller := NewPoller(10*time.Millisecond, func() { old.Add(1) })

	poller.Start()
	waitFor(t, 2*time.Second, func() bool { return old.Load() >= 1 })

	poller.Restart(func() { next.Add(1) })
	defer poller.Stop()

	waitFor(t, 2*time.Second, func() bool { return next.Load() >= 1 })

	settled := old.Load()
	time.Sleep(50 * time.Millisecond)
	if old.Load() != settled {
		t.Error("old callback still running after Restart")
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	var ticks atomic.Int64
	poller := NewPoller(10*time.Millisecond, func() { ticks.Add(1) })

	poller.Start()
	poller.Start() // no second goroutine
	defer poller.Stop()

	waitFor(t, 2*time.Second, func() bool { return ticks.Load() >= 3 })
}
