package notify

import (
	"testing"
	"time"
)

func TestNotifyDefaultsByKind(t *testing.T) {
	cases := []struct {
		kind Kind
		want time.Duration
	}{
		{Success, 3 * time.Second},
		{Info, 3 * time.Second},
		{Warning, 4 * time.Second},
		{Error, 5 * time.Second},
	}

	for _, tc := range cases {
		if got := DefaultDuration(tc.kind); got != tc.want {
			t.Errorf("DefaultDuration(%s) = %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestNotifyAndDismiss(t *testing.T) {
	bus := NewBus()

	id := bus.Notify("saved", Success, time.Minute)
	if len(bus.Active()) != 1 {
		t.Fatalf("expected 1 active notification, got %d", len(bus.Active()))
	}

	bus.Dismiss(id)
	if len(bus.Active()) != 0 {
		t.Error("dismiss should remove the notification")
	}

	// Idempotent
	bus.Dismiss(id)
	bus.Dismiss("unknown-id")
}

func TestNotificationsOrderedByCreation(t *testing.T) {
	bus := NewBus()

	bus.Notify("first", Info, time.Minute)
	bus.Notify("second", Warning, time.Minute)
	bus.Notify("third", Error, time.Minute)

	active := bus.Active()
	if len(active) != 3 {
		t.Fatalf("expected 3, got %d", len(active))
	}
	if active[0].Message != "first" || active[2].Message != "third" {
		t.Errorf("unexpected order: %v, %v, %v", active[0].Message, active[1].Message, active[2].Message)
	}
}

func TestTimersAreIndependent(t *testing.T) {
	bus := NewBus()

	short := bus.Notify("short", Info, 20*time.Millisecond)
	long := bus.Notify("long", Info, time.Minute)

	deadline := time.After(2 * time.Second)
	for len(bus.Active()) != 1 {
		select {
		case <-deadline:
			t.Fatal("short notification never auto-dismissed")
		case <-time.After(5 * time.Millisecond):
		}
	}

	active := bus.Active()
	if active[0].ID != long {
		t.Error("long notification should survive the short one's timer")
	}
	_ = short
}

func TestDismissEarlyDoesNotTouchOthers(t *testing.T) {
	bus := NewBus()

	first := bus.Notify("first", Info, time.Minute)
	bus.Notify("second", Info, time.Minute)

	bus.Dismiss(first)

	active := bus.Active()
	if len(active) != 1 || active[0].Message != "second" {
		t.Errorf("dismissing one must not disturb the rest: %+v", active)
	}
}

func TestOnChangeFires(t *testing.T) {
	bus := NewBus()

	var calls int
	bus.OnChange(func(active []Notification) { calls++ })

	id := bus.Notify("hello", Success, time.Minute)
	bus.Dismiss(id)

	if calls != 2 {
		t.Errorf("expected 2 change callbacks (add + dismiss), got %d", calls)
	}
}

func TestConvenienceHelpers(t *testing.T) {
	bus := NewBus()

	bus.Success("s")
	bus.Info("i")
	bus.Warning("w")
	bus.Error("e")

	active := bus.Active()
	if len(active) != 4 {
		t.Fatalf("expected 4 notifications, got %d", len(active))
	}
	kinds := []Kind{Success, Info, Warning, Error}
	for i, n := range active {
		if n.Kind != kinds[i] {
			t.Errorf("notification %d: kind %s, want %s", i, n.Kind, kinds[i])
		}
	}
}
