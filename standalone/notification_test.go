package standalone

import (
	"testing"
	"time"
)

func TestNotificationExpires(t *testing.T) {
	now := time.Unix(1000, 0)
	n := NewNotification()
	n.now = func() time.Time { return now }

	if n.active() {
		t.Fatal("a new notification should not be active")
	}

	n.Show("Screenshot saved")
	if !n.active() {
		t.Fatal("notification should be active after Show")
	}

	now = now.Add(notificationDuration - time.Millisecond)
	if !n.active() {
		t.Error("notification should still be active before it expires")
	}

	now = now.Add(time.Millisecond)
	if n.active() {
		t.Error("notification should expire after its duration")
	}
}

func TestNotificationShowRestartsTimer(t *testing.T) {
	now := time.Unix(1000, 0)
	n := NewNotification()
	n.now = func() time.Time { return now }

	n.Show("Keypad shown")
	now = now.Add(notificationDuration - time.Millisecond)
	n.Show("Keypad hidden")
	now = now.Add(notificationDuration - time.Millisecond)

	if !n.active() || n.message != "Keypad hidden" {
		t.Errorf("active = %v, message = %q; want the second message", n.active(), n.message)
	}
}
