package time

import (
	"testing"
	"time"
)

func TestClockOr(t *testing.T) {
	t.Parallel()

	var c Clock
	if c.Or() == nil {
		t.Fatal("nil clock should fall back to System")
	}
	at := time.Unix(1_700_000_000, 0)
	fixed := Clock(func() time.Time { return at })
	if !fixed.Or()().Equal(at) {
		t.Fatal("Or replaced a non-nil clock")
	}
}

func TestUnixSince(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	if got := UnixSince(now, 24*time.Hour); got != 1_700_000_000-86400 {
		t.Fatalf("UnixSince = %d", got)
	}
}
