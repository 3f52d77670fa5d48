package redis

import (
	"testing"
	"time"
)

func TestWindowKey(t *testing.T) {
	base := time.Unix(1700000000, 0)

	a := windowKey("ratelimit:1.2.3.4", base, time.Second)
	b := windowKey("ratelimit:1.2.3.4", base.Add(999*time.Millisecond), time.Second)
	c := windowKey("ratelimit:1.2.3.4", base.Add(time.Second), time.Second)

	if a != b {
		t.Errorf("Expected same slot within a window, got %s and %s", a, b)
	}
	if a == c {
		t.Errorf("Expected a new slot in the next window, got %s", c)
	}
	if want := "ratelimit:1.2.3.4:1700000000"; a != want {
		t.Errorf("Expected %s, got %s", want, a)
	}
}
