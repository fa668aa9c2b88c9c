package idle

import (
	"testing"
	"time"
)

func TestParseMillis(t *testing.T) {
	t.Parallel()
	cases := map[string]time.Duration{
		"1500\n": 1500 * time.Millisecond,
		"0":      0,
		"-20":    0,
	}
	for raw, want := range cases {
		got, err := parseMillis(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %s got %s", raw, want, got)
		}
	}
	if _, err := parseMillis("idle"); err == nil {
		t.Fatalf("expected parse error")
	}
}
