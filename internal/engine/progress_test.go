package engine

import (
	"testing"
	"time"
)

func TestRotatorSequence(t *testing.T) {
	clock := time.Unix(0, 0)
	r := NewRotator([]ProgressMessage{
		{Text: "first", Duration: 2 * time.Second},
		{Text: "second", Duration: 3 * time.Second},
	})
	r.now = func() time.Time { return clock }
	r.Restart(nil)

	tests := []struct {
		advance time.Duration
		want    string
	}{
		{0, "first"},
		{1 * time.Second, "first"},
		{2 * time.Second, "second"},
		{4 * time.Second, "second"},
		{5 * time.Second, "first"}, // loops
		{7 * time.Second, "second"},
	}
	start := clock
	for _, tt := range tests {
		clock = start.Add(tt.advance)
		if got := r.Current(); got != tt.want {
			t.Errorf("at +%v: Current() = %q, want %q", tt.advance, got, tt.want)
		}
	}
}

func TestRotatorRestartReplacesMessages(t *testing.T) {
	clock := time.Unix(0, 0)
	r := NewRotator([]ProgressMessage{{Text: "old", Duration: time.Second}})
	r.now = func() time.Time { return clock }
	r.Restart(nil)

	clock = clock.Add(10 * time.Second)
	r.Restart([]ProgressMessage{{Text: "new", Duration: time.Second}})
	if got := r.Current(); got != "new" {
		t.Errorf("Current() = %q, want %q", got, "new")
	}
}

func TestRotatorUnstarted(t *testing.T) {
	r := NewRotator([]ProgressMessage{{Text: "x", Duration: time.Second}})
	if got := r.Current(); got != "" {
		t.Errorf("Current() before start = %q, want empty", got)
	}
	if got := NewRotator(nil).Current(); got != "" {
		t.Errorf("Current() with no messages = %q, want empty", got)
	}
}

func TestRotatorDefaultDuration(t *testing.T) {
	r := NewRotator([]ProgressMessage{{Text: "a"}, {Text: "b"}})
	if r.total != 6*time.Second {
		t.Errorf("total = %v, want 6s", r.total)
	}
}
