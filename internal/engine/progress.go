package engine

import (
	"sync"
	"time"
)

// ProgressMessage is one entry in a rotating loading-message sequence.
type ProgressMessage struct {
	Text     string
	Duration time.Duration
}

// Rotator turns a list of (text, duration) pairs into a restartable timed
// sequence of display strings. Callers poll Current(); the rotation is
// computed from elapsed wall time, so there is no timer goroutine to leak.
// The sequence loops once exhausted.
type Rotator struct {
	mu       sync.Mutex
	messages []ProgressMessage
	total    time.Duration
	start    time.Time
	now      func() time.Time // swapped in tests
}

// NewRotator builds a rotator over the given messages. Entries with a zero
// duration default to 3 seconds.
func NewRotator(messages []ProgressMessage) *Rotator {
	msgs := make([]ProgressMessage, len(messages))
	var total time.Duration
	for i, m := range messages {
		if m.Duration <= 0 {
			m.Duration = 3 * time.Second
		}
		msgs[i] = m
		total += m.Duration
	}
	return &Rotator{messages: msgs, total: total, now: time.Now}
}

// Restart resets the sequence to its first message, optionally replacing the
// message list (nil keeps the current one). Used to re-label the rotation per
// skill during sequential growth-plan generation.
func (r *Rotator) Restart(messages []ProgressMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if messages != nil {
		msgs := make([]ProgressMessage, len(messages))
		var total time.Duration
		for i, m := range messages {
			if m.Duration <= 0 {
				m.Duration = 3 * time.Second
			}
			msgs[i] = m
			total += m.Duration
		}
		r.messages = msgs
		r.total = total
	}
	r.start = r.now()
}

// Current returns the message that should be displayed now. Empty string if
// the rotator has no messages or was never started.
func (r *Rotator) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 || r.start.IsZero() || r.total <= 0 {
		return ""
	}
	elapsed := r.now().Sub(r.start) % r.total
	for _, m := range r.messages {
		if elapsed < m.Duration {
			return m.Text
		}
		elapsed -= m.Duration
	}
	return r.messages[len(r.messages)-1].Text
}
