// Package focus implements the focus timer and background-noise selection.
package focus

import (
	"fmt"
	"time"
)

// DefaultDuration is the length of one focus session.
const DefaultDuration = 15 * time.Minute

// Timer counts a focus session down. The zero value is not useful; use NewTimer.
type Timer struct {
	duration  time.Duration
	remaining time.Duration
	active    bool
}

// NewTimer returns a paused timer of length d. A non-positive d uses DefaultDuration.
func NewTimer(d time.Duration) *Timer {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Timer{duration: d, remaining: d}
}

// Duration returns the full session length.
func (t *Timer) Duration() time.Duration { return t.duration }

// Remaining returns the time left in the session.
func (t *Timer) Remaining() time.Duration { return t.remaining }

// Active reports whether the timer is running.
func (t *Timer) Active() bool { return t.active }

// Toggle starts or pauses the timer. A finished timer stays paused.
func (t *Timer) Toggle() {
	if t.remaining <= 0 {
		t.active = false
		return
	}
	t.active = !t.active
}

// Reset pauses the timer and restores the full duration.
func (t *Timer) Reset() {
	t.active = false
	t.remaining = t.duration
}

// SetDuration changes the session length. A paused timer that has not
// started is reset to the new length; a running one keeps its countdown.
func (t *Timer) SetDuration(d time.Duration) {
	if d <= 0 {
		d = DefaultDuration
	}
	untouched := !t.active && t.remaining == t.duration
	t.duration = d
	if untouched {
		t.remaining = d
	}
}

// Tick advances a running timer by elapsed. It returns true exactly once,
// on the tick that reaches zero.
func (t *Timer) Tick(elapsed time.Duration) bool {
	if !t.active || elapsed <= 0 {
		return false
	}
	t.remaining -= elapsed
	if t.remaining > 0 {
		return false
	}
	t.remaining = 0
	t.active = false
	return true
}

// Format renders the remaining time as MM:SS.
func (t *Timer) Format() string {
	return FormatDuration(t.remaining)
}

// Progress returns the elapsed fraction of the session in [0, 1].
func (t *Timer) Progress() float64 {
	if t.duration <= 0 {
		return 0
	}
	return 1 - float64(t.remaining)/float64(t.duration)
}

// FormatDuration renders d as MM:SS, rounding partial seconds up.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
