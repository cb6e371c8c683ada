package msg

import (
	"time"

	"github.com/Iron-Ham/cerebro/internal/coach"
)

// FocusTickMsg advances the focus timer by one second.
type FocusTickMsg time.Time

// ToastExpiredMsg dismisses the toast with ID if it is still showing.
type ToastExpiredMsg struct {
	ID int
}

// BreakdownDoneMsg carries the result of a decomposition request.
type BreakdownDoneMsg struct {
	TaskID string
	Result coach.Breakdown
}

// ChatReplyMsg carries the coach's answer to the last chat message.
type ChatReplyMsg struct {
	Answer coach.Answer
}

// ConfigReloadedMsg is sent when the config file changes on disk.
type ConfigReloadedMsg struct {
	FocusDuration time.Duration
	Bell          bool
	ToastDuration time.Duration
}
