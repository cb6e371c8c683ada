package msg

import (
	"context"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/cerebro/internal/coach"
	"github.com/Iron-Ham/cerebro/internal/state"
)

// FocusTick returns a command that sends a FocusTickMsg after one second.
func FocusTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FocusTickMsg(t)
	})
}

// bellWriter is where RingBell writes. Tests replace it.
var bellWriter io.Writer = os.Stdout

// RingBell returns a command that outputs a terminal bell character.
func RingBell() tea.Cmd {
	return func() tea.Msg {
		// Write the bell character directly to stdout
		// This works even when Bubbletea is in alt-screen mode
		_, _ = bellWriter.Write([]byte{'\a'})
		return nil
	}
}

// ExpireToast returns a command that dismisses toast id after d.
func ExpireToast(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Breakdown returns a command that decomposes content and reports the result
// for taskID. The coach never fails, so the message always carries steps.
func Breakdown(ctx context.Context, b state.Breakdowner, taskID, content string) tea.Cmd {
	return func() tea.Msg {
		return BreakdownDoneMsg{TaskID: taskID, Result: b.Breakdown(ctx, content)}
	}
}

// Reply returns a command that asks the coach to answer text.
func Reply(ctx context.Context, r state.Replier, history []coach.Message, text string) tea.Cmd {
	return func() tea.Msg {
		return ChatReplyMsg{Answer: r.Reply(ctx, history, text)}
	}
}
