package state

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser Role = "user"
	// RoleAssistant is stored as "model", the generative API's name for it.
	RoleAssistant Role = "model"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// Label returns the display name of the role.
func (r Role) Label() string {
	switch r {
	case RoleUser:
		return "Tú"
	case RoleAssistant:
		return "Coach"
	default:
		return string(r)
	}
}

// ChatMessage is one entry of the coach conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// WelcomeText is the coach's first message in a fresh conversation.
const WelcomeText = "Hola. Soy tu coach de bolsillo. Si te sientes bloqueado, escríbeme aquí."

// newMessageID assigns chat message identifiers.
var newMessageID = uuid.NewString

// appendMessage returns history with a new message appended. The timestamp
// is never earlier than the last message's, keeping the history ordered even
// if the wall clock steps backwards. Timestamps carry millisecond precision,
// the resolution they are persisted at.
func appendMessage(history []ChatMessage, role Role, text string, now time.Time) ([]ChatMessage, ChatMessage) {
	now = now.Truncate(time.Millisecond)
	if n := len(history); n > 0 && now.Before(history[n-1].Timestamp) {
		now = history[n-1].Timestamp
	}
	msg := ChatMessage{ID: newMessageID(), Role: role, Text: text, Timestamp: now}

	out := make([]ChatMessage, len(history), len(history)+1)
	copy(out, history)
	return append(out, msg), msg
}
