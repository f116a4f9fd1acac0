package domain

import "time"

// Role identifies who authored a chat message.
type Role string

// Message authors.
const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// ChatMessage is one entry in a transcript.
type ChatMessage struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is the append-only conversation of one workflow instance.
type Transcript []ChatMessage

// append returns a new transcript with msg added, never sharing the backing
// array with t.
func (t Transcript) append(msg ChatMessage) Transcript {
	out := make(Transcript, len(t), len(t)+1)
	copy(out, t)
	return append(out, msg)
}

// Last returns the final message, if any.
func (t Transcript) Last() (ChatMessage, bool) {
	if len(t) == 0 {
		return ChatMessage{}, false
	}
	return t[len(t)-1], true
}
