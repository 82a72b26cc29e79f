package models

import "time"

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn in the assistant conversation log. The log is
// append-only; messages are never edited or deleted. SubjectContext names
// the subject the user had selected when the message was sent and is kept
// even if that subject is later deleted.
type ChatMessage struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	Role           string    `json:"role"`
	Timestamp      time.Time `json:"timestamp"`
	SubjectContext string    `json:"subjectContext,omitempty"`
}
