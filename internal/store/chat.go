package store

import (
	"context"
	"time"

	"github.com/studyscribe/studyscribe-api/internal/ids"
	"github.com/studyscribe/studyscribe-api/internal/models"
)

// MessageFields carries the caller-supplied parts of a new chat message.
type MessageFields struct {
	Content        string
	Role           string
	SubjectContext string
}

// AddChatMessage appends a message to the conversation log, assigning an id
// and timestamp. The log is append-only: there is no update or delete.
func (s *Store) AddChatMessage(ctx context.Context, fields MessageFields) models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	message := models.ChatMessage{
		ID:             ids.New(),
		Content:        fields.Content,
		Role:           fields.Role,
		Timestamp:      time.Now(),
		SubjectContext: fields.SubjectContext,
	}
	s.chat = append(s.chat, message)
	s.persist(ctx, keyChat, s.chat)
	return message
}
