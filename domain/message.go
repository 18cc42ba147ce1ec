// Package domain contains core concepts of the chat system.
// This file defines Message events and related rules.
// Messages are immutable and never stored by the server.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message represents one line received from a connected client.
type Message struct {
	ID        uuid.UUID // unique identifier, used for log correlation
	SenderID  ClientID
	Content   string
	CreatedAt time.Time
}

func NewMessage(senderID ClientID, content string) Message {
	return Message{
		ID:        uuid.New(),
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// Line renders the broadcast wire form, without the trailing newline.
func (m Message) Line() string {
	return fmt.Sprintf("Client %d: %s", m.SenderID, m.Content)
}

// IsBlank reports whether the text carries nothing worth sending.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
