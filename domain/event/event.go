package event

import (
	"time"

	"github.com/google/uuid"
)

// RoomEvent is one broadcastable unit delivered to every live connection.
type RoomEvent interface {
	EventSender() string
}

// MessageBroadcast carries one chat line, human or responder.
// Content is never empty: sentinel-stripped responder text that comes out
// blank is dropped before an event is ever built.
type MessageBroadcast struct {
	ID      uuid.UUID
	Sender  string
	Content string
	At      time.Time
}

func NewMessageBroadcast(sender, content string) MessageBroadcast {
	return MessageBroadcast{
		ID:      uuid.New(),
		Sender:  sender,
		Content: content,
		At:      time.Now().UTC(),
	}
}

func (m MessageBroadcast) EventSender() string {
	return m.Sender
}

// TypingStatus toggles the "is composing" indicator for a sender.
type TypingStatus struct {
	Sender string
	Active bool
}

func (t TypingStatus) EventSender() string {
	return t.Sender
}
