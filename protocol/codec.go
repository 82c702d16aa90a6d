// Package protocol defines the JSON event shapes exchanged with clients and
// validates inbound frames before they touch room state.
package protocol

import (
	"encoding/json"
	"fmt"
	"strings"

	"studyhub/domain"
	"studyhub/domain/event"
	"studyhub/errors"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	TypeMessage = "message"
	TypeTyping  = "typing"
)

var validate = validator.New()

// InboundFile mirrors one element of the "files" array of a chat submission.
type InboundFile struct {
	Name string `json:"name" validate:"required"`
	Mime string `json:"mime"`
	Data string `json:"data" validate:"required"`
}

// Inbound is a decoded client frame, either a chat submission or a
// composing-status signal.
type Inbound struct {
	Type     string        `json:"type" validate:"required"`
	Content  string        `json:"content"`
	Files    []InboundFile `json:"files" validate:"dive"`
	IsTyping bool          `json:"is_typing"`
}

// Decode parses and validates one raw client frame. Malformed payloads and
// frames missing required fields return ErrInvalidEvent; frames whose type
// is present but unrecognized return ErrUnknownEvent. Callers drop either
// kind and keep the connection open.
func Decode(raw []byte) (Inbound, error) {
	var in Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", errors.ErrInvalidEvent, err)
	}

	if err := validate.Struct(in); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", errors.ErrInvalidEvent, err)
	}

	switch in.Type {
	case TypeMessage, TypeTyping:
	default:
		return Inbound{}, fmt.Errorf("%w: %q", errors.ErrUnknownEvent, in.Type)
	}

	if in.Type == TypeMessage && strings.TrimSpace(in.Content) == "" {
		return Inbound{}, fmt.Errorf("%w: blank content", errors.ErrInvalidEvent)
	}

	return in, nil
}

// Attachments converts the wire file descriptions into domain attachments.
func (in Inbound) Attachments() []domain.Attachment {
	return lo.Map(in.Files, func(f InboundFile, _ int) domain.Attachment {
		return domain.Attachment{
			Name: f.Name,
			Mime: f.Mime,
			Data: f.Data,
		}
	})
}

// MessageFrame is the outbound chat event shape.
type MessageFrame struct {
	Type    string `json:"type"`
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// TypingFrame is the outbound composing-status shape.
type TypingFrame struct {
	Type     string `json:"type"`
	Sender   string `json:"sender"`
	IsTyping bool   `json:"is_typing"`
}

// Encode maps a room event onto its wire shape.
func Encode(e event.RoomEvent) (any, error) {
	switch evt := e.(type) {
	case event.MessageBroadcast:
		return MessageFrame{
			Type:    TypeMessage,
			Sender:  evt.Sender,
			Message: evt.Content,
		}, nil
	case event.TypingStatus:
		return TypingFrame{
			Type:     TypeTyping,
			Sender:   evt.Sender,
			IsTyping: evt.Active,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %T", errors.ErrUnknownEvent, e)
	}
}
