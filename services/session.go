// Package services glues room components together behind transport-agnostic
// handlers. The transport layer decodes frames and calls in; everything
// below is domain machinery.
package services

import (
	"fmt"
	"log/slog"
	"strings"

	"studyhub/contract"
	"studyhub/domain"
	"studyhub/domain/event"
	"studyhub/ingest"
	"studyhub/protocol"

	"github.com/samber/lo"
)

// RoomSession is the lifecycle wrapper of one room: it reacts to connection
// and frame events, echoes chat to everyone, and triggers the responder
// pipeline. One RoomSession per Room, for the whole process lifetime.
type RoomSession struct {
	log          *slog.Logger
	room         *domain.Room
	hub          contract.Hub
	builder      *ingest.Builder
	orchestrator contract.Orchestrator
}

func NewRoomSession(log *slog.Logger, room *domain.Room, hub contract.Hub,
	builder *ingest.Builder, orchestrator contract.Orchestrator) *RoomSession {
	return &RoomSession{
		log:          log,
		room:         room,
		hub:          hub,
		builder:      builder,
		orchestrator: orchestrator,
	}
}

// HandleConnect registers the participant and announces the arrival to the
// whole room, the new connection included.
func (s *RoomSession) HandleConnect(name string, peer contract.Peer) domain.ConnectionID {
	id := s.hub.Join(name, peer)
	s.hub.Broadcast(event.NewMessageBroadcast(domain.SystemSender,
		fmt.Sprintf("%s joined %s", name, s.room.Name)))
	return id
}

// HandleDisconnect announces the departure, then drops the connection. The
// departing peer is usually already dead; the hub treats its failed send as
// an implicit leave, and the explicit Leave afterwards is a no-op.
func (s *RoomSession) HandleDisconnect(id domain.ConnectionID, name string) {
	s.hub.Broadcast(event.NewMessageBroadcast(domain.SystemSender,
		fmt.Sprintf("%s left %s", name, s.room.Name)))
	s.hub.Leave(id)
}

// HandleMessage echoes the submission to the room immediately, then builds
// a Turn and hands it to the orchestrator. Both happen before the caller
// reads its next frame; only the deliberation itself is asynchronous.
func (s *RoomSession) HandleMessage(name string, in protocol.Inbound) {
	echo := in.Content
	if len(in.Files) > 0 {
		names := lo.Map(in.Files, func(f protocol.InboundFile, _ int) string { return f.Name })
		echo += fmt.Sprintf("\n[attached: %s]", strings.Join(names, ", "))
	}
	s.hub.Broadcast(event.NewMessageBroadcast(name, echo))

	turn, err := s.builder.Build(
		fmt.Sprintf("Human participant [%s] says: %s", name, in.Content),
		name,
		in.Attachments(),
	)
	if err != nil {
		// the protocol boundary already rejected blank content, so this
		// only fires on a caller bypassing Decode
		s.log.Warn("Dropping unbuildable turn", "name", name, "error", err)
		return
	}

	s.orchestrator.Submit(turn)
}

// HandleTyping rebroadcasts a composing-status signal under the sender's
// display name. No orchestrator involvement.
func (s *RoomSession) HandleTyping(name string, active bool) {
	s.hub.Broadcast(event.TypingStatus{Sender: name, Active: active})
}
