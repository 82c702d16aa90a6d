package services

import (
	"log/slog"
	"testing"

	"studyhub/domain"
	"studyhub/domain/event"
	"studyhub/ingest"
	"studyhub/mocks"
	"studyhub/protocol"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newSession(t *testing.T, hub *mocks.MockHub, orch *mocks.MockOrchestrator) *RoomSession {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	builder := ingest.NewBuilder(ingest.NewNormalizer(log, mocks.NewMockPageExtractor(ctrl)))
	return NewRoomSession(log, domain.NewRoom(1, "the study room"), hub, builder, orch)
}

func TestRoomSession_ConnectAnnouncesArrival(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hub := mocks.NewMockHub(ctrl)
	orch := mocks.NewMockOrchestrator(ctrl)
	peer := mocks.NewMockPeer(ctrl)
	s := newSession(t, hub, orch)

	join := hub.EXPECT().Join("Alice", peer).Return(domain.ConnectionID("c1")).Times(1)
	hub.EXPECT().Broadcast(gomock.Any()).Do(func(e event.RoomEvent) {
		msg, ok := e.(event.MessageBroadcast)
		req.True(ok)
		req.Equal(domain.SystemSender, msg.Sender)
		req.Contains(msg.Content, "Alice joined")
	}).Times(1).After(join)

	id := s.HandleConnect("Alice", peer)
	req.Equal(domain.ConnectionID("c1"), id)
}

func TestRoomSession_DisconnectAnnouncesThenLeaves(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hub := mocks.NewMockHub(ctrl)
	orch := mocks.NewMockOrchestrator(ctrl)
	s := newSession(t, hub, orch)

	announce := hub.EXPECT().Broadcast(gomock.Any()).Do(func(e event.RoomEvent) {
		msg, ok := e.(event.MessageBroadcast)
		req.True(ok)
		req.Equal(domain.SystemSender, msg.Sender)
		req.Contains(msg.Content, "Alice left")
	}).Times(1)
	hub.EXPECT().Leave(domain.ConnectionID("c1")).Times(1).After(announce)

	s.HandleDisconnect("c1", "Alice")
}

// Scenario: "Alice" sends a plain message; the room receives her exact text
// under her name, and the orchestrator gets an attributed turn.
func TestRoomSession_MessageEchoesVerbatimAndSubmitsTurn(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hub := mocks.NewMockHub(ctrl)
	orch := mocks.NewMockOrchestrator(ctrl)
	s := newSession(t, hub, orch)

	hub.EXPECT().Broadcast(gomock.Any()).Do(func(e event.RoomEvent) {
		msg, ok := e.(event.MessageBroadcast)
		req.True(ok)
		req.Equal("Alice", msg.Sender)
		req.Equal("Hello", msg.Content)
	}).Times(1)
	orch.EXPECT().Submit(gomock.Any()).Do(func(turn domain.Turn) {
		req.Equal("Alice", turn.Author)
		req.Equal("Human participant [Alice] says: Hello", turn.Text)
		req.False(turn.Multipart())
	}).Times(1)

	s.HandleMessage("Alice", protocol.Inbound{Type: protocol.TypeMessage, Content: "Hello"})
}

func TestRoomSession_MessageWithFilesAppendsFilenameSuffix(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hub := mocks.NewMockHub(ctrl)
	orch := mocks.NewMockOrchestrator(ctrl)
	s := newSession(t, hub, orch)

	hub.EXPECT().Broadcast(gomock.Any()).Do(func(e event.RoomEvent) {
		msg := e.(event.MessageBroadcast)
		req.Contains(msg.Content, "see these")
		req.Contains(msg.Content, "[attached: a.png, b.pdf]")
	}).Times(1)
	orch.EXPECT().Submit(gomock.Any()).Times(1)

	s.HandleMessage("Bob", protocol.Inbound{
		Type:    protocol.TypeMessage,
		Content: "see these",
		Files: []protocol.InboundFile{
			// both malformed payloads: skipped by the normalizer, but the
			// filenames still show up in the echo suffix
			{Name: "a.png", Mime: "image/png", Data: "x"},
			{Name: "b.pdf", Mime: "application/pdf", Data: "y"},
		},
	})
}

func TestRoomSession_TypingIsPassedThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hub := mocks.NewMockHub(ctrl)
	orch := mocks.NewMockOrchestrator(ctrl)
	s := newSession(t, hub, orch)

	hub.EXPECT().Broadcast(event.TypingStatus{Sender: "Carol", Active: true}).Times(1)
	s.HandleTyping("Carol", true)

	hub.EXPECT().Broadcast(event.TypingStatus{Sender: "Carol", Active: false}).Times(1)
	s.HandleTyping("Carol", false)
}
