// Package runtime owns the shared mutable state of a room: the set of live
// connections and the single-flight responder schedule. Nothing outside this
// package touches either directly.
package runtime

import (
	"log/slog"
	"sync"

	"studyhub/contract"
	"studyhub/domain"
	"studyhub/domain/event"

	"github.com/google/uuid"
)

type liveConn struct {
	member domain.Participant
	peer   contract.Peer
}

// Hub tracks the live connections of one room and fans events out to all of
// them. Membership is safe under concurrent join/leave while a broadcast is
// in flight: broadcasts iterate a point-in-time snapshot, so they may race
// on just-joined or just-left targets but never corrupt the set.
type Hub struct {
	mu    sync.RWMutex
	log   *slog.Logger
	conns map[domain.ConnectionID]liveConn
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:   log,
		conns: make(map[domain.ConnectionID]liveConn),
	}
}

// Join registers a new live connection. It never blocks on other
// connections or on in-flight broadcasts.
func (h *Hub) Join(name string, peer contract.Peer) domain.ConnectionID {
	id := domain.ConnectionID(uuid.NewString())

	h.mu.Lock()
	h.conns[id] = liveConn{member: domain.Participant{ID: id, Name: name}, peer: peer}
	h.mu.Unlock()

	h.log.Info("Participant joined", "name", name, "connection_id", string(id))
	return id
}

// Leave removes a connection. Removing twice, or removing an id the hub has
// never seen, is a no-op.
func (h *Hub) Leave(id domain.ConnectionID) {
	h.mu.Lock()
	conn, ok := h.conns[id]
	if ok {
		delete(h.conns, id)
	}
	h.mu.Unlock()

	if ok {
		h.log.Info("Participant left", "name", conn.member.Name, "connection_id", string(id))
	}
}

// Len reports current membership. Used by telemetry.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast sends the event to every currently registered connection. A
// failed send marks that one connection dead and removes it; it never stops
// delivery to the rest and never surfaces an error to the caller.
func (h *Hub) Broadcast(e event.RoomEvent) {
	type target struct {
		id   domain.ConnectionID
		conn liveConn
	}

	h.mu.RLock()
	snapshot := make([]target, 0, len(h.conns))
	for id, conn := range h.conns {
		snapshot = append(snapshot, target{id: id, conn: conn})
	}
	h.mu.RUnlock()

	for _, t := range snapshot {
		if err := t.conn.peer.Send(e); err != nil {
			h.log.Warn("Dropping dead connection after failed send",
				"name", t.conn.member.Name,
				"connection_id", string(t.id),
				"error", err)
			h.Leave(t.id)
		}
	}
}
