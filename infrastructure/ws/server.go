// Package ws hosts the websocket boundary of the room. It upgrades
// connections, pumps frames through the protocol codec, and forwards the
// decoded events to the room session. No room state lives here.
package ws

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"studyhub/domain/event"
	"studyhub/protocol"
	"studyhub/services"

	"golang.org/x/net/websocket"
)

// A connection sending this many undecodable frames in a row is cut off.
const maxDecodeErrorsPerConn = 3

// Server mounts the room endpoints on an http mux. One Server fronts one
// RoomSession.
type Server struct {
	log     *slog.Logger
	session *services.RoomSession
}

func NewServer(log *slog.Logger, session *services.RoomSession) *Server {
	return &Server{log: log, session: session}
}

// Handler returns the http handler with the websocket endpoint at
// /ws/{username} and a liveness probe at /up.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/up", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("/ws/", s.handleUpgrade)
	return mux
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := participantName(r.URL.Path)
	if name == "" {
		http.Error(w, "username path segment is required", http.StatusBadRequest)
		return
	}

	websocket.Handler(func(conn *websocket.Conn) {
		s.serve(conn, name)
	}).ServeHTTP(w, r)
}

// serve owns one connection from join to leave. Frames are received whole,
// so one garbage frame never corrupts the read of the next; the connection
// ends on EOF, a network error, or too many undecodable frames in a row.
// Invalid frames are dropped without ending the connection.
func (s *Server) serve(conn *websocket.Conn, name string) {
	defer func() {
		_ = conn.Close()
	}()

	p := &peer{enc: json.NewEncoder(conn)}
	id := s.session.HandleConnect(name, p)
	defer s.session.HandleDisconnect(id, name)

	decodeErrors := 0
	for {
		var raw []byte
		if err := websocket.Message.Receive(conn, &raw); err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.Debug("Read loop ended", "name", name, "error", err)
			}
			return
		}

		if !json.Valid(raw) {
			decodeErrors++
			s.log.Warn("Dropping undecodable frame", "name", name)
			if decodeErrors >= maxDecodeErrorsPerConn {
				s.log.Warn("Closing connection after repeated decode failures", "name", name)
				return
			}
			continue
		}
		decodeErrors = 0

		in, err := protocol.Decode(raw)
		if err != nil {
			s.log.Warn("Dropping invalid frame", "name", name, "error", err)
			continue
		}

		switch in.Type {
		case protocol.TypeMessage:
			s.session.HandleMessage(name, in)
		case protocol.TypeTyping:
			s.session.HandleTyping(name, in.IsTyping)
		}
	}
}

func participantName(path string) string {
	raw := strings.TrimPrefix(path, "/ws/")
	if raw == "" || strings.Contains(raw, "/") {
		return ""
	}
	name, err := url.PathUnescape(raw)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}

// peer serializes writes to one connection. Broadcasts arrive from multiple
// goroutines; the mutex keeps frames from interleaving on the wire.
type peer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func (p *peer) Send(e event.RoomEvent) error {
	frame, err := protocol.Encode(e)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enc.Encode(frame)
}
