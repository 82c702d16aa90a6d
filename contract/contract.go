//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"studyhub/domain"
	"studyhub/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself.
// Can be silly, focused.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Peer is one live participant transport. Send must be safe for concurrent
// use; a returned error is treated as a dead connection by the hub.
type Peer interface {
	Send(e event.RoomEvent) error
}

// Hub owns the set of live connections for a room.
type Hub interface {
	Join(name string, peer Peer) domain.ConnectionID
	Leave(id domain.ConnectionID)
	Broadcast(e event.RoomEvent)
}

// Orchestrator accepts triggered turns for asynchronous deliberation.
// Submit is fire-and-forget: the caller never waits on a run.
type Orchestrator interface {
	Submit(turn domain.Turn)
}

// DeliberationEngine produces a lazy finite sequence of utterances for one
// task. The utterance channel is closed on exhaustion; the error channel
// then carries at most one failure. Termination policy (sentinel mention,
// utterance ceiling) is internal to the engine.
type DeliberationEngine interface {
	Run(ctx context.Context, task domain.Turn) (<-chan domain.Utterance, <-chan error)
}

// PageExtractor turns a document attachment into ordered page texts.
type PageExtractor interface {
	Extract(data []byte) ([]string, error)
}
