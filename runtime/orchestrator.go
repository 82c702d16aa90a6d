package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"studyhub/contract"
	"studyhub/domain"
	"studyhub/domain/event"
)

// Orchestrator is the single-flight scheduler for responder runs. Submit
// enqueues a trigger and returns immediately; one run-loop goroutine (run
// under the Supervisor) drains the backlog in strict arrival order, so at
// most one deliberation run is ever active per room.
type Orchestrator struct {
	mu      sync.Mutex
	backlog []domain.Turn
	wake    chan struct{}

	log       *slog.Logger
	hub       contract.Hub
	engine    contract.DeliberationEngine
	responder string
	sentinel  string
}

// NewOrchestrator wires the orchestrator to its room hub and deliberation
// engine. responder is the role name used on typing-status events; sentinel
// is the literal turn-termination token stripped from responder output.
func NewOrchestrator(log *slog.Logger, hub contract.Hub,
	engine contract.DeliberationEngine, responder, sentinel string) *Orchestrator {
	return &Orchestrator{
		wake:      make(chan struct{}, 1),
		log:       log,
		hub:       hub,
		engine:    engine,
		responder: responder,
		sentinel:  sentinel,
	}
}

// Submit enqueues a turn as a deliberation trigger. Fire-and-forget: the
// backlog is unbounded, so the caller never blocks on a running
// deliberation and no trigger is ever dropped.
func (o *Orchestrator) Submit(turn domain.Turn) {
	o.mu.Lock()
	o.backlog = append(o.backlog, turn)
	o.mu.Unlock()

	select {
	case o.wake <- struct{}{}:
	default:
	}
}

// Run is the orchestrator's worker loop. It exits only on context
// cancellation; a failed run never kills the loop.
func (o *Orchestrator) Run(ctx context.Context) error {
	for {
		turn, ok := o.next(ctx)
		if !ok {
			return ctx.Err()
		}
		o.runOnce(ctx, turn)
	}
}

// next pops the oldest queued turn, waiting for a Submit when the backlog
// is empty. ok=false means the context was canceled.
func (o *Orchestrator) next(ctx context.Context) (domain.Turn, bool) {
	for {
		o.mu.Lock()
		if len(o.backlog) > 0 {
			turn := o.backlog[0]
			o.backlog = o.backlog[1:]
			o.mu.Unlock()
			return turn, true
		}
		o.mu.Unlock()

		select {
		case <-ctx.Done():
			return domain.Turn{}, false
		case <-o.wake:
		}
	}
}

// runOnce drives one deliberation run to completion. Typing-status events
// bracket the run: active before the first message, inactive after the last
// one, on the cleanup path so a failed run still toggles it off.
func (o *Orchestrator) runOnce(ctx context.Context, turn domain.Turn) {
	o.hub.Broadcast(event.TypingStatus{Sender: o.responder, Active: true})
	defer o.hub.Broadcast(event.TypingStatus{Sender: o.responder, Active: false})

	o.log.Debug("Deliberation run started", "author", turn.Author)

	utterances, errs := o.engine.Run(ctx, turn)
	for u := range utterances {
		if u.Source == domain.UserSource {
			continue
		}
		text := o.strip(u.Content)
		if text == "" {
			continue
		}
		o.hub.Broadcast(event.NewMessageBroadcast(u.Source, text))
	}

	if err := <-errs; err != nil {
		o.log.Error("Deliberation run failed", "error", err)
		o.hub.Broadcast(event.NewMessageBroadcast(domain.SystemSender,
			fmt.Sprintf("Responder pipeline failed: %v", err)))
		return
	}

	o.log.Debug("Deliberation run finished", "author", turn.Author)
}

// strip removes every occurrence of the termination sentinel (case-sensitive
// literal) and trims the result. Stripping is idempotent: a second pass over
// the output is a no-op.
func (o *Orchestrator) strip(content string) string {
	return strings.TrimSpace(strings.ReplaceAll(content, o.sentinel, ""))
}
