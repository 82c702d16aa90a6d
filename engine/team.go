package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"studyhub/domain"
	"studyhub/engine/model"
	"studyhub/errors"
)

// SelectorTeam is a multi-party group chat: a selector model picks the next
// speaker among the agents after every utterance, until a termination
// condition fires. The transcript persists across runs, so responders keep
// the conversational context of the whole session; termination state resets
// per run.
//
// Run yields a lazy finite sequence. The orchestrator consumes runs one at
// a time, so the transcript is never mutated concurrently.
type SelectorTeam struct {
	log         *slog.Logger
	agents      []*Agent
	selector    Completer
	termination Condition

	mu          sync.Mutex
	transcript  []domain.Utterance
	lastSpeaker int
}

func NewSelectorTeam(log *slog.Logger, selector Completer, termination Condition, agents ...*Agent) *SelectorTeam {
	return &SelectorTeam{
		log:         log,
		agents:      agents,
		selector:    selector,
		termination: termination,
		lastSpeaker: -1,
	}
}

// Run starts one deliberation over the task. The utterance channel yields
// the task echo first (source "user"), then responder utterances until
// termination; it is closed on exhaustion. The error channel carries at
// most one failure and is closed with the run.
func (t *SelectorTeam) Run(ctx context.Context, task domain.Turn) (<-chan domain.Utterance, <-chan error) {
	out := make(chan domain.Utterance)
	errs := make(chan error, 1)
	go t.run(ctx, task, out, errs)
	return out, errs
}

func (t *SelectorTeam) run(ctx context.Context, task domain.Turn, out chan<- domain.Utterance, errs chan<- error) {
	defer close(out)
	defer close(errs)

	if len(t.agents) == 0 {
		errs <- errors.ErrNoAgents
		return
	}

	t.termination.Reset()

	echo := domain.Utterance{Source: domain.UserSource, Content: task.Text}
	t.append(echo)
	if !t.emit(ctx, out, errs, echo) {
		return
	}
	if t.termination.Check(echo) {
		return
	}

	for {
		agent := t.pick(ctx)
		reply, err := agent.Reply(ctx, task, t.snapshot())
		if err != nil {
			errs <- err
			return
		}

		u := domain.Utterance{Source: agent.Name(), Content: reply}
		t.append(u)
		if !t.emit(ctx, out, errs, u) {
			return
		}
		if t.termination.Check(u) {
			return
		}
	}
}

func (t *SelectorTeam) append(u domain.Utterance) {
	t.mu.Lock()
	t.transcript = append(t.transcript, u)
	t.mu.Unlock()
}

func (t *SelectorTeam) snapshot() []domain.Utterance {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.Utterance(nil), t.transcript...)
}

// emit delivers one utterance, giving up when the context dies mid-send.
func (t *SelectorTeam) emit(ctx context.Context, out chan<- domain.Utterance, errs chan<- error, u domain.Utterance) bool {
	select {
	case out <- u:
		return true
	case <-ctx.Done():
		errs <- ctx.Err()
		return false
	}
}

// pick asks the selector model to name the next speaker; any answer that
// names no known agent falls back to round-robin, so deliberation never
// stalls on a confused selector.
func (t *SelectorTeam) pick(ctx context.Context) *Agent {
	roles := make([]string, 0, len(t.agents))
	for _, a := range t.agents {
		roles = append(roles, fmt.Sprintf("- %s: %s", a.Name(), a.Description()))
	}

	transcript := t.snapshot()
	lines := make([]string, 0, len(transcript))
	for _, u := range transcript {
		lines = append(lines, fmt.Sprintf("%s: %s", u.Source, u.Content))
	}

	prompt := fmt.Sprintf(
		"You are moderating a study room conversation between these roles:\n%s\n\nConversation so far:\n%s\n\nReply with only the name of the role that should speak next.",
		strings.Join(roles, "\n"), strings.Join(lines, "\n"))

	answer, err := t.selector.Chat(ctx, []model.Message{{Role: model.RoleUser, Content: prompt}})
	if err != nil {
		t.log.Warn("Speaker selection failed, falling back to round-robin", "error", err)
		return t.roundRobin()
	}

	answer = strings.ToLower(answer)
	for i, a := range t.agents {
		if strings.Contains(answer, strings.ToLower(a.Name())) {
			t.lastSpeaker = i
			return a
		}
	}

	t.log.Debug("Selector named no known agent, falling back to round-robin", "answer", answer)
	return t.roundRobin()
}

func (t *SelectorTeam) roundRobin() *Agent {
	t.lastSpeaker = (t.lastSpeaker + 1) % len(t.agents)
	return t.agents[t.lastSpeaker]
}
