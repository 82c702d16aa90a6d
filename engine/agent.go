// Package engine implements the multi-party deliberation machinery: role
// agents, the selector that picks the next speaker, and the termination
// conditions that bound every run.
package engine

import (
	"context"
	"fmt"

	"studyhub/domain"
	"studyhub/engine/model"
)

// Completer is the slice of the model client the engine needs. Satisfied by
// *model.Client; tests swap in canned implementations.
type Completer interface {
	Chat(ctx context.Context, messages []model.Message) (string, error)
}

// Agent is one automated responder role: a name, a description used by the
// speaker selector, a system prompt, and a bound model.
type Agent struct {
	name        string
	description string
	system      string
	client      Completer
}

func NewAgent(name, description, system string, client Completer) *Agent {
	return &Agent{
		name:        name,
		description: description,
		system:      system,
		client:      client,
	}
}

func (a *Agent) Name() string { return a.name }

func (a *Agent) Description() string { return a.description }

// Reply produces this agent's next utterance given the running transcript.
// The agent sees its own past lines as assistant turns and everyone else's
// as attributed user turns; when the task carries visual parts they are
// forwarded on the task's transcript entry.
func (a *Agent) Reply(ctx context.Context, task domain.Turn, transcript []domain.Utterance) (string, error) {
	messages := []model.Message{{Role: model.RoleSystem, Content: a.system}}

	for _, u := range transcript {
		switch {
		case u.Source == a.name:
			messages = append(messages, model.Message{Role: model.RoleAssistant, Content: u.Content})
		case u.Source == domain.UserSource && u.Content == task.Text && task.Multipart():
			messages = append(messages, model.Message{
				Role:    model.RoleUser,
				Content: model.MultiContent(u.Content, task.Visuals),
			})
		default:
			messages = append(messages, model.Message{
				Role:    model.RoleUser,
				Content: fmt.Sprintf("%s: %s", u.Source, u.Content),
			})
		}
	}

	reply, err := a.client.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("agent %s: %w", a.name, err)
	}
	return reply, nil
}
