package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"studyhub/domain"
	"studyhub/engine/model"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// cannedCompleter replies with scripted answers in order.
type cannedCompleter struct {
	replies []string
	calls   int
	fail    error
}

func (c *cannedCompleter) Chat(_ context.Context, _ []model.Message) (string, error) {
	if c.fail != nil {
		return "", c.fail
	}
	if c.calls >= len(c.replies) {
		return "", fmt.Errorf("no scripted reply left (call %d)", c.calls+1)
	}
	reply := c.replies[c.calls]
	c.calls++
	return reply, nil
}

func drain(t *testing.T, utterances <-chan domain.Utterance, errs <-chan error) ([]domain.Utterance, error) {
	t.Helper()
	var got []domain.Utterance
	for u := range utterances {
		got = append(got, u)
	}
	return got, <-errs
}

func TestSelectorTeam_RunEchoesTaskThenSpeaksUntilSentinel(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	planner := &cannedCompleter{replies: []string{"Step 1: measure. Step 2: cut. WAIT"}}
	selector := &cannedCompleter{replies: []string{"Planner"}}

	team := NewSelectorTeam(log, selector,
		AnyOf(TextMention("WAIT"), MaxMessages(10)),
		NewAgent("Planner", "plans", "you plan", planner),
		NewAgent("Facilitator", "asks", "you ask", &cannedCompleter{}),
	)

	utterances, errs := team.Run(context.Background(), domain.Turn{Author: "alice", Text: "help me build a shelf"})
	got, err := drain(t, utterances, errs)

	req.NoError(err)
	req.Len(got, 2)
	req.Equal(domain.UserSource, got[0].Source)
	req.Equal("help me build a shelf", got[0].Content)
	req.Equal("Planner", got[1].Source)
	req.Contains(got[1].Content, "WAIT")
}

func TestSelectorTeam_UtteranceCeilingBoundsTheRun(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// agents that never say the sentinel
	chatty := &cannedCompleter{replies: []string{"more", "more", "more", "more", "more"}}
	selector := &cannedCompleter{replies: []string{"Planner", "Planner", "Planner", "Planner"}}

	team := NewSelectorTeam(log, selector,
		AnyOf(TextMention("WAIT"), MaxMessages(3)),
		NewAgent("Planner", "plans", "you plan", chatty),
	)

	utterances, errs := team.Run(context.Background(), domain.Turn{Author: "alice", Text: "go"})
	got, err := drain(t, utterances, errs)

	req.NoError(err)
	// task echo + two responder utterances == ceiling of 3
	req.Len(got, 3)
}

func TestSelectorTeam_SelectorFallsBackToRoundRobin(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	planner := &cannedCompleter{replies: []string{"planner speaking WAIT"}}
	// selector names nobody the team knows
	selector := &cannedCompleter{replies: []string{"the moderator thinks the Architect should go"}}

	team := NewSelectorTeam(log, selector,
		AnyOf(TextMention("WAIT"), MaxMessages(10)),
		NewAgent("Planner", "plans", "you plan", planner),
		NewAgent("Facilitator", "asks", "you ask", &cannedCompleter{}),
	)

	utterances, errs := team.Run(context.Background(), domain.Turn{Author: "alice", Text: "task"})
	got, err := drain(t, utterances, errs)

	req.NoError(err)
	req.Equal("Planner", got[1].Source)
}

func TestSelectorTeam_AgentFailureSurfacesOnce(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	broken := &cannedCompleter{fail: fmt.Errorf("relay returned 502")}
	selector := &cannedCompleter{replies: []string{"Planner"}}

	team := NewSelectorTeam(log, selector,
		AnyOf(TextMention("WAIT"), MaxMessages(10)),
		NewAgent("Planner", "plans", "you plan", broken),
	)

	utterances, errs := team.Run(context.Background(), domain.Turn{Author: "alice", Text: "task"})
	got, err := drain(t, utterances, errs)

	// the task echo still came through before the failure
	req.Len(got, 1)
	req.Error(err)
	req.Contains(err.Error(), "relay returned 502")
}

func TestSelectorTeam_TranscriptPersistsAcrossRuns(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	var seen []model.Message
	recorder := &recordingCompleter{reply: "noted WAIT", record: &seen}
	selector := &cannedCompleter{replies: []string{"Planner", "Planner"}}

	team := NewSelectorTeam(log, selector,
		AnyOf(TextMention("WAIT"), MaxMessages(10)),
		NewAgent("Planner", "plans", "you plan", recorder),
	)

	utterances, errs := team.Run(context.Background(), domain.Turn{Author: "alice", Text: "first question"})
	_, err := drain(t, utterances, errs)
	req.NoError(err)

	utterances, errs = team.Run(context.Background(), domain.Turn{Author: "alice", Text: "second question"})
	_, err = drain(t, utterances, errs)
	req.NoError(err)

	// the second run's prompt still contains the first question
	joined := flatten(seen)
	req.Contains(joined, "first question")
	req.Contains(joined, "second question")
}

type recordingCompleter struct {
	reply  string
	record *[]model.Message
}

func (c *recordingCompleter) Chat(_ context.Context, messages []model.Message) (string, error) {
	*c.record = append([]model.Message(nil), messages...)
	return c.reply, nil
}

func flatten(messages []model.Message) string {
	var b strings.Builder
	for _, m := range messages {
		if s, ok := m.Content.(string); ok {
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
	return b.String()
}
