package engine

import (
	"fmt"
	"log/slog"
)

const (
	PlannerRole     = "Planner"
	FacilitatorRole = "Facilitator"
)

func plannerPrompt(sentinel string) string {
	return fmt.Sprintf(`You are a project planner in a collaborative study room.
Your job is to help students break hard problems into executable steps.
Be logical and direct; give structured suggestions.
When your planning for the current stage is done and you are waiting for the
student to think or respond, end your reply with '%s' to yield the floor.`, sentinel)
}

func facilitatorPrompt(sentinel string) string {
	return fmt.Sprintf(`You are a collaborative-learning facilitator.
Stay quiet as much as possible. Speak only when a student is stuck or asks
you directly. Never give the answer outright; use Socratic questions to make
the student think for themselves.
When your questioning is done, end your reply with '%s' to yield the floor.`, sentinel)
}

// NewStudyTeam builds the default two-responder roster: a Planner that
// structures the problem and a Facilitator that nudges with questions.
// Model bindings are explicit dependencies; nothing is looked up globally.
func NewStudyTeam(log *slog.Logger, planner, facilitator, selector Completer, sentinel string, maxUtterances int) *SelectorTeam {
	return NewSelectorTeam(
		log,
		selector,
		AnyOf(TextMention(sentinel), MaxMessages(maxUtterances)),
		NewAgent(PlannerRole,
			"breaks complex problems into structured, executable steps",
			plannerPrompt(sentinel), planner),
		NewAgent(FacilitatorRole,
			"guides stuck students with Socratic questions, never direct answers",
			facilitatorPrompt(sentinel), facilitator),
	)
}
