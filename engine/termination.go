package engine

import (
	"strings"

	"studyhub/domain"
)

// Condition bounds a deliberation run. Check is called once per utterance
// (the task echo included) and reports whether the run should stop after
// that utterance. Conditions may be stateful; Reset is called at the start
// of every run.
type Condition interface {
	Check(u domain.Utterance) bool
	Reset()
}

type textMention struct {
	token string
}

// TextMention stops a run once an utterance contains the given literal
// token. This is how responders yield the floor back to the humans.
func TextMention(token string) Condition {
	return &textMention{token: token}
}

func (c *textMention) Check(u domain.Utterance) bool {
	return strings.Contains(u.Content, c.token)
}

func (c *textMention) Reset() {}

type maxMessages struct {
	max  int
	seen int
}

// MaxMessages stops a run after max utterances regardless of content, so
// responders cannot chat among themselves forever.
func MaxMessages(max int) Condition {
	return &maxMessages{max: max}
}

func (c *maxMessages) Check(u domain.Utterance) bool {
	c.seen++
	return c.seen >= c.max
}

func (c *maxMessages) Reset() {
	c.seen = 0
}

type anyOf struct {
	conds []Condition
}

// AnyOf stops a run as soon as any of its conditions fires. Every condition
// is evaluated on every utterance so stateful ones keep counting.
func AnyOf(conds ...Condition) Condition {
	return &anyOf{conds: conds}
}

func (c *anyOf) Check(u domain.Utterance) bool {
	stop := false
	for _, cond := range c.conds {
		if cond.Check(u) {
			stop = true
		}
	}
	return stop
}

func (c *anyOf) Reset() {
	for _, cond := range c.conds {
		cond.Reset()
	}
}
