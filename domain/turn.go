// Package domain contains core concepts of the collaborative study room.
// This file defines Turn, the single unit of conversation handed to the
// responder pipeline. Turns are immutable once built.
package domain

// SystemSender identifies messages emitted by the room itself
// (arrivals, departures, failure notices).
const SystemSender = "System"

// UserSource is the utterance source the deliberation engine uses when
// echoing the submitted task back into its own stream. Utterances from this
// source are never rebroadcast.
const UserSource = "user"

// Turn is one conversational contribution submitted to the deliberation
// engine: the originating participant, the accumulated text, and any visual
// parts extracted from image attachments, in arrival order.
type Turn struct {
	Author  string
	Text    string
	Visuals [][]byte
}

// Multipart reports whether the turn carries visual content in addition to
// its text. Text-only turns degenerate to a plain string on the wire.
func (t Turn) Multipart() bool {
	return len(t.Visuals) > 0
}

// Utterance is one element of the lazy sequence a deliberation run yields.
type Utterance struct {
	Source  string
	Content string
}
