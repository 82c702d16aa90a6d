package ingest

import (
	"strings"

	"studyhub/domain"
	"studyhub/errors"
)

// Builder assembles one immutable Turn from a text payload plus zero or
// more attachments, preserving attachment input order on both the text
// appendices and the visual parts.
type Builder struct {
	normalizer *Normalizer
}

func NewBuilder(normalizer *Normalizer) *Builder {
	return &Builder{normalizer: normalizer}
}

// Build normalizes every attachment in order, concatenating text appendices
// onto the base text and collecting visual parts. The base text must be
// non-blank; the protocol boundary rejects all-whitespace submissions
// before they reach the builder, and Build re-checks the invariant.
func (b *Builder) Build(baseText, author string, attachments []domain.Attachment) (domain.Turn, error) {
	if strings.TrimSpace(baseText) == "" {
		return domain.Turn{}, errors.ErrEmptyTurn
	}

	text := baseText
	var visuals [][]byte
	for _, att := range attachments {
		part, ok := b.normalizer.Normalize(att)
		if !ok {
			continue
		}
		switch p := part.(type) {
		case TextAppendix:
			text += string(p)
		case VisualPart:
			visuals = append(visuals, p)
		}
	}

	return domain.Turn{
		Author:  author,
		Text:    text,
		Visuals: visuals,
	}, nil
}
