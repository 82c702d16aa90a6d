// Package ingest turns the heterogeneous inputs of one chat submission
// (text, inline images, documents) into a single conversational Turn.
package ingest

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"studyhub/contract"
	"studyhub/domain"
	"studyhub/domain/mimetypes"
)

// Part is one normalized attachment contribution.
type Part interface {
	isPart()
}

// VisualPart is decoded image bytes, forwarded to the engine as-is.
type VisualPart []byte

// TextAppendix is document text folded into the turn's text content.
type TextAppendix string

func (VisualPart) isPart()   {}
func (TextAppendix) isPart() {}

// Normalizer decodes and classifies inbound attachments. Its policy is
// strictly best-effort: a bad attachment is skipped, never an error, so one
// broken upload cannot block the rest of the turn.
type Normalizer struct {
	log       *slog.Logger
	extractor contract.PageExtractor
}

func NewNormalizer(log *slog.Logger, extractor contract.PageExtractor) *Normalizer {
	return &Normalizer{log: log, extractor: extractor}
}

// Normalize returns the attachment's contribution to the turn, or ok=false
// when the attachment is skipped (missing payload separator, undecodable
// base64, unrecognized media type).
func (n *Normalizer) Normalize(att domain.Attachment) (Part, bool) {
	_, encoded, found := strings.Cut(att.Data, ",")
	if !found {
		n.log.Debug("Skipping attachment without data-uri separator", "name", att.Name)
		return nil, false
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		n.log.Debug("Skipping undecodable attachment", "name", att.Name, "error", err)
		return nil, false
	}

	switch mimetypes.Classify(att.Mime, raw) {
	case mimetypes.Image:
		return VisualPart(raw), true
	case mimetypes.PDF:
		return n.document(att.Name, raw), true
	default:
		n.log.Debug("Skipping attachment of unhandled media type", "name", att.Name, "mime", att.Mime)
		return nil, false
	}
}

// document extracts page texts and wraps them with a banner naming the
// source file. Extraction failures are reported inline: the responders see
// a notice instead of the content, and the turn still goes through.
func (n *Normalizer) document(name string, raw []byte) TextAppendix {
	pages, err := n.extractor.Extract(raw)
	if err != nil {
		n.log.Warn("Document extraction failed", "name", name, "error", err)
		return TextAppendix(fmt.Sprintf("\n\n[attachment %q could not be read: %v]", name, err))
	}

	body := strings.Join(pages, "\n")
	return TextAppendix(fmt.Sprintf("\n\n--- content of %s ---\n%s\n--- end of %s ---", name, body, name))
}
