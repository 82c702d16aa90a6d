// Package extract pulls plain text out of document attachments so the
// responder pipeline can read what participants share.
package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDF extracts one text string per page, in page order.
type PDF struct{}

func NewPDF() *PDF {
	return &PDF{}
}

// Extract reads the document from memory. Malformed input yields an error;
// callers are expected to report it inline rather than abort the turn.
func (e *PDF) Extract(data []byte) (pages []string, err error) {
	// The underlying parser panics on some malformed files instead of
	// returning an error.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	total := reader.NumPage()
	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
