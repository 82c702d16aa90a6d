package mimetypes

import (
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Kind is the coarse attachment classification the normalizer acts on.
type Kind int

const (
	Unknown Kind = iota
	Image
	PDF
)

const applicationPDF = "application/pdf"

// Classify resolves an attachment's declared media type into a Kind.
// When the declared type is missing or unparsable, the decoded payload is
// sniffed instead, so a browser that omits the header does not turn every
// upload into an Unknown.
func Classify(declared string, data []byte) Kind {
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil || mt == "" {
		mt = mimetype.Detect(data).String()
		if parsed, _, perr := mime.ParseMediaType(mt); perr == nil {
			mt = parsed
		}
	}

	switch {
	case strings.HasPrefix(mt, "image/"):
		return Image
	case mt == applicationPDF:
		return PDF
	default:
		return Unknown
	}
}
