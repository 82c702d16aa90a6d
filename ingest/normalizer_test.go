package ingest

import (
	"encoding/base64"
	"log/slog"
	"testing"

	"studyhub/domain"
	"studyhub/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func dataURI(prefix string, raw []byte) string {
	return prefix + "," + base64.StdEncoding.EncodeToString(raw)
}

func TestNormalizer_ImageBecomesVisualPart(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	n := NewNormalizer(log, mocks.NewMockPageExtractor(ctrl))

	part, ok := n.Normalize(domain.Attachment{
		Name: "diagram.png",
		Mime: "image/png",
		Data: dataURI("data:image/png;base64", pngHeader),
	})

	req.True(ok)
	visual, isVisual := part.(VisualPart)
	req.True(isVisual)
	req.Equal(pngHeader, []byte(visual))
}

func TestNormalizer_SkipsMalformedAttachments(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	n := NewNormalizer(log, mocks.NewMockPageExtractor(ctrl))

	tests := []struct {
		name string
		att  domain.Attachment
	}{
		{
			name: "no separator",
			att:  domain.Attachment{Name: "x.png", Mime: "image/png", Data: "nodatahere"},
		},
		{
			name: "broken base64",
			att:  domain.Attachment{Name: "x.png", Mime: "image/png", Data: "data:image/png;base64,???!!!"},
		},
		{
			name: "unknown media type",
			att:  domain.Attachment{Name: "x.bin", Mime: "application/octet-stream", Data: dataURI("data:application/octet-stream;base64", []byte{1, 2, 3})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			part, ok := n.Normalize(tt.att)
			req.False(ok)
			req.Nil(part)
		})
	}
}

func TestNormalizer_DocumentPagesAreConcatenatedInOrder(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	raw := []byte("%PDF-1.7 pretend")
	extractor := mocks.NewMockPageExtractor(ctrl)
	extractor.EXPECT().Extract(raw).Return([]string{"page one", "page two"}, nil).Times(1)

	n := NewNormalizer(log, extractor)

	part, ok := n.Normalize(domain.Attachment{
		Name: "notes.pdf",
		Mime: "application/pdf",
		Data: dataURI("data:application/pdf;base64", raw),
	})

	req.True(ok)
	appendix, isText := part.(TextAppendix)
	req.True(isText)
	req.Contains(string(appendix), "--- content of notes.pdf ---")
	req.Contains(string(appendix), "page one\npage two")
	req.Contains(string(appendix), "--- end of notes.pdf ---")
}

func TestNormalizer_ExtractionFailureIsReportedInline(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	raw := []byte("corrupted")
	extractor := mocks.NewMockPageExtractor(ctrl)
	extractor.EXPECT().Extract(raw).Return(nil, assertError{}).Times(1)

	n := NewNormalizer(log, extractor)

	part, ok := n.Normalize(domain.Attachment{
		Name: "broken.pdf",
		Mime: "application/pdf",
		Data: dataURI("data:application/pdf;base64", raw),
	})

	// Failures degrade to an inline notice, never to a dropped attachment slot.
	req.True(ok)
	appendix, isText := part.(TextAppendix)
	req.True(isText)
	req.Contains(string(appendix), "broken.pdf")
	req.Contains(string(appendix), "could not be read")
}

type assertError struct{}

func (assertError) Error() string { return "bad xref table" }
