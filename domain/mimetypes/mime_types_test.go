package mimetypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Minimal valid PNG header, enough for content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		data     []byte
		expected Kind
	}{
		{
			name:     "declared png",
			declared: "image/png",
			data:     nil,
			expected: Image,
		},
		{
			name:     "declared jpeg with parameters",
			declared: "image/jpeg; charset=binary",
			data:     nil,
			expected: Image,
		},
		{
			name:     "declared pdf",
			declared: "application/pdf",
			data:     nil,
			expected: PDF,
		},
		{
			name:     "missing declaration falls back to sniffing",
			declared: "",
			data:     pngBytes,
			expected: Image,
		},
		{
			name:     "garbage declaration falls back to sniffing",
			declared: ";;;",
			data:     []byte("%PDF-1.7 "),
			expected: PDF,
		},
		{
			name:     "plain text is unknown",
			declared: "text/plain",
			data:     nil,
			expected: Unknown,
		},
		{
			name:     "nothing to go on",
			declared: "",
			data:     []byte("just some words"),
			expected: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.declared, tt.data))
		})
	}
}
