package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPDF_Extract_MalformedInput(t *testing.T) {
	req := require.New(t)
	e := NewPDF()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "not a pdf", data: []byte("definitely not a pdf")},
		{name: "truncated header", data: []byte("%PDF-1.7")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := e.Extract(tt.data)
			req.Error(err)
			req.Nil(pages)
		})
	}
}
