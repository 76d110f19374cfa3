package statement

import (
	"errors"
	"testing"

	"github.com/marketfold/fund-analyzer/internal/apperrors"
)

func TestPDFExtractor_Extract_RejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", nil},
		{"not a pdf", []byte("just some text")},
		{"truncated header", []byte("%PDF-1.7")},
	}

	extractor := NewPDFExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractor.Extract(tt.data)
			if !errors.Is(err, apperrors.ErrStatementUnreadable) {
				t.Errorf("Extract(%s) = %v, want ErrStatementUnreadable", tt.name, err)
			}
		})
	}
}
