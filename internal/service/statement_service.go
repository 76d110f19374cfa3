package service

import (
	"io"

	"github.com/marketfold/fund-analyzer/internal/model"
	"github.com/marketfold/fund-analyzer/internal/statement"
)

// StatementService coordinates statement uploads: extraction of
// positioned text from PDFs and the heuristic holdings pipeline.
type StatementService struct {
	extractor statement.TextExtractor
}

// NewStatementService creates a StatementService with the provided extractor.
func NewStatementService(extractor statement.TextExtractor) *StatementService {
	return &StatementService{extractor: extractor}
}

// ParsePDF extracts positioned text from the uploaded bytes and runs the
// holdings pipeline. Extraction failures are terminal; no partial
// holdings are returned.
func (s *StatementService) ParsePDF(data []byte) (*model.ParseResult, error) {
	doc, err := s.extractor.Extract(data)
	if err != nil {
		return nil, err
	}
	return statement.ParseDocument(doc), nil
}

// ParseCSV parses a header-mapped holdings CSV.
func (s *StatementService) ParseCSV(r io.Reader) (*model.ParseResult, error) {
	return statement.ParseCSV(r)
}
