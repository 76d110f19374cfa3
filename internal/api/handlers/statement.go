package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/marketfold/fund-analyzer/internal/api/response"
	"github.com/marketfold/fund-analyzer/internal/service"
)

// maxUploadSize caps statement uploads at 15 MB; brokerage statements
// run a few hundred KB.
const maxUploadSize = 15 << 20

// parseFallbackMessage is shown verbatim by the upload UI when a
// statement cannot be read.
const parseFallbackMessage = "Could not read that statement. Try a CSV export or manual entry instead."

// StatementHandler handles HTTP requests for statement parsing.
// It serves as the HTTP layer adapter, parsing uploads and delegating
// extraction to the statementService.
type StatementHandler struct {
	statementService *service.StatementService
}

// NewStatementHandler creates a new StatementHandler with the provided service dependency.
func NewStatementHandler(statementService *service.StatementService) *StatementHandler {
	return &StatementHandler{
		statementService: statementService,
	}
}

// ParseStatement handles PDF statement uploads.
//
// Endpoint: POST /api/analyzer/parse-statement (multipart, "file" field)
// Response: 200 OK with {holdings, debug}
// Error: 400 when no file is present, 500 with a fallback suggestion
// when the document cannot be parsed
func (h *StatementHandler) ParseStatement(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	result, err := h.statementService.ParsePDF(data)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, parseFallbackMessage, err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// ParseCSV handles CSV statement uploads. Accepts either a multipart
// "file" field or a raw text/csv body.
//
// Endpoint: POST /api/analyzer/parse-csv
func (h *StatementHandler) ParseCSV(w http.ResponseWriter, r *http.Request) {
	var reader io.Reader

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		data, ok := h.readUpload(w, r)
		if !ok {
			return
		}
		reader = strings.NewReader(string(data))
	} else {
		reader = http.MaxBytesReader(w, r.Body, maxUploadSize)
	}

	result, err := h.statementService.ParseCSV(reader)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, parseFallbackMessage, err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// readUpload pulls the "file" field out of a multipart request. Writes
// the error response itself and returns ok=false on failure.
func (h *StatementHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.RespondError(w, http.StatusBadRequest, "no file uploaded", err.Error())
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "no file uploaded", err.Error())
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to read upload", err.Error())
		return nil, false
	}
	return data, true
}
