package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"studyhub-backend/internal/ai"
	"studyhub-backend/internal/middleware"
	"studyhub-backend/internal/retrieval"
)

const maxPDFBytes = 32 << 20

// PDFQAHandler serves the document question-answering endpoints: process a
// PDF into a per-user retrieval index, then answer questions against it.
type PDFQAHandler struct {
	retrieval *retrieval.Service
}

func NewPDFQAHandler(service *retrieval.Service) *PDFQAHandler {
	return &PDFQAHandler{retrieval: service}
}

func (h *PDFQAHandler) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPDFBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid multipart form data"))
		return
	}

	file, header, err := r.FormFile("pdf_file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("No 'pdf_file' part in the request"))
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("No file selected"))
		return
	}
	if strings.ToLower(filepath.Ext(header.Filename)) != ".pdf" {
		writeJSON(w, http.StatusBadRequest, errorResp("Only .pdf files can be processed for question answering"))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Could not read uploaded file"))
		return
	}

	text, err := ai.ExtractPDFText(data)
	if err != nil || strings.TrimSpace(text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Could not extract any text from the PDF"))
		return
	}

	userID := middleware.GetUserID(r.Context())
	docID := retrieval.DocumentID(data, userID)

	chunks, err := h.retrieval.Process(r.Context(), userID, docID, text)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to process the document"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Document processed. You can now ask questions about it.",
		"chunks":  chunks,
	})
}

func (h *PDFQAHandler) Ask(w http.ResponseWriter, r *http.Request) {
	question, ok := decodeJSONField(r, "question")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing 'question' field in JSON payload"))
		return
	}

	userID := middleware.GetUserID(r.Context())

	answer, err := h.retrieval.Ask(r.Context(), userID, question)
	if err != nil {
		if errors.Is(err, retrieval.ErrNoIndex) {
			writeJSON(w, http.StatusBadRequest, errorResp("Please process a PDF before asking questions about it."))
			return
		}
		handlePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}
