package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"lumensense/internal/model"
	"lumensense/internal/service"
)

// AnalyzeHandler handles the transcript analysis endpoint
type AnalyzeHandler struct {
	analysisSvc *service.AnalysisService
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analysisSvc *service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{analysisSvc: analysisSvc}
}

// Analyze handles POST /api/analyze. A classification failure is not an HTTP
// failure: the analyzer's error profile still returns 200.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.analysisSvc.Process(r.Context(), req.Messages)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTranscript) {
			writeDetail(w, http.StatusBadRequest, "messages cannot be empty")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
