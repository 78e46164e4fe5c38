package summary

import (
	"encoding/json"
	"net/http"

	"github.com/tutormaster/tutormaster/internal/rest"
)

type SummaryRequestDTO struct {
	StudentName string   `json:"studentName"`
	Notes       []string `json:"notes"`
}

type SummaryDTO struct {
	Summary string `json:"summary"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Summarize godoc
// @Summary Generate an AI progress summary from session notes
// @Description Best-effort; returns a placeholder text when the AI backend is unavailable
// @Tags Summary
// @Accept json
// @Produce json
// @Param request body SummaryRequestDTO true "Student and notes"
// @Success 200 {object} SummaryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/summary [post]
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request SummaryRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	if request.StudentName == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Student name is required"})
		return
	}

	text := h.service.Summarize(r.Context(), request.StudentName, request.Notes)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SummaryDTO{Summary: text}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
