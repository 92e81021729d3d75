package handlers

import (
	"encoding/json"
	"net/http"

	"studyhub-backend/internal/middleware"
	"studyhub-backend/internal/models"
	"studyhub-backend/internal/repository"
)

type AttemptHandler struct {
	attemptRepo *repository.AttemptRepo
}

func NewAttemptHandler(attemptRepo *repository.AttemptRepo) *AttemptHandler {
	return &AttemptHandler{attemptRepo: attemptRepo}
}

func (h *AttemptHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req models.SaveAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	if req.Subject == "" || req.TotalQuestions <= 0 || len(req.OriginalQuiz) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing required attempt fields"))
		return
	}
	if req.Score < 0 || req.Score > req.TotalQuestions {
		writeJSON(w, http.StatusBadRequest, errorResp("Score must be between 0 and the number of questions"))
		return
	}

	attempt := &models.QuizAttempt{
		UserID:         middleware.GetUserID(r.Context()),
		Subject:        req.Subject,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		QuizData:       req.OriginalQuiz,
		UserAnswers:    req.UserSelections,
	}

	if err := h.attemptRepo.Save(r.Context(), attempt); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to save quiz attempt"))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Attempt saved",
		"attempt_id": attempt.ID,
	})
}

func (h *AttemptHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	attempts, err := h.attemptRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to load quiz history"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"attempts": attempts})
}
