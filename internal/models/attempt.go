package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QuizAttempt is one completed quiz stored for the user's history. QuizData
// holds the generated questions as served; UserAnswers holds the selections
// keyed by question index.
type QuizAttempt struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	Subject        string          `json:"subject"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"total_questions"`
	QuizData       json.RawMessage `json:"quiz_data"`
	UserAnswers    json.RawMessage `json:"user_answers"`
	CreatedAt      time.Time       `json:"created_at"`
}

type SaveAttemptRequest struct {
	Subject        string          `json:"subject"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"total_questions"`
	OriginalQuiz   json.RawMessage `json:"original_quiz"`
	UserSelections json.RawMessage `json:"user_selections"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
