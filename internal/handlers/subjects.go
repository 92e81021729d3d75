package handlers

import (
	"net/http"

	"studyhub-backend/internal/ai"
)

// Subjects lists the subjects the platform currently covers.
func Subjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"subjects": ai.ChatSubjects})
}
