package handlers

import (
	"encoding/json"
	"net/http"

	"studyhub-backend/internal/ai"
	"studyhub-backend/internal/models"
	"studyhub-backend/internal/services"
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Validation failed",
			"fields": e.Fields,
		})
	case *services.ConflictError:
		writeJSON(w, http.StatusConflict, errorResp(e.Message))
	case *services.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResp(e.Message))
	case *services.UnauthorizedError:
		writeJSON(w, http.StatusUnauthorized, errorResp(e.Message))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("An unexpected error occurred"))
	}
}

// handlePipelineError maps the generation pipeline's typed errors onto
// status codes: bad input and policy refusals are the caller's problem,
// backend and schema failures are ours.
func handlePipelineError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *ai.InputError:
		status := http.StatusBadRequest
		if e.UnsupportedType {
			status = http.StatusUnsupportedMediaType
		}
		writeJSON(w, status, errorResp(e.Message))
	case *ai.BlockedError:
		writeJSON(w, http.StatusBadRequest, errorResp(e.Error()))
	case *ai.RelevanceError:
		writeJSON(w, http.StatusBadRequest, errorResp(e.Message))
	case *ai.EmptyError:
		writeJSON(w, http.StatusInternalServerError, errorResp(e.Error()))
	case *ai.SchemaError:
		writeJSON(w, http.StatusInternalServerError, errorResp("The AI response did not match the expected format. Please try again."))
	case *ai.TransportError:
		writeJSON(w, http.StatusInternalServerError, errorResp("The AI service is currently unavailable. Please try again later."))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("An unexpected error occurred"))
	}
}
