package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"studyhub-backend/internal/ai"
)

// GenerateHandler serves the content-generation endpoints. Every endpoint
// builds a Task and runs the shared pipeline; they differ only in how they
// read their inputs and which key the payload is returned under.
type GenerateHandler struct {
	pipeline *ai.Pipeline
}

func NewGenerateHandler(pipeline *ai.Pipeline) *GenerateHandler {
	return &GenerateHandler{pipeline: pipeline}
}

func (h *GenerateHandler) run(w http.ResponseWriter, r *http.Request, task ai.Task) {
	result, err := h.pipeline.Run(r.Context(), task)
	if err != nil {
		handlePipelineError(w, err)
		return
	}

	if key := task.ResponseKey(); key != "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{key: result})
		return
	}
	// Spread tasks return the validated object as the whole body.
	writeJSON(w, http.StatusOK, result)
}

// decodeJSONField reads one required string field from a JSON body.
func decodeJSONField(r *http.Request, field string) (string, bool) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", false
	}
	value, _ := body[field].(string)
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

func (h *GenerateHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	extracted, err := ai.ExtractRequestText(r, "text", "file")
	if err != nil {
		handlePipelineError(w, err)
		return
	}

	h.run(w, r, ai.Task{
		Kind:       ai.TaskSummary,
		SourceText: extracted.Text,
		SourceDesc: extracted.Source,
	})
}

func (h *GenerateHandler) VisualDescription(w http.ResponseWriter, r *http.Request) {
	topic, ok := decodeJSONField(r, "topic")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing 'topic' field in JSON payload"))
		return
	}

	h.run(w, r, ai.Task{Kind: ai.TaskVisualDescription, Topic: topic})
}

func (h *GenerateHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	extracted, fields, err := ai.ExtractRequestPayload(r, "text", "file")
	if err != nil {
		handlePipelineError(w, err)
		return
	}

	subject, _ := fields["subject"].(string)
	if subject == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing 'subject' field"))
		return
	}
	difficulty, _ := fields["difficulty"].(string)
	if difficulty == "" {
		difficulty = "easy"
	}

	h.run(w, r, ai.Task{
		Kind:       ai.TaskQuiz,
		SourceText: extracted.Text,
		SourceDesc: extracted.Source,
		Subject:    subject,
		Difficulty: difficulty,
		Count:      parseCount(fields["count"]),
	})
}

// parseCount coerces a count field that may arrive as a JSON number, a form
// string, or nothing at all. Non-numeric input silently falls back to the
// default before clamping.
func parseCount(v interface{}) int {
	n := ai.DefaultQuizQuestions
	switch value := v.(type) {
	case float64:
		n = int(value)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			n = parsed
		}
	}
	return ai.ClampQuizCount(n)
}

func (h *GenerateHandler) BattleFlow(w http.ResponseWriter, r *http.Request) {
	battle, ok := decodeJSONField(r, "battle_name")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing 'battle_name' field in JSON payload"))
		return
	}

	h.run(w, r, ai.Task{Kind: ai.TaskBattleFlow, Battle: battle})
}

func (h *GenerateHandler) MapInfo(w http.ResponseWriter, r *http.Request) {
	topic, ok := decodeJSONField(r, "topic")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing 'topic' field in JSON payload"))
		return
	}

	h.run(w, r, ai.Task{Kind: ai.TaskMapInfo, Topic: topic})
}

func (h *GenerateHandler) WritingFeedback(w http.ResponseWriter, r *http.Request) {
	extracted, fields, err := ai.ExtractRequestPayload(r, "user_answer", "answer_file")
	if err != nil {
		handlePipelineError(w, err)
		return
	}

	question, _ := fields["topic_question"].(string)
	if strings.TrimSpace(question) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing 'topic_question' field"))
		return
	}

	h.run(w, r, ai.Task{
		Kind:       ai.TaskWritingFeedback,
		Question:   question,
		Answer:     extracted.Text,
		SourceDesc: extracted.Source,
	})
}

func (h *GenerateHandler) EquationBalance(w http.ResponseWriter, r *http.Request) {
	equation, ok := decodeJSONField(r, "equation")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing 'equation' field in JSON payload"))
		return
	}

	h.run(w, r, ai.Task{Kind: ai.TaskEquationBalance, Equation: equation})
}

func (h *GenerateHandler) ProcessExplainer(w http.ResponseWriter, r *http.Request) {
	process, ok := decodeJSONField(r, "process_name")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing 'process_name' field in JSON payload"))
		return
	}

	h.run(w, r, ai.Task{Kind: ai.TaskProcessExplainer, Process: process})
}

func (h *GenerateHandler) Flashcards(w http.ResponseWriter, r *http.Request) {
	extracted, err := ai.ExtractRequestText(r, "text", "file")
	if err != nil {
		handlePipelineError(w, err)
		return
	}

	h.run(w, r, ai.Task{
		Kind:       ai.TaskFlashcards,
		SourceText: extracted.Text,
		SourceDesc: extracted.Source,
	})
}

func (h *GenerateHandler) Chat(w http.ResponseWriter, r *http.Request) {
	message, ok := decodeJSONField(r, "message")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing 'message' field in JSON payload"))
		return
	}

	h.run(w, r, ai.Task{Kind: ai.TaskChat, Message: message})
}
