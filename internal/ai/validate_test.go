package ai

import (
	"encoding/json"
	"strings"
	"testing"

	"studyhub-backend/internal/models"
)

func TestValidate_BlockedEchoesReason(t *testing.T) {
	_, err := Validate(BlockedOutcome("SAFETY"), Task{Kind: TaskSummary})
	blocked, ok := err.(*BlockedError)
	if !ok {
		t.Fatalf("Expected *BlockedError, got %T", err)
	}
	if !strings.Contains(blocked.Error(), "SAFETY") {
		t.Errorf("Expected reason in message, got %q", blocked.Error())
	}
}

func TestValidate_TransportError(t *testing.T) {
	_, err := Validate(TransportOutcome("connection refused"), Task{Kind: TaskQuiz})
	if _, ok := err.(*TransportError); !ok {
		t.Fatalf("Expected *TransportError, got %T", err)
	}
}

func TestValidate_EmptyFreeTextFallsBack(t *testing.T) {
	result, err := Validate(EmptyOutcome(), Task{Kind: TaskSummary})
	if err != nil {
		t.Fatalf("Expected fallback reply, got error %v", err)
	}
	reply, ok := result.(string)
	if !ok || !strings.HasPrefix(reply, "Sorry,") {
		t.Errorf("Expected apologetic fallback, got %v", result)
	}
}

func TestValidate_EmptyStructuredFails(t *testing.T) {
	_, err := Validate(EmptyOutcome(), Task{Kind: TaskQuiz})
	if _, ok := err.(*EmptyError); !ok {
		t.Fatalf("Expected *EmptyError, got %T", err)
	}
}

func TestValidate_FreeTextVerbatim(t *testing.T) {
	result, err := Validate(TextOutcome("The battle began at dawn."), Task{Kind: TaskBattleFlow})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if result != "The battle began at dawn." {
		t.Errorf("Expected verbatim text, got %v", result)
	}
}

const validQuizJSON = `[
	{"question": "What is H2O?", "options": ["Water", "Oxygen", "Hydrogen", "Helium"], "correct_answer": "a"},
	{"question": "Symbol for iron?", "options": ["Ir", "Fe", "In", "Io"], "correct_answer": "B"}
]`

func TestValidateQuiz_Valid(t *testing.T) {
	result, err := Validate(TextOutcome(validQuizJSON), Task{Kind: TaskQuiz})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	questions, ok := result.([]models.QuizQuestion)
	if !ok {
		t.Fatalf("Expected []models.QuizQuestion, got %T", result)
	}
	if len(questions) != 2 {
		t.Fatalf("Expected 2 questions, got %d", len(questions))
	}
	// Lowercase answers are normalized during validation.
	if questions[0].CorrectAnswer != "A" {
		t.Errorf("Expected normalized answer 'A', got %q", questions[0].CorrectAnswer)
	}
}

func TestValidateQuiz_RoundTrip(t *testing.T) {
	result, err := Validate(TextOutcome(validQuizJSON), Task{Kind: TaskQuiz})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var reparsed []map[string]interface{}
	if err := json.Unmarshal(data, &reparsed); err != nil {
		t.Fatalf("Failed to re-parse: %v", err)
	}
	for i, q := range reparsed {
		answer := q["correct_answer"].(string)
		if answer != "A" && answer != "B" && answer != "C" && answer != "D" {
			t.Errorf("Question %d: correct_answer %q outside A-D", i+1, answer)
		}
		if opts := q["options"].([]interface{}); len(opts) != 4 {
			t.Errorf("Question %d: expected 4 options, got %d", i+1, len(opts))
		}
	}
}

func TestValidateQuiz_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantPos string
	}{
		{"not a list", `{"question": "hm"}`, ""},
		{"empty list", `[]`, ""},
		{"missing options", `[{"question": "Q?", "correct_answer": "A"}]`, "1"},
		{"three options", `[{"question": "Q?", "options": ["a", "b", "c"], "correct_answer": "A"}]`, "1"},
		{"bad answer letter", `[{"question": "Q?", "options": ["a", "b", "c", "d"], "correct_answer": "E"}]`, "1"},
		{"blank question", `[{"question": " ", "options": ["a", "b", "c", "d"], "correct_answer": "A"}]`, "1"},
		{
			"second item broken",
			`[{"question": "Q?", "options": ["a", "b", "c", "d"], "correct_answer": "A"},
			  {"question": "Q2?", "options": ["a", "b", "c", "d"], "correct_answer": "X"}]`,
			"2",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(TextOutcome(tc.raw), Task{Kind: TaskQuiz})
			schemaErr, ok := err.(*SchemaError)
			if !ok {
				t.Fatalf("Expected *SchemaError, got %T (%v)", err, err)
			}
			if tc.wantPos != "" && !strings.Contains(schemaErr.Message, tc.wantPos) {
				t.Errorf("Expected position %s in message %q", tc.wantPos, schemaErr.Message)
			}
			if schemaErr.Raw == "" {
				t.Error("Expected raw response to be preserved for logging")
			}
		})
	}
}

func TestValidateQuiz_RelevanceRefusal(t *testing.T) {
	raw := `{"error": "The provided text does not seem to be related to Chemistry. Please provide relevant text to generate a quiz."}`

	_, err := Validate(TextOutcome(raw), Task{Kind: TaskQuiz})
	relErr, ok := err.(*RelevanceError)
	if !ok {
		t.Fatalf("Expected *RelevanceError, got %T", err)
	}
	if !strings.Contains(relErr.Message, "Chemistry") {
		t.Errorf("Expected the model's message to pass through, got %q", relErr.Message)
	}
}

func TestValidateQuiz_CodeFenceStripped(t *testing.T) {
	fenced := "```json\n" + validQuizJSON + "\n```"
	if _, err := Validate(TextOutcome(fenced), Task{Kind: TaskQuiz}); err != nil {
		t.Fatalf("Expected fenced JSON to validate, got %v", err)
	}
}

const validMapJSON = `{
	"center_lat": 23.0, "center_lon": 12.0, "zoom": 4,
	"description": "The largest hot desert in the world.",
	"points_of_interest": [
		{"name": "Erg Chebbi", "lat": 31.16, "lon": -3.98, "popup_info": "Sand dunes"}
	],
	"bounding_box": {"south_west_lat": 15.0, "south_west_lon": -17.0, "north_east_lat": 35.0, "north_east_lon": 40.0}
}`

func TestValidateMapInfo_Valid(t *testing.T) {
	result, err := Validate(TextOutcome(validMapJSON), Task{Kind: TaskMapInfo})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	info, ok := result.(models.MapInfo)
	if !ok {
		t.Fatalf("Expected models.MapInfo, got %T", result)
	}
	if info.Zoom == nil || *info.Zoom != 4 {
		t.Errorf("Expected zoom 4, got %v", info.Zoom)
	}
	if len(info.PointsOfInterest) != 1 {
		t.Errorf("Expected 1 point of interest, got %d", len(info.PointsOfInterest))
	}
	if info.BoundingBox == nil || info.BoundingBox.SouthWestLat != 15.0 {
		t.Errorf("Unexpected bounding box: %+v", info.BoundingBox)
	}
}

func TestValidateMapInfo_NullsAllowed(t *testing.T) {
	raw := `{
		"center_lat": null, "center_lon": null, "zoom": null,
		"description": "A single landmark.",
		"points_of_interest": [{"name": "Eiffel Tower", "lat": 48.8584, "lon": 2.2945, "popup_info": ""}],
		"bounding_box": null
	}`

	result, err := Validate(TextOutcome(raw), Task{Kind: TaskMapInfo})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	info := result.(models.MapInfo)
	if info.CenterLat != nil || info.Zoom != nil || info.BoundingBox != nil {
		t.Error("Expected nullable fields to stay nil")
	}
}

func TestValidateMapInfo_InvertedLatitudeFails(t *testing.T) {
	raw := `{
		"center_lat": 10, "center_lon": 10, "zoom": 5,
		"description": "d",
		"points_of_interest": [{"name": "P", "lat": 0, "lon": 0, "popup_info": ""}],
		"bounding_box": {"south_west_lat": 40.0, "south_west_lon": -17.0, "north_east_lat": 35.0, "north_east_lon": 40.0}
	}`

	_, err := Validate(TextOutcome(raw), Task{Kind: TaskMapInfo})
	schemaErr, ok := err.(*SchemaError)
	if !ok {
		t.Fatalf("Expected *SchemaError, got %T", err)
	}
	if !strings.Contains(schemaErr.Message, "south_west_lat must be strictly below north_east_lat") {
		t.Errorf("Expected inverted-latitude rule in message, got %q", schemaErr.Message)
	}
}

func TestValidateMapInfo_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			"missing key",
			`{"center_lat": 1, "center_lon": 1, "zoom": 1, "description": "d", "points_of_interest": [{"name": "P", "lat": 0, "lon": 0, "popup_info": ""}]}`,
			"bounding_box",
		},
		{
			"fractional zoom",
			`{"center_lat": 1, "center_lon": 1, "zoom": 4.5, "description": "d", "points_of_interest": [{"name": "P", "lat": 0, "lon": 0, "popup_info": ""}], "bounding_box": null}`,
			"zoom",
		},
		{
			"no points",
			`{"center_lat": 1, "center_lon": 1, "zoom": 1, "description": "d", "points_of_interest": [], "bounding_box": null}`,
			"points_of_interest",
		},
		{
			"latitude out of range",
			`{"center_lat": 1, "center_lon": 1, "zoom": 1, "description": "d", "points_of_interest": [{"name": "P", "lat": 95, "lon": 0, "popup_info": ""}], "bounding_box": null}`,
			"lat",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(TextOutcome(tc.raw), Task{Kind: TaskMapInfo})
			schemaErr, ok := err.(*SchemaError)
			if !ok {
				t.Fatalf("Expected *SchemaError, got %T (%v)", err, err)
			}
			if !strings.Contains(schemaErr.Message, tc.want) {
				t.Errorf("Expected %q in message %q", tc.want, schemaErr.Message)
			}
		})
	}
}

func TestValidateEquation(t *testing.T) {
	raw := `{"balanced_equation": "2H2 + O2 -> 2H2O", "explanation": "Atoms must balance.", "is_balanced_successfully": true}`

	result, err := Validate(TextOutcome(raw), Task{Kind: TaskEquationBalance})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	eq := result.(models.EquationResult)
	if eq.BalancedEquation != "2H2 + O2 -> 2H2O" || !eq.IsBalancedSuccessfully {
		t.Errorf("Unexpected result: %+v", eq)
	}

	_, err = Validate(TextOutcome(`{"balanced_equation": "x", "explanation": "y", "is_balanced_successfully": "yes"}`), Task{Kind: TaskEquationBalance})
	if _, ok := err.(*SchemaError); !ok {
		t.Fatalf("Expected *SchemaError for non-boolean flag, got %T", err)
	}
}

func TestValidateProcess_Valid(t *testing.T) {
	raw := `{
		"process_name_explained": "Photosynthesis",
		"overview": "Plants convert light into chemical energy.",
		"key_stages": ["Light-dependent reactions", "Calvin Cycle"],
		"inputs_outputs": "Inputs: CO2, water, light; Outputs: glucose, oxygen",
		"significance": "Base of most food chains."
	}`

	result, err := Validate(TextOutcome(raw), Task{Kind: TaskProcessExplainer})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	proc := result.(models.ProcessExplanation)
	if len(proc.KeyStages) != 2 {
		t.Errorf("Expected 2 key stages, got %d", len(proc.KeyStages))
	}
}

func TestValidateProcess_MissingSignificance(t *testing.T) {
	raw := `{
		"process_name_explained": "Photosynthesis",
		"overview": "o",
		"key_stages": ["a", "b"],
		"inputs_outputs": "i"
	}`

	_, err := Validate(TextOutcome(raw), Task{Kind: TaskProcessExplainer})
	schemaErr, ok := err.(*SchemaError)
	if !ok {
		t.Fatalf("Expected *SchemaError, got %T", err)
	}
	if !strings.Contains(schemaErr.Message, "significance") {
		t.Errorf("Expected 'significance' named in message, got %q", schemaErr.Message)
	}
}

func TestValidateFlashcards(t *testing.T) {
	raw := `[{"term": "Stomata", "definition": "Pores in a leaf."}, {"term": "Xylem", "definition": "Water transport tissue."}]`

	result, err := Validate(TextOutcome(raw), Task{Kind: TaskFlashcards})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	cards := result.([]models.Flashcard)
	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}

	// An empty list is schema-valid for flashcards.
	result, err = Validate(TextOutcome(`[]`), Task{Kind: TaskFlashcards})
	if err != nil {
		t.Fatalf("Expected empty list to validate, got %v", err)
	}
	if len(result.([]models.Flashcard)) != 0 {
		t.Error("Expected zero cards")
	}

	_, err = Validate(TextOutcome(`[{"term": "", "definition": "d"}]`), Task{Kind: TaskFlashcards})
	if _, ok := err.(*SchemaError); !ok {
		t.Fatalf("Expected *SchemaError for blank term, got %T", err)
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	_, err := Validate(TextOutcome("Sure! Here is your quiz: ..."), Task{Kind: TaskQuiz})
	schemaErr, ok := err.(*SchemaError)
	if !ok {
		t.Fatalf("Expected *SchemaError, got %T", err)
	}
	if schemaErr.Raw != "Sure! Here is your quiz: ..." {
		t.Errorf("Expected offending text preserved, got %q", schemaErr.Raw)
	}
}
