package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"studyhub-backend/internal/models"
)

// Validate turns a gateway outcome into the task's typed payload. Typed
// results are only ever constructed from text that passed every schema check;
// there is no partially-validated state.
//
// Blocked, empty and transport outcomes short-circuit before any parsing.
// An empty generation on a free-text task is not an error: the task's
// apologetic fallback reply is returned instead.
func Validate(outcome Outcome, task Task) (interface{}, error) {
	switch outcome.Kind {
	case OutcomeBlocked:
		return nil, &BlockedError{Reason: outcome.Reason}
	case OutcomeTransportError:
		return nil, &TransportError{Detail: outcome.Detail}
	case OutcomeEmpty:
		if task.Structured() {
			return nil, &EmptyError{}
		}
		return taskSpecs[task.Kind].emptyReply, nil
	}

	if !task.Structured() {
		return outcome.Text, nil
	}

	raw := stripCodeFence(outcome.Text)

	var parsed interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &SchemaError{Message: "AI response was not valid JSON", Raw: outcome.Text}
	}

	switch task.Kind {
	case TaskQuiz:
		return validateQuiz(parsed, outcome.Text)
	case TaskMapInfo:
		return validateMapInfo(parsed, outcome.Text)
	case TaskEquationBalance:
		return validateEquation(parsed, outcome.Text)
	case TaskProcessExplainer:
		return validateProcess(parsed, outcome.Text)
	case TaskFlashcards:
		return validateFlashcards(parsed, outcome.Text)
	default:
		return nil, &SchemaError{Message: fmt.Sprintf("no schema defined for task %q", task.Kind), Raw: outcome.Text}
	}
}

// stripCodeFence removes a surrounding markdown code fence if the model
// wrapped its JSON in one despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func validateQuiz(parsed interface{}, raw string) (interface{}, error) {
	// The prompt's relevance contract: an off-topic source yields a one-key
	// error object instead of a question list.
	if obj, ok := parsed.(map[string]interface{}); ok {
		if msg, ok := obj["error"].(string); ok && len(obj) == 1 {
			return nil, &RelevanceError{Message: msg}
		}
		return nil, &SchemaError{Message: "quiz response must be a JSON list of questions", Raw: raw}
	}

	items, ok := parsed.([]interface{})
	if !ok {
		return nil, &SchemaError{Message: "quiz response must be a JSON list of questions", Raw: raw}
	}
	if len(items) == 0 {
		return nil, &SchemaError{Message: "quiz response contained no questions", Raw: raw}
	}

	questions := make([]models.QuizQuestion, 0, len(items))
	for i, item := range items {
		pos := i + 1
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, &SchemaError{Message: fmt.Sprintf("quiz question %d is not an object", pos), Raw: raw}
		}
		if len(obj) != 3 {
			return nil, &SchemaError{Message: fmt.Sprintf("quiz question %d must have exactly the keys question, options, correct_answer", pos), Raw: raw}
		}

		question, ok := obj["question"].(string)
		if !ok || strings.TrimSpace(question) == "" {
			return nil, &SchemaError{Message: fmt.Sprintf("quiz question %d is missing a non-blank 'question'", pos), Raw: raw}
		}

		rawOptions, ok := obj["options"].([]interface{})
		if !ok || len(rawOptions) != 4 {
			return nil, &SchemaError{Message: fmt.Sprintf("quiz question %d must have exactly 4 options", pos), Raw: raw}
		}
		options := make([]string, 4)
		for j, o := range rawOptions {
			s, ok := o.(string)
			if !ok || strings.TrimSpace(s) == "" {
				return nil, &SchemaError{Message: fmt.Sprintf("quiz question %d option %d must be a non-blank string", pos, j+1), Raw: raw}
			}
			options[j] = s
		}

		answer, ok := obj["correct_answer"].(string)
		if !ok {
			return nil, &SchemaError{Message: fmt.Sprintf("quiz question %d is missing 'correct_answer'", pos), Raw: raw}
		}
		answer = strings.ToUpper(strings.TrimSpace(answer))
		if answer != "A" && answer != "B" && answer != "C" && answer != "D" {
			return nil, &SchemaError{Message: fmt.Sprintf("quiz question %d correct_answer must be one of A, B, C, D", pos), Raw: raw}
		}

		questions = append(questions, models.QuizQuestion{
			Question:      question,
			Options:       options,
			CorrectAnswer: answer,
		})
	}

	return questions, nil
}

var mapInfoKeys = []string{"center_lat", "center_lon", "zoom", "description", "points_of_interest", "bounding_box"}

func validateMapInfo(parsed interface{}, raw string) (interface{}, error) {
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, &SchemaError{Message: "map info response must be a JSON object", Raw: raw}
	}
	for _, key := range mapInfoKeys {
		if _, present := obj[key]; !present {
			return nil, &SchemaError{Message: fmt.Sprintf("map info response is missing key '%s'", key), Raw: raw}
		}
	}

	centerLat, err := optionalNumber(obj["center_lat"], "center_lat", raw)
	if err != nil {
		return nil, err
	}
	centerLon, err := optionalNumber(obj["center_lon"], "center_lon", raw)
	if err != nil {
		return nil, err
	}

	var zoom *int
	if obj["zoom"] != nil {
		z, ok := obj["zoom"].(float64)
		if !ok || z != math.Trunc(z) {
			return nil, &SchemaError{Message: "map info 'zoom' must be an integer or null", Raw: raw}
		}
		v := int(z)
		zoom = &v
	}

	description, ok := obj["description"].(string)
	if !ok {
		return nil, &SchemaError{Message: "map info 'description' must be a string", Raw: raw}
	}

	rawPoints, ok := obj["points_of_interest"].([]interface{})
	if !ok || len(rawPoints) < 1 || len(rawPoints) > 5 {
		return nil, &SchemaError{Message: "map info 'points_of_interest' must be a list of 1 to 5 locations", Raw: raw}
	}
	points := make([]models.PointOfInterest, 0, len(rawPoints))
	for i, p := range rawPoints {
		pos := i + 1
		pointObj, ok := p.(map[string]interface{})
		if !ok {
			return nil, &SchemaError{Message: fmt.Sprintf("point of interest %d is not an object", pos), Raw: raw}
		}
		name, ok := pointObj["name"].(string)
		if !ok || strings.TrimSpace(name) == "" {
			return nil, &SchemaError{Message: fmt.Sprintf("point of interest %d is missing a non-blank 'name'", pos), Raw: raw}
		}
		lat, ok := pointObj["lat"].(float64)
		if !ok || lat < -90 || lat > 90 {
			return nil, &SchemaError{Message: fmt.Sprintf("point of interest %d 'lat' must be a number in [-90, 90]", pos), Raw: raw}
		}
		lon, ok := pointObj["lon"].(float64)
		if !ok || lon < -180 || lon > 180 {
			return nil, &SchemaError{Message: fmt.Sprintf("point of interest %d 'lon' must be a number in [-180, 180]", pos), Raw: raw}
		}
		popup, ok := pointObj["popup_info"].(string)
		if !ok {
			return nil, &SchemaError{Message: fmt.Sprintf("point of interest %d 'popup_info' must be a string", pos), Raw: raw}
		}
		points = append(points, models.PointOfInterest{Name: name, Lat: lat, Lon: lon, PopupInfo: popup})
	}

	var box *models.BoundingBox
	if obj["bounding_box"] != nil {
		boxObj, ok := obj["bounding_box"].(map[string]interface{})
		if !ok {
			return nil, &SchemaError{Message: "map info 'bounding_box' must be an object or null", Raw: raw}
		}
		swLat, err := requireNumber(boxObj, "south_west_lat", raw)
		if err != nil {
			return nil, err
		}
		swLon, err := requireNumber(boxObj, "south_west_lon", raw)
		if err != nil {
			return nil, err
		}
		neLat, err := requireNumber(boxObj, "north_east_lat", raw)
		if err != nil {
			return nil, err
		}
		neLon, err := requireNumber(boxObj, "north_east_lon", raw)
		if err != nil {
			return nil, err
		}
		if swLat < -90 || swLat > 90 || neLat < -90 || neLat > 90 {
			return nil, &SchemaError{Message: "bounding box latitudes must be within [-90, 90]", Raw: raw}
		}
		if swLon < -180 || swLon > 180 || neLon < -180 || neLon > 180 {
			return nil, &SchemaError{Message: "bounding box longitudes must be within [-180, 180]", Raw: raw}
		}
		if swLat >= neLat {
			return nil, &SchemaError{Message: "bounding box south_west_lat must be strictly below north_east_lat", Raw: raw}
		}
		box = &models.BoundingBox{SouthWestLat: swLat, SouthWestLon: swLon, NorthEastLat: neLat, NorthEastLon: neLon}
	}

	return models.MapInfo{
		CenterLat:        centerLat,
		CenterLon:        centerLon,
		Zoom:             zoom,
		Description:      description,
		PointsOfInterest: points,
		BoundingBox:      box,
	}, nil
}

func validateEquation(parsed interface{}, raw string) (interface{}, error) {
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, &SchemaError{Message: "equation response must be a JSON object", Raw: raw}
	}
	balanced, ok := obj["balanced_equation"].(string)
	if !ok {
		return nil, &SchemaError{Message: "equation response 'balanced_equation' must be a string", Raw: raw}
	}
	explanation, ok := obj["explanation"].(string)
	if !ok {
		return nil, &SchemaError{Message: "equation response 'explanation' must be a string", Raw: raw}
	}
	success, ok := obj["is_balanced_successfully"].(bool)
	if !ok {
		return nil, &SchemaError{Message: "equation response 'is_balanced_successfully' must be a boolean", Raw: raw}
	}
	return models.EquationResult{
		BalancedEquation:       balanced,
		Explanation:            explanation,
		IsBalancedSuccessfully: success,
	}, nil
}

func validateProcess(parsed interface{}, raw string) (interface{}, error) {
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, &SchemaError{Message: "process response must be a JSON object", Raw: raw}
	}

	var result models.ProcessExplanation
	for key, dst := range map[string]*string{
		"process_name_explained": &result.ProcessNameExplained,
		"overview":               &result.Overview,
		"inputs_outputs":         &result.InputsOutputs,
		"significance":           &result.Significance,
	} {
		s, ok := obj[key].(string)
		if !ok {
			return nil, &SchemaError{Message: fmt.Sprintf("process response '%s' must be a string", key), Raw: raw}
		}
		*dst = s
	}

	rawStages, ok := obj["key_stages"].([]interface{})
	if !ok {
		return nil, &SchemaError{Message: "process response 'key_stages' must be a list of strings", Raw: raw}
	}
	stages := make([]string, 0, len(rawStages))
	for i, s := range rawStages {
		stage, ok := s.(string)
		if !ok {
			return nil, &SchemaError{Message: fmt.Sprintf("process response key_stages entry %d must be a string", i+1), Raw: raw}
		}
		stages = append(stages, stage)
	}
	result.KeyStages = stages

	return result, nil
}

func validateFlashcards(parsed interface{}, raw string) (interface{}, error) {
	items, ok := parsed.([]interface{})
	if !ok {
		return nil, &SchemaError{Message: "flashcard response must be a JSON list", Raw: raw}
	}

	cards := make([]models.Flashcard, 0, len(items))
	for i, item := range items {
		pos := i + 1
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, &SchemaError{Message: fmt.Sprintf("flashcard %d is not an object", pos), Raw: raw}
		}
		term, ok := obj["term"].(string)
		if !ok || strings.TrimSpace(term) == "" {
			return nil, &SchemaError{Message: fmt.Sprintf("flashcard %d is missing a non-blank 'term'", pos), Raw: raw}
		}
		definition, ok := obj["definition"].(string)
		if !ok || strings.TrimSpace(definition) == "" {
			return nil, &SchemaError{Message: fmt.Sprintf("flashcard %d is missing a non-blank 'definition'", pos), Raw: raw}
		}
		cards = append(cards, models.Flashcard{Term: term, Definition: definition})
	}

	return cards, nil
}

func optionalNumber(v interface{}, key, raw string) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	n, ok := v.(float64)
	if !ok {
		return nil, &SchemaError{Message: fmt.Sprintf("map info '%s' must be a number or null", key), Raw: raw}
	}
	return &n, nil
}

func requireNumber(obj map[string]interface{}, key, raw string) (float64, error) {
	n, ok := obj[key].(float64)
	if !ok {
		return 0, &SchemaError{Message: fmt.Sprintf("bounding box '%s' must be a number", key), Raw: raw}
	}
	return n, nil
}
