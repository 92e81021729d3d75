package models

// QuizQuestion is one validated multiple-choice question. Options always has
// exactly four entries and CorrectAnswer is one of "A", "B", "C", "D".
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// PointOfInterest is one named map location with popup text.
type PointOfInterest struct {
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	PopupInfo string  `json:"popup_info"`
}

// BoundingBox frames the main area of a geographical topic. South-west
// latitude is strictly below north-east latitude.
type BoundingBox struct {
	SouthWestLat float64 `json:"south_west_lat"`
	SouthWestLon float64 `json:"south_west_lon"`
	NorthEastLat float64 `json:"north_east_lat"`
	NorthEastLon float64 `json:"north_east_lon"`
}

// MapInfo is the validated payload for a geographical topic. Center and zoom
// are nullable because not every topic has a sensible default view.
type MapInfo struct {
	CenterLat        *float64          `json:"center_lat"`
	CenterLon        *float64          `json:"center_lon"`
	Zoom             *int              `json:"zoom"`
	Description      string            `json:"description"`
	PointsOfInterest []PointOfInterest `json:"points_of_interest"`
	BoundingBox      *BoundingBox      `json:"bounding_box"`
}

// EquationResult is the validated payload for an equation-balancing request.
type EquationResult struct {
	BalancedEquation       string `json:"balanced_equation"`
	Explanation            string `json:"explanation"`
	IsBalancedSuccessfully bool   `json:"is_balanced_successfully"`
}

// ProcessExplanation is the validated payload for a biological-process request.
type ProcessExplanation struct {
	ProcessNameExplained string   `json:"process_name_explained"`
	Overview             string   `json:"overview"`
	KeyStages            []string `json:"key_stages"`
	InputsOutputs        string   `json:"inputs_outputs"`
	Significance         string   `json:"significance"`
}

// Flashcard is one validated term/definition pair.
type Flashcard struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}
