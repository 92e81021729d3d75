package ai

// TaskKind identifies one generation capability.
type TaskKind string

const (
	TaskSummary           TaskKind = "summary"
	TaskVisualDescription TaskKind = "visual-description"
	TaskQuiz              TaskKind = "quiz"
	TaskBattleFlow        TaskKind = "battle-flow"
	TaskMapInfo           TaskKind = "map-info"
	TaskWritingFeedback   TaskKind = "writing-feedback"
	TaskEquationBalance   TaskKind = "equation-balance"
	TaskProcessExplainer  TaskKind = "process-explainer"
	TaskFlashcards        TaskKind = "flashcards"
	TaskChat              TaskKind = "chat"
)

// Task carries the parameters for a single generation request. Only the
// fields relevant to its Kind are set; Tasks are request-scoped and never
// persisted.
type Task struct {
	Kind TaskKind

	SourceText string // summary, quiz, flashcards
	SourceDesc string // human-readable origin ("pasted text", "file 'x.pdf'")
	Topic      string // visual description, map info
	Subject    string // quiz relevance check
	Difficulty string // quiz
	Count      int    // quiz, pre-clamped by the caller
	Battle     string // battle flow
	Question   string // writing feedback topic/question
	Answer     string // writing feedback student answer
	Equation   string // equation balance
	Process    string // process explainer
	Message    string // chat
}

// taskSpec is the per-kind dispatch row: whether the AI output must be JSON,
// which key the success payload is returned under ("" means the validated
// object is spread directly), and the reply used when a free-text task
// produces an empty generation.
type taskSpec struct {
	structured bool
	key        string
	emptyReply string
}

var taskSpecs = map[TaskKind]taskSpec{
	TaskSummary: {
		key:        "summary",
		emptyReply: "Sorry, I couldn't generate a meaningful summary for this content.",
	},
	TaskVisualDescription: {
		key:        "description",
		emptyReply: "Sorry, I couldn't generate a visualization aid for this topic.",
	},
	TaskQuiz: {
		structured: true,
		key:        "quiz",
	},
	TaskBattleFlow: {
		key:        "flow",
		emptyReply: "Sorry, I couldn't generate an event flow for this battle.",
	},
	TaskMapInfo: {
		structured: true,
	},
	TaskWritingFeedback: {
		key:        "feedback",
		emptyReply: "Sorry, I couldn't generate feedback for this answer.",
	},
	TaskEquationBalance: {
		structured: true,
	},
	TaskProcessExplainer: {
		structured: true,
	},
	TaskFlashcards: {
		structured: true,
		key:        "flashcards",
	},
	TaskChat: {
		key:        "reply",
		emptyReply: "I'm not sure how to respond to that right now. Can you try asking differently?",
	},
}

// Structured reports whether the task's AI output must be a single JSON value.
func (t Task) Structured() bool { return taskSpecs[t.Kind].structured }

// ResponseKey is the JSON key the validated payload is returned under.
// Empty means the payload object is spread directly into the response body.
func (t Task) ResponseKey() string { return taskSpecs[t.Kind].key }

const (
	// MinQuizQuestions and MaxQuizQuestions bound the requested quiz size.
	MinQuizQuestions = 3
	MaxQuizQuestions = 30

	// DefaultQuizQuestions is used when the request omits a count or
	// supplies one that cannot be parsed as an integer.
	DefaultQuizQuestions = 5
)

// ClampQuizCount forces a requested question count into the supported range.
func ClampQuizCount(n int) int {
	if n < MinQuizQuestions {
		return MinQuizQuestions
	}
	if n > MaxQuizQuestions {
		return MaxQuizQuestions
	}
	return n
}
