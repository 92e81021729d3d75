package ai

import (
	"strings"
	"testing"
)

func TestClampQuizCount(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 3},
		{2, 3},
		{3, 3},
		{5, 5},
		{30, 30},
		{31, 30},
		{100, 30},
		{-7, 3},
	}

	for _, tc := range tests {
		if got := ClampQuizCount(tc.in); got != tc.want {
			t.Errorf("ClampQuizCount(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestBuildQuizPrompt(t *testing.T) {
	prompt := BuildPrompt(Task{
		Kind:       TaskQuiz,
		SourceText: "The French Revolution began in 1789.",
		Subject:    "history",
		Difficulty: "medium",
		Count:      7,
	})

	for _, want := range []string{
		"History", // subject is capitalized in the relevance contract
		"exactly 7 multiple-choice quiz questions",
		"medium difficulty (suitable for introductory university level)",
		`"error": "The provided text does not seem to be related to History.`,
		"The French Revolution began in 1789.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Quiz prompt missing %q", want)
		}
	}
}

func TestQuizDifficultyDescription_DefaultsToEasy(t *testing.T) {
	if got := QuizDifficultyDescription("brutal"); !strings.Contains(got, "easy") {
		t.Errorf("Expected unknown difficulty to fall back to easy, got %q", got)
	}
	if got := QuizDifficultyDescription("hard"); !strings.Contains(got, "challenging university") {
		t.Errorf("Unexpected hard description: %q", got)
	}
}

func TestBuildPrompt_EmbedsTaskInput(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want string
	}{
		{"summary", Task{Kind: TaskSummary, SourceText: "cells divide by mitosis"}, "cells divide by mitosis"},
		{"visual", Task{Kind: TaskVisualDescription, Topic: "Black Holes"}, "Black Holes"},
		{"battle", Task{Kind: TaskBattleFlow, Battle: "Battle of Waterloo"}, "Battle of Waterloo"},
		{"map", Task{Kind: TaskMapInfo, Topic: "Amazon Rainforest"}, "Amazon Rainforest"},
		{"equation", Task{Kind: TaskEquationBalance, Equation: "Fe + O2 -> Fe2O3"}, "Fe + O2 -> Fe2O3"},
		{"process", Task{Kind: TaskProcessExplainer, Process: "Cellular Respiration"}, "Cellular Respiration"},
		{"flashcards", Task{Kind: TaskFlashcards, SourceText: "the water cycle"}, "the water cycle"},
		{"chat", Task{Kind: TaskChat, Message: "what is osmosis?"}, "what is osmosis?"},
		{
			"feedback",
			Task{Kind: TaskWritingFeedback, Question: "Explain photosynthesis", Answer: "Plants eat light", SourceDesc: "pasted text"},
			"Plants eat light",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prompt := BuildPrompt(tc.task)
			if prompt == "" {
				t.Fatal("Expected a non-empty prompt")
			}
			if !strings.Contains(prompt, tc.want) {
				t.Errorf("Prompt missing task input %q", tc.want)
			}
		})
	}
}

func TestBuildMapInfoPrompt_RequestsAtLeastOnePoint(t *testing.T) {
	prompt := BuildPrompt(Task{Kind: TaskMapInfo, Topic: "Sahara Desert"})
	if !strings.Contains(prompt, "1 to 5") {
		t.Error("Expected the prompt to bound points of interest to 1-5")
	}
	if !strings.Contains(prompt, "Always include at least one point") {
		t.Error("Expected the prompt to require at least one point")
	}
}

func TestBuildChatPrompt_NamesAllSubjects(t *testing.T) {
	prompt := BuildPrompt(Task{Kind: TaskChat, Message: "hi"})
	for _, subject := range ChatSubjects {
		if !strings.Contains(prompt, subject) {
			t.Errorf("Chat prompt missing subject %q", subject)
		}
	}
}

func TestTaskSpecs_StructuredAndKeys(t *testing.T) {
	tests := []struct {
		kind       TaskKind
		structured bool
		key        string
	}{
		{TaskSummary, false, "summary"},
		{TaskVisualDescription, false, "description"},
		{TaskQuiz, true, "quiz"},
		{TaskBattleFlow, false, "flow"},
		{TaskMapInfo, true, ""},
		{TaskWritingFeedback, false, "feedback"},
		{TaskEquationBalance, true, ""},
		{TaskProcessExplainer, true, ""},
		{TaskFlashcards, true, "flashcards"},
		{TaskChat, false, "reply"},
	}

	for _, tc := range tests {
		task := Task{Kind: tc.kind}
		if task.Structured() != tc.structured {
			t.Errorf("%s: Structured() = %v, want %v", tc.kind, task.Structured(), tc.structured)
		}
		if task.ResponseKey() != tc.key {
			t.Errorf("%s: ResponseKey() = %q, want %q", tc.kind, task.ResponseKey(), tc.key)
		}
	}
}
