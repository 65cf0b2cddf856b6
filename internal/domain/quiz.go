package domain

import "context"

// GeneratedQuestion is a single multiple-choice question produced by the
// quiz generation service.
type GeneratedQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	Explanation        string   `json:"explanation"`
}

// QuizGenerator produces multiple-choice questions from study material.
// Content takes precedence over topic when both are present.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, content, topic, difficulty string, numQuestions int) ([]GeneratedQuestion, error)
}

// ResearchResult is one hit from a free-text research query.
type ResearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}

// TextAnalysis is the condensed form of a pasted document.
type TextAnalysis struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// ResearchProvider answers free-text research queries and analyzes pasted text.
type ResearchProvider interface {
	Search(ctx context.Context, query string, limit int) ([]ResearchResult, error)
	Analyze(ctx context.Context, text string) (*TextAnalysis, error)
}
