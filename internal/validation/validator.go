package validation

import (
	"strings"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/dto"
)

const (
	maxDisplayNameLength = 50
	maxContentLength     = 20000
	maxQueryLength       = 500
	maxQuestions         = 20
	maxResearchResults   = 20
)

// Validator provides request validation functionality.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreateSessionRequest validates the session creation request.
func (v *Validator) ValidateCreateSessionRequest(req dto.CreateSessionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		errors = append(errors, domain.NewMissingFieldError("display_name"))
	} else if len(name) > maxDisplayNameLength {
		errors = append(errors, domain.NewOutOfRangeError("display_name", len(name), 1, maxDisplayNameLength))
	}

	return errors
}

// ValidateGenerateQuizRequest validates the quiz generation request.
// Either content or topic must be present.
func (v *Validator) ValidateGenerateQuizRequest(req dto.GenerateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Content) == "" && strings.TrimSpace(req.Topic) == "" {
		errors = append(errors, domain.NewMissingFieldError("content or topic"))
	}
	if len(req.Content) > maxContentLength {
		errors = append(errors, domain.NewOutOfRangeError("content", len(req.Content), 0, maxContentLength))
	}
	if !isValidDifficulty(req.Difficulty) {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
	}
	if req.NumQuestions < 1 || req.NumQuestions > maxQuestions {
		errors = append(errors, domain.NewOutOfRangeError("num_questions", req.NumQuestions, 1, maxQuestions))
	}

	return errors
}

// ValidateSubmitQuizRequest validates the quiz submission request.
// Deep event rules (negative time, correct > questions) live in
// domain.Event.Validate; this covers request shape only.
func (v *Validator) ValidateSubmitQuizRequest(req dto.SubmitQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Subject) == "" {
		errors = append(errors, domain.NewMissingFieldError("subject"))
	}
	if !isValidDifficulty(req.Difficulty) {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
	}
	if req.QuestionCount < 0 {
		errors = append(errors, domain.NewOutOfRangeError("question_count", req.QuestionCount, 0, maxQuestions))
	}

	return errors
}

// ValidateResearchQueryRequest validates the research query request.
func (v *Validator) ValidateResearchQueryRequest(req dto.ResearchQueryRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	query := strings.TrimSpace(req.Query)
	if query == "" {
		errors = append(errors, domain.NewMissingFieldError("query"))
	} else if len(query) > maxQueryLength {
		errors = append(errors, domain.NewOutOfRangeError("query", len(query), 1, maxQueryLength))
	}
	if req.Limit < 0 || req.Limit > maxResearchResults {
		errors = append(errors, domain.NewOutOfRangeError("limit", req.Limit, 0, maxResearchResults))
	}

	return errors
}

// ValidateAnalyzeTextRequest validates the text analysis request.
func (v *Validator) ValidateAnalyzeTextRequest(req dto.AnalyzeTextRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	text := strings.TrimSpace(req.Text)
	if text == "" {
		errors = append(errors, domain.NewMissingFieldError("text"))
	} else if len(text) > maxContentLength {
		errors = append(errors, domain.NewOutOfRangeError("text", len(text), 1, maxContentLength))
	}

	return errors
}

func isValidDifficulty(difficulty string) bool {
	switch strings.ToLower(difficulty) {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
		return true
	}
	return false
}
