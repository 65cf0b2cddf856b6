package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/logger"
)

const generationTimeout = 45 * time.Second

// llmQuizGenerator implements domain.QuizGenerator over a primary model with
// an optional fallback. The fallback is tried only when the primary call
// fails outright; a parseable-but-partial primary response is used as is.
type llmQuizGenerator struct {
	primary  llms.Model
	fallback llms.Model
}

// NewLLMQuizGenerator creates a quiz generator backed by the given models.
// fallback may be nil.
func NewLLMQuizGenerator(primary llms.Model, fallback llms.Model) domain.QuizGenerator {
	return &llmQuizGenerator{
		primary:  primary,
		fallback: fallback,
	}
}

func (g *llmQuizGenerator) GenerateQuiz(ctx context.Context, content, topic, difficulty string, numQuestions int) ([]domain.GeneratedQuestion, error) {
	l := logger.Get()

	prompt := buildQuizPrompt(content, topic, difficulty, numQuestions)

	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	raw, err := llms.GenerateFromSinglePrompt(ctx, g.primary, prompt, llms.WithTemperature(0.2))
	if err != nil {
		if g.fallback == nil {
			l.Error("Quiz generation failed with no fallback configured", zap.Error(err))
			return nil, domain.NewLLMServiceError(fmt.Errorf("quiz generation failed: %w", err))
		}
		l.Warn("Primary quiz model failed, trying fallback", zap.Error(err))
		raw, err = llms.GenerateFromSinglePrompt(ctx, g.fallback, prompt, llms.WithTemperature(0.2))
		if err != nil {
			l.Error("Fallback quiz model failed", zap.Error(err))
			return nil, domain.NewLLMServiceError(fmt.Errorf("quiz generation failed on both providers: %w", err))
		}
	}

	questions, err := parseQuestions(raw)
	if err != nil {
		l.Error("Failed to parse quiz generation response", zap.Error(err), zap.String("raw_response", raw))
		return nil, domain.NewLLMServiceError(err)
	}

	l.Info("Generated quiz questions",
		zap.Int("requested", numQuestions),
		zap.Int("generated", len(questions)))
	return questions, nil
}

func buildQuizPrompt(content, topic, difficulty string, numQuestions int) string {
	var material string
	if content != "" {
		material = fmt.Sprintf("Base every question on the following study material:\n---\n%s\n---", content)
	} else {
		material = fmt.Sprintf("The questions are about the topic: %q.", topic)
	}

	return fmt.Sprintf(`You are an expert quiz author. Create %d multiple-choice questions at %s difficulty.

%s

Respond with ONLY a JSON array. Each element must have this shape:
{
  "question": "the question text",
  "options": ["option A", "option B", "option C", "option D"],
  "correct_answer_index": 0,
  "explanation": "one or two sentences explaining the correct answer"
}

Rules:
1. Exactly 4 options per question, exactly one of them correct.
2. correct_answer_index is the 0-based index into options.
3. Do not repeat questions or reuse the same correct option position for every question.`,
		numQuestions, difficulty, material)
}

// parseQuestions extracts the JSON array from the model output and drops
// malformed entries. Models routinely wrap JSON in prose or code fences.
func parseQuestions(raw string) ([]domain.GeneratedQuestion, error) {
	cleaned := strings.TrimSpace(raw)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array found in model response")
	}

	var questions []domain.GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quiz questions: %w", err)
	}

	valid := make([]domain.GeneratedQuestion, 0, len(questions))
	for _, q := range questions {
		if q.Question == "" || len(q.Options) != 4 {
			continue
		}
		if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
			continue
		}
		valid = append(valid, q)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("model response contained no usable questions")
	}
	return valid, nil
}
