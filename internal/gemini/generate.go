package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"

	"dronaai/internal/models"
)

const (
	generateTimeout  = 2 * time.Minute
	generateAttempts = 3
	retryBackoff     = 2 * time.Second
)

// GenerateQuiz asks the model for a question set and returns it normalized.
// Faults come back classified (context overflow, auth, malformed response,
// other) so the caller can show a specific message; there is no retry beyond
// the bounded attempt loop here.
func (c *Client) GenerateQuiz(ctx context.Context, prompt string) ([]models.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt < generateAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(retryBackoff)
		}

		resp, err := c.quiz.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = fmt.Errorf("failed to generate content (attempt %d): %w", attempt+1, err)
			continue
		}

		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			lastErr = &GenerationError{
				Kind: KindMalformed,
				Err:  fmt.Errorf("no content generated (attempt %d)", attempt+1),
			}
			continue
		}

		var text strings.Builder
		for _, part := range resp.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}

		questions, err := ParseQuestionArray(text.String())
		if err != nil {
			lastErr = err
			continue
		}

		return NormalizeQuestions(questions), nil
	}

	return nil, Classify(fmt.Errorf("failed to generate quiz after %d attempts: %w", generateAttempts, lastErr))
}

// jsonArrayPattern matches the outermost JSON array in a response that may
// be wrapped in markdown fences or commentary.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// ParseQuestionArray extracts and decodes the JSON question array from raw
// model output. A response with no array, or one that does not decode into
// at least one question, is a malformed-generation fault.
func ParseQuestionArray(text string) ([]models.Question, error) {
	raw := jsonArrayPattern.FindString(text)
	if raw == "" {
		return nil, &GenerationError{
			Kind: KindMalformed,
			Err:  fmt.Errorf("no JSON array found in model response"),
		}
	}

	var questions []models.Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, &GenerationError{
			Kind: KindMalformed,
			Err:  fmt.Errorf("failed to parse question JSON: %w", err),
		}
	}
	if len(questions) == 0 {
		return nil, &GenerationError{
			Kind: KindMalformed,
			Err:  fmt.Errorf("model response contained no questions"),
		}
	}
	return questions, nil
}

// NormalizeQuestions trims option strings, fills difficulty and topic
// defaults and derives marks from difficulty when the model omitted them.
// Questions are normalized exactly once, before being shown or cached.
func NormalizeQuestions(questions []models.Question) []models.Question {
	out := make([]models.Question, len(questions))
	for i, q := range questions {
		for j, o := range q.Options {
			q.Options[j] = strings.TrimSpace(o)
		}
		for j, o := range q.CorrectOptions {
			q.CorrectOptions[j] = strings.TrimSpace(o)
		}
		if q.Difficulty == "" {
			q.Difficulty = models.DifficultyModerate
		}
		if q.Topic == "" {
			q.Topic = "General"
		}
		if q.Marks == 0 {
			q.Marks = models.DefaultMarks(q.Difficulty)
		}
		out[i] = q
	}
	return out
}
