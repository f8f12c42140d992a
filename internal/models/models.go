package models

// Difficulty labels used throughout the quiz flow.
const (
	DifficultyEasy     = "Easy"
	DifficultyModerate = "Moderate"
	DifficultyTough    = "Tough"
)

// Difficulty preferences that resolve to a concrete label at generation time.
const (
	DifficultyMixed    = "Mixed"
	DifficultyAdaptive = "Adaptive (Auto)"
)

// Default marks per difficulty, applied when the model omits the marks field.
const (
	MarksEasy     = 3
	MarksModerate = 5
	MarksTough    = 10
)

// Question represents one generated quiz item.
type Question struct {
	Text           string   `json:"question"`
	Options        []string `json:"options"`
	CorrectOptions []string `json:"correct_options"`
	Topic          string   `json:"topic"`
	Difficulty     string   `json:"difficulty"`
	Marks          int      `json:"marks"`
}

// DefaultMarks returns the mark value implied by a difficulty label.
func DefaultMarks(difficulty string) int {
	switch difficulty {
	case DifficultyTough:
		return MarksTough
	case DifficultyEasy:
		return MarksEasy
	default:
		return MarksModerate
	}
}

// IsMultiSelect reports whether the question expects more than one answer.
func (q Question) IsMultiSelect() bool {
	return len(q.CorrectOptions) > 1
}

// QuizConfig is the user-facing configuration for one generation request.
type QuizConfig struct {
	Topics        []string `json:"topics"`
	Difficulty    string   `json:"difficulty"`
	Role          string   `json:"role"`
	Audience      string   `json:"audience"`
	QuestionCount int      `json:"question_count"`
	ResumeText    string   `json:"-"`
}

// AnswerRecord is one scored response to one question. Records are immutable
// once created and appended to the attempt history in question order.
type AnswerRecord struct {
	QuestionIndex  int      `json:"index"`
	QuestionText   string   `json:"question"`
	ChosenOptions  []string `json:"chosen"`
	CorrectOptions []string `json:"correct"`
	MarksEarned    float64  `json:"marks_earned"`
	MarksTotal     int      `json:"marks_total"`
	Topic          string   `json:"topic"`
	Difficulty     string   `json:"difficulty"`
	IsFullyCorrect bool     `json:"correct_flag"`
}

// TopicPerformance is the per-topic aggregate shown on the result screen and
// included in the JSON export.
type TopicPerformance struct {
	Score      float64 `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// AttemptResult is the aggregate outcome of one finished attempt.
type AttemptResult struct {
	ScorePercent     float64                     `json:"score_percent"`
	Performance      string                      `json:"performance"`
	MarksEarned      float64                     `json:"marks_earned"`
	MarksTotal       int                         `json:"marks_total"`
	CorrectAnswers   int                         `json:"correct_answers"`
	TotalQuestions   int                         `json:"total_questions"`
	WeakTopics       []string                    `json:"weak_topics"`
	TopicPerformance map[string]TopicPerformance `json:"topic_performance"`
	Answers          []AnswerRecord              `json:"answers"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
