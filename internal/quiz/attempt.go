// Package quiz drives one attempt: it scores submissions, keeps the ordered
// answer history and produces the aggregate result.
package quiz

import (
	"errors"
	"math"

	"dronaai/internal/adaptive"
	"dronaai/internal/models"
)

// ErrNoSelection is returned when a submission carries no chosen option. It
// is a local, recoverable condition: the attempt state is left untouched and
// the user is prompted to pick something.
var ErrNoSelection = errors.New("select at least one option")

// ErrAttemptFinished is returned for submissions after the last question.
var ErrAttemptFinished = errors.New("attempt is already finished")

// Attempt is one run through a generated quiz. Answers are appended in
// submission order and immutable once recorded; the whole attempt is
// discarded when a new one starts.
type Attempt struct {
	Config    models.QuizConfig
	Questions []models.Question
	FromCache bool
	Answers   []models.AnswerRecord
	Current   int
}

// NewAttempt starts an attempt over a generated question set.
func NewAttempt(cfg models.QuizConfig, questions []models.Question, fromCache bool) *Attempt {
	return &Attempt{
		Config:    cfg,
		Questions: questions,
		FromCache: fromCache,
		Answers:   []models.AnswerRecord{},
	}
}

// CurrentQuestion returns the question awaiting an answer.
func (a *Attempt) CurrentQuestion() (models.Question, bool) {
	if a.Finished() {
		return models.Question{}, false
	}
	return a.Questions[a.Current], true
}

// Finished reports whether every question has been answered or skipped.
func (a *Attempt) Finished() bool {
	return a.Current >= len(a.Questions)
}

// NextDifficulty previews what the adaptive engine would pick for the
// upcoming question given the history so far.
func (a *Attempt) NextDifficulty() string {
	return adaptive.NextDifficulty(a.Answers)
}

// Submit scores the selected options against the current question, records
// the answer and advances. An empty selection is rejected without mutating
// any state.
func (a *Attempt) Submit(selected []string) (models.AnswerRecord, error) {
	if a.Finished() {
		return models.AnswerRecord{}, ErrAttemptFinished
	}
	if len(selected) == 0 {
		return models.AnswerRecord{}, ErrNoSelection
	}

	q := a.Questions[a.Current]
	earned := scoreSelection(q, selected)

	record := models.AnswerRecord{
		QuestionIndex:  a.Current,
		QuestionText:   q.Text,
		ChosenOptions:  selected,
		CorrectOptions: q.CorrectOptions,
		MarksEarned:    earned,
		MarksTotal:     q.Marks,
		Topic:          q.Topic,
		Difficulty:     q.Difficulty,
		IsFullyCorrect: setsEqual(selected, q.CorrectOptions),
	}

	a.Answers = append(a.Answers, record)
	a.Current++
	return record, nil
}

// Skip records a zero-mark answer for the current question and advances.
func (a *Attempt) Skip() (models.AnswerRecord, error) {
	if a.Finished() {
		return models.AnswerRecord{}, ErrAttemptFinished
	}

	q := a.Questions[a.Current]
	record := models.AnswerRecord{
		QuestionIndex:  a.Current,
		QuestionText:   q.Text,
		ChosenOptions:  []string{},
		CorrectOptions: q.CorrectOptions,
		MarksEarned:    0,
		MarksTotal:     q.Marks,
		Topic:          q.Topic,
		Difficulty:     q.Difficulty,
		IsFullyCorrect: false,
	}

	a.Answers = append(a.Answers, record)
	a.Current++
	return record, nil
}

// ScorePercent is the record's score as a percentage of its marks, rounded
// to 1 decimal place. This is the value persisted to long-term memory.
func ScorePercent(record models.AnswerRecord) float64 {
	if record.MarksTotal == 0 {
		return 0
	}
	return round1(record.MarksEarned / float64(record.MarksTotal) * 100)
}

// Result aggregates the attempt into the payload behind the result screen
// and the JSON export.
func (a *Attempt) Result() models.AttemptResult {
	var earned float64
	var total, correct int
	for _, ans := range a.Answers {
		earned += ans.MarksEarned
		total += ans.MarksTotal
		if ans.IsFullyCorrect {
			correct++
		}
	}

	percent := 0.0
	if total > 0 {
		percent = round1(earned / float64(total) * 100)
	}

	weaknessMap := adaptive.TopicWeaknessMap(a.Answers)
	perTopic := make(map[string]models.TopicPerformance, len(weaknessMap))
	for topic, pct := range weaknessMap {
		var topicEarned float64
		var topicTotal int
		for _, ans := range a.Answers {
			if ans.Topic == topic || (ans.Topic == "" && topic == "General") {
				topicEarned += ans.MarksEarned
				topicTotal += ans.MarksTotal
			}
		}
		perTopic[topic] = models.TopicPerformance{
			Score:      topicEarned,
			Total:      topicTotal,
			Percentage: pct,
		}
	}

	return models.AttemptResult{
		ScorePercent:     percent,
		Performance:      adaptive.PerformanceLabel(percent),
		MarksEarned:      earned,
		MarksTotal:       total,
		CorrectAnswers:   correct,
		TotalQuestions:   len(a.Answers),
		WeakTopics:       adaptive.WeakTopics(a.Answers, adaptive.WeakThreshold),
		TopicPerformance: perTopic,
		Answers:          a.Answers,
	}
}

// scoreSelection awards marks for the chosen options. Single-answer
// questions are all-or-nothing; multi-answer questions earn partial credit
// proportional to the number of correct options matched.
func scoreSelection(q models.Question, selected []string) float64 {
	if len(q.CorrectOptions) <= 1 {
		if setsEqual(selected, q.CorrectOptions) {
			return float64(q.Marks)
		}
		return 0
	}

	correct := make(map[string]bool, len(q.CorrectOptions))
	for _, c := range q.CorrectOptions {
		correct[c] = true
	}
	matched := 0
	seen := make(map[string]bool, len(selected))
	for _, s := range selected {
		if correct[s] && !seen[s] {
			matched++
			seen[s] = true
		}
	}

	denom := len(q.CorrectOptions)
	if denom == 0 {
		denom = 1
	}
	return round2(float64(q.Marks) * float64(matched) / float64(denom))
}

// setsEqual compares two option lists as sets; insertion order and
// duplicates are irrelevant.
func setsEqual(a, b []string) bool {
	setA := make(map[string]bool, len(a))
	for _, s := range a {
		setA[s] = true
	}
	setB := make(map[string]bool, len(b))
	for _, s := range b {
		setB[s] = true
	}
	if len(setA) != len(setB) {
		return false
	}
	for s := range setA {
		if !setB[s] {
			return false
		}
	}
	return true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
