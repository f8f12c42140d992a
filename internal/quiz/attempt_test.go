package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dronaai/internal/models"
)

func singleAnswerQuestion(topic string, marks int) models.Question {
	return models.Question{
		Text:           "What is " + topic + "?",
		Options:        []string{"a", "b", "c", "d"},
		CorrectOptions: []string{"b"},
		Topic:          topic,
		Difficulty:     models.DifficultyModerate,
		Marks:          marks,
	}
}

func multiAnswerQuestion(topic string, marks int) models.Question {
	return models.Question{
		Text:           "Pick all true about " + topic,
		Options:        []string{"a", "b", "c", "d"},
		CorrectOptions: []string{"a", "c"},
		Topic:          topic,
		Difficulty:     models.DifficultyTough,
		Marks:          marks,
	}
}

func TestSubmit_SingleAnswerAllOrNothing(t *testing.T) {
	a := NewAttempt(models.QuizConfig{}, []models.Question{
		singleAnswerQuestion("Math", 5),
		singleAnswerQuestion("Math", 5),
	}, false)

	rec, err := a.Submit([]string{"b"})
	require.NoError(t, err)
	assert.Equal(t, 5.0, rec.MarksEarned)
	assert.True(t, rec.IsFullyCorrect)

	rec, err = a.Submit([]string{"a"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, rec.MarksEarned)
	assert.False(t, rec.IsFullyCorrect)
}

func TestSubmit_MultiAnswerPartialCredit(t *testing.T) {
	a := NewAttempt(models.QuizConfig{}, []models.Question{
		multiAnswerQuestion("Code", 10),
	}, false)

	// One of two correct options matched: half marks, not fully correct.
	rec, err := a.Submit([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 5.0, rec.MarksEarned)
	assert.False(t, rec.IsFullyCorrect)
}

func TestSubmit_MultiAnswerExactMatch(t *testing.T) {
	a := NewAttempt(models.QuizConfig{}, []models.Question{
		multiAnswerQuestion("Code", 10),
	}, false)

	// Selection order must not matter.
	rec, err := a.Submit([]string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, 10.0, rec.MarksEarned)
	assert.True(t, rec.IsFullyCorrect)
}

func TestSubmit_EmptySelectionRejectedWithoutMutation(t *testing.T) {
	a := NewAttempt(models.QuizConfig{}, []models.Question{
		singleAnswerQuestion("Math", 5),
	}, false)

	_, err := a.Submit(nil)
	require.True(t, errors.Is(err, ErrNoSelection))
	assert.Equal(t, 0, a.Current)
	assert.Empty(t, a.Answers)
}

func TestSubmit_AfterFinish(t *testing.T) {
	a := NewAttempt(models.QuizConfig{}, []models.Question{
		singleAnswerQuestion("Math", 5),
	}, false)

	_, err := a.Submit([]string{"b"})
	require.NoError(t, err)
	require.True(t, a.Finished())

	_, err = a.Submit([]string{"b"})
	assert.True(t, errors.Is(err, ErrAttemptFinished))
}

func TestSkip_RecordsZeroMarks(t *testing.T) {
	a := NewAttempt(models.QuizConfig{}, []models.Question{
		singleAnswerQuestion("Math", 5),
	}, false)

	rec, err := a.Skip()
	require.NoError(t, err)
	assert.Equal(t, 0.0, rec.MarksEarned)
	assert.Equal(t, 5, rec.MarksTotal)
	assert.Empty(t, rec.ChosenOptions)
	assert.False(t, rec.IsFullyCorrect)
	assert.True(t, a.Finished())
}

func TestScorePercent(t *testing.T) {
	assert.Equal(t, 50.0, ScorePercent(models.AnswerRecord{MarksEarned: 5, MarksTotal: 10}))
	assert.Equal(t, 0.0, ScorePercent(models.AnswerRecord{MarksEarned: 3, MarksTotal: 0}))
	assert.Equal(t, 33.3, ScorePercent(models.AnswerRecord{MarksEarned: 1, MarksTotal: 3}))
}

func TestResult_Aggregation(t *testing.T) {
	// Math 3/10, Code 9/10 -> 60% overall, Math weak.
	a := NewAttempt(models.QuizConfig{}, nil, false)
	a.Answers = []models.AnswerRecord{
		{Topic: "Math", MarksEarned: 3, MarksTotal: 10, IsFullyCorrect: false},
		{Topic: "Code", MarksEarned: 9, MarksTotal: 10, IsFullyCorrect: true},
	}
	a.Current = 2

	res := a.Result()
	assert.Equal(t, 60.0, res.ScorePercent)
	assert.Equal(t, 12.0, res.MarksEarned)
	assert.Equal(t, 20, res.MarksTotal)
	assert.Equal(t, 1, res.CorrectAnswers)
	assert.Equal(t, 2, res.TotalQuestions)

	assert.Equal(t, 30.0, res.TopicPerformance["Math"].Percentage)
	assert.Equal(t, 90.0, res.TopicPerformance["Code"].Percentage)
	assert.Equal(t, []string{"Math"}, res.WeakTopics)
	assert.Equal(t, "Developing", res.Performance)
}

func TestResult_EmptyHistory(t *testing.T) {
	a := NewAttempt(models.QuizConfig{}, nil, false)
	res := a.Result()
	assert.Equal(t, 0.0, res.ScorePercent)
	assert.Equal(t, 0, res.TotalQuestions)
	assert.Empty(t, res.WeakTopics)
}

func TestRegistry_StartReplacesAttempt(t *testing.T) {
	r := NewRegistry()

	first := NewAttempt(models.QuizConfig{}, []models.Question{singleAnswerQuestion("A", 5)}, false)
	second := NewAttempt(models.QuizConfig{}, []models.Question{singleAnswerQuestion("B", 5)}, false)

	r.Start("s1", first)
	r.Start("s1", second)

	got, ok := r.Get("s1")
	require.True(t, ok)
	assert.Same(t, second, got)

	_, ok = r.Get("s2")
	assert.False(t, ok)
}
