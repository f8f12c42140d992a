package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dronaai/internal/adaptive"
	"dronaai/internal/cache"
	"dronaai/internal/gemini"
	"dronaai/internal/models"
	"dronaai/internal/quiz"
)

const (
	minQuestions     = 5
	maxQuestions     = 50
	defaultQuestions = 10

	// weakAreaTopK bounds how many remembered weak topics feed the prompt.
	weakAreaTopK = 5
)

// GenerateQuizRequest is the body of POST /api/quizzes/generate.
type GenerateQuizRequest struct {
	Topics        []string `json:"topics"`
	Difficulty    string   `json:"difficulty"`
	Role          string   `json:"role"`
	Audience      string   `json:"audience"`
	QuestionCount int      `json:"question_count"`
}

// GenerateQuizResponse describes the freshly started attempt.
type GenerateQuizResponse struct {
	QuestionCount int      `json:"question_count"`
	Difficulty    string   `json:"difficulty"`
	FromCache     bool     `json:"from_cache"`
	WeakTopics    []string `json:"weak_topics,omitempty"`
}

// HandleGenerateQuiz builds a question set for the session's configuration
// and starts a new attempt over it. The cache is consulted first; it is
// skipped when long-term memory knows weak topics, because those must bias
// the generated set. A cache fault is indistinguishable from a miss here.
func (h *Handler) HandleGenerateQuiz(c *gin.Context) {
	ctx := c.Request.Context()
	sid := sessionID(c)

	var req GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	resumeText := h.resumeText(sid)
	if len(req.Topics) == 0 && resumeText == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "add at least one topic or upload a PDF resume"})
		return
	}

	if req.QuestionCount == 0 {
		req.QuestionCount = defaultQuestions
	}
	if req.QuestionCount < minQuestions || req.QuestionCount > maxQuestions {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: fmt.Sprintf("question_count must be between %d and %d", minQuestions, maxQuestions),
		})
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = models.DifficultyModerate
	}

	cfg := models.QuizConfig{
		Topics:        req.Topics,
		Difficulty:    req.Difficulty,
		Role:          req.Role,
		Audience:      req.Audience,
		QuestionCount: req.QuestionCount,
		ResumeText:    resumeText,
	}

	// The automatic preference resolves against whatever history exists so
	// far, possibly none.
	resolved := cfg.Difficulty
	if resolved == models.DifficultyAdaptive {
		var history []models.AnswerRecord
		if attempt, ok := h.Attempts.Get(sid); ok {
			history = attempt.Answers
		}
		resolved = adaptive.NextDifficulty(history)
	}

	weakTopics := h.Memory.WeakAreas(ctx, sid, weakAreaTopK)
	historySummary := h.Memory.HistorySummary(ctx, sid)

	key := cache.DeriveKey(cfg.Topics, resolved, cfg.Role, cfg.QuestionCount)

	var questions []models.Question
	fromCache := false
	if cached, ok := h.Cache.Get(ctx, key); ok && len(weakTopics) == 0 {
		questions = cached
		fromCache = true
		log.Printf("INFO: serving question set from cache for session %s", sid)
	} else {
		prompt := gemini.BuildQuizPrompt(cfg, resolved, weakTopics, historySummary)

		generated, err := h.Gemini.GenerateQuiz(ctx, prompt)
		if err != nil {
			status, msg := generationFaultResponse(err)
			log.Printf("ERROR: quiz generation failed for session %s: %v", sid, err)
			c.JSON(status, models.ErrorResponse{Error: msg})
			return
		}
		questions = generated

		if !h.Cache.Put(ctx, key, questions) {
			log.Printf("INFO: question set for session %s not cached", sid)
		}
	}

	h.Attempts.Start(sid, quiz.NewAttempt(cfg, questions, fromCache))

	c.JSON(http.StatusOK, GenerateQuizResponse{
		QuestionCount: len(questions),
		Difficulty:    resolved,
		FromCache:     fromCache,
		WeakTopics:    weakTopics,
	})
}

// generationFaultResponse maps a classified generation fault to an HTTP
// status and an actionable user message.
func generationFaultResponse(err error) (int, string) {
	var genErr *gemini.GenerationError
	if errors.As(err, &genErr) {
		switch genErr.Kind {
		case gemini.KindContextTooLarge:
			return http.StatusBadRequest, "The resume is too large to process fully. Try uploading a shorter document or add topics manually instead."
		case gemini.KindAuth:
			return http.StatusBadGateway, "API key issue. Please check your GEMINI_API_KEY in .env file."
		}
	}
	return http.StatusBadGateway, "Something went wrong generating the quiz. Please try again."
}

// AttemptStateResponse is the view of the in-progress attempt. The current
// question is stripped of its answer key; correct options stay server side
// until the answer is scored.
type AttemptStateResponse struct {
	QuestionIndex     int              `json:"question_index"`
	TotalQuestions    int              `json:"total_questions"`
	Finished          bool             `json:"finished"`
	FromCache         bool             `json:"from_cache"`
	Question          *models.Question `json:"question,omitempty"`
	MultiSelect       bool             `json:"multi_select"`
	NextDifficulty    string           `json:"next_difficulty,omitempty"`
	AnsweredQuestions int              `json:"answered_questions"`
}

// HandleGetAttempt returns the current question and progress. The adaptive
// preview appears once three answers are on record, matching when the signal
// becomes meaningful.
func (h *Handler) HandleGetAttempt(c *gin.Context) {
	attempt, ok := h.Attempts.Get(sessionID(c))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no attempt in progress"})
		return
	}

	resp := AttemptStateResponse{
		QuestionIndex:     attempt.Current,
		TotalQuestions:    len(attempt.Questions),
		Finished:          attempt.Finished(),
		FromCache:         attempt.FromCache,
		AnsweredQuestions: len(attempt.Answers),
	}
	if q, ok := attempt.CurrentQuestion(); ok {
		resp.MultiSelect = q.IsMultiSelect()
		q.CorrectOptions = nil
		resp.Question = &q
	}
	if len(attempt.Answers) >= 3 {
		resp.NextDifficulty = attempt.NextDifficulty()
	}

	c.JSON(http.StatusOK, resp)
}

// SubmitAnswerRequest is the body of POST /api/attempts/current/answers.
type SubmitAnswerRequest struct {
	Selected []string `json:"selected"`
	Skip     bool     `json:"skip"`
}

// SubmitAnswerResponse reports the scored record and what comes next.
type SubmitAnswerResponse struct {
	Record         models.AnswerRecord `json:"record"`
	ScorePercent   float64             `json:"score_percent"`
	NextDifficulty string              `json:"next_difficulty"`
	Finished       bool                `json:"finished"`
}

// HandleSubmitAnswer scores a submission (or skip) against the current
// question, appends it to the attempt history and upserts it into long-term
// memory. The memory write is best effort; a failure is logged and the
// response is unaffected.
func (h *Handler) HandleSubmitAnswer(c *gin.Context) {
	sid := sessionID(c)
	attempt, ok := h.Attempts.Get(sid)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no attempt in progress"})
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	var record models.AnswerRecord
	var err error
	if req.Skip {
		record, err = attempt.Skip()
	} else {
		record, err = attempt.Submit(req.Selected)
	}
	switch {
	case errors.Is(err, quiz.ErrNoSelection):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, quiz.ErrAttemptFinished):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to record answer"})
		return
	}

	scorePercent := quiz.ScorePercent(record)
	if !h.Memory.StoreAnswer(c.Request.Context(), sid, record.QuestionText,
		record.ChosenOptions, record.CorrectOptions, record.Topic, record.Difficulty, scorePercent) {
		log.Printf("INFO: answer for session %s not persisted to memory", sid)
	}

	c.JSON(http.StatusOK, SubmitAnswerResponse{
		Record:         record,
		ScorePercent:   scorePercent,
		NextDifficulty: attempt.NextDifficulty(),
		Finished:       attempt.Finished(),
	})
}

// HandleFinishAttempt aggregates the attempt into the result payload.
func (h *Handler) HandleFinishAttempt(c *gin.Context) {
	attempt, ok := h.Attempts.Get(sessionID(c))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no attempt in progress"})
		return
	}
	if len(attempt.Answers) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no answers recorded"})
		return
	}

	c.JSON(http.StatusOK, attempt.Result())
}

// HandleExportAttempt downloads the full attempt as a JSON report.
func (h *Handler) HandleExportAttempt(c *gin.Context) {
	attempt, ok := h.Attempts.Get(sessionID(c))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no attempt in progress"})
		return
	}
	if len(attempt.Answers) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no answers recorded"})
		return
	}

	filename := fmt.Sprintf("dronaai_report_%s.json", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, attempt.Result())
}

// HandleStreamReport streams the narrative performance report as SSE
// fragments. A mid-stream provider fault arrives as the final fragment; the
// client just stops receiving events when the sequence ends.
func (h *Handler) HandleStreamReport(c *gin.Context) {
	attempt, ok := h.Attempts.Get(sessionID(c))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no attempt in progress"})
		return
	}
	if len(attempt.Answers) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no answers recorded"})
		return
	}

	prompt := gemini.BuildFeedbackPrompt(attempt.Result())
	stream := h.Gemini.GenerateReportStream(c.Request.Context(), prompt)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		fragment, ok := stream.Next()
		if !ok {
			return false
		}
		c.SSEvent("message", fragment)
		return true
	})
}
