// Package handlers wires the HTTP surface to the quiz engine, cache, memory
// store and Gemini client. The cache and memory store are optimizations: any
// fault in them degrades silently and never aborts the request that touched
// them. Generation faults surface exactly once, classified into a specific
// user message.
package handlers

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"

	"dronaai/internal/cache"
	"dronaai/internal/gemini"
	"dronaai/internal/memory"
	"dronaai/internal/models"
	"dronaai/internal/quiz"
)

// sessionIDKey mirrors the context key set by the session middleware.
const sessionIDKey = "session_id"

// Generator is the slice of the Gemini client the handlers depend on.
type Generator interface {
	GenerateQuiz(ctx context.Context, prompt string) ([]models.Question, error)
	GenerateReportStream(ctx context.Context, prompt string) *gemini.ReportStream
}

// Handler contains the API handlers dependencies
type Handler struct {
	Gemini   Generator
	Cache    *cache.QuestionCache
	Memory   *memory.Store
	Attempts *quiz.Registry

	// resumes holds extracted resume text per session until the next
	// generation uses it. Kept server side; it is far too large for the
	// cookie session.
	resumesMu sync.RWMutex
	resumes   map[string]string
}

// NewHandler creates a new Handler
func NewHandler(geminiClient Generator, questionCache *cache.QuestionCache, memoryStore *memory.Store) *Handler {
	return &Handler{
		Gemini:   geminiClient,
		Cache:    questionCache,
		Memory:   memoryStore,
		Attempts: quiz.NewRegistry(),
		resumes:  make(map[string]string),
	}
}

// sessionID returns the session identifier placed in the context by the
// SessionID middleware.
func sessionID(c *gin.Context) string {
	id, _ := c.Get(sessionIDKey)
	s, _ := id.(string)
	return s
}

func (h *Handler) resumeText(sessionID string) string {
	h.resumesMu.RLock()
	defer h.resumesMu.RUnlock()
	return h.resumes[sessionID]
}

func (h *Handler) setResumeText(sessionID, text string) {
	h.resumesMu.Lock()
	defer h.resumesMu.Unlock()
	h.resumes[sessionID] = text
}
