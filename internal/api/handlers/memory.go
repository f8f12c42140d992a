package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// HandleWeakAreas returns the session's remembered weak topics, most
// deficient first. The list is a frequency-ranked hint from similarity
// search, not an exact aggregate; an unavailable store yields an empty list.
func (h *Handler) HandleWeakAreas(c *gin.Context) {
	topK := weakAreaTopK
	if raw := c.Query("top_k"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			topK = n
		}
	}

	weak := h.Memory.WeakAreas(c.Request.Context(), sessionID(c), topK)
	c.JSON(http.StatusOK, gin.H{"weak_topics": weak})
}

// HandleHistorySummary returns the plain-text summary of everything the
// store remembers about the session. Empty when nothing is recorded.
func (h *Handler) HandleHistorySummary(c *gin.Context) {
	summary := h.Memory.HistorySummary(c.Request.Context(), sessionID(c))
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// HandleClearMemory deletes every memory record for the session. Clearing a
// session that has none is a successful no-op.
func (h *Handler) HandleClearMemory(c *gin.Context) {
	cleared := h.Memory.Clear(c.Request.Context(), sessionID(c))
	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}
