package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse reports which optional collaborators are reachable. The
// application works with all of them down, just slower and with no memory.
type StatusResponse struct {
	Cache  bool `json:"cache"`
	Memory bool `json:"memory"`
	LLM    bool `json:"llm"`
}

// HandleStatus returns service availability for the status chips.
func (h *Handler) HandleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Cache:  h.Cache.Available(),
		Memory: h.Memory.Available(),
		LLM:    h.Gemini != nil,
	})
}
