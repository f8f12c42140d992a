package api

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessionIDKey is the cookie-session key holding the stable session
// identifier that groups attempts and memory records.
const sessionIDKey = "session_id"

// CORSMiddleware adds CORS headers to allow cross-origin requests
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		frontendURL := os.Getenv("FRONTEND_URL")
		if frontendURL == "" {
			frontendURL = "http://localhost:5173"
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", strings.TrimSuffix(frontendURL, "/"))
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SessionID ensures every request carries a stable session identifier,
// minting one on first contact. The ID is what ties memory records and
// attempts to one user-continuity context; there are no accounts.
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		id, ok := session.Get(sessionIDKey).(string)
		if !ok || id == "" {
			id = uuid.New().String()
			session.Set(sessionIDKey, id)
			if err := session.Save(); err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to establish session"})
				return
			}
		}

		c.Set(sessionIDKey, id)
		c.Next()
	}
}
