package api

import (
	"github.com/gin-gonic/gin"

	"dronaai/internal/api/handlers"
)

// SetupRoutes sets up the API routes
func SetupRoutes(router *gin.Engine, handler *handlers.Handler) {
	router.Use(CORSMiddleware())

	api := router.Group("/api")
	api.Use(SessionID())
	{
		api.GET("/status", handler.HandleStatus)

		api.POST("/resume", handler.HandleUploadResume)

		api.POST("/quizzes/generate", handler.HandleGenerateQuiz)

		attempts := api.Group("/attempts/current")
		{
			attempts.GET("", handler.HandleGetAttempt)
			attempts.POST("/answers", handler.HandleSubmitAnswer)
			attempts.POST("/finish", handler.HandleFinishAttempt)
			attempts.GET("/export", handler.HandleExportAttempt)
			attempts.GET("/report", handler.HandleStreamReport)
		}

		memory := api.Group("/memory")
		{
			memory.GET("/weak-areas", handler.HandleWeakAreas)
			memory.GET("/summary", handler.HandleHistorySummary)
			memory.DELETE("", handler.HandleClearMemory)
		}
	}
}
