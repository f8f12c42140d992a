package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"dronaai/internal/api"
	"dronaai/internal/api/handlers"
	"dronaai/internal/cache"
	"dronaai/internal/gemini"
	"dronaai/internal/memory"
)

const storeName = "dronaai_session"

func main() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("FATAL: error loading .env file: %v", err)
		}
		log.Println("WARN: .env file not found, relying on system environment variables")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Gemini is the only hard dependency: without it the app cannot
	// generate anything.
	geminiClient, err := gemini.NewClient(ctx)
	if err != nil {
		log.Fatalf("FATAL: failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	// The cache and the memory store are optional collaborators. Either one
	// being down leaves the app fully functional: generation skips the
	// cache and memory queries come back empty.
	questionCache := cache.New(ctx)

	memoryDir := os.Getenv("MEMORY_DIR")
	if memoryDir == "" {
		memoryDir = ".dronaai_memory"
	}
	memoryStore, err := memory.New(memoryDir, geminiClient.Embed)
	if err != nil {
		log.Printf("WARN: long-term memory disabled: %v", err)
		memoryStore = nil
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("FATAL: SESSION_SECRET environment variable must be set.")
	}

	router := gin.Default()

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(storeName, store))

	handler := handlers.NewHandler(geminiClient, questionCache, memoryStore)
	api.SetupRoutes(router, handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("INFO: server listening on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("FATAL: failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("INFO: shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("FATAL: server forced to shutdown: %v", err)
	}

	log.Println("INFO: server exited properly")
}
