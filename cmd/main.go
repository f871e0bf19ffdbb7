package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/takara45/ai-seo-homepage/config"
	"github.com/takara45/ai-seo-homepage/internal/ai"
	"github.com/takara45/ai-seo-homepage/internal/api"
	"github.com/takara45/ai-seo-homepage/internal/assemble"
	"github.com/takara45/ai-seo-homepage/internal/publish"
	"github.com/takara45/ai-seo-homepage/internal/session"
)

func main() {
	// --- Load .env file ---
	// This loads environment variables from a .env file in the current directory
	// or parent directories. It's crucial to do this BEFORE viper loads config.
	err := godotenv.Load()
	if err != nil {
		// It's common for .env to not exist (e.g., in production), so only log a warning
		// if the error is something other than "file not found".
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		} else {
			log.Println("Info: .env file not found, relying on system environment variables.")
		}
	} else {
		log.Println("Info: Loaded environment variables from .env file.")
	}

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".") // Load from config.yaml or env vars
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	// --- Dependency Initialization ---

	// AI generator: drives the template suggestion, the structured site
	// draft, and image synthesis.
	generator, err := ai.NewGenerator(cfg.OpenAIKey, cfg.ChatModelID, cfg.ImageModelID)
	if err != nil {
		log.Fatalf("Cannot initialize AI generator: %v", err)
	}

	// The assembly pipeline consumes the generator for both structure and images.
	pipeline := assemble.NewPipeline(generator, generator)

	// Hosting: talk to a real hosting API when an endpoint is configured,
	// otherwise fall back to the in-memory host.
	newHost := func() publish.Host {
		if cfg.PublishEndpoint != "" {
			return publish.NewClient(cfg.PublishAPIKey, cfg.PublishEndpoint)
		}
		return publish.NewSimulatedHost(cfg.PublishBaseDomain)
	}
	if cfg.PublishEndpoint == "" {
		log.Println("PUBLISH_ENDPOINT not set, publishing runs against the in-memory host.")
	}

	sessions := session.NewStore(generator, pipeline, newHost)

	// Initialize API Handlers (pass all dependencies)
	apiHandler := api.NewAPIHandler(sessions)

	// Start API Server
	// Select Gin mode based on an environment variable (e.g., APP_ENV=production)
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in Gin Debug Mode")
	}

	router := gin.New()        // Use gin.New() for more control over middleware
	router.Use(gin.Logger())   // Add structured logger middleware
	router.Use(gin.Recovery()) // Add panic recovery middleware

	api.RegisterRoutes(router, apiHandler) // Register API endpoints

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// Set timeouts to prevent slow client attacks
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting API server on %s\n", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server listen error: %s\n", err)
		}
		log.Println("API server has stopped listening.")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1) // Buffered channel
	// Notify channel on SIGINT or SIGTERM
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	// Block until a signal is received
	sig := <-quit
	log.Printf("Received signal: %s. Shutting down server...", sig)

	// Create a context with timeout for shutdown
	shutdownCtx, serverCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer serverCancel()

	// Attempt to gracefully shutdown the HTTP server
	log.Println("Shutting down API server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("API server forced shutdown error: %v", err)
	} else {
		log.Println("API server gracefully stopped.")
	}

	log.Println("Application exiting.")
}
