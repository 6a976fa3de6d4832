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

	"fitflow/internal/api"
	"fitflow/internal/config"
	"fitflow/internal/generator"
	"fitflow/internal/repository/sqlite"
	"fitflow/internal/service"
	"fitflow/internal/session"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting FitFlow server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("FATAL: jwt.secret must be configured")
	}
	log.Println("Configuration loaded.")

	// --- Storage ---
	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("FATAL: Could not open database at %s: %v", cfg.Database.Path, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("ERROR: Failed to close database: %v", err)
		}
	}()
	log.Printf("Database open at %s", cfg.Database.Path)

	// --- Repositories ---
	userRepo := sqlite.NewUserRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)
	dataRepo := sqlite.NewUserDataRepository(db)

	// --- Services ---
	codec, err := service.NewCredentialCodec(cfg.Auth.CredentialCodec)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	hydrateCtx, cancelHydrate := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := service.NewStoreService(hydrateCtx, userRepo, sessionRepo, dataRepo, codec)
	cancelHydrate()
	if err != nil {
		log.Fatalf("FATAL: Could not initialize store: %v", err)
	}

	exerciseService := service.NewExerciseService()
	workouts := session.NewManager(store)
	defer workouts.Shutdown()

	var planGen generator.PlanGenerator
	if cfg.Generator.APIKey != "" {
		planGen = generator.NewOpenAIGenerator(cfg.Generator.BaseURL, cfg.Generator.APIKey, cfg.Generator.Model)
		log.Println("Plan generator enabled.")
	} else {
		log.Println("No generator API key configured; plan generation disabled.")
	}

	// --- Router ---
	router := gin.Default()
	api.SetupRoutes(router, cfg.JWT.Secret, cfg.JWT.Expiration, store, workouts, planGen, exerciseService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
