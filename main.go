package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/splice-sistemas/splice-be/internal/alerts"
	"github.com/splice-sistemas/splice-be/internal/api"
	"github.com/splice-sistemas/splice-be/internal/auth"
	"github.com/splice-sistemas/splice-be/internal/config"
	"github.com/splice-sistemas/splice-be/internal/database"
	"github.com/splice-sistemas/splice-be/internal/entity"
	"github.com/splice-sistemas/splice-be/internal/logger"
	"github.com/splice-sistemas/splice-be/internal/monitoring"
	"github.com/splice-sistemas/splice-be/internal/services"
	"github.com/splice-sistemas/splice-be/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init()

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db, hub)
	store := entity.NewStore(db)
	alertEngine := alerts.NewEngine(db)
	jwtAuth := auth.New(cfg.JWTSecret)

	// Seed the administrator account; self-registration only creates operators
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := userService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("Failed to seed admin account: %v", err)
		}
	}

	// Set up and run the daily alert digest
	digest, err := monitoring.NewDigestJob(alertEngine, auditService, hub, cfg.AlertDigestCron)
	if err != nil {
		log.Fatalf("Failed to initialize alert digest job: %v", err)
	}
	go digest.Run()

	// Set up router
	router := api.NewRouter(api.Deps{
		Config:       cfg,
		Auth:         jwtAuth,
		Hub:          hub,
		UserService:  userService,
		AuditService: auditService,
		Store:        store,
		AlertEngine:  alertEngine,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	digest.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
