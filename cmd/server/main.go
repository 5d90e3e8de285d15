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

	"jobboard/internal/api"
	"jobboard/internal/app/service"
	"jobboard/internal/common/security"
	"jobboard/internal/domain/repository"
	"jobboard/internal/platform/cache"
	"jobboard/internal/platform/config"
	"jobboard/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	database.Migrate()

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	jobCache := cache.NewJobCache(cache.RDB, config.AppConfig.JobCacheTTL)

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	jobRepo := repository.NewPgJobRepository(database.DB)
	applicationRepo := repository.NewPgApplicationRepository(database.DB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo)
	jobService := service.NewJobService(jobRepo, applicationRepo, jobCache)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, jobCache)
	userService := service.NewUserService(userRepo, jobRepo, applicationRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, jobService, applicationService, userService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
