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
	"triviaquiz/internal/api"
	"triviaquiz/internal/app/service"
	"triviaquiz/internal/common/security"
	"triviaquiz/internal/domain/repository"
	"triviaquiz/internal/platform/config"
	"triviaquiz/internal/platform/database"
	"triviaquiz/internal/platform/ratelimit"
	"triviaquiz/internal/platform/seeddata"
	"triviaquiz/internal/platform/trivia"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database (runs migrations)
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis (rate-limit counters)
	ratelimit.ConnectRedis()
	defer ratelimit.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize external provider clients
	triviaClient := trivia.NewClient(config.AppConfig.TriviaBaseURL, nil)
	seedClient := seeddata.NewClient(config.AppConfig.BasicUsersSeedURL, nil)

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	categoryRepo := repository.NewPgCategoryRepository(database.DB)
	quizRepo := repository.NewPgQuizRepository(database.DB)
	participationRepo := repository.NewPgParticipationRepository(database.DB)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, seedClient, database.DB)
	categoryService := service.NewCategoryService(categoryRepo, triviaClient, database.DB)
	quizService := service.NewQuizService(quizRepo, triviaClient, database.DB)
	participationService := service.NewParticipationService(participationRepo, quizRepo, userRepo, database.DB)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, userService, categoryService, quizService, participationService, ratelimit.RDB)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
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
