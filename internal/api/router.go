package api

import (
	"net/http"
	"time"
	"triviaquiz/internal/api/handler"
	"triviaquiz/internal/api/middleware"
	"triviaquiz/internal/app/service"
	"triviaquiz/internal/common"
	"triviaquiz/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/redis/go-redis/v9"
)

// Endpoints is the static discovery list served at the API root.
var Endpoints = []string{
	"/api/v1/auth/register",
	"/api/v1/auth/login",
	"/api/v1/users",
	"/api/v1/users/seed",
	"/api/v1/users/:id",
	"/api/v1/categories/seed",
	"/api/v1/quizzes",
	"/api/v1/quizzes/:id",
	"/api/v1/quizzes/seed",
	"/api/v1/quizzes/participate",
	"/api/v1/quizzes/pastQuizzes",
	"/api/v1/quizzes/presentQuizzes",
	"/api/v1/quizzes/futureQuizzes",
}

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	categoryService *service.CategoryService,
	quizService *service.QuizService,
	participationService *service.ParticipationService,
	limiterClient *redis.Client,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	if limiterClient != nil {
		r.Use(middleware.RateLimit(limiterClient))
	}

	// JWT Auth Middleware Setup
	// Searches for a token in "Authorization: Bearer T" and puts claims in
	// context; per-route Authenticator middleware enforces validity.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Endpoint discovery (public)
		v1.Get("/", func(w http.ResponseWriter, r *http.Request) {
			common.RespondWithJSON(w, http.StatusOK, map[string][]string{"endpoints": Endpoints})
		})

		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		// User routes (authenticated; listing and seeding admin only)
		userHandler := handler.NewUserHandler(userService)
		v1.Route("/users", userHandler.RegisterRoutes)

		// Category routes (seed is unauthenticated)
		categoryHandler := handler.NewCategoryHandler(categoryService)
		v1.Route("/categories", categoryHandler.RegisterRoutes)

		// Quiz routes (authenticated, role-gated per operation)
		quizHandler := handler.NewQuizHandler(quizService, participationService)
		v1.Route("/quizzes", quizHandler.RegisterRoutes)
	})

	return r
}
