package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"lexassist-backend/auth"
	"lexassist-backend/config"
	"lexassist-backend/handlers"
	"lexassist-backend/models"
	"lexassist-backend/notify"
	"lexassist-backend/repository"
	"lexassist-backend/service"
	"lexassist-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/api/option"
)

func main() {
	cfg := config.Load()

	userRepo, caseRepo, docRepo := initRepositories(cfg)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	notifier := notify.New(cfg)

	store, err := storage.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize document storage: %v", err)
	}

	authService := service.NewAuthService(
		service.AuthWithUserRepository(userRepo),
		service.AuthWithJWTService(jwtService),
		service.AuthWithNotifier(notifier),
	)

	caseService := service.NewCaseService(
		service.CaseWithCaseRepository(caseRepo),
		service.CaseWithUserRepository(userRepo),
		service.CaseWithNotifier(notifier),
	)

	analysisService := initAnalysisService(cfg)

	searchService := service.NewSearchService(
		service.SearchWithAPIURL(cfg.SearchAPIURL),
		service.SearchWithToken(cfg.SearchAPIToken),
	)

	authHandler := handlers.NewAuthHandler(authService)
	caseHandler := handlers.NewCaseHandler(caseService, analysisService, docRepo, userRepo, store)
	searchHandler := handlers.NewSearchHandler(searchService)
	pageHandler := handlers.NewPageHandler(jwtService, authService, caseService)

	mw := auth.NewMiddleware(jwtService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Server-rendered pages
	r.GET("/", pageHandler.Landing)
	r.GET("/dashboard", pageHandler.Dashboard)

	// Public API
	r.POST("/api/register", authHandler.Register)
	r.POST("/api/login", authHandler.Login)

	// Authenticated API
	api := r.Group("/api", mw.RequireUser())
	{
		api.GET("/profile", authHandler.GetProfile)
		api.POST("/update-profile", authHandler.UpdateProfile)
		api.POST("/search", searchHandler.Search)
		api.POST("/upload", caseHandler.Upload)
		api.POST("/analyze", caseHandler.Analyze)
		api.POST("/chat", caseHandler.Chat)
		api.POST("/save-case", caseHandler.SaveCase)
		api.GET("/cases", caseHandler.ListCases)
		api.POST("/cases/add-note", caseHandler.AddNote)
	}

	// Lawyer and admin routes. The role comes from the validated token.
	r.GET("/api/all-cases", mw.RequireRole(models.RoleLawyer, models.RoleAdmin), caseHandler.ListAllCases)

	lawyer := r.Group("/api/cases", mw.RequireRole(models.RoleLawyer))
	{
		lawyer.POST("/update-status", caseHandler.UpdateStatus)
		lawyer.POST("/update-hearing", caseHandler.UpdateHearing)
	}

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initRepositories connects to Postgres, or falls back to in-memory
// repositories (demo mode) when DATABASE_URL is not set.
func initRepositories(cfg *config.Config) (repository.UserRepository, repository.CaseRepository, repository.DocumentRepository) {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, running in demo mode with in-memory storage")
		return repository.NewMemoryUserRepository(),
			repository.NewMemoryCaseRepository(),
			repository.NewMemoryDocumentRepository()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to Postgres")

	return repository.NewPostgresUserRepository(pool),
		repository.NewPostgresCaseRepository(pool),
		repository.NewPostgresDocumentRepository(pool)
}

// initAnalysisService wires the Gemini SDK client when an API key is
// configured. Without a key the service serves mock analyses.
func initAnalysisService(cfg *config.Config) *service.AnalysisService {
	opts := []service.AnalysisServiceOption{
		service.AnalysisWithModel(cfg.GeminiModel),
	}

	if cfg.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set, AI analysis will return mock results")
		return service.NewAnalysisService(opts...)
	}

	opts = append(opts, service.AnalysisWithAPIKey(cfg.GeminiAPIKey))

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Printf("Warning: Gemini SDK client init failed, using HTTP fallback only: %v", err)
	} else {
		opts = append(opts, service.AnalysisWithGeminiClient(client))
	}

	return service.NewAnalysisService(opts...)
}
