package router

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/studyscribe/studyscribe-api/internal/config"
	"github.com/studyscribe/studyscribe-api/internal/handlers"
	"github.com/studyscribe/studyscribe-api/internal/middleware"
	"github.com/studyscribe/studyscribe-api/internal/services"
	"github.com/studyscribe/studyscribe-api/internal/storage"
	"github.com/studyscribe/studyscribe-api/internal/store"
)

func Setup(kv storage.KV, st *store.Store, files *services.FileService, cfg *config.Config) *gin.Engine {
	// Initialize Services
	tikaService := services.NewTextExtractionService(cfg)
	searchService := services.NewSearchService(cfg)
	aiService := services.NewAIService(cfg, st.APIKey)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.GET("/health", handlers.HealthCheck(kv))

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Application state
		api.GET("/state", handlers.GetState(st))
		api.PUT("/state/active-subject", handlers.SetActiveSubject(st))
		api.PUT("/state/active-page", handlers.SetActivePage(st))

		// Subjects
		api.GET("/subjects", handlers.ListSubjects(st))
		api.GET("/subjects/:id", handlers.GetSubject(st))
		api.POST("/subjects", handlers.CreateSubject(st, searchService))
		api.PUT("/subjects/:id", handlers.UpdateSubject(st, searchService))
		api.DELETE("/subjects/:id", handlers.DeleteSubject(st, searchService))

		// Resources
		api.POST("/subjects/:id/resources", handlers.CreateResource(st, searchService))
		api.POST("/subjects/:id/resources/upload", handlers.UploadResource(st, files, tikaService, searchService))
		api.PUT("/resources/:id", handlers.UpdateResource(st, searchService))
		api.DELETE("/resources/:id", handlers.DeleteResource(st, files, searchService))
		api.GET("/resources/:id/open", handlers.OpenResource(st))
		api.GET("/resources/:id/download", handlers.DownloadResource(st, files))

		// Schedule
		api.GET("/schedule", handlers.GetSchedule(st))
		api.GET("/schedule/meta", handlers.GetScheduleMeta())
		api.PUT("/schedule/:id", handlers.UpdateScheduleCell(st))

		// Study plans
		api.GET("/plans", handlers.ListStudyPlans(st))
		api.POST("/plans", handlers.CreateStudyPlan(st))
		api.PUT("/plans/:id", handlers.UpdateStudyPlan(st))
		api.DELETE("/plans/:id", handlers.DeleteStudyPlan(st))

		// Chat
		api.GET("/chat", handlers.GetChatHistory(st))
		api.POST("/chat", handlers.PostChatMessage(st, aiService))

		// Settings
		api.GET("/settings", handlers.GetSettings(st))
		api.PUT("/settings/api-key", handlers.UpdateAPIKey(st))

		// Calculator
		calc := api.Group("/calc")
		{
			calc.POST("/evaluate", handlers.Evaluate())
			calc.POST("/unary", handlers.Unary())
			calc.POST("/convert-base", handlers.ConvertBase())
			calc.POST("/bitwise", handlers.Bitwise())
			calc.POST("/gpa", handlers.GPA())
			calc.POST("/grade", handlers.Grade())
			calc.POST("/datediff", handlers.DateDiff())
			calc.POST("/temperature", handlers.Temperature())
		}

		// Search
		api.GET("/search/resources", handlers.SearchResources(searchService))
		api.GET("/search/subjects", handlers.SearchSubjects(searchService))

		// AI study aids, rate limited because they proxy a paid API
		ai := api.Group("/ai")
		if limiter, err := middleware.NewRateLimiter(cfg.RedisURL); err != nil {
			log.Printf("Warning: Failed to initialize rate limiter: %v", err)
		} else {
			ai.Use(limiter.RateLimitByIP(cfg.AIRateLimit, cfg.AIRateWindow))
		}
		{
			ai.POST("/summarize", handlers.Summarize(st, aiService, files, tikaService))
			ai.POST("/flashcards", handlers.CreateFlashcards(st, aiService, files, tikaService))
			ai.POST("/quiz", handlers.GenerateQuiz(st, aiService, files, tikaService))
			ai.POST("/ask", handlers.AskQuestion(st, aiService, files, tikaService))
		}
	}

	return r
}
