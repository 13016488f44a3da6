package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"blogiq/database"
	"blogiq/docs"
	"blogiq/internal/cache"
	"blogiq/internal/config"
	"blogiq/internal/controllers"
	"blogiq/internal/identity"
	"blogiq/internal/mailer"
	"blogiq/internal/middleware"
	"blogiq/internal/news"
	"blogiq/internal/openai"
	"blogiq/internal/repository"
	"blogiq/internal/services"
	"blogiq/routes"

	"github.com/gin-gonic/gin"
)

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()

	// Swagger Documentation
	docs.SwaggerInfo.Title = "BlogIQ API"
	docs.SwaggerInfo.Description = "Editorial blog platform with creator moderation, a merged news feed and AI summaries."
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	db := database.ConnectDatabase(cfg.Database)
	if err := database.MigrateDatabase(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	database.MonitorDBConnections(db)

	// Initialize repositories
	blogRepo := repository.NewBlogRepository(db)
	userRepo := repository.NewUserRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	// Redis is optional; without it category counts are fetched every time
	var (
		redisClient *cache.RedisClient
		countsCache services.JSONCache
	)
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Redis unavailable, continuing without cache: %v", err)
		} else {
			redisClient = rc
			countsCache = rc
			defer rc.Close()
			log.Println("Connected to Redis successfully")
		}
	}

	// External clients
	identityClient, err := identity.NewClient(cfg.Identity.BaseURL, cfg.Identity.SecretKey)
	if err != nil {
		log.Fatal("Failed to create identity client:", err)
	}

	llmClient, err := openai.NewClient(openai.Options{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	if err != nil {
		log.Fatal("Failed to create LLM client:", err)
	}

	newsClient := news.NewClient(cfg.News.BaseURL, cfg.News.APIKey, cfg.News.Timeout)

	mail, err := mailer.New(cfg.Mail)
	if err != nil {
		log.Printf("Warning: email notifications disabled: %v", err)
	}

	authenticator, err := middleware.NewAuthenticator(cfg.Auth)
	if err != nil {
		log.Fatal("Failed to configure authentication:", err)
	}

	// Notification worker
	workerCount := cfg.NotificationWorkers
	if workerCount < 1 {
		workerCount = 1
	}
	notificationWorker := services.NewNotificationWorker(
		identityClient,
		mail,
		mailer.NewTemplates(cfg.SiteName, cfg.AppURL),
		workerCount,
	)

	log.Printf("Starting notification worker with %d workers...", workerCount)
	notificationWorker.Start()
	defer notificationWorker.Stop()

	// Initialize services
	roles := services.NewRoleResolver(userRepo, identityClient)
	creatorService := services.NewCreatorService(userRepo, identityClient, roles, notificationWorker)
	moderationService := services.NewModerationService(blogRepo, roles, identityClient, creatorService, notificationWorker)
	adminService := services.NewAdminService(blogRepo, identityClient, creatorService)
	aggregator := services.NewAggregator(newsClient, blogRepo, countsCache, cfg.SiteName)
	summarizer := services.NewSummarizer(summaryRepo, llmClient, services.ReadabilityExtractor{Timeout: 15 * time.Second})
	bookmarkService := services.NewBookmarkService(bookmarkRepo)

	// Initialize controllers
	blogController := controllers.NewBlogController(moderationService)
	adminController := controllers.NewAdminController(creatorService, adminService)
	creatorController := controllers.NewCreatorController(creatorService)
	newsController := controllers.NewNewsController(aggregator)
	summarizeController := controllers.NewSummarizeController(summarizer)
	bookmarkController := controllers.NewBookmarkController(bookmarkService)

	summarizeLimiter := middleware.NewRateLimiter(cfg.SummarizeRateLimit, cfg.SummarizeBurst, 10*time.Minute)
	defer summarizeLimiter.Stop()

	router := gin.Default()

	routes.RegisterBlogRoutes(router, authenticator, blogController)
	routes.RegisterAdminRoutes(router, authenticator, adminController)
	routes.RegisterCreatorRoutes(router, authenticator, creatorController)
	routes.RegisterNewsRoutes(router, newsController)
	routes.RegisterSummarizeRoutes(router, summarizeLimiter, summarizeController)
	routes.RegisterBookmarkRoutes(router, authenticator, bookmarkController)
	routes.RegisterSwaggerRoutes(router)

	router.GET("/", func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		status := gin.H{
			"status":        "ok",
			"service":       cfg.SiteName,
			"goroutines":    runtime.NumGoroutine(),
			"memory_mb":     m.Alloc / 1024 / 1024,
			"notifications": notificationWorker.GetStatus(),
		}
		if redisClient != nil {
			status["redis"] = redisClient.GetStatus(c.Request.Context())
		}
		c.JSON(http.StatusOK, status)
	})

	router.GET("/debug/database", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"database_health": false,
				"error":           err.Error(),
			})
			return
		}

		var result int
		row := sqlDB.QueryRowContext(c.Request.Context(), "SELECT 1")
		err = row.Scan(&result)
		stats := sqlDB.Stats()

		c.JSON(http.StatusOK, gin.H{
			"database_health": err == nil && result == 1,
			"open":            stats.OpenConnections,
			"in_use":          stats.InUse,
			"idle":            stats.Idle,
		})
	})

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("API Documentation: http://localhost:%s/swagger/index.html", cfg.Port)
	log.Printf("Database Health: http://localhost:%s/debug/database", cfg.Port)

	// WriteTimeout is left unset so summary streams are not cut off.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
