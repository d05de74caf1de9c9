package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/config"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/database"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/handlers"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/inventory"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/logger"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/parsers/bankcsv"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/processors"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/security"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/services"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/store"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:8080":    true,
			"http://127.0.0.1:8080":    true,
			config.Cfg.FrontendBaseURL: true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "ETag")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Raseed FinanceAI backend server starting...")

	if config.Cfg.JWTSecret == "" || len(config.Cfg.JWTSecret) < 32 {
		logger.L.Error("JWT_SECRET configuration invalid: must be at least 32 characters.")
		os.Exit(1)
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	reportCache := cache.New(services.DefaultCacheExpiration, services.CacheCleanupInterval)
	batchStore := store.New()

	authService := security.NewAuthService(config.Cfg.JWTSecret, config.Cfg.AccessTokenExpiry)
	categorizerClient := services.NewCategorizerClient(config.Cfg.CategorizerURL, config.Cfg.UpstreamTimeout)

	aggregationProcessor := processors.NewAggregationProcessor()
	insightsProcessor := processors.NewInsightsProcessor()

	uploadService := services.NewUploadService(categorizerClient, bankcsv.NewParser(), batchStore, reportCache)
	reportService := services.NewReportService(batchStore, aggregationProcessor, insightsProcessor, reportCache)
	advisorService := services.NewAdvisorService(config.Cfg.AdvisorURL, config.Cfg.UpstreamTimeout, reportService, batchStore.HasData)

	authHandler := handlers.NewAuthHandler(authService)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)
	insightsHandler := handlers.NewInsightsHandler(reportService)
	chatHandler := handlers.NewChatHandler(advisorService)
	inventoryHandler := handlers.NewInventoryHandler(inventory.NewRepo(database.DB))

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Raseed FinanceAI backend is running", "status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", authHandler.RegisterUserHandler)
			r.Post("/auth/login", authHandler.LoginUserHandler)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(handlers.AuthMiddleware(authService))

			r.Post("/upload", uploadHandler.HandleUpload)
			r.Get("/transactions", dashboardHandler.HandleGetTransactions)
			r.Delete("/transactions", uploadHandler.HandleClearData)

			r.Get("/dashboard/summary", dashboardHandler.HandleGetSummary)
			r.Get("/dashboard/categories", dashboardHandler.HandleGetCategories)
			r.Get("/dashboard/daily", dashboardHandler.HandleGetDaily)
			r.Get("/dashboard/trend", dashboardHandler.HandleGetTrend)
			r.Get("/insights", insightsHandler.HandleGetInsights)

			r.Post("/chat", chatHandler.HandleChat)

			r.Get("/inventory", inventoryHandler.HandleList)
			r.Post("/inventory", inventoryHandler.HandleCreate)
			r.Put("/inventory/{id}", inventoryHandler.HandleUpdate)
			r.Delete("/inventory/{id}", inventoryHandler.HandleDelete)
		})
	})

	r.NotFound(handlers.NotFoundHandler)

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
