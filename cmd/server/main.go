package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lumensense/internal/cache"
	"lumensense/internal/config"
	"lumensense/internal/repository"
	"lumensense/internal/service"
	"lumensense/internal/transport/rest"
	"lumensense/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	aiConfig := config.DefaultAIConfig()

	log.Printf("AI Config:")
	log.Printf("  Model:     %s", aiConfig.Model)
	log.Printf("  Endpoint:  %s", aiConfig.BaseURL)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:   configured")
	} else {
		log.Println("  API Key:   NOT SET (analyses will return the error profile)")
	}
	if cfg.NotifierEnabled() {
		log.Println("Hot lead webhook: configured")
	} else {
		log.Println("Hot lead webhook: NOT SET (alerts disabled)")
	}
	if cfg.AuthEnabled() {
		log.Println("API key auth: enabled")
	} else {
		log.Println("API key auth: disabled (LUMEN_API_KEY not set)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database("lumensense")

	// Redis connection
	redisAddr := cfg.RedisURI
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("Lead feed hub started")

	// Initialize storage
	analysisRepo := repository.NewAnalysisRepo(db)
	analysisCache := cache.NewAnalysisCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.APIKey)
	analyzer := service.NewAnalyzerService(aiConfig)
	notifier := service.NewNotifierService(cfg.WebhookURL, cfg.DashboardURL)
	analysisSvc := service.NewAnalysisService(analyzer, notifier, analysisRepo, analysisCache)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	analysisSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		AnalysisService: analysisSvc,
		WSHub:           wsHub,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /api/analyze")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/analyses")
		log.Println("  GET  /v1/analyses/{id}")
		log.Println("  GET  /v1/leads/recent")
		log.Println("  WS   /v1/ws/leads")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
