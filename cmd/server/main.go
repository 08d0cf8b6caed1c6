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

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"asdscreen/internal/cache"
	"asdscreen/internal/config"
	"asdscreen/internal/dataset"
	"asdscreen/internal/forest"
	"asdscreen/internal/repository"
	"asdscreen/internal/scoring"
	"asdscreen/internal/service"
	"asdscreen/internal/trainer"
	"asdscreen/internal/transport/rest"
	"asdscreen/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	log.Printf("Screening config:")
	log.Printf("  Dataset:   %s", cfg.DataPath)
	log.Printf("  Model:     %s", cfg.ModelPath)
	log.Printf("  Threshold: %d", cfg.QChatThreshold)
	log.Printf("  Strict answers: %v", cfg.StrictAnswers)

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

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Load the curated training dataset and get a classifier. A cached
	// artifact whose fingerprint matches the dataset is reused; otherwise
	// the forest is retrained here, once, before the server accepts
	// submissions.
	ds, err := dataset.Load(cfg.DataPath)
	if err != nil {
		log.Fatal("Failed to load training dataset: ", err)
	}
	log.Printf("Training dataset loaded: %d rows", ds.Len())

	clf, err := trainer.New(cfg.ModelPath, forest.DefaultConfig()).Classifier(ds)
	if err != nil {
		var trainErr *trainer.TrainingError
		if errors.As(err, &trainErr) && clf != nil {
			// Persistence failed but the in-memory model is usable;
			// the next process start will retrain.
			log.Printf("Warning: %v", err)
		} else {
			log.Fatal("Failed to train or load classifier: ", err)
		}
	}
	log.Println("Classifier ready")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	screeningRepo := repository.NewScreeningRepo(db)
	corpusRepo := repository.NewCorpusRepo(db)

	// Initialize caches
	resultCache := cache.NewResultCache(rdb)
	statsCache := cache.NewStatsCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg)
	predictor := scoring.NewPredictor(cfg.StrictAnswers)
	screeningSvc := service.NewScreeningService(
		predictor, clf, cfg.QChatThreshold,
		screeningRepo, corpusRepo, resultCache, statsCache,
	)
	reportSvc := service.NewReportService(screeningSvc)
	statsSvc := service.NewStatsService(statsCache, corpusRepo, ds.Len())

	// Inject broadcaster (wsHub implements service.Broadcaster)
	screeningSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:      authSvc,
		ScreeningService: screeningSvc,
		ReportService:    reportSvc,
		StatsService:     statsSvc,
		WSHub:            wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/questionnaire")
		log.Println("  POST /v1/screenings")
		log.Println("  GET  /v1/screenings/{id}")
		log.Println("  GET  /v1/screenings (clinician)")
		log.Println("  GET  /v1/reports/{screeningId}")
		log.Println("  GET  /v1/stats/distribution (clinician)")
		log.Println("  WS   /v1/ws/monitor")

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
