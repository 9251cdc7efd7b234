package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/classifier"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/config"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/routes"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/services"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/store"
	"github.com/5CCSACCA/coursework-Jason-Immanuel1-1/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.OpenDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	recordStore := store.NewGormStore(db)
	if err := recordStore.Migrate(); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	ctx := context.Background()

	var model classifier.Classifier
	switch cfg.ClassifierBackend {
	case "rekognition":
		model, err = classifier.NewRekognitionClassifier(ctx, cfg.AWSRegion)
		if err != nil {
			logger.Fatal("failed to init Rekognition classifier", zap.Error(err))
		}
	default:
		onnx, err := classifier.NewONNXClassifier(cfg.ModelPath, cfg.ModelMetadataPath)
		if err != nil {
			logger.Fatal("failed to load ONNX model", zap.Error(err))
		}
		defer onnx.Close()
		model = onnx
	}

	var archiver services.Archiver
	if cfg.S3Bucket != "" {
		s3a, err := utils.NewS3Archiver(ctx, cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			logger.Fatal("failed to init S3 archiver", zap.Error(err))
		}
		archiver = s3a
	}

	hub := services.NewRealtimeHub()
	audit := services.NewAuditService(recordStore.Interactions(), recordStore.Uploads(), logger)

	var enricher services.Enqueuer
	if cfg.CalorieAPIBase != "" {
		estimator, err := services.NewLLMCalorieEstimator(cfg.CalorieAPIBase, cfg.CalorieAPIKey, cfg.CalorieModel, logger)
		if err != nil {
			logger.Fatal("failed to init calorie estimator", zap.Error(err))
		}
		worker := services.NewEnrichmentWorker(recordStore, estimator, hub, logger)
		worker.Start()
		defer worker.Stop()
		enricher = worker
	}

	predictions := services.NewPredictionService(
		recordStore, audit, model, archiver, enricher, cfg.MaxUploadBytes, logger)

	r := routes.SetupRouter(routes.Deps{
		Predictions:   predictions,
		Audit:         audit,
		Hub:           hub,
		JWTSecret:     []byte(cfg.JWTSecret),
		RatePerMinute: cfg.RatePerMinute,
	})

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
