package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/config"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/handler"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/identity"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/logger"
	dynamorepo "github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/repository/dynamodb"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/service"
	s3store "github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/storage/s3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	ctx := context.Background()

	// Initialize DynamoDB client and repository
	dynamoClient, err := dynamorepo.NewClient(ctx, cfg.DynamoDB, log)
	if err != nil {
		log.Fatal("Failed to create DynamoDB client", zap.Error(err))
	}
	repo := dynamorepo.NewRepository(dynamoClient.API(), dynamoClient.Table(), log)

	if err := repo.Ping(ctx); err != nil {
		log.Fatal("Events table is not reachable",
			zap.String("table", cfg.DynamoDB.Table),
			zap.Error(err))
	}

	// Initialize S3 client and asset store
	s3Client, err := s3store.NewClient(ctx, cfg.S3, log)
	if err != nil {
		log.Fatal("Failed to create S3 client", zap.Error(err))
	}
	assetStore := s3store.NewStore(s3Client.API(), s3Client.Presigner(), cfg.S3, log)

	// Provisioning is fail-soft: uploads degrade, the API still serves.
	if !assetStore.EnsureBucketExists(ctx) {
		log.Warn("Asset bucket could not be provisioned",
			zap.String("bucket", cfg.S3.Bucket))
	}

	// Initialize services
	eventService := service.NewEventService(repo, log)
	assetService := service.NewAssetService(assetStore, log)

	// Initialize handler
	h := handler.NewHandler(eventService, assetService, identity.NewHeaderProvider(), log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}
