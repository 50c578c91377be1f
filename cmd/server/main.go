package main

import (
	"fmt"
	"log"

	"redline/internal/config"
	"redline/internal/handler"
	"redline/internal/inference/gemini"
	"redline/internal/port"
	"redline/internal/repository/postgres"
	"redline/internal/router"
	"redline/internal/service"
	s3storage "redline/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Gemini.APIKey == "" {
		log.Printf("warning: REDLINE_GEMINI_API_KEY is not set; audit runs will be rejected by the inference service")
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	accountRepo := postgres.NewAccountRepo(db)
	reportRepo := postgres.NewReportRepo(db)

	// Initialize report archive storage (optional)
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		log.Printf("report archiving disabled (no S3 bucket configured); reports are returned inline")
	}

	// Initialize services
	inferenceClient := gemini.NewClient(&cfg.Gemini)
	quotaSvc := service.NewQuotaService(accountRepo)
	auditSvc := service.NewAuditService(inferenceClient, cfg.Gemini.Model, cfg.Audit)
	reportSvc := service.NewReportService(reportRepo, storage, &cfg.S3)

	// Initialize handlers
	accessH := handler.NewAccessHandler(quotaSvc)
	auditH := handler.NewAuditHandler(quotaSvc, auditSvc, reportSvc, cfg.Audit.MaxFileSizeMB)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(accessH, auditH, reportH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
