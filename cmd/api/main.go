package main

import (
	"context"
	"database/sql"

	_ "worldtax/api/swagger" // swagger docs
	"worldtax/internal/config"
	"worldtax/internal/database"
	"worldtax/internal/handler"
	"worldtax/internal/logger"
	"worldtax/internal/metrics"
	"worldtax/internal/middleware"
	"worldtax/internal/repository"
	"worldtax/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// @title           World Tax API
// @version         1.0
// @description     Classifies cross-border and interstate transactions and computes the tax owed.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		logger.GetLogger().Fatalf("failed to build logger: %v", err)
	}
	logger.L = log
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.GinMode)
	gin.DefaultWriter = log.GetGinLogger()
	ctx := context.Background()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)

	// Set up dependencies (Repository -> Service -> Handler)
	var (
		auditRepo     repository.AuditRepository
		auditService  service.AuditService
		referenceRepo repository.ReferenceDataRepository
	)
	if cfg.Database.Enabled {
		db, err := database.NewConnection(cfg.Database.DSN(), log)
		if err != nil {
			log.Fatalw("database connection failed", "error", err)
		}
		log.Infow("connected to PostgreSQL", "host", cfg.Database.Host, "database", cfg.Database.Name)

		auditRepo = repository.NewAuditRepository(db)
		auditService = service.NewAuditService(auditRepo)
		referenceRepo = repository.NewReferenceDataRepository(db, repository.NewTransactionManager(db, sql.LevelSerializable))
	}

	var source repository.ReferenceSource
	switch cfg.Reference.Source {
	case config.SourceFiles:
		source = repository.NewFileSource(cfg.Reference.VatRatesPath, cfg.Reference.TradeAgreementsPath)
	case config.SourcePostgres:
		source = repository.NewDatabaseSource(referenceRepo)
	default:
		source = repository.NewEmbeddedSource()
	}

	referenceService, err := service.NewReferenceService(ctx, source, auditRepo, recorder, log)
	if err != nil {
		log.Fatalw("failed to load reference data", "source", source.Name(), "error", err)
	}

	if cfg.Reference.SeedDatabase && cfg.Reference.Source != config.SourcePostgres {
		if err := referenceService.SeedDatabase(ctx, referenceRepo); err != nil {
			log.Fatalw("failed to seed reference data", "error", err)
		}
		log.Infow("reference data written to PostgreSQL")
	}

	taxService := service.NewTaxService(referenceService, recorder, log)

	router := handler.NewRouter(handler.RouterConfig{
		Logger:           log,
		JWTSecret:        middleware.GetJWTSecret(cfg.JWTSecret),
		AllowOrigins:     cfg.CORSAllowOrigins,
		Gatherer:         registry,
		TaxService:       taxService,
		ReferenceService: referenceService,
		AuditService:     auditService,
	})

	log.Infow("server listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalw("server failed", "error", err)
	}
}
