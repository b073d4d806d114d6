package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ml-metadata-service/internal/adapters/primary/http/handlers"
	"ml-metadata-service/internal/adapters/primary/http/middleware"
	"ml-metadata-service/internal/adapters/secondary/postgres"
	"ml-metadata-service/internal/config"
	"ml-metadata-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Create database pool
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("parse db config: %v", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxConns)
	poolCfg.MinConns = int32(cfg.Database.MinConns)
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("create db pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	log.Info("database connection established")

	var defaultStoreID uuid.UUID
	if cfg.ArtifactStore.DefaultID != "" {
		defaultStoreID, err = uuid.Parse(cfg.ArtifactStore.DefaultID)
		if err != nil {
			log.Fatalf("parse default artifact store id: %v", err)
		}
	}

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters (Output Ports - Repositories)
	workspaceRepo := postgres.NewWorkspaceRepository(pool)
	modelRepo := postgres.NewModelRepository(pool)
	versionRepo := postgres.NewModelVersionRepository(pool)
	artifactRepo := postgres.NewArtifactRepository(pool)
	artifactVersionRepo := postgres.NewArtifactVersionRepository(pool)
	linkRepo := postgres.NewLinkRepository(pool)
	pipelineRepo := postgres.NewPipelineRepository(pool)
	runRepo := postgres.NewPipelineRunRepository(pool)
	deploymentRepo := postgres.NewDeploymentRepository(pool)
	stepRunRepo := postgres.NewStepRunRepository(pool)

	// Core Services (Application Layer)
	workspaceSvc := services.NewWorkspaceService(workspaceRepo)
	modelSvc := services.NewModelService(modelRepo)
	versionSvc := services.NewModelVersionService(versionRepo, modelRepo, linkRepo, artifactVersionRepo, runRepo)
	artifactSvc := services.NewArtifactService(artifactRepo, artifactVersionRepo)
	lineageSvc := services.NewLineageService(versionRepo, modelRepo, workspaceRepo, linkRepo, artifactRepo, artifactVersionRepo, runRepo)
	pipelineSvc := services.NewPipelineService(pipelineRepo, runRepo, deploymentRepo, stepRunRepo)
	resolver := services.NewResolver(workspaceRepo, modelRepo, versionRepo, artifactRepo, runRepo)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(workspaceSvc, modelSvc, versionSvc, artifactSvc, lineageSvc, pipelineSvc, resolver, defaultStoreID)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/metadata")
	api.Use(middleware.Auth(cfg.Auth.Enabled, cfg.Auth.Secret))
	h.RegisterRoutes(api)

	// Health check with DB ping
	router.GET("/healthz", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
