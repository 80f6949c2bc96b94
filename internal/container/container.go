package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/anime-shed/page-inspector-go/internal/analyzer"
	"github.com/anime-shed/page-inspector-go/internal/config"
	"github.com/anime-shed/page-inspector-go/internal/factory"
	"github.com/anime-shed/page-inspector-go/internal/heatmap"
	"github.com/anime-shed/page-inspector-go/internal/logger"
	"github.com/anime-shed/page-inspector-go/internal/observer"
	"github.com/anime-shed/page-inspector-go/internal/render"
	"github.com/anime-shed/page-inspector-go/internal/repository"
	"github.com/anime-shed/page-inspector-go/internal/service"
	"github.com/anime-shed/page-inspector-go/internal/transport"
	"github.com/anime-shed/page-inspector-go/pkg/validation"
)

// storageSetupTimeout bounds artifact store initialization
const storageSetupTimeout = 30 * time.Second

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	renderer        render.Renderer
	repository      repository.AnalysisRepository
	workerPool      *analyzer.WorkerPool
	events          observer.Subject
	metrics         *observer.MetricsObserver
	analysisService service.AnalysisService
	handler         http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	components := factory.NewComponentFactory()

	renderer, err := components.RendererFactory.CreateRenderer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageSetupTimeout)
	defer cancel()
	artifacts, err := components.StorageFactory.CreateStorage(ctx, cfg)
	if err != nil {
		renderer.Close()
		return nil, fmt.Errorf("failed to create artifact store: %w", err)
	}

	repo, err := openRepository(cfg.DatabasePath)
	if err != nil {
		renderer.Close()
		return nil, fmt.Errorf("failed to open report store: %w", err)
	}

	// Build dependency graph
	metrics := observer.NewMetricsObserver()
	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	pool := analyzer.NewWorkerPool(cfg.MaxConcurrentAnalyses)
	pool.Start()

	analysisService := service.NewAnalysisService(service.Dependencies{
		Renderer:   renderer,
		Analyzer:   components.AnalyzerFactory.CreateAnalyzer(cfg),
		Heatmap:    heatmap.NewGenerator(nil, artifacts),
		Repository: repo,
		Validator:  validation.NewURLValidator(),
		Pool:       pool,
		Cache:      service.NewResultCache(cfg.CacheTTL),
		Events:     events,
		Metrics:    metrics,
		Session: render.SessionOptions{
			Viewport:          render.Viewport{Width: cfg.ViewportWidth, Height: cfg.ViewportHeight},
			NavigationTimeout: cfg.NavigationTimeout,
		},
	})
	handler := transport.NewHandler(analysisService, cfg)

	return &Container{
		config:          cfg,
		renderer:        renderer,
		repository:      repo,
		workerPool:      pool,
		events:          events,
		metrics:         metrics,
		analysisService: analysisService,
		handler:         handler,
	}, nil
}

func openRepository(path string) (*repository.SQLiteRepository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	return repository.OpenSQLite(path)
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Service returns the analysis service
func (c *Container) Service() service.AnalysisService {
	return c.analysisService
}

// Close stops the worker pool, flushes pending events and releases the
// browser and the report store. Call it after the HTTP server has stopped.
func (c *Container) Close() error {
	c.workerPool.Close()
	c.events.Wait()

	return errors.Join(c.renderer.Close(), c.repository.Close())
}
