package factory

import (
	"context"
	"fmt"

	"github.com/anime-shed/page-inspector-go/internal/analyzer"
	"github.com/anime-shed/page-inspector-go/internal/config"
	"github.com/anime-shed/page-inspector-go/internal/heatmap"
	"github.com/anime-shed/page-inspector-go/internal/ocr"
	"github.com/anime-shed/page-inspector-go/internal/ocr/tesseract"
	"github.com/anime-shed/page-inspector-go/internal/render"
	"github.com/anime-shed/page-inspector-go/internal/storage"
)

// RendererFactory creates page renderers
type RendererFactory interface {
	CreateRenderer(cfg *config.Config) (render.Renderer, error)
}

// StorageFactory creates artifact stores for heatmap images
type StorageFactory interface {
	CreateStorage(ctx context.Context, cfg *config.Config) (heatmap.ArtifactStore, error)
}

// AnalyzerFactory creates page analyzers
type AnalyzerFactory interface {
	CreateAnalyzer(cfg *config.Config) analyzer.PageAnalyzer
}

// rendererFactory implements RendererFactory
type rendererFactory struct{}

// NewRendererFactory creates a new renderer factory
func NewRendererFactory() RendererFactory {
	return &rendererFactory{}
}

// CreateRenderer creates a renderer based on cfg.Renderer
func (f *rendererFactory) CreateRenderer(cfg *config.Config) (render.Renderer, error) {
	switch cfg.Renderer {
	case config.RendererRod:
		return render.NewRodRenderer(render.RodConfig{
			RemoteURL: cfg.BrowserRemoteURL,
			Stealth:   cfg.BrowserStealth,
		}), nil
	case config.RendererStatic:
		return render.NewStaticRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported renderer: %s", cfg.Renderer)
	}
}

// storageFactory implements StorageFactory
type storageFactory struct{}

// NewStorageFactory creates a new storage factory
func NewStorageFactory() StorageFactory {
	return &storageFactory{}
}

// CreateStorage creates an artifact store based on cfg.ArtifactStore.
// The azure container is created if it does not exist.
func (f *storageFactory) CreateStorage(ctx context.Context, cfg *config.Config) (heatmap.ArtifactStore, error) {
	switch cfg.ArtifactStore {
	case config.ArtifactStoreInline:
		return storage.NewInlineStore(), nil
	case config.ArtifactStoreAzure:
		store, err := storage.NewAzureStore(cfg.AzureStorageAccount, cfg.AzureStorageKey, cfg.AzureStorageContainer)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureContainer(ctx); err != nil {
			return nil, fmt.Errorf("ensure container %q: %w", cfg.AzureStorageContainer, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported artifact store: %s", cfg.ArtifactStore)
	}
}

// analyzerFactory implements AnalyzerFactory
type analyzerFactory struct{}

// NewAnalyzerFactory creates a new analyzer factory
func NewAnalyzerFactory() AnalyzerFactory {
	return &analyzerFactory{}
}

// CreateAnalyzer creates the page analyzer. The OCR legibility check is
// attached when cfg.OCREnabled is set.
func (f *analyzerFactory) CreateAnalyzer(cfg *config.Config) analyzer.PageAnalyzer {
	opts := analyzer.DefaultOptions()
	if cfg.OCREnabled {
		opts = opts.WithLegibility(ocr.NewChecker(tesseract.NewRecognizer(cfg.OCRLanguage)))
	}
	return analyzer.NewPageAnalyzer(opts)
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	RendererFactory RendererFactory
	StorageFactory  StorageFactory
	AnalyzerFactory AnalyzerFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory() *ComponentFactory {
	return &ComponentFactory{
		RendererFactory: NewRendererFactory(),
		StorageFactory:  NewStorageFactory(),
		AnalyzerFactory: NewAnalyzerFactory(),
	}
}
