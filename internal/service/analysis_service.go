package service

import (
	"context"
	"errors"
	"time"

	"github.com/anime-shed/page-inspector-go/internal/analyzer"
	apperrors "github.com/anime-shed/page-inspector-go/internal/errors"
	"github.com/anime-shed/page-inspector-go/internal/logger"
	"github.com/anime-shed/page-inspector-go/internal/observer"
	"github.com/anime-shed/page-inspector-go/internal/render"
	"github.com/anime-shed/page-inspector-go/internal/repository"
	"github.com/anime-shed/page-inspector-go/pkg/models"
	"github.com/anime-shed/page-inspector-go/pkg/validation"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// AnalysisService defines the page analysis use cases
type AnalysisService interface {
	// Analyze renders the page at rawURL and returns its full report
	Analyze(ctx context.Context, rawURL string) (*models.Analysis, error)

	// Stored reports
	Get(ctx context.Context, id string) (*models.Analysis, error)
	Latest(ctx context.Context, rawURL string) (*models.Analysis, error)
	ListPublic(ctx context.Context, limit int) ([]*models.Analysis, error)
	SetPublic(ctx context.Context, id string, isPublic bool) (*models.Analysis, error)
	Delete(ctx context.Context, id string) error

	// Stats returns runtime counters
	Stats() map[string]interface{}
}

// HeatmapGenerator produces the heatmap for a navigated page
type HeatmapGenerator interface {
	Generate(ctx context.Context, s *render.Session) (models.HeatmapData, error)
}

// Dependencies wires an analysis service
type Dependencies struct {
	Renderer   render.Renderer
	Analyzer   analyzer.PageAnalyzer
	Heatmap    HeatmapGenerator
	Repository repository.AnalysisRepository
	Validator  *validation.URLValidator
	Pool       *analyzer.WorkerPool
	Cache      *ResultCache
	Events     observer.Subject
	Metrics    *observer.MetricsObserver
	Session    render.SessionOptions
}

// analysisService implements AnalysisService
type analysisService struct {
	deps Dependencies
	now  func() time.Time
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(deps Dependencies) AnalysisService {
	if deps.Validator == nil {
		deps.Validator = validation.NewURLValidator()
	}
	if deps.Cache == nil {
		deps.Cache = NewResultCache(0)
	}
	if deps.Events == nil {
		deps.Events = observer.NewEventPublisher()
	}
	return &analysisService{deps: deps, now: time.Now}
}

// Analyze implements AnalysisService
func (s *analysisService) Analyze(ctx context.Context, rawURL string) (*models.Analysis, error) {
	pageURL, err := s.deps.Validator.Validate(rawURL)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.deps.Cache.Get(pageURL); ok {
		s.publish(ctx, observer.AnalysisEvent{EventType: observer.CacheHit, PageURL: pageURL, AnalysisID: cached.ID, Success: true})
		return cached, nil
	}

	start := s.now()
	s.publish(ctx, observer.AnalysisEvent{EventType: observer.AnalysisStarted, PageURL: pageURL})

	var analysis *models.Analysis
	run := func(ctx context.Context) error {
		var err error
		analysis, err = s.analyze(ctx, pageURL)
		return err
	}
	if s.deps.Pool != nil {
		err = s.deps.Pool.Do(ctx, run)
	} else {
		err = run(ctx)
	}

	if err != nil {
		err = classifyRunError(err)
		s.publish(ctx, observer.AnalysisEvent{
			EventType:      observer.AnalysisFailed,
			PageURL:        pageURL,
			ProcessingTime: s.now().Sub(start),
			ErrorMessage:   err.Error(),
		})
		return nil, err
	}

	if s.deps.Repository != nil {
		if err := s.deps.Repository.Save(ctx, analysis); err != nil {
			logger.WithError(err).WithField("analysis_id", analysis.ID).Error("Failed to persist analysis")
		}
	}
	s.deps.Cache.Set(pageURL, analysis)

	s.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisCompleted,
		PageURL:        pageURL,
		AnalysisID:     analysis.ID,
		ProcessingTime: s.now().Sub(start),
		Success:        true,
		Metadata: map[string]interface{}{
			"seo_score":      analysis.SEOScore,
			"heatmap_points": len(analysis.HeatmapData.HeatmapPoints),
		},
	})
	return analysis, nil
}

// analyze runs the analysis and heatmap sessions in parallel. Only the
// analysis session can fail the report; a heatmap failure degrades to an
// empty heatmap.
func (s *analysisService) analyze(ctx context.Context, pageURL string) (*models.Analysis, error) {
	var (
		report  *analyzer.Report
		heatmap = models.EmptyHeatmapData()
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return render.WithSession(gctx, s.deps.Renderer, pageURL, s.deps.Session, func(ctx context.Context, session *render.Session) error {
			var err error
			report, err = s.deps.Analyzer.Analyze(ctx, session)
			return err
		})
	})
	if s.deps.Heatmap != nil {
		g.Go(func() error {
			err := render.WithSession(gctx, s.deps.Renderer, pageURL, s.deps.Session, func(ctx context.Context, session *render.Session) error {
				data, err := s.deps.Heatmap.Generate(ctx, session)
				if err != nil {
					return err
				}
				heatmap = data
				return nil
			})
			if err != nil {
				heatmap = models.EmptyHeatmapData()
				if gctx.Err() != nil {
					// the analysis session failed first
					return nil
				}
				s.publish(ctx, observer.AnalysisEvent{
					EventType:    observer.HeatmapDegraded,
					PageURL:      pageURL,
					ErrorMessage: err.Error(),
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.assemble(pageURL, report, heatmap), nil
}

func (s *analysisService) assemble(pageURL string, report *analyzer.Report, heatmap models.HeatmapData) *models.Analysis {
	now := s.now().UTC()
	return &models.Analysis{
		ID:                uuid.NewString(),
		URL:               pageURL,
		Title:             report.Title,
		ScreenshotURL:     heatmap.Screenshot,
		HeatmapURL:        heatmap.HeatmapImage,
		SEOScore:          report.SEOScore(),
		LoadTime:          report.Technical.Performance.LoadTime,
		PageSize:          report.PageSize,
		Technologies:      report.Technical.Technologies,
		Insights:          report.Insights(),
		IsPublic:          true,
		ContentAnalysis:   report.Content,
		SeoAnalysis:       report.SEO,
		TechnicalAnalysis: report.Technical,
		HeatmapData:       heatmap,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// classifyRunError maps pool and context errors onto the error taxonomy
func classifyRunError(err error) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(render.MsgTimeout, err)
	}
	return apperrors.NewInternalError(apperrors.GenericMessage, err)
}

// Get implements AnalysisService
func (s *analysisService) Get(ctx context.Context, id string) (*models.Analysis, error) {
	if err := s.requireRepository(); err != nil {
		return nil, err
	}
	a, err := s.deps.Repository.GetByID(ctx, id)
	return a, repositoryError(err)
}

// Latest implements AnalysisService
func (s *analysisService) Latest(ctx context.Context, rawURL string) (*models.Analysis, error) {
	pageURL, err := s.deps.Validator.Validate(rawURL)
	if err != nil {
		return nil, err
	}
	if err := s.requireRepository(); err != nil {
		return nil, err
	}
	a, err := s.deps.Repository.GetLatestByURL(ctx, pageURL)
	return a, repositoryError(err)
}

// ListPublic implements AnalysisService
func (s *analysisService) ListPublic(ctx context.Context, limit int) ([]*models.Analysis, error) {
	if err := s.requireRepository(); err != nil {
		return nil, err
	}
	list, err := s.deps.Repository.ListPublic(ctx, limit)
	return list, repositoryError(err)
}

// SetPublic implements AnalysisService
func (s *analysisService) SetPublic(ctx context.Context, id string, isPublic bool) (*models.Analysis, error) {
	if err := s.requireRepository(); err != nil {
		return nil, err
	}
	a, err := s.deps.Repository.SetPublic(ctx, id, isPublic)
	if err != nil {
		return nil, repositoryError(err)
	}
	s.deps.Cache.Invalidate(id)
	return a, nil
}

// Delete implements AnalysisService
func (s *analysisService) Delete(ctx context.Context, id string) error {
	if err := s.requireRepository(); err != nil {
		return err
	}
	if err := s.deps.Repository.Delete(ctx, id); err != nil {
		return repositoryError(err)
	}
	s.deps.Cache.Invalidate(id)
	return nil
}

// Stats implements AnalysisService
func (s *analysisService) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"cached_reports": s.deps.Cache.ItemCount(),
	}
	if s.deps.Metrics != nil {
		stats["analyses"] = s.deps.Metrics.GetMetrics()
	}
	if s.deps.Pool != nil {
		stats["worker_pool"] = s.deps.Pool.GetStats()
	}
	return stats
}

func (s *analysisService) requireRepository() error {
	if s.deps.Repository == nil {
		return apperrors.NewInternalError("Report storage is not configured", repository.ErrRepositoryUnavailable)
	}
	return nil
}

func repositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrAnalysisNotFound):
		return apperrors.NewNotFoundError("Analysis not found", err)
	default:
		return apperrors.NewInternalError("Failed to access stored analyses", err)
	}
}

func (s *analysisService) publish(ctx context.Context, event observer.AnalysisEvent) {
	event.Timestamp = s.now()
	s.deps.Events.NotifyObservers(context.WithoutCancel(ctx), event)
}
