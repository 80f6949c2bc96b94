package repository

import (
	"context"

	"github.com/anime-shed/page-inspector-go/pkg/models"
)

// AnalysisRepository defines the interface for analysis report operations
type AnalysisRepository interface {
	// Save stores a report, replacing any report with the same ID
	Save(ctx context.Context, analysis *models.Analysis) error

	// GetByID retrieves a stored report
	GetByID(ctx context.Context, id string) (*models.Analysis, error)

	// GetLatestByURL retrieves the most recent report for a normalized URL
	GetLatestByURL(ctx context.Context, url string) (*models.Analysis, error)

	// ListPublic returns public reports, newest first
	ListPublic(ctx context.Context, limit int) ([]*models.Analysis, error)

	// SetPublic changes the visibility of a report and returns the updated report
	SetPublic(ctx context.Context, id string, isPublic bool) (*models.Analysis, error)

	// Delete removes a report
	Delete(ctx context.Context, id string) error

	Close() error
}
