package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anime-shed/page-inspector-go/pkg/models"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newAnalysis(id, url string, created time.Time, public bool) *models.Analysis {
	return &models.Analysis{
		ID:          id,
		URL:         url,
		Title:       "Title " + id,
		SEOScore:    60,
		IsPublic:    public,
		HeatmapData: models.EmptyHeatmapData(),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestSQLiteRepository_SaveAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	a := newAnalysis("a1", "https://example.com", created, true)
	a.Technologies = []string{"React"}
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Title a1" || got.SEOScore != 60 || len(got.Technologies) != 1 {
		t.Errorf("Unexpected analysis %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("Expected createdAt %v, got %v", created, got.CreatedAt)
	}
	if got.HeatmapData.HeatmapPoints == nil {
		t.Error("Expected empty heatmap points to survive a round trip as a non-nil slice")
	}
}

func TestSQLiteRepository_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrAnalysisNotFound) {
		t.Errorf("GetByID: expected ErrAnalysisNotFound, got %v", err)
	}
	if _, err := repo.GetLatestByURL(ctx, "https://nothing.example"); !errors.Is(err, ErrAnalysisNotFound) {
		t.Errorf("GetLatestByURL: expected ErrAnalysisNotFound, got %v", err)
	}
	if _, err := repo.SetPublic(ctx, "missing", false); !errors.Is(err, ErrAnalysisNotFound) {
		t.Errorf("SetPublic: expected ErrAnalysisNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, ErrAnalysisNotFound) {
		t.Errorf("Delete: expected ErrAnalysisNotFound, got %v", err)
	}
}

func TestSQLiteRepository_GetLatestByURL(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "new", "middle"} {
		offset := []time.Duration{0, 2 * time.Hour, time.Hour}[i]
		if err := repo.Save(ctx, newAnalysis(id, "https://example.com", base.Add(offset), true)); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}
	if err := repo.Save(ctx, newAnalysis("other", "https://other.example", base.Add(5*time.Hour), true)); err != nil {
		t.Fatalf("Save other: %v", err)
	}

	got, err := repo.GetLatestByURL(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("GetLatestByURL: %v", err)
	}
	if got.ID != "new" {
		t.Errorf("Expected newest analysis, got %s", got.ID)
	}
}

func TestSQLiteRepository_ListPublic(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	analyses := []*models.Analysis{
		newAnalysis("p1", "https://a.example", base, true),
		newAnalysis("private", "https://b.example", base.Add(time.Minute), false),
		newAnalysis("p2", "https://c.example", base.Add(2*time.Minute), true),
	}
	for _, a := range analyses {
		if err := repo.Save(ctx, a); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	list, err := repo.ListPublic(ctx, 0)
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(list) != 2 || list[0].ID != "p2" || list[1].ID != "p1" {
		ids := make([]string, len(list))
		for i, a := range list {
			ids[i] = a.ID
		}
		t.Errorf("Expected [p2 p1], got %v", ids)
	}

	limited, err := repo.ListPublic(ctx, 1)
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 analysis with limit, got %d", len(limited))
	}
}

func TestSQLiteRepository_SetPublicAndDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.Save(ctx, newAnalysis("a1", "https://example.com", created, true)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	updated, err := repo.SetPublic(ctx, "a1", false)
	if err != nil {
		t.Fatalf("SetPublic: %v", err)
	}
	if updated.IsPublic || !updated.UpdatedAt.After(created) {
		t.Errorf("Unexpected updated analysis %+v", updated)
	}

	list, _ := repo.ListPublic(ctx, 10)
	if len(list) != 0 {
		t.Errorf("Expected private analysis to be hidden, got %d", len(list))
	}
	got, _ := repo.GetByID(ctx, "a1")
	if got.IsPublic {
		t.Error("Expected stored report to be private")
	}

	if err := repo.Delete(ctx, "a1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "a1"); !errors.Is(err, ErrAnalysisNotFound) {
		t.Errorf("Expected deleted analysis to be gone, got %v", err)
	}
}
