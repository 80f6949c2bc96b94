package service

import (
	"testing"
	"time"

	"github.com/anime-shed/page-inspector-go/pkg/models"
)

func TestResultCache_GetSet(t *testing.T) {
	rc := NewResultCache(time.Minute)
	a := &models.Analysis{ID: "a1", URL: "https://example.com"}

	if _, ok := rc.Get(a.URL); ok {
		t.Fatal("Expected empty cache")
	}
	rc.Set(a.URL, a)
	got, ok := rc.Get(a.URL)
	if !ok || got.ID != "a1" {
		t.Errorf("Expected cached analysis, got %v %v", got, ok)
	}
	if _, ok := rc.Get("https://other.example"); ok {
		t.Error("Expected miss for another URL")
	}
}

func TestResultCache_BucketRollover(t *testing.T) {
	rc := NewResultCache(10 * time.Minute)
	now := time.Date(2026, 1, 1, 12, 1, 0, 0, time.UTC)
	rc.now = func() time.Time { return now }

	rc.Set("https://example.com", &models.Analysis{ID: "a1"})
	now = now.Add(5 * time.Minute)
	if _, ok := rc.Get("https://example.com"); !ok {
		t.Error("Expected hit within the same bucket")
	}

	now = now.Add(5 * time.Minute)
	if _, ok := rc.Get("https://example.com"); ok {
		t.Error("Expected miss in the next bucket")
	}
}

func TestResultCache_Invalidate(t *testing.T) {
	rc := NewResultCache(time.Minute)
	rc.Set("https://a.example", &models.Analysis{ID: "a1"})
	rc.Set("https://b.example", &models.Analysis{ID: "b1"})

	rc.Invalidate("a1")
	if _, ok := rc.Get("https://a.example"); ok {
		t.Error("Expected invalidated entry to be gone")
	}
	if _, ok := rc.Get("https://b.example"); !ok {
		t.Error("Expected other entry to remain")
	}
}

func TestResultCache_Disabled(t *testing.T) {
	rc := NewResultCache(0)
	rc.Set("https://example.com", &models.Analysis{ID: "a1"})
	if _, ok := rc.Get("https://example.com"); ok {
		t.Error("Expected disabled cache to store nothing")
	}
	if rc.Enabled() || rc.ItemCount() != 0 {
		t.Error("Expected disabled cache")
	}
	rc.Invalidate("a1")
}

func TestResultCache_KeyOnDisabledCache(t *testing.T) {
	rc := NewResultCache(0)
	if got := rc.key("https://example.com"); got != "https://example.com|0" {
		t.Errorf("Expected single-bucket key, got %q", got)
	}
}

func TestResultCache_KeyBuckets(t *testing.T) {
	rc := NewResultCache(time.Minute)
	now := time.Unix(0, 0).Add(90 * time.Second)
	rc.now = func() time.Time { return now }

	if got := rc.key("https://example.com"); got != "https://example.com|1" {
		t.Errorf("Expected bucket 1, got %q", got)
	}
}
