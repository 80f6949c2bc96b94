package storage

import (
	"context"
	"errors"
	"testing"
)

func TestInlineStore_Put(t *testing.T) {
	ref, err := NewInlineStore().Put(context.Background(), "ignored.png", "image/png", []byte("png"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if ref != "data:image/png;base64,cG5n" {
		t.Errorf("Unexpected data URI %q", ref)
	}
}

func TestInlineStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewInlineStore().Put(ctx, "x", "image/png", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestBlobURL(t *testing.T) {
	tests := []struct {
		service   string
		container string
		name      string
		expected  string
	}{
		{"https://acct.blob.core.windows.net/", "heatmaps", "a/heatmap.png", "https://acct.blob.core.windows.net/heatmaps/a/heatmap.png"},
		{"https://acct.blob.core.windows.net", "heatmaps", "/b.png", "https://acct.blob.core.windows.net/heatmaps/b.png"},
	}

	for _, tt := range tests {
		if got := BlobURL(tt.service, tt.container, tt.name); got != tt.expected {
			t.Errorf("BlobURL = %q, expected %q", got, tt.expected)
		}
	}
}

func TestNewAzureStore_InvalidKey(t *testing.T) {
	if _, err := NewAzureStore("account", "not base64!", "heatmaps"); err == nil {
		t.Error("Expected error for a key that is not base64")
	}
}
