package heatmap

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/anime-shed/page-inspector-go/internal/dom"
)

type evalCall struct {
	name   string
	ctxErr error
}

type recordingPage struct {
	mu        sync.Mutex
	calls     []evalCall
	injectErr error
}

func (p *recordingPage) Navigate(ctx context.Context, url string) error { return nil }

func (p *recordingPage) Evaluate(ctx context.Context, script dom.Script, out any) error {
	p.mu.Lock()
	p.calls = append(p.calls, evalCall{name: script.Name, ctxErr: ctx.Err()})
	p.mu.Unlock()
	if script.Name == dom.NameInjectOverlay {
		return p.injectErr
	}
	return nil
}

func (p *recordingPage) Screenshot(ctx context.Context) ([]byte, error) { return []byte("png"), nil }

func (p *recordingPage) Close() error { return nil }

func (p *recordingPage) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, len(p.calls))
	for i, c := range p.calls {
		names[i] = c.name
	}
	return names
}

func TestBuildOverlayCSS(t *testing.T) {
	css := BuildOverlayCSS([]Point{
		{X: 200, Y: 300, Value: 1.0},
		{X: 500, Y: 500, Value: 0.5},
		{X: 800, Y: 800, Value: 0.4},
	})

	expected := []string{
		".heatmap-point{position:absolute;border-radius:50%;pointer-events:none;z-index:999999;mix-blend-mode:multiply}",
		".heatmap-point-0{left:100px;top:200px;width:200px;height:200px;",
		"rgba(255,0,0,0.4) 0%, rgba(255,100,0,0.2) 50%, rgba(255,200,0,0) 100%",
		".heatmap-point-1{left:420px;top:420px;width:160px;height:160px;",
		"rgba(255,150,0,0.15) 0%, rgba(255,200,0,0.075) 50%",
		".heatmap-point-2{",
		"rgba(0,150,255,0.1) 0%",
	}
	for _, s := range expected {
		if !strings.Contains(css, s) {
			t.Errorf("Expected CSS to contain %q\n%s", s, css)
		}
	}

	if strings.Index(css, ".heatmap-point-0{") > strings.Index(css, ".heatmap-point-1{") {
		t.Error("Expected points in insertion order")
	}
}

func TestIntensityAndRadius(t *testing.T) {
	tests := []struct {
		value     float64
		intensity float64
		radius    float64
	}{
		{0, 0.1, 64},
		{0.05, 0.1, 64},
		{0.5, 0.5, 80},
		{1, 1, 100},
		{3, 1, 100},
	}

	for _, tt := range tests {
		if got := Intensity(tt.value); got != tt.intensity {
			t.Errorf("Intensity(%v) = %v, expected %v", tt.value, got, tt.intensity)
		}
		if got := Radius(tt.value); !approxEqual(got, tt.radius) {
			t.Errorf("Radius(%v) = %v, expected %v", tt.value, got, tt.radius)
		}
	}
}

func TestGradientBands(t *testing.T) {
	tests := []struct {
		value  float64
		prefix string
	}{
		{0.71, "radial-gradient(circle, rgba(255,0,0,"},
		{0.7, "radial-gradient(circle, rgba(255,150,0,"},
		{0.41, "radial-gradient(circle, rgba(255,150,0,"},
		{0.4, "radial-gradient(circle, rgba(0,150,255,"},
		{0, "radial-gradient(circle, rgba(0,150,255,"},
	}

	for _, tt := range tests {
		if got := gradientFor(tt.value); !strings.HasPrefix(got, tt.prefix) {
			t.Errorf("gradientFor(%v) = %q, expected prefix %q", tt.value, got, tt.prefix)
		}
	}
}

func TestWithOverlay_RemovesAfterCapture(t *testing.T) {
	page := &recordingPage{}
	captured := false

	err := WithOverlay(context.Background(), page, []Point{{X: 1, Y: 1, Value: 1}}, func(ctx context.Context) error {
		captured = true
		if names := page.names(); len(names) != 1 || names[0] != dom.NameInjectOverlay {
			t.Errorf("Expected overlay injected before capture, got %v", names)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !captured {
		t.Error("Expected capture to run")
	}

	names := page.names()
	if len(names) != 2 || names[1] != dom.NameRemoveOverlay {
		t.Errorf("Expected inject then remove, got %v", names)
	}
}

func TestWithOverlay_RemovesWhenCaptureFails(t *testing.T) {
	page := &recordingPage{}
	captureErr := errors.New("capture failed")

	err := WithOverlay(context.Background(), page, nil, func(ctx context.Context) error {
		return captureErr
	})
	if !errors.Is(err, captureErr) {
		t.Fatalf("Expected capture error, got %v", err)
	}
	if names := page.names(); len(names) != 2 || names[1] != dom.NameRemoveOverlay {
		t.Errorf("Expected overlay removal after failed capture, got %v", names)
	}
}

func TestWithOverlay_RemovesOnDetachedContext(t *testing.T) {
	page := &recordingPage{}
	ctx, cancel := context.WithCancel(context.Background())

	err := WithOverlay(ctx, page, nil, func(ctx context.Context) error {
		cancel()
		return ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}

	page.mu.Lock()
	defer page.mu.Unlock()
	last := page.calls[len(page.calls)-1]
	if last.name != dom.NameRemoveOverlay {
		t.Fatalf("Expected final call to remove the overlay, got %s", last.name)
	}
	if last.ctxErr != nil {
		t.Errorf("Expected removal context to survive caller cancellation, got %v", last.ctxErr)
	}
}

func TestWithOverlay_InjectFailure(t *testing.T) {
	page := &recordingPage{injectErr: errors.New("boom")}

	err := WithOverlay(context.Background(), page, nil, func(ctx context.Context) error {
		t.Error("Capture must not run when injection fails")
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "inject overlay") {
		t.Fatalf("Expected inject error, got %v", err)
	}
	if names := page.names(); len(names) != 2 || names[1] != dom.NameRemoveOverlay {
		t.Errorf("Expected cleanup after failed injection, got %v", names)
	}
}
