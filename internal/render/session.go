package render

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/anime-shed/page-inspector-go/internal/errors"
	"github.com/anime-shed/page-inspector-go/internal/logger"
	"github.com/sirupsen/logrus"
)

// SessionOptions configures one render session
type SessionOptions struct {
	Viewport          Viewport
	NavigationTimeout time.Duration
}

// DefaultSessionOptions returns a 1920x1080 viewport and a 30s navigation bound
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		Viewport:          DefaultViewport,
		NavigationTimeout: DefaultNavigationTimeout,
	}
}

// Session is a navigated page handed to the callback of WithSession.
type Session struct {
	Page     Page
	URL      string
	Viewport Viewport
	LoadTime time.Duration
}

// WithSession opens a page, navigates to url and runs fn against it.
// The page is closed exactly once on every exit path, including
// navigation failure, an error from fn and a panic in fn.
// Errors are returned as *apperrors.AppError.
func WithSession(ctx context.Context, r Renderer, url string, opts SessionOptions, fn func(ctx context.Context, s *Session) error) (err error) {
	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		opts.Viewport = DefaultViewport
	}
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = DefaultNavigationTimeout
	}

	page, err := r.NewPage(ctx, opts.Viewport)
	if err != nil {
		return apperrors.NewRenderError(MsgRenderFailed, fmt.Errorf("open page: %w", err))
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			logger.WithError(cerr).WithField("url", url).Warn("Failed to close render session")
		}
	}()

	navCtx, cancel := context.WithTimeout(ctx, opts.NavigationTimeout)
	start := time.Now()
	navErr := page.Navigate(navCtx, url)
	cancel()
	if navErr != nil {
		classified := ClassifyNavigationError(navErr)
		logger.WithError(navErr).WithFields(logrus.Fields{
			"url":        url,
			"error_type": classified.Type,
		}).Debug("Navigation failed")
		return classified
	}

	session := &Session{
		Page:     page,
		URL:      url,
		Viewport: opts.Viewport,
		LoadTime: time.Since(start),
	}
	if err := fn(ctx, session); err != nil {
		if _, ok := apperrors.As(err); ok {
			return err
		}
		return apperrors.NewRenderError(MsgRenderFailed, err)
	}
	return nil
}
