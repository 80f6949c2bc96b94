package transport

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/anime-shed/page-inspector-go/internal/config"
	apperrors "github.com/anime-shed/page-inspector-go/internal/errors"
	"github.com/anime-shed/page-inspector-go/internal/logger"
	"github.com/anime-shed/page-inspector-go/internal/service"
	"github.com/anime-shed/page-inspector-go/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// MsgInvalidRequest is returned for bodies that do not decode
const MsgInvalidRequest = "Invalid request data"

func NewHandler(svc service.AnalysisService, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/health", healthCheck)
	r.GET("/stats", stats(svc))
	r.POST("/analyze", rateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst), analyzePage(svc, cfg))

	analyses := r.Group("/analyses")
	analyses.GET("", listAnalyses(svc))
	analyses.GET("/:id", getAnalysis(svc))
	analyses.PATCH("/:id", updateAnalysis(svc))
	analyses.DELETE("/:id", deleteAnalysis(svc))

	return r
}

func analyzePage(svc service.AnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		// Log request start
		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing page analysis request")

		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperrors.NewValidationError(MsgInvalidRequest, err))
			return
		}

		analysis, err := svc.Analyze(ctx, req.URL)
		if err != nil {
			respondError(c, err)
			return
		}

		// Log successful completion
		logger.WithFields(logrus.Fields{
			"url":                analysis.URL,
			"analysis_id":        analysis.ID,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
			"seo_score":          analysis.SEOScore,
		}).Info("Page analysis completed successfully")

		c.JSON(http.StatusOK, analysis)
	}
}

// listAnalyses serves the latest report for ?url= or the public list
func listAnalyses(svc service.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pageURL := c.Query("url"); pageURL != "" {
			analysis, err := svc.Latest(c.Request.Context(), pageURL)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, analysis)
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				respondError(c, apperrors.NewValidationError("limit must be a non-negative integer", err))
				return
			}
			limit = n
		}

		list, err := svc.ListPublic(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		resp := models.AnalysisListResponse{Analyses: make([]models.Analysis, 0, len(list)), Count: len(list)}
		for _, a := range list {
			resp.Analyses = append(resp.Analyses, *a)
		}
		c.JSON(http.StatusOK, resp)
	}
}

func getAnalysis(svc service.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		analysis, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, analysis)
	}
}

func updateAnalysis(svc service.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UpdateAnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.IsPublic == nil {
			respondError(c, apperrors.NewValidationError(MsgInvalidRequest, err))
			return
		}

		analysis, err := svc.SetPublic(c.Request.Context(), c.Param("id"), *req.IsPublic)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, analysis)
	}
}

func deleteAnalysis(svc service.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func stats(svc service.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Stats())
	}
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			respondError(c, c.Errors.Last().Err)
		}
	}
}

func determineStatusCode(err error) int {
	// Check if it's a custom app error first
	if appErr, ok := apperrors.As(err); ok {
		return appErr.StatusCode
	}

	// Fallback to context-based errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the public message of err. Causes are logged, never
// returned to the client.
func respondError(c *gin.Context, err error) {
	code := determineStatusCode(err)

	// Log the error with context
	entry := logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	})
	if code >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: apperrors.PublicMessage(err),
	})
}
