package delivery

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/TecMrDocs/whispertrend/internal/domain"
	"github.com/TecMrDocs/whispertrend/internal/usecase"
	"github.com/TecMrDocs/whispertrend/pkg/logger"
	"github.com/TecMrDocs/whispertrend/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// handles HTTP requests
type HTTPHandlers struct {
	analysisService      *usecase.AnalysisService
	consolidationService *usecase.ConsolidationService
	repository           domain.AnalysisRepository
	logger               *logger.Logger
	metrics              *metrics.Metrics
}

// creates new HTTP handlers
func NewHTTPHandlers(
	analysisService *usecase.AnalysisService,
	consolidationService *usecase.ConsolidationService,
	repository domain.AnalysisRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *HTTPHandlers {
	return &HTTPHandlers{
		analysisService:      analysisService,
		consolidationService: consolidationService,
		repository:           repository,
		logger:               logger,
		metrics:              metrics,
	}
}

// RunAnalysis executes the full pipeline for a caller-supplied request
func (h *HTTPHandlers) RunAnalysis(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	log := h.logger.WithContext(ctx)
	log.Info("Starting analysis run")

	var req domain.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordHTTPRequest("POST", "/analysis/run", "400", time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid request body",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	dashboard, status, err := h.runPipeline(ctx, req)
	if err != nil {
		h.metrics.RecordHTTPRequest("POST", "/analysis/run", strconv.Itoa(status), time.Since(start))
		log.WithError(err).Error("Analysis run failed")
		c.JSON(status, gin.H{
			"error":      "Analysis failed",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	analysisID := uuid.New().String()
	if err := h.repository.Store(ctx, domain.StoredAnalysis{ID: analysisID, Dashboard: dashboard}); err != nil {
		log.WithError(err).Warn("Failed to store analysis result")
	}

	h.metrics.RecordHTTPRequest("POST", "/analysis/run", "200", time.Since(start))
	h.metrics.RecordAnalysisRun("success", string(dashboard.Meta.Source), time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"analysis_id": analysisID,
		"dashboard":   dashboard,
		"request_id":  requestID,
	})
}

// RunDemo executes the pipeline over the built-in snapshot
func (h *HTTPHandlers) RunDemo(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	dashboard, status, err := h.runPipeline(ctx, domain.AnalysisRequest{Demo: true})
	if err != nil {
		h.metrics.RecordHTTPRequest("GET", "/analysis/demo", strconv.Itoa(status), time.Since(start))
		h.logger.WithContext(ctx).WithError(err).Error("Demo analysis failed")
		c.JSON(status, gin.H{
			"error":      "Analysis failed",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("GET", "/analysis/demo", "200", time.Since(start))
	h.metrics.RecordAnalysisRun("success", string(dashboard.Meta.Source), time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"dashboard":  dashboard,
		"request_id": requestID,
	})
}

// GetAnalysis retrieves a previously stored analysis by ID
func (h *HTTPHandlers) GetAnalysis(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	id := c.Param("id")
	analysis, err := h.repository.GetByID(ctx, id)
	if err != nil {
		h.metrics.RecordHTTPRequest("GET", "/analysis/:id", "404", time.Since(start))
		c.JSON(http.StatusNotFound, gin.H{
			"error":      "Analysis not found",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("GET", "/analysis/:id", "200", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"analysis":   analysis,
		"request_id": requestID,
	})
}

// ListAnalyses returns the most recent stored analyses
func (h *HTTPHandlers) ListAnalyses(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()
	ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)

	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			h.metrics.RecordHTTPRequest("GET", "/analysis", "400", time.Since(start))
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Invalid parameters",
				"message":    "limit must be a positive integer",
				"request_id": requestID,
			})
			return
		}
		limit = parsed
	}

	analyses, err := h.repository.List(ctx, limit)
	if err != nil {
		h.metrics.RecordHTTPRequest("GET", "/analysis", "500", time.Since(start))
		h.logger.WithContext(ctx).WithError(err).Error("Failed to list analyses")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Failed to list analyses",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	h.metrics.RecordHTTPRequest("GET", "/analysis", "200", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"data":       analyses,
		"total":      len(analyses),
		"limit":      limit,
		"request_id": requestID,
	})
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()

	apiInfo := gin.H{
		"api_version": "v1",
		"service":     "WhisperTrend Analysis Service",
		"version":     "1.0.0",
		"description": "Hashtag performance analysis across Instagram, Reddit and X",
		"endpoints": gin.H{
			"analysis": gin.H{
				"description": "Run and retrieve hashtag analyses",
				"endpoints": gin.H{
					"run": gin.H{
						"path":        "/api/v1/analysis/run",
						"methods":     []string{"POST"},
						"description": "Run the analysis pipeline over a trends snapshot",
						"body":        "Optional: hashtags, trends data, pre-computed results, demo flag",
					},
					"demo": gin.H{
						"path":        "/api/v1/analysis/demo",
						"methods":     []string{"GET"},
						"description": "Run the analysis pipeline over the built-in demo snapshot",
					},
					"get": gin.H{
						"path":        "/api/v1/analysis/:id",
						"methods":     []string{"GET"},
						"description": "Retrieve a stored analysis by ID",
					},
					"list": gin.H{
						"path":        "/api/v1/analysis",
						"methods":     []string{"GET"},
						"description": "List recent analyses",
						"parameters": gin.H{
							"limit": "Optional: Number of results (default: 20)",
						},
					},
				},
			},
		},
		"rate_formulas": gin.H{
			"instagram_interaction": "(likes + comments) / views * 100",
			"instagram_virality":    "(comments + shares) / followers * 100",
			"reddit_interaction":    "(up_votes + comments) / hours",
			"reddit_virality":       "(up_votes + comments) / subscribers * 100",
			"x_interaction":         "(likes + reposts + comments) / views * 100",
			"x_virality":            "(reposts + comments + likes) / followers * 100",
		},
		"request_id": requestID,
	}

	h.metrics.RecordHTTPRequest("GET", "/api/v1", "200", time.Since(start))
	c.JSON(http.StatusOK, apiInfo)
}

// HealthCheck returns the health status of the service
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	start := time.Now()
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := uuid.New().String()

	health := gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"service":    "whispertrend",
		"version":    "1.0.0",
		"request_id": requestID,
	}

	h.metrics.RecordHTTPRequest("GET", "/health", "200", time.Since(start))
	c.JSON(http.StatusOK, health)
}

// runPipeline chains load and consolidation, mapping ErrNoHashtags to 422.
func (h *HTTPHandlers) runPipeline(ctx context.Context, req domain.AnalysisRequest) (*domain.DashboardModel, int, error) {
	result, err := h.analysisService.LoadAndPrepare(ctx, req)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	dashboard, err := h.consolidationService.Consolidate(ctx, result)
	if err != nil {
		if errors.Is(err, domain.ErrNoHashtags) {
			return nil, http.StatusUnprocessableEntity, err
		}
		return nil, http.StatusInternalServerError, err
	}
	return dashboard, http.StatusOK, nil
}
