package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/TecMrDocs/whispertrend/internal/domain"
	"github.com/TecMrDocs/whispertrend/pkg/logger"
	"github.com/TecMrDocs/whispertrend/pkg/metrics"
)

// implements domain.TrendsClient
type HTTPTrendsClient struct {
	client       *http.Client
	baseURL      string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logger.Logger
	metrics      *metrics.Metrics
	rateLimiter  rate.Limiter
}

// creates a new trends API client
func NewHTTPTrendsClient(baseURL string, timeout time.Duration, maxRetries int, retryBackoff time.Duration, rateLimitPerSecond int, logger *logger.Logger, metrics *metrics.Metrics) *HTTPTrendsClient {
	return &HTTPTrendsClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:      baseURL,
		maxRetries:   maxRetries,
		retryBackoff: retryBackoff,
		logger:       logger,
		metrics:      metrics,
		rateLimiter:  *rate.NewLimiter(rate.Limit(rateLimitPerSecond), rateLimitPerSecond),
	}
}

// fetches a trends snapshot from the external API, retrying transient
// failures with a fixed backoff
func (c *HTTPTrendsClient) FetchTrends(ctx context.Context) (*domain.TrendsDocument, error) {
	if c.baseURL == "" {
		c.metrics.RecordExternalAPIFailure("trends", "not_configured")
		return nil, fmt.Errorf("trends API URL not configured")
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryBackoff):
			}
			c.logger.WithContext(ctx).WithField("attempt", attempt).Warn("Retrying trends fetch")
		}

		doc, err := c.fetchOnce(ctx)
		if err == nil {
			return doc, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("trends fetch failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *HTTPTrendsClient) fetchOnce(ctx context.Context) (*domain.TrendsDocument, error) {
	start := time.Now()

	// Apply rate limiting
	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordExternalAPIFailure("trends", "rate_limit")
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL, nil)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("trends", "request_creation")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("trends", "network_error")
		return nil, fmt.Errorf("failed to fetch trends data: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordExternalAPICall("trends", fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return nil, fmt.Errorf("trends API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("trends", "read_body")
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var doc domain.TrendsDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		c.metrics.RecordExternalAPIFailure("trends", "json_parse")
		return nil, fmt.Errorf("failed to parse trends data: %w", err)
	}

	if len(doc.Hashtags) == 0 {
		c.metrics.RecordExternalAPIFailure("trends", "empty_snapshot")
		return nil, fmt.Errorf("trends API returned no hashtags")
	}

	if emptyTrends(&doc.Trends) {
		c.metrics.RecordExternalAPIFailure("trends", "missing_trends")
		return nil, fmt.Errorf("trends API returned no trends data")
	}

	c.metrics.RecordExternalAPICall("trends", "success", duration)

	c.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"url":      c.baseURL,
		"duration": duration,
		"hashtags": len(doc.Hashtags),
	}).Info("Successfully fetched trends data")

	return &doc, nil
}

// emptyTrends reports whether the document's trends block carries no platform
// data and no metadata. A snapshot like that cannot feed the calculators, so
// the caller treats it as a failed fetch.
func emptyTrends(p *domain.TrendsPayload) bool {
	return len(p.Data.Instagram) == 0 &&
		len(p.Data.Reddit) == 0 &&
		len(p.Data.Twitter) == 0 &&
		len(p.Metadata) == 0
}
