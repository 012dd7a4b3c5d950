package usecase

import (
	"github.com/TecMrDocs/whispertrend/internal/domain"
	"github.com/TecMrDocs/whispertrend/pkg/logger"
	"github.com/TecMrDocs/whispertrend/pkg/metrics"
)

// XCalculator derives interaction and virality rate series from raw X
// (Twitter) counters.
type XCalculator struct {
	logger  *logger.Logger
	metrics *metrics.Metrics
	randFn  func() float64
}

// NewXCalculator creates a new X calculator.
func NewXCalculator(logger *logger.Logger, metrics *metrics.Metrics) *XCalculator {
	return &XCalculator{
		logger:  logger,
		metrics: metrics,
		randFn:  defaultRand,
	}
}

// ComputeRates turns per-month raw counters into interaction and virality
// series for every hashtag.
//
// Interaction = (likes + reposts + comments) / views × 100, views defaulting
// to 1. Virality = (reposts + comments + likes) / followers × 100, followers
// defaulting to 5000.
func (c *XCalculator) ComputeRates(input domain.XInput) *domain.PlatformResult {
	months := domain.CanonicalMonths()
	hashtags := make([]domain.HashtagRates, 0, len(input.Hashtags))

	for _, h := range input.Hashtags {
		interaction := make([]domain.RateSample, 0, len(months))
		for i, month := range months {
			likes := intAt(h.Likes, i)
			reposts := intAt(h.Reposts, i)
			comments := intAt(h.Comments, i)
			views := intAt(h.Views, i)
			if views == 0 {
				views = 1
			}

			raw := float64(likes+reposts+comments) / float64(views) * 100
			interaction = append(interaction, domain.RateSample{
				Date: month,
				Rate: xInteractionPolicy.resolve(raw, i, c.randFn),
			})
		}

		virality := make([]domain.RateSample, 0, len(months))
		for i, month := range months {
			likes := intAt(h.Likes, i)
			reposts := intAt(h.Reposts, i)
			comments := intAt(h.Comments, i)
			followers := intAt(h.Followers, i)
			if followers == 0 {
				followers = 5000
			}

			raw := float64(reposts+comments+likes) / float64(followers) * 100
			virality = append(virality, domain.RateSample{
				Date: month,
				Rate: xViralityPolicy.resolve(raw, i, c.randFn),
			})
		}

		c.metrics.RecordRateSamples("x", "interaction", len(interaction))
		c.metrics.RecordRateSamples("x", "virality", len(virality))

		hashtags = append(hashtags, domain.HashtagRates{
			ID:                h.ID,
			Name:              h.Hashtag,
			InteractionSeries: sortByCanonicalMonth(interaction),
			ViralitySeries:    sortByCanonicalMonth(virality),
			Raw: domain.RawSeries{
				Dates:     months,
				Likes:     h.Likes,
				Reposts:   h.Reposts,
				Comments:  h.Comments,
				Views:     h.Views,
				Followers: h.Followers,
			},
		})
	}

	c.logger.WithField("hashtags", len(hashtags)).Debug("X rates computed")

	return &domain.PlatformResult{
		Platform: domain.PlatformX,
		Name:     domain.PlatformX.DisplayName(),
		Emoji:    domain.PlatformX.Emoji(),
		Hashtags: hashtags,
	}
}

// HashtagTrend labels the direction of one hashtag's interaction series.
type HashtagTrend struct {
	Hashtag string       `json:"hashtag"`
	Trend   domain.Trend `json:"trend"`
}

// DetectTrends compares the first and second half of each hashtag's
// interaction series and labels the direction; differences within 0.1 count
// as stable.
func DetectTrends(result *domain.PlatformResult) []HashtagTrend {
	trends := make([]HashtagTrend, 0, len(result.Hashtags))
	for _, h := range result.Hashtags {
		samples := h.InteractionSeries
		if len(samples) < 2 {
			trends = append(trends, HashtagTrend{Hashtag: h.Name, Trend: domain.TrendStable})
			continue
		}

		mid := len(samples) / 2
		first := average(rates(samples[:mid]))
		second := average(rates(samples[mid:]))

		trend := domain.TrendStable
		switch diff := second - first; {
		case diff > 0.1:
			trend = domain.TrendRising
		case diff < -0.1:
			trend = domain.TrendFalling
		}
		trends = append(trends, HashtagTrend{Hashtag: h.Name, Trend: trend})
	}
	return trends
}

// MostViralHashtag returns the hashtag with the highest average virality, or
// nil for an empty result.
func MostViralHashtag(result *domain.PlatformResult) *domain.HashtagRates {
	if len(result.Hashtags) == 0 {
		return nil
	}
	best := &result.Hashtags[0]
	bestAvg := 0.0
	for i := range result.Hashtags {
		avg := average(rates(result.Hashtags[i].ViralitySeries))
		if avg > bestAvg {
			bestAvg = avg
			best = &result.Hashtags[i]
		}
	}
	return best
}
