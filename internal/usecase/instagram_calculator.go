package usecase

import (
	"github.com/TecMrDocs/whispertrend/internal/domain"
	"github.com/TecMrDocs/whispertrend/pkg/logger"
	"github.com/TecMrDocs/whispertrend/pkg/metrics"
)

// InstagramCalculator derives interaction and virality rate series from raw
// Instagram counters.
type InstagramCalculator struct {
	logger  *logger.Logger
	metrics *metrics.Metrics
	randFn  func() float64
}

// NewInstagramCalculator creates a new Instagram calculator.
func NewInstagramCalculator(logger *logger.Logger, metrics *metrics.Metrics) *InstagramCalculator {
	return &InstagramCalculator{
		logger:  logger,
		metrics: metrics,
		randFn:  defaultRand,
	}
}

// ComputeRates turns per-month raw counters into interaction and virality
// series for every hashtag. Missing counters degrade to backfilled values,
// never to an error.
//
// Interaction = (likes + comments) / views × 100, views defaulting to 1.
// Virality = (comments + shares) / followers × 100, shares defaulting to 10%
// of comments and followers to 10000.
func (c *InstagramCalculator) ComputeRates(input domain.InstagramInput) *domain.PlatformResult {
	months := domain.CanonicalMonths()
	hashtags := make([]domain.HashtagRates, 0, len(input.Hashtags))

	for _, h := range input.Hashtags {
		interaction := make([]domain.RateSample, 0, len(months))
		for i, month := range months {
			likes := intAt(h.Likes, i)
			comments := intAt(h.Comments, i)
			views := intAt(h.Views, i)
			if views == 0 {
				views = 1
			}

			raw := float64(likes+comments) / float64(views) * 100
			interaction = append(interaction, domain.RateSample{
				Date: month,
				Rate: instagramInteractionPolicy.resolve(raw, i, c.randFn),
			})
		}

		virality := make([]domain.RateSample, 0, len(months))
		for i, month := range months {
			comments := intAt(h.Comments, i)
			shares := intAt(h.Shares, i)
			if shares == 0 {
				shares = comments / 10
			}
			followers := intAt(h.Followers, i)
			if followers == 0 {
				followers = 10000
			}

			raw := float64(comments+shares) / float64(followers) * 100
			virality = append(virality, domain.RateSample{
				Date: month,
				Rate: instagramViralityPolicy.resolve(raw, i, c.randFn),
			})
		}

		c.metrics.RecordRateSamples("instagram", "interaction", len(interaction))
		c.metrics.RecordRateSamples("instagram", "virality", len(virality))

		hashtags = append(hashtags, domain.HashtagRates{
			ID:                h.ID,
			Name:              h.Hashtag,
			InteractionSeries: sortByCanonicalMonth(interaction),
			ViralitySeries:    sortByCanonicalMonth(virality),
			Raw: domain.RawSeries{
				Dates:     months,
				Likes:     h.Likes,
				Comments:  h.Comments,
				Views:     h.Views,
				Followers: h.Followers,
				Shares:    h.Shares,
			},
		})
	}

	c.logger.WithField("hashtags", len(hashtags)).Debug("Instagram rates computed")

	return &domain.PlatformResult{
		Platform: domain.PlatformInstagram,
		Name:     domain.PlatformInstagram.DisplayName(),
		Emoji:    domain.PlatformInstagram.Emoji(),
		Hashtags: hashtags,
	}
}
