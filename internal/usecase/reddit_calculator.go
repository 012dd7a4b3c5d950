package usecase

import (
	"github.com/TecMrDocs/whispertrend/internal/domain"
	"github.com/TecMrDocs/whispertrend/pkg/logger"
	"github.com/TecMrDocs/whispertrend/pkg/metrics"
)

// RedditCalculator derives interaction and virality rate series from raw
// Reddit counters.
type RedditCalculator struct {
	logger  *logger.Logger
	metrics *metrics.Metrics
	randFn  func() float64
}

// NewRedditCalculator creates a new Reddit calculator.
func NewRedditCalculator(logger *logger.Logger, metrics *metrics.Metrics) *RedditCalculator {
	return &RedditCalculator{
		logger:  logger,
		metrics: metrics,
		randFn:  defaultRand,
	}
}

// ComputeRates turns per-month raw counters into interaction and virality
// series for every hashtag.
//
// Interaction = (upvotes + comments) / hours, hours defaulting to 24. This is
// already a per-hour rate, so it is not multiplied by 100.
// Virality = (upvotes + comments) / subscribers × 100, subscribers defaulting
// to 100000.
func (c *RedditCalculator) ComputeRates(input domain.RedditInput) *domain.PlatformResult {
	months := domain.CanonicalMonths()
	hashtags := make([]domain.HashtagRates, 0, len(input.Hashtags))

	for _, h := range input.Hashtags {
		interaction := make([]domain.RateSample, 0, len(months))
		for i, month := range months {
			upvotes := intAt(h.UpVotes, i)
			comments := intAt(h.Comments, i)
			hours := intAt(h.Hours, i)
			if hours == 0 {
				hours = 24
			}

			raw := float64(upvotes+comments) / float64(hours)
			interaction = append(interaction, domain.RateSample{
				Date: month,
				Rate: redditInteractionPolicy.resolve(raw, i, c.randFn),
			})
		}

		virality := make([]domain.RateSample, 0, len(months))
		for i, month := range months {
			upvotes := intAt(h.UpVotes, i)
			comments := intAt(h.Comments, i)
			subscribers := intAt(h.Subscribers, i)
			if subscribers == 0 {
				subscribers = 100000
			}

			raw := float64(upvotes+comments) / float64(subscribers) * 100
			virality = append(virality, domain.RateSample{
				Date: month,
				Rate: redditViralityPolicy.resolve(raw, i, c.randFn),
			})
		}

		c.metrics.RecordRateSamples("reddit", "interaction", len(interaction))
		c.metrics.RecordRateSamples("reddit", "virality", len(virality))

		hashtags = append(hashtags, domain.HashtagRates{
			ID:                h.ID,
			Name:              h.Hashtag,
			InteractionSeries: sortByCanonicalMonth(interaction),
			ViralitySeries:    sortByCanonicalMonth(virality),
			Raw: domain.RawSeries{
				Dates:       months,
				UpVotes:     h.UpVotes,
				Comments:    h.Comments,
				Subscribers: h.Subscribers,
				Hours:       h.Hours,
			},
		})
	}

	c.logger.WithField("hashtags", len(hashtags)).Debug("Reddit rates computed")

	return &domain.PlatformResult{
		Platform: domain.PlatformReddit,
		Name:     domain.PlatformReddit.DisplayName(),
		Emoji:    domain.PlatformReddit.Emoji(),
		Hashtags: hashtags,
	}
}
