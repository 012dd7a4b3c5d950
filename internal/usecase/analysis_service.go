package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/TecMrDocs/whispertrend/internal/domain"
	"github.com/TecMrDocs/whispertrend/pkg/logger"
	"github.com/TecMrDocs/whispertrend/pkg/metrics"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// placeholderMonths is the fixed zero-filled window produced for a hashtag
// with no posts on a platform.
var placeholderMonths = []string{"01/01/25 - 31/01/25", "1/02/25 - 28/02/25"}

// AnalysisService coordinates the pipeline: it selects a data source, reshapes
// raw post lists into the fixed-shape inputs the rate calculators expect, and
// runs the three calculators.
type AnalysisService struct {
	trendsClient domain.TrendsClient
	instagram    *InstagramCalculator
	reddit       *RedditCalculator
	x            *XCalculator
	logger       *logger.Logger
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(
	trendsClient domain.TrendsClient,
	instagram *InstagramCalculator,
	reddit *RedditCalculator,
	x *XCalculator,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *AnalysisService {
	return &AnalysisService{
		trendsClient: trendsClient,
		instagram:    instagram,
		reddit:       reddit,
		x:            x,
		logger:       logger,
		metrics:      metrics,
		now:          time.Now,
	}
}

// LoadAndPrepare resolves a data source, transforms it and returns the three
// calculators' results plus news metadata. Failures never propagate as
// errors: any problem degrades to the built-in demo snapshot with provenance
// "fallback" so the caller always receives a renderable result.
func (s *AnalysisService) LoadAndPrepare(ctx context.Context, req domain.AnalysisRequest) (result *domain.AnalysisResult, err error) {
	log := s.logger.WithContext(ctx)

	// Last-resort guard: a panic anywhere past source selection degrades to
	// the demo snapshot instead of killing the request.
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Analysis pipeline panicked, serving demo snapshot")
			s.metrics.RecordFallback("panic")
			result = s.process(ctx, domain.DemoTrendsDocument(), domain.ProvenanceFallback, req)
			err = nil
		}
	}()

	doc, source := s.selectSource(ctx, req)

	result = s.process(ctx, doc, source, req)
	if req.Calculated.HasMetrics() {
		result.Calculated = req.Calculated
	}

	log.WithFields(map[string]any{
		"source":   source,
		"hashtags": len(doc.Hashtags),
		"news":     len(result.News),
	}).Info("Analysis data prepared")

	return result, nil
}

// selectSource applies the source priority: caller-supplied pre-computed
// results, explicit demo mode, live fetch, and finally the demo snapshot as
// fallback.
func (s *AnalysisService) selectSource(ctx context.Context, req domain.AnalysisRequest) (*domain.TrendsDocument, domain.Provenance) {
	log := s.logger.WithContext(ctx)

	if req.Calculated.HasMetrics() {
		doc := &domain.TrendsDocument{
			Hashtags: req.Hashtags,
			Sentence: req.Sentence,
		}
		if req.Trends != nil {
			doc.Trends = *req.Trends
		}
		log.WithField("hashtags", len(doc.Hashtags)).Info("Using caller-supplied pre-computed results")
		return doc, domain.ProvenanceAPI
	}

	if req.Demo {
		log.Info("Demo mode requested, using built-in snapshot")
		return domain.DemoTrendsDocument(), domain.ProvenanceDemo
	}

	doc, err := s.trendsClient.FetchTrends(ctx)
	if err != nil {
		log.WithError(err).Warn("Live trends fetch failed, falling back to demo snapshot")
		s.metrics.RecordFallback("fetch_failed")
		return domain.DemoTrendsDocument(), domain.ProvenanceFallback
	}

	return doc, domain.ProvenanceAPI
}

// process reshapes the document and runs the calculators.
func (s *AnalysisService) process(ctx context.Context, doc *domain.TrendsDocument, source domain.Provenance, req domain.AnalysisRequest) *domain.AnalysisResult {
	instagramInput := s.buildInstagramInput(ctx, doc)
	redditInput := s.buildRedditInput(ctx, doc)
	xInput := s.buildXInput(doc)

	resourceName := req.ResourceName
	if resourceName == "" {
		resourceName = "Producto"
	}

	return &domain.AnalysisResult{
		Instagram:    s.instagram.ComputeRates(instagramInput),
		Reddit:       s.reddit.ComputeRates(redditInput),
		X:            s.x.ComputeRates(xInput),
		News:         extractNews(doc),
		ResourceName: resourceName,
		Meta: domain.AnalysisMeta{
			Timestamp:        s.now(),
			OriginalHashtags: doc.Hashtags,
			Sentence:         doc.Sentence,
			TotalPosts:       countPosts(doc),
			Source:           source,
		},
	}
}

func (s *AnalysisService) buildInstagramInput(ctx context.Context, doc *domain.TrendsDocument) domain.InstagramInput {
	hashtags := make([]domain.InstagramHashtagSeries, 0, len(doc.Hashtags))
	for index, hashtag := range doc.Hashtags {
		posts := findPosts(doc.Trends.Data.Instagram, hashtag)
		id := hashtagID(hashtag, index)

		if len(posts) == 0 {
			hashtags = append(hashtags, domain.InstagramHashtagSeries{
				Hashtag: hashtag, ID: id,
				Dates:     placeholderMonths,
				Likes:     []int{0, 0},
				Comments:  []int{0, 0},
				Views:     []int{0, 0},
				Followers: []int{0, 0},
				Shares:    []int{0, 0},
			})
			continue
		}

		grouped := s.groupByMonth(ctx, posts)
		series := domain.InstagramHashtagSeries{Hashtag: hashtag, ID: id}
		for _, m := range grouped {
			series.Dates = append(series.Dates, m.label)
			series.Likes = append(series.Likes, m.likes)
			series.Comments = append(series.Comments, m.comments)
			// Views and shares are not scraped for Instagram; synthesize
			// them from likes (8x and 5% respectively).
			series.Views = append(series.Views, m.views)
			series.Shares = append(series.Shares, m.shares)
			series.Followers = append(series.Followers, m.followers)
		}
		hashtags = append(hashtags, series)
	}
	return domain.InstagramInput{Hashtags: hashtags}
}

func (s *AnalysisService) buildRedditInput(ctx context.Context, doc *domain.TrendsDocument) domain.RedditInput {
	hashtags := make([]domain.RedditHashtagSeries, 0, len(doc.Hashtags))
	for index, hashtag := range doc.Hashtags {
		posts := findPosts(doc.Trends.Data.Reddit, hashtag)
		id := hashtagID(hashtag, index)

		if len(posts) == 0 {
			hashtags = append(hashtags, domain.RedditHashtagSeries{
				Hashtag: hashtag, ID: id,
				Dates:       placeholderMonths,
				UpVotes:     []int{0, 0},
				Comments:    []int{0, 0},
				Subscribers: []int{0, 0},
				Hours:       []int{0, 0},
			})
			continue
		}

		grouped := s.groupByMonth(ctx, posts)
		series := domain.RedditHashtagSeries{Hashtag: hashtag, ID: id}
		for _, m := range grouped {
			series.Dates = append(series.Dates, m.label)
			series.UpVotes = append(series.UpVotes, m.upVotes)
			series.Comments = append(series.Comments, m.comments)
			// Subreddit size is a snapshot, so the month keeps the largest
			// observed value rather than a sum.
			series.Subscribers = append(series.Subscribers, m.subscribers)
			series.Hours = append(series.Hours, 24)
		}
		hashtags = append(hashtags, series)
	}
	return domain.RedditInput{Hashtags: hashtags}
}

// buildXInput produces zero-filled placeholder series: X has no raw post feed
// yet, so its rates always come from the calculator's backfill path.
func (s *AnalysisService) buildXInput(doc *domain.TrendsDocument) domain.XInput {
	hashtags := make([]domain.XHashtagSeries, 0, len(doc.Hashtags))
	for index, hashtag := range doc.Hashtags {
		hashtags = append(hashtags, domain.XHashtagSeries{
			Hashtag: hashtag, ID: hashtagID(hashtag, index),
			Dates:     placeholderMonths,
			Likes:     []int{0, 0},
			Reposts:   []int{0, 0},
			Comments:  []int{0, 0},
			Views:     []int{0, 0},
			Followers: []int{0, 0},
		})
	}
	return domain.XInput{Hashtags: hashtags}
}

// monthBucket accumulates one calendar month's counters.
type monthBucket struct {
	label       string
	likes       int
	comments    int
	followers   int
	views       int
	shares      int
	upVotes     int
	subscribers int
}

// groupByMonth buckets posts by calendar month (MM/YY from each post's
// timestamp) and returns the buckets in ascending month order with display
// labels "1/MM/YY - <last-day>/MM/YY". Posts with unparseable timestamps are
// skipped.
func (s *AnalysisService) groupByMonth(ctx context.Context, posts []domain.Post) []monthBucket {
	buckets := make(map[string]*monthBucket)

	for _, post := range posts {
		key, err := monthKey(post.Time)
		if err != nil {
			s.logger.WithContext(ctx).WithError(err).WithField("time", post.Time).Warn("Failed to parse post timestamp, skipping")
			s.metrics.RecordPostFailure("date_parse")
			continue
		}

		b, ok := buckets[key]
		if !ok {
			b = &monthBucket{}
			buckets[key] = b
		}
		b.likes += post.Likes
		b.comments += post.Comments
		b.followers += post.Followers
		b.views += post.Likes * 8
		b.shares += post.Likes * 5 / 100
		b.upVotes += post.Vote
		if post.Members > b.subscribers {
			b.subscribers = post.Members
		}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]monthBucket, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		b.label = monthRangeLabel(key)
		out = append(out, *b)
	}
	return out
}

// hashtagID derives a stable identifier: the hashtag stripped to alphanumerics,
// lower-cased, truncated to 12 chars, suffixed with its positional index.
func hashtagID(hashtag string, index int) string {
	slug := strings.ToLower(nonAlnum.ReplaceAllString(hashtag, ""))
	if len(slug) > 12 {
		slug = slug[:12]
	}
	return fmt.Sprintf("%s_%d", slug, index)
}

// monthKey reduces an ISO timestamp to its "MM/YY" calendar month.
func monthKey(isoTime string) (string, error) {
	t, err := time.Parse(time.RFC3339, isoTime)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d/%02d", int(t.Month()), t.Year()%100), nil
}

// monthRangeLabel turns a "MM/YY" key into the "1/MM/YY - <last>/MM/YY"
// display label.
func monthRangeLabel(key string) string {
	parts := strings.SplitN(key, "/", 2)
	mm, yy := parts[0], parts[1]
	var month, year int
	fmt.Sscanf(mm, "%d", &month)
	fmt.Sscanf(yy, "%d", &year)
	lastDay := time.Date(2000+year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return fmt.Sprintf("1/%s/%s - %d/%s/%s", mm, yy, lastDay, mm, yy)
}

func findPosts(groups []domain.KeywordPosts, hashtag string) []domain.Post {
	for _, g := range groups {
		if g.Keyword == hashtag {
			return g.Posts
		}
	}
	return nil
}

func extractNews(doc *domain.TrendsDocument) []domain.NewsItem {
	if doc.Trends.Metadata == nil {
		return []domain.NewsItem{}
	}
	return doc.Trends.Metadata
}

func countPosts(doc *domain.TrendsDocument) domain.PostTotals {
	totals := domain.PostTotals{Twitter: len(doc.Trends.Data.Twitter)}
	for _, g := range doc.Trends.Data.Instagram {
		totals.Instagram += len(g.Posts)
	}
	for _, g := range doc.Trends.Data.Reddit {
		totals.Reddit += len(g.Posts)
	}
	return totals
}
