package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TecMrDocs/whispertrend/internal/domain"
)

type stubTrendsClient struct {
	doc *domain.TrendsDocument
	err error
}

func (s *stubTrendsClient) FetchTrends(ctx context.Context) (*domain.TrendsDocument, error) {
	return s.doc, s.err
}

func newTestAnalysisService(client domain.TrendsClient) *AnalysisService {
	log := testLogger()
	svc := NewAnalysisService(
		client,
		NewInstagramCalculator(log, testMetrics),
		NewRedditCalculator(log, testMetrics),
		NewXCalculator(log, testMetrics),
		log,
		testMetrics,
	)
	svc.instagram.randFn = fixedRand(0.5)
	svc.reddit.randFn = fixedRand(0.5)
	svc.x.randFn = fixedRand(0.5)
	return svc
}

func TestLoadAndPrepare_DemoMode(t *testing.T) {
	svc := newTestAnalysisService(&stubTrendsClient{err: errors.New("must not be called")})

	result, err := svc.LoadAndPrepare(context.Background(), domain.AnalysisRequest{Demo: true})
	require.NoError(t, err)

	assert.Equal(t, domain.ProvenanceDemo, result.Meta.Source)
	assert.Len(t, result.Instagram.Hashtags, 3)
	assert.Len(t, result.Reddit.Hashtags, 3)
	assert.Len(t, result.X.Hashtags, 3)
	assert.Len(t, result.News, 2)
	assert.Equal(t, "Producto", result.ResourceName)
	assert.Equal(t, 7, result.Meta.TotalPosts.Instagram)
	assert.Equal(t, 4, result.Meta.TotalPosts.Reddit)
}

func TestLoadAndPrepare_FetchFailureFallsBack(t *testing.T) {
	svc := newTestAnalysisService(&stubTrendsClient{err: errors.New("connection refused")})

	result, err := svc.LoadAndPrepare(context.Background(), domain.AnalysisRequest{})
	require.NoError(t, err)

	// The demo snapshot keeps the dashboard renderable.
	assert.Equal(t, domain.ProvenanceFallback, result.Meta.Source)
	assert.Len(t, result.Instagram.Hashtags, 3)
}

func TestLoadAndPrepare_LiveFetch(t *testing.T) {
	doc := &domain.TrendsDocument{
		Hashtags: []string{"#Solo"},
		Sentence: "live snapshot",
	}
	svc := newTestAnalysisService(&stubTrendsClient{doc: doc})

	result, err := svc.LoadAndPrepare(context.Background(), domain.AnalysisRequest{ResourceName: "Bolso"})
	require.NoError(t, err)

	assert.Equal(t, domain.ProvenanceAPI, result.Meta.Source)
	assert.Equal(t, []string{"#Solo"}, result.Meta.OriginalHashtags)
	assert.Equal(t, "Bolso", result.ResourceName)
}

func TestLoadAndPrepare_PrecomputedSkipsFetch(t *testing.T) {
	svc := newTestAnalysisService(&stubTrendsClient{err: errors.New("must not be called")})

	req := domain.AnalysisRequest{
		Hashtags: []string{"#Backend"},
		Calculated: &domain.BackendResults{
			Hashtags: []domain.BackendHashtagMetric{{Name: "#Backend", InstagramInteraction: 5.5}},
		},
	}

	result, err := svc.LoadAndPrepare(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.ProvenanceAPI, result.Meta.Source)
	require.NotNil(t, result.Calculated)
	assert.Equal(t, "#Backend", result.Calculated.Hashtags[0].Name)
}

func TestBuildInstagramInput_GroupsByMonth(t *testing.T) {
	svc := newTestAnalysisService(&stubTrendsClient{})

	doc := &domain.TrendsDocument{Hashtags: []string{"#Test"}}
	doc.Trends.Data.Instagram = []domain.KeywordPosts{{
		Keyword: "#Test",
		Posts: []domain.Post{
			{Comments: 20, Followers: 1000, Likes: 100, Time: "2025-01-05T10:00:00Z"},
			{Comments: 30, Followers: 1100, Likes: 200, Time: "2025-01-20T10:00:00Z"},
			{Comments: 10, Followers: 1200, Likes: 50, Time: "2025-02-10T10:00:00Z"},
		},
	}}

	input := svc.buildInstagramInput(context.Background(), doc)
	require.Len(t, input.Hashtags, 1)

	series := input.Hashtags[0]
	assert.Equal(t, []string{"1/01/25 - 31/01/25", "1/02/25 - 28/02/25"}, series.Dates)
	assert.Equal(t, []int{300, 50}, series.Likes)
	assert.Equal(t, []int{50, 10}, series.Comments)
	assert.Equal(t, []int{2100, 1200}, series.Followers)
	// Views synthesize at 8x likes and shares at 5% per post.
	assert.Equal(t, []int{2400, 400}, series.Views)
	assert.Equal(t, []int{15, 2}, series.Shares)
}

func TestBuildInstagramInput_SkipsBadTimestamps(t *testing.T) {
	svc := newTestAnalysisService(&stubTrendsClient{})

	doc := &domain.TrendsDocument{Hashtags: []string{"#Test"}}
	doc.Trends.Data.Instagram = []domain.KeywordPosts{{
		Keyword: "#Test",
		Posts: []domain.Post{
			{Likes: 100, Time: "not-a-timestamp"},
			{Likes: 50, Time: "2025-01-20T10:00:00Z"},
		},
	}}

	input := svc.buildInstagramInput(context.Background(), doc)
	require.Len(t, input.Hashtags, 1)
	assert.Equal(t, []int{50}, input.Hashtags[0].Likes)
}

func TestBuildInstagramInput_PlaceholderForMissingPosts(t *testing.T) {
	svc := newTestAnalysisService(&stubTrendsClient{})

	doc := &domain.TrendsDocument{Hashtags: []string{"#Ghost"}}
	input := svc.buildInstagramInput(context.Background(), doc)

	require.Len(t, input.Hashtags, 1)
	assert.Equal(t, placeholderMonths, input.Hashtags[0].Dates)
	assert.Equal(t, []int{0, 0}, input.Hashtags[0].Likes)
}

func TestBuildRedditInput_MaxMembersAndFixedHours(t *testing.T) {
	svc := newTestAnalysisService(&stubTrendsClient{})

	doc := &domain.TrendsDocument{Hashtags: []string{"#Test"}}
	doc.Trends.Data.Reddit = []domain.KeywordPosts{{
		Keyword: "#Test",
		Posts: []domain.Post{
			{Comments: 10, Members: 15000, Vote: 100, Time: "2025-01-05T10:00:00Z"},
			{Comments: 20, Members: 15500, Vote: 200, Time: "2025-01-25T10:00:00Z"},
		},
	}}

	input := svc.buildRedditInput(context.Background(), doc)
	require.Len(t, input.Hashtags, 1)

	series := input.Hashtags[0]
	assert.Equal(t, []int{300}, series.UpVotes)
	assert.Equal(t, []int{30}, series.Comments)
	// Subreddit size is a snapshot, the bucket keeps the maximum.
	assert.Equal(t, []int{15500}, series.Subscribers)
	assert.Equal(t, []int{24}, series.Hours)
}

func TestHashtagID(t *testing.T) {
	tests := []struct {
		hashtag string
		index   int
		want    string
	}{
		{"#EcoFriendly", 0, "ecofriendly_0"},
		{"#Sustainable Fashion!", 1, "sustainablef_1"},
		{"ÑandúVeloz", 2, "andveloz_2"},
	}

	for _, tt := range tests {
		t.Run(tt.hashtag, func(t *testing.T) {
			assert.Equal(t, tt.want, hashtagID(tt.hashtag, tt.index))
		})
	}
}

func TestMonthRangeLabel(t *testing.T) {
	assert.Equal(t, "1/02/25 - 28/02/25", monthRangeLabel("02/25"))
	assert.Equal(t, "1/01/25 - 31/01/25", monthRangeLabel("01/25"))
	assert.Equal(t, "1/04/25 - 30/04/25", monthRangeLabel("04/25"))
}

func TestMonthKey(t *testing.T) {
	key, err := monthKey("2025-03-15T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "03/25", key)

	_, err = monthKey("15/03/2025")
	assert.Error(t, err)
}
