package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TecMrDocs/whispertrend/internal/domain"
)

func flatSeries(rate float64) []domain.RateSample {
	months := domain.CanonicalMonths()
	out := make([]domain.RateSample, len(months))
	for i, m := range months {
		out[i] = domain.RateSample{Date: m, Rate: rate}
	}
	return out
}

func ratedHashtag(id, name string, interaction, virality float64) domain.HashtagRates {
	return domain.HashtagRates{
		ID:                id,
		Name:              name,
		InteractionSeries: flatSeries(interaction),
		ViralitySeries:    flatSeries(virality),
	}
}

// analysisResult builds a three-platform result where every hashtag carries
// flat series, so averages equal the given rates.
func analysisResult(names []string, ig, rd, x [][2]float64) *domain.AnalysisResult {
	result := &domain.AnalysisResult{
		Instagram: &domain.PlatformResult{Platform: domain.PlatformInstagram},
		Reddit:    &domain.PlatformResult{Platform: domain.PlatformReddit},
		X:         &domain.PlatformResult{Platform: domain.PlatformX},
		News:      []domain.NewsItem{},
		Meta: domain.AnalysisMeta{
			OriginalHashtags: names,
			Source:           domain.ProvenanceDemo,
		},
	}
	for i, name := range names {
		id := hashtagID(name, i)
		result.Instagram.Hashtags = append(result.Instagram.Hashtags, ratedHashtag(id, name, ig[i][0], ig[i][1]))
		result.Reddit.Hashtags = append(result.Reddit.Hashtags, ratedHashtag(id, name, rd[i][0], rd[i][1]))
		result.X.Hashtags = append(result.X.Hashtags, ratedHashtag(id, name, x[i][0], x[i][1]))
	}
	return result
}

func newTestConsolidationService(at time.Time) *ConsolidationService {
	svc := NewConsolidationService(testLogger(), testMetrics)
	svc.now = func() time.Time { return at }
	return svc
}

var offHours = time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC)

func TestConsolidate_NoHashtags(t *testing.T) {
	svc := newTestConsolidationService(offHours)

	result := analysisResult(nil, nil, nil, nil)
	_, err := svc.Consolidate(context.Background(), result)
	assert.ErrorIs(t, err, domain.ErrNoHashtags)
}

func TestConsolidate_BestPlatformTieGoesFirstInOrder(t *testing.T) {
	svc := newTestConsolidationService(offHours)

	// Identical scores on every platform: Instagram wins the tie.
	result := analysisResult(
		[]string{"#Tie"},
		[][2]float64{{4, 2}},
		[][2]float64{{4, 2}},
		[][2]float64{{4, 2}},
	)

	dashboard, err := svc.Consolidate(context.Background(), result)
	require.NoError(t, err)
	require.Len(t, dashboard.Consolidation.Comparisons, 1)

	comparison := dashboard.Consolidation.Comparisons[0]
	assert.Equal(t, domain.PlatformInstagram, comparison.BestPlatform)
	assert.Equal(t, 3.0, comparison.GlobalScore)
}

func TestConsolidate_ZeroFillsMissingPlatforms(t *testing.T) {
	svc := newTestConsolidationService(offHours)

	// The hashtag only exists on Instagram; the other platforms still get a
	// stats entry.
	result := &domain.AnalysisResult{
		Instagram: &domain.PlatformResult{
			Platform: domain.PlatformInstagram,
			Hashtags: []domain.HashtagRates{ratedHashtag("only_0", "#Only", 5, 1)},
		},
		Reddit: &domain.PlatformResult{Platform: domain.PlatformReddit},
		X:      &domain.PlatformResult{Platform: domain.PlatformX},
		Meta:   domain.AnalysisMeta{OriginalHashtags: []string{"#Only"}},
	}

	dashboard, err := svc.Consolidate(context.Background(), result)
	require.NoError(t, err)

	comparison := dashboard.Consolidation.Comparisons[0]
	require.Len(t, comparison.Performance, 3)
	assert.Equal(t, domain.PlatformStats{}, comparison.Performance[domain.PlatformReddit])
	assert.Equal(t, domain.PlatformStats{}, comparison.Performance[domain.PlatformX])
	assert.Equal(t, domain.PlatformInstagram, comparison.BestPlatform)
	assert.Equal(t, "only_0", comparison.ID)
}

func TestConsolidate_RankingSortedDescending(t *testing.T) {
	svc := newTestConsolidationService(offHours)

	// Reddit dominates, then X, then Instagram.
	result := analysisResult(
		[]string{"#A", "#B"},
		[][2]float64{{2, 1}, {2, 1}},
		[][2]float64{{30, 3}, {20, 2}},
		[][2]float64{{6, 2}, {5, 2}},
	)

	dashboard, err := svc.Consolidate(context.Background(), result)
	require.NoError(t, err)

	ranking := dashboard.Consolidation.Ranking
	require.Len(t, ranking, 3)
	assert.Equal(t, "Reddit", ranking[0].Platform)
	assert.Equal(t, "X (Twitter)", ranking[1].Platform)
	assert.Equal(t, "Instagram", ranking[2].Platform)
	assert.GreaterOrEqual(t, ranking[0].Score, ranking[1].Score)
	assert.GreaterOrEqual(t, ranking[1].Score, ranking[2].Score)

	// Top hashtag per platform follows average interaction.
	assert.Equal(t, "#A", ranking[0].TopHashtag)
	assert.NotEmpty(t, ranking[0].Strengths)
	assert.NotEmpty(t, ranking[0].Weaknesses)
}

func TestConsolidate_TopHashtagNAWhenAllZero(t *testing.T) {
	svc := newTestConsolidationService(offHours)

	result := analysisResult(
		[]string{"#Zero"},
		[][2]float64{{0, 0}},
		[][2]float64{{0, 0}},
		[][2]float64{{0, 0}},
	)

	dashboard, err := svc.Consolidate(context.Background(), result)
	require.NoError(t, err)

	for _, entry := range dashboard.Consolidation.Ranking {
		assert.Equal(t, "N/A", entry.TopHashtag)
	}
}

func TestConsolidate_InsightOrderAndWarning(t *testing.T) {
	svc := newTestConsolidationService(offHours)

	// #Spiky: Instagram 10 vs Reddit 1 gives a 9-point gap, above the warning
	// threshold of 2.
	result := analysisResult(
		[]string{"#Spiky"},
		[][2]float64{{10, 2}},
		[][2]float64{{1, 1}},
		[][2]float64{{1, 1}},
	)
	result.News = []domain.NewsItem{{Title: "noticia"}}

	dashboard, err := svc.Consolidate(context.Background(), result)
	require.NoError(t, err)

	insights := dashboard.Consolidation.Insights
	require.Len(t, insights, 4)
	assert.Equal(t, domain.InsightTrending, insights[0].Kind)
	assert.Equal(t, domain.InsightOpportunity, insights[1].Kind)
	assert.Equal(t, domain.InsightWarning, insights[2].Kind)
	assert.Equal(t, domain.InsightInfo, insights[3].Kind)

	assert.Equal(t, "#Spiky", insights[2].Hashtag)
	assert.Equal(t, 9.0, insights[2].Value)
	assert.Contains(t, insights[3].Description, "1 noticias")
}

func TestConsolidate_NoWarningOrInfoWhenEven(t *testing.T) {
	svc := newTestConsolidationService(offHours)

	result := analysisResult(
		[]string{"#Even"},
		[][2]float64{{4, 1}},
		[][2]float64{{4, 1}},
		[][2]float64{{3, 1}},
	)

	dashboard, err := svc.Consolidate(context.Background(), result)
	require.NoError(t, err)

	insights := dashboard.Consolidation.Insights
	require.Len(t, insights, 2)
	assert.Equal(t, domain.InsightTrending, insights[0].Kind)
	assert.Equal(t, domain.InsightOpportunity, insights[1].Kind)
}

func TestConsolidate_BusinessHoursRecommendation(t *testing.T) {
	result := analysisResult(
		[]string{"#A"},
		[][2]float64{{4, 2}},
		[][2]float64{{2, 1}},
		[][2]float64{{2, 1}},
	)

	workday := newTestConsolidationService(time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC))
	dashboard, err := workday.Consolidate(context.Background(), result)
	require.NoError(t, err)
	assert.Contains(t, dashboard.Consolidation.Recommendations, "Considerar publicar contenido adicional en horario laboral para maximizar alcance")

	evening := newTestConsolidationService(offHours)
	dashboard, err = evening.Consolidate(context.Background(), result)
	require.NoError(t, err)
	assert.NotContains(t, dashboard.Consolidation.Recommendations, "Considerar publicar contenido adicional en horario laboral para maximizar alcance")
}

func TestConsolidate_LowPerformanceRecommendation(t *testing.T) {
	svc := newTestConsolidationService(offHours)

	result := analysisResult(
		[]string{"#Good", "#Weak", "#Weaker"},
		[][2]float64{{5, 3}, {0.5, 0.5}, {0.4, 0.2}},
		[][2]float64{{2, 1}, {0.3, 0.1}, {0.2, 0.1}},
		[][2]float64{{2, 1}, {0.4, 0.2}, {0.3, 0.1}},
	)

	dashboard, err := svc.Consolidate(context.Background(), result)
	require.NoError(t, err)

	assert.Contains(t, dashboard.Consolidation.Recommendations, "Revisar estrategia para 2 hashtag(s) con bajo rendimiento")
}

func TestConsolidate_GlobalMetricsExcludeX(t *testing.T) {
	svc := newTestConsolidationService(offHours)

	result := analysisResult(
		[]string{"#A"},
		[][2]float64{{4, 2}},
		[][2]float64{{2, 1}},
		[][2]float64{{2, 1}},
	)
	result.Instagram.Hashtags[0].Raw = domain.RawSeries{Likes: []int{100}, Comments: []int{50}, Followers: []int{1000}}
	result.Reddit.Hashtags[0].Raw = domain.RawSeries{UpVotes: []int{200}, Comments: []int{50}, Subscribers: []int{9000}}
	result.X.Hashtags[0].Raw = domain.RawSeries{Likes: []int{9999}, Reposts: []int{9999}}

	dashboard, err := svc.Consolidate(context.Background(), result)
	require.NoError(t, err)

	metrics := dashboard.Consolidation.Metrics
	assert.Equal(t, 400, metrics.TotalInteractions)
	assert.Equal(t, 1000, metrics.EstimatedReach)
	assert.Equal(t, 4.0, metrics.Engagement)
	assert.Equal(t, 4.0, metrics.ViralPotential)
}

func TestConsolidate_SummaryTrendThresholds(t *testing.T) {
	svc := newTestConsolidationService(offHours)

	tests := []struct {
		name  string
		rate  float64
		trend domain.Trend
	}{
		{"rising above 2", 5, domain.TrendRising},
		{"stable between 1 and 2", 1.5, domain.TrendStable},
		{"falling below 1", 0.4, domain.TrendFalling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analysisResult(
				[]string{"#A"},
				[][2]float64{{tt.rate, tt.rate}},
				[][2]float64{{0, 0}},
				[][2]float64{{0, 0}},
			)

			dashboard, err := svc.Consolidate(context.Background(), result)
			require.NoError(t, err)

			summary := dashboard.Consolidation.Summary
			assert.Equal(t, tt.rate, summary.GlobalInteractionRate)
			assert.Equal(t, tt.trend, summary.Trend)
			assert.Equal(t, "#A", summary.BestHashtag)
		})
	}
}

func TestConsolidate_BackendPath(t *testing.T) {
	svc := newTestConsolidationService(offHours)

	result := analysisResult(
		[]string{"#Backend"},
		[][2]float64{{1, 1}},
		[][2]float64{{1, 1}},
		[][2]float64{{1, 1}},
	)
	result.Calculated = &domain.BackendResults{
		Hashtags: []domain.BackendHashtagMetric{{
			Name:                 "#Backend",
			InstagramInteraction: 8,
			InstagramVirality:    2,
			RedditInteraction:    30,
			RedditVirality:       3,
			TwitterInteraction:   5,
			TwitterVirality:      1,
		}},
	}

	dashboard, err := svc.Consolidate(context.Background(), result)
	require.NoError(t, err)

	assert.Equal(t, "backend_calculations", dashboard.Consolidation.DataSource)
	assert.True(t, dashboard.Meta.BackendCalculations)

	// Supplied averages are used verbatim, not the local series.
	comparison := dashboard.Consolidation.Comparisons[0]
	assert.Equal(t, 8.0, comparison.Performance[domain.PlatformInstagram].AvgInteraction)
	assert.Equal(t, domain.PlatformReddit, comparison.BestPlatform)
	assert.Equal(t, 16.5, comparison.GlobalScore)
}

func TestConsolidate_FrontendDataSourceAndMeta(t *testing.T) {
	svc := newTestConsolidationService(offHours)

	result := analysisResult(
		[]string{"#A"},
		[][2]float64{{4, 2}},
		[][2]float64{{2, 1}},
		[][2]float64{{2, 1}},
	)

	dashboard, err := svc.Consolidate(context.Background(), result)
	require.NoError(t, err)

	assert.Equal(t, "frontend_calculations", dashboard.Consolidation.DataSource)
	assert.True(t, dashboard.Meta.ProcessingComplete)
	assert.False(t, dashboard.Meta.BackendCalculations)
	assert.Equal(t, domain.ProvenanceDemo, dashboard.Meta.Source)
}
