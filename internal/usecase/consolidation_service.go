package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/TecMrDocs/whispertrend/internal/domain"
	"github.com/TecMrDocs/whispertrend/pkg/logger"
	"github.com/TecMrDocs/whispertrend/pkg/metrics"
)

// ConsolidationService compares hashtags across platforms and derives the
// dashboard model: ranking, insights, recommendations, global metrics and the
// executive summary.
type ConsolidationService struct {
	logger  *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewConsolidationService creates a new consolidation service.
func NewConsolidationService(logger *logger.Logger, metrics *metrics.Metrics) *ConsolidationService {
	return &ConsolidationService{
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Consolidate builds the dashboard model from the three platform results plus
// news metadata. It returns ErrNoHashtags when the result carries no hashtags
// at all.
func (s *ConsolidationService) Consolidate(ctx context.Context, result *domain.AnalysisResult) (*domain.DashboardModel, error) {
	log := s.logger.WithContext(ctx)

	backend := result.Calculated.HasMetrics()

	var comparisons []domain.HashtagComparison
	if backend {
		comparisons = s.buildBackendComparisons(result)
	} else {
		comparisons = s.buildComparisons(result)
	}
	if len(comparisons) == 0 {
		return nil, domain.ErrNoHashtags
	}

	ranking := s.buildRanking(comparisons)
	insights := s.buildInsights(result, comparisons)
	recommendations := s.buildRecommendations(comparisons, ranking)
	global := s.buildGlobalMetrics(result)
	summary := s.buildSummary(result, comparisons, ranking)

	dataSource := "frontend_calculations"
	if backend {
		dataSource = "backend_calculations"
	}

	log.WithFields(logrus.Fields{
		"hashtags":        len(comparisons),
		"insights":        len(insights),
		"recommendations": len(recommendations),
		"data_source":     dataSource,
	}).Info("Consolidation completed")

	return &domain.DashboardModel{
		Instagram:    result.Instagram,
		Reddit:       result.Reddit,
		X:            result.X,
		News:         result.News,
		Calculated:   result.Calculated,
		ResourceName: result.ResourceName,
		Consolidation: domain.Consolidation{
			Summary:         summary,
			Comparisons:     comparisons,
			Ranking:         ranking,
			Insights:        insights,
			Recommendations: recommendations,
			Metrics:         global,
			DataSource:      dataSource,
		},
		Meta: domain.DashboardMeta{
			AnalysisMeta:        result.Meta,
			ProcessingComplete:  true,
			BackendCalculations: backend,
		},
	}, nil
}

// buildComparisons assembles one cross-platform comparison row per original
// hashtag name. A hashtag absent from a platform gets zero-filled stats, so
// every name in the master list yields exactly one row.
func (s *ConsolidationService) buildComparisons(result *domain.AnalysisResult) []domain.HashtagComparison {
	comparisons := make([]domain.HashtagComparison, 0, len(result.Meta.OriginalHashtags))

	for _, name := range result.Meta.OriginalHashtags {
		ig := result.Instagram.FindHashtag(name)
		rd := result.Reddit.FindHashtag(name)
		x := result.X.FindHashtag(name)

		perf := map[domain.Platform]domain.PlatformStats{
			domain.PlatformInstagram: instagramStats(ig),
			domain.PlatformReddit:    redditStats(rd),
			domain.PlatformX:         xStats(x),
		}

		best, score := bestPlatform(perf)

		comparisons = append(comparisons, domain.HashtagComparison{
			Name:         name,
			ID:           firstID(ig, rd, x, "unknown"),
			Performance:  perf,
			BestPlatform: best,
			GlobalScore:  score,
		})
	}
	return comparisons
}

// buildBackendComparisons uses the backend's pre-computed averages verbatim,
// only supplementing the raw totals from the local series when present.
func (s *ConsolidationService) buildBackendComparisons(result *domain.AnalysisResult) []domain.HashtagComparison {
	comparisons := make([]domain.HashtagComparison, 0, len(result.Calculated.Hashtags))

	for _, m := range result.Calculated.Hashtags {
		ig := result.Instagram.FindHashtag(m.Name)
		rd := result.Reddit.FindHashtag(m.Name)
		x := result.X.FindHashtag(m.Name)

		igStats := domain.PlatformStats{AvgInteraction: m.InstagramInteraction, AvgVirality: m.InstagramVirality}
		if ig != nil {
			igStats.TotalA = sumInts(ig.Raw.Likes)
			igStats.TotalB = sumInts(ig.Raw.Comments)
		}
		rdStats := domain.PlatformStats{AvgInteraction: m.RedditInteraction, AvgVirality: m.RedditVirality}
		if rd != nil {
			rdStats.TotalA = sumInts(rd.Raw.UpVotes)
			rdStats.TotalB = sumInts(rd.Raw.Comments)
		}
		xSt := domain.PlatformStats{AvgInteraction: m.TwitterInteraction, AvgVirality: m.TwitterVirality}
		if x != nil {
			xSt.TotalA = sumInts(x.Raw.Likes)
			xSt.TotalB = sumInts(x.Raw.Reposts)
		}

		perf := map[domain.Platform]domain.PlatformStats{
			domain.PlatformInstagram: igStats,
			domain.PlatformReddit:    rdStats,
			domain.PlatformX:         xSt,
		}

		best, score := bestPlatform(perf)

		comparisons = append(comparisons, domain.HashtagComparison{
			Name:         m.Name,
			ID:           firstID(ig, rd, x, "backend_generated"),
			Performance:  perf,
			BestPlatform: best,
			GlobalScore:  score,
		})
	}
	return comparisons
}

// bestPlatform is the ordered argmax over the platform scores: platforms are
// evaluated in domain.Platforms() order and a later platform only wins on a
// strictly greater score, so ties resolve to the earlier platform.
func bestPlatform(perf map[domain.Platform]domain.PlatformStats) (domain.Platform, float64) {
	platforms := domain.Platforms()
	best := platforms[0]
	bestScore := perf[best].Score()
	for _, p := range platforms[1:] {
		if score := perf[p].Score(); score > bestScore {
			best = p
			bestScore = score
		}
	}
	return best, bestScore
}

// buildRanking scores each platform as the mean of its per-hashtag scores and
// sorts descending. Strengths and weaknesses are fixed editorial lists, not
// data-derived.
func (s *ConsolidationService) buildRanking(comparisons []domain.HashtagComparison) []domain.PlatformRanking {
	ranking := make([]domain.PlatformRanking, 0, 3)

	for _, p := range domain.Platforms() {
		scores := make([]float64, 0, len(comparisons))
		for _, c := range comparisons {
			scores = append(scores, c.Performance[p].Score())
		}

		ranking = append(ranking, domain.PlatformRanking{
			Platform:   p.DisplayName(),
			Emoji:      p.Emoji(),
			Score:      average(scores),
			Strengths:  platformStrengths(p),
			Weaknesses: platformWeaknesses(p),
			TopHashtag: topHashtag(comparisons, p),
		})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})
	return ranking
}

// topHashtag returns the hashtag with the highest average interaction rate on
// the platform, "N/A" when every hashtag sits at zero.
func topHashtag(comparisons []domain.HashtagComparison, p domain.Platform) string {
	name := ""
	best := 0.0
	for _, c := range comparisons {
		if avg := c.Performance[p].AvgInteraction; avg > best {
			best = avg
			name = c.Name
		}
	}
	if name == "" {
		return "N/A"
	}
	return name
}

func platformStrengths(p domain.Platform) []string {
	switch p {
	case domain.PlatformInstagram:
		return []string{"Alto engagement visual", "Alcance amplio"}
	case domain.PlatformReddit:
		return []string{"Comunidades específicas", "Discusiones profundas"}
	default:
		return []string{"Viralidad rápida", "Tendencias en tiempo real"}
	}
}

func platformWeaknesses(p domain.Platform) []string {
	switch p {
	case domain.PlatformInstagram:
		return []string{"Algoritmo cambiante"}
	case domain.PlatformReddit:
		return []string{"Audiencia nicho"}
	default:
		return []string{"Contenido efímero"}
	}
}

// buildInsights applies the fixed insight rules in order: trending hashtag,
// platform opportunity, conditional uneven-performance warning, conditional
// news context.
func (s *ConsolidationService) buildInsights(result *domain.AnalysisResult, comparisons []domain.HashtagComparison) []domain.Insight {
	insights := make([]domain.Insight, 0, 4)

	leader := topComparison(comparisons)
	insights = append(insights, domain.Insight{
		Kind:           domain.InsightTrending,
		Title:          "🚀 Hashtag Líder",
		Description:    fmt.Sprintf("%s está mostrando el mejor rendimiento global", leader.Name),
		Hashtag:        leader.Name,
		Platform:       string(leader.BestPlatform),
		Value:          leader.GlobalScore,
		Recommendation: fmt.Sprintf("Enfocar estrategia en %s para este hashtag", leader.BestPlatform.DisplayName()),
	})

	// Global max of average interaction across every hashtag and platform;
	// the threshold is never reset between hashtags.
	bestPlatformName := domain.PlatformInstagram
	bestAvg := 0.0
	for _, c := range comparisons {
		for _, p := range domain.Platforms() {
			if avg := c.Performance[p].AvgInteraction; avg > bestAvg {
				bestAvg = avg
				bestPlatformName = p
			}
		}
	}
	insights = append(insights, domain.Insight{
		Kind:           domain.InsightOpportunity,
		Title:          "📈 Oportunidad de Plataforma",
		Description:    fmt.Sprintf("%s muestra las mejores tasas de interacción", bestPlatformName.DisplayName()),
		Platform:       string(bestPlatformName),
		Recommendation: fmt.Sprintf("Incrementar inversión en contenido para %s", bestPlatformName.DisplayName()),
	})

	if name, gap := findUnevenHashtag(comparisons); name != "" {
		insights = append(insights, domain.Insight{
			Kind:           domain.InsightWarning,
			Title:          "⚠️ Rendimiento Desigual",
			Description:    fmt.Sprintf("%s muestra un rendimiento muy dispar entre plataformas", name),
			Hashtag:        name,
			Value:          round2(gap),
			Recommendation: "Replicar la estrategia de la mejor plataforma en el resto",
		})
	}

	if len(result.News) > 0 {
		insights = append(insights, domain.Insight{
			Kind:           domain.InsightInfo,
			Title:          "📰 Contexto de Mercado",
			Description:    fmt.Sprintf("Se encontraron %d noticias relevantes que pueden impactar el rendimiento", len(result.News)),
			Recommendation: "Revisar noticias para ajustar estrategia de contenido",
		})
	}

	for _, insight := range insights {
		s.metrics.RecordInsight(string(insight.Kind))
	}
	return insights
}

// findUnevenHashtag returns the first hashtag whose top two per-platform
// average interaction values differ by more than 2, along with the gap.
func findUnevenHashtag(comparisons []domain.HashtagComparison) (string, float64) {
	for _, c := range comparisons {
		avgs := make([]float64, 0, 3)
		for _, p := range domain.Platforms() {
			avgs = append(avgs, c.Performance[p].AvgInteraction)
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(avgs)))
		if gap := avgs[0] - avgs[1]; gap > 2 {
			return c.Name, gap
		}
	}
	return "", 0
}

// topComparison is a stable left-fold argmax over global score: the first
// hashtag wins ties.
func topComparison(comparisons []domain.HashtagComparison) domain.HashtagComparison {
	best := comparisons[0]
	for _, c := range comparisons[1:] {
		if c.GlobalScore > best.GlobalScore {
			best = c
		}
	}
	return best
}

// buildRecommendations appends the fixed recommendation rules in order. The
// last rule depends on the wall clock at report time, which is injected so
// tests can pin it.
func (s *ConsolidationService) buildRecommendations(comparisons []domain.HashtagComparison, ranking []domain.PlatformRanking) []string {
	recommendations := make([]string, 0, 4)

	top := ranking[0]
	recommendations = append(recommendations,
		fmt.Sprintf("Priorizar contenido en %s (puntuación: %.1f)", top.Platform, top.Score))

	leader := topComparison(comparisons)
	recommendations = append(recommendations,
		fmt.Sprintf("Aumentar frecuencia de posts con %s en %s", leader.Name, leader.BestPlatform.DisplayName()))

	var underperforming int
	for _, c := range comparisons {
		if c.GlobalScore < 1 {
			underperforming++
		}
	}
	if underperforming > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Revisar estrategia para %d hashtag(s) con bajo rendimiento", underperforming))
	}

	if hour := s.now().Hour(); hour >= 9 && hour <= 17 {
		recommendations = append(recommendations,
			"Considerar publicar contenido adicional en horario laboral para maximizar alcance")
	}

	return recommendations
}

// buildGlobalMetrics aggregates raw engagement. Only Instagram and Reddit
// counters enter the totals; X raw data is excluded, matching the dashboard's
// historical reporting.
func (s *ConsolidationService) buildGlobalMetrics(result *domain.AnalysisResult) domain.GlobalMetrics {
	var interactions, followers int

	for _, h := range result.Instagram.Hashtags {
		interactions += sumInts(h.Raw.Likes) + sumInts(h.Raw.Comments)
		followers += sumInts(h.Raw.Followers)
	}
	for _, h := range result.Reddit.Hashtags {
		interactions += sumInts(h.Raw.UpVotes) + sumInts(h.Raw.Comments)
		followers += sumInts(h.Raw.Subscribers)
	}

	var engagement float64
	if followers > 0 {
		engagement = round2(float64(interactions) / float64(followers) * 100)
	}
	var viralPotential float64
	if interactions > 0 {
		viralPotential = math.Min(float64(interactions)/1000*10, 100)
		viralPotential = math.Round(viralPotential*10) / 10
	}

	return domain.GlobalMetrics{
		TotalInteractions: interactions,
		EstimatedReach:    int(math.Round(float64(followers) * 0.1)),
		Engagement:        engagement,
		ViralPotential:    viralPotential,
	}
}

func (s *ConsolidationService) buildSummary(result *domain.AnalysisResult, comparisons []domain.HashtagComparison, ranking []domain.PlatformRanking) domain.ExecutiveSummary {
	leader := topComparison(comparisons)

	var sum float64
	for _, c := range comparisons {
		sum += c.GlobalScore
	}
	globalRate := round2(sum / float64(len(comparisons)))

	trend := domain.TrendStable
	switch {
	case globalRate > 2:
		trend = domain.TrendRising
	case globalRate < 1:
		trend = domain.TrendFalling
	}

	return domain.ExecutiveSummary{
		TotalHashtags:         len(result.Meta.OriginalHashtags),
		BestHashtag:           leader.Name,
		BestPlatform:          ranking[0].Platform,
		GlobalInteractionRate: globalRate,
		Trend:                 trend,
	}
}

func instagramStats(h *domain.HashtagRates) domain.PlatformStats {
	if h == nil {
		return domain.PlatformStats{}
	}
	return domain.PlatformStats{
		AvgInteraction: average(rates(h.InteractionSeries)),
		AvgVirality:    average(rates(h.ViralitySeries)),
		TotalA:         sumInts(h.Raw.Likes),
		TotalB:         sumInts(h.Raw.Comments),
	}
}

func redditStats(h *domain.HashtagRates) domain.PlatformStats {
	if h == nil {
		return domain.PlatformStats{}
	}
	return domain.PlatformStats{
		AvgInteraction: average(rates(h.InteractionSeries)),
		AvgVirality:    average(rates(h.ViralitySeries)),
		TotalA:         sumInts(h.Raw.UpVotes),
		TotalB:         sumInts(h.Raw.Comments),
	}
}

func xStats(h *domain.HashtagRates) domain.PlatformStats {
	if h == nil {
		return domain.PlatformStats{}
	}
	return domain.PlatformStats{
		AvgInteraction: average(rates(h.InteractionSeries)),
		AvgVirality:    average(rates(h.ViralitySeries)),
		TotalA:         sumInts(h.Raw.Likes),
		TotalB:         sumInts(h.Raw.Reposts),
	}
}

func firstID(ig, rd, x *domain.HashtagRates, fallback string) string {
	if ig != nil {
		return ig.ID
	}
	if rd != nil {
		return rd.ID
	}
	if x != nil {
		return x.ID
	}
	return fallback
}
