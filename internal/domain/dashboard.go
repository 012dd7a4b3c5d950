package domain

import (
	"errors"
	"time"
)

// ErrNoHashtags is returned by the consolidator when it receives an analysis
// result without a single hashtag to work with.
var ErrNoHashtags = errors.New("no hashtags to consolidate")

// Provenance records which data source ultimately produced a result set.
type Provenance string

const (
	ProvenanceAPI      Provenance = "api"
	ProvenanceDemo     Provenance = "demo"
	ProvenanceFallback Provenance = "fallback"
)

// PostTotals counts the raw posts a snapshot contained per platform.
type PostTotals struct {
	Instagram int `json:"instagram"`
	Reddit    int `json:"reddit"`
	Twitter   int `json:"twitter"`
}

// AnalysisMeta describes one pipeline run.
type AnalysisMeta struct {
	Timestamp        time.Time  `json:"timestamp"`
	OriginalHashtags []string   `json:"original_hashtags"`
	Sentence         string     `json:"sentence"`
	TotalPosts       PostTotals `json:"total_posts"`
	Source           Provenance `json:"source"`
}

// AnalysisResult is the loader's output: the three calculators' results plus
// news and run metadata, ready for consolidation.
type AnalysisResult struct {
	Instagram    *PlatformResult `json:"instagram"`
	Reddit       *PlatformResult `json:"reddit"`
	X            *PlatformResult `json:"x"`
	News         []NewsItem      `json:"news"`
	ResourceName string          `json:"resource_name"`
	Meta         AnalysisMeta    `json:"meta"`
	Calculated   *BackendResults `json:"calculated_results,omitempty"`
}

// PlatformStats is one hashtag's averaged performance on one platform.
// TotalA/TotalB hold the platform-specific raw totals: likes+comments for
// Instagram, up-votes+comments for Reddit, likes+reposts for X.
type PlatformStats struct {
	AvgInteraction float64 `json:"avg_interaction"`
	AvgVirality    float64 `json:"avg_virality"`
	TotalA         int     `json:"total_a"`
	TotalB         int     `json:"total_b"`
}

// Score is the figure used to rank platforms for a hashtag.
func (s PlatformStats) Score() float64 {
	return (s.AvgInteraction + s.AvgVirality) / 2
}

// HashtagComparison is the cross-platform view of one hashtag.
type HashtagComparison struct {
	Name         string                     `json:"name"`
	ID           string                     `json:"id"`
	Performance  map[Platform]PlatformStats `json:"performance"`
	BestPlatform Platform                   `json:"best_platform"`
	GlobalScore  float64                    `json:"global_score"`
}

// PlatformRanking is one platform's entry in the descending-by-score ranking.
type PlatformRanking struct {
	Platform   string   `json:"platform"`
	Emoji      string   `json:"emoji"`
	Score      float64  `json:"score"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	TopHashtag string   `json:"top_hashtag"`
}

// InsightKind classifies an automatically generated insight.
type InsightKind string

const (
	InsightTrending    InsightKind = "trending"
	InsightWarning     InsightKind = "warning"
	InsightOpportunity InsightKind = "opportunity"
	InsightInfo        InsightKind = "info"
)

// Insight is one automatically derived observation about the data.
type Insight struct {
	Kind           InsightKind `json:"kind"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Hashtag        string      `json:"hashtag,omitempty"`
	Platform       string      `json:"platform,omitempty"`
	Value          float64     `json:"value,omitempty"`
	Recommendation string      `json:"recommendation,omitempty"`
}

// GlobalMetrics aggregates raw engagement across the whole snapshot.
type GlobalMetrics struct {
	TotalInteractions int     `json:"total_interactions"`
	EstimatedReach    int     `json:"estimated_reach"`
	Engagement        float64 `json:"engagement"`
	ViralPotential    float64 `json:"viral_potential"`
}

// Trend labels the overall direction of the snapshot's rates.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// ExecutiveSummary is the dashboard's headline block.
type ExecutiveSummary struct {
	TotalHashtags         int     `json:"total_hashtags"`
	BestHashtag           string  `json:"best_hashtag"`
	BestPlatform          string  `json:"best_platform"`
	GlobalInteractionRate float64 `json:"global_interaction_rate"`
	Trend                 Trend   `json:"trend"`
}

// Consolidation is the consolidator's derived block of the dashboard.
type Consolidation struct {
	Summary         ExecutiveSummary    `json:"summary"`
	Comparisons     []HashtagComparison `json:"comparisons"`
	Ranking         []PlatformRanking   `json:"ranking"`
	Insights        []Insight           `json:"insights"`
	Recommendations []string            `json:"recommendations"`
	Metrics         GlobalMetrics       `json:"metrics"`
	DataSource      string              `json:"data_source"`
}

// DashboardModel is the full outbound contract consumed by the rendering
// layer: per-platform series for charting plus the consolidated analysis.
type DashboardModel struct {
	Instagram     *PlatformResult `json:"instagram"`
	Reddit        *PlatformResult `json:"reddit"`
	X             *PlatformResult `json:"x"`
	News          []NewsItem      `json:"news"`
	Calculated    *BackendResults `json:"calculated_results,omitempty"`
	ResourceName  string          `json:"resource_name"`
	Consolidation Consolidation   `json:"consolidation"`
	Meta          DashboardMeta   `json:"meta"`
}

// DashboardMeta extends the run metadata with processing flags.
type DashboardMeta struct {
	AnalysisMeta
	ProcessingComplete  bool `json:"processing_complete"`
	BackendCalculations bool `json:"backend_calculations"`
}
