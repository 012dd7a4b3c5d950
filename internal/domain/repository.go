package domain

import (
	"context"
)

// TrendsClient is the interface for fetching a live trends snapshot.
type TrendsClient interface {
	FetchTrends(ctx context.Context) (*TrendsDocument, error)
}

// StoredAnalysis is one completed pipeline run kept for later retrieval.
type StoredAnalysis struct {
	ID        string          `json:"id"`
	Dashboard *DashboardModel `json:"dashboard"`
}

// AnalysisRepository is the interface for retaining completed runs.
type AnalysisRepository interface {
	Store(ctx context.Context, analysis StoredAnalysis) error
	GetByID(ctx context.Context, id string) (*StoredAnalysis, error)
	List(ctx context.Context, limit int) ([]StoredAnalysis, error)
}
