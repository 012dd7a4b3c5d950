package infrastructure

import (
	"context"
	"fmt"
	"sync"

	"github.com/TecMrDocs/whispertrend/internal/domain"
	"github.com/TecMrDocs/whispertrend/pkg/logger"
)

type AnalysisRepository struct {
	data   map[string]domain.StoredAnalysis
	order  []string
	mutex  sync.RWMutex
	logger *logger.Logger
}

func NewAnalysisRepository(logger *logger.Logger) *AnalysisRepository {
	return &AnalysisRepository{
		data:   make(map[string]domain.StoredAnalysis),
		logger: logger,
	}
}

func (r *AnalysisRepository) Store(ctx context.Context, analysis domain.StoredAnalysis) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.data[analysis.ID]; !exists {
		r.order = append(r.order, analysis.ID)
	}
	r.data[analysis.ID] = analysis

	r.logger.WithContext(ctx).WithField("analysis_id", analysis.ID).Info("Stored analysis in memory")
	return nil
}

func (r *AnalysisRepository) GetByID(ctx context.Context, id string) (*domain.StoredAnalysis, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	analysis, exists := r.data[id]
	if !exists {
		return nil, fmt.Errorf("analysis %s not found", id)
	}
	return &analysis, nil
}

// List returns the most recent analyses, newest first.
func (r *AnalysisRepository) List(ctx context.Context, limit int) ([]domain.StoredAnalysis, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	results := make([]domain.StoredAnalysis, 0, limit)
	for i := len(r.order) - 1; i >= 0 && len(results) < limit; i-- {
		results = append(results, r.data[r.order[i]])
	}
	return results, nil
}
