package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
	"github.com/mehtaish/feedback-insight/internal/core/ports"
)

const statsCacheTTL = 5 * time.Minute

type statsCacheEntry struct {
	stats     *domain.DashboardStats
	expiresAt time.Time
}

// StatsUseCase aggregates dashboard figures from the live database, falling
// back to the curated dataset while no feedback has been recorded yet.
// Results are cached briefly; the cache only delays aggregate freshness and
// never influences classification.
type StatsUseCase struct {
	repo    ports.FeedbackRepository
	dataset ports.DatasetSource
	now     ports.Clock

	mu    sync.Mutex
	cache map[string]statsCacheEntry
}

func NewStatsUseCase(repo ports.FeedbackRepository, dataset ports.DatasetSource, now ports.Clock) *StatsUseCase {
	if now == nil {
		now = time.Now
	}
	return &StatsUseCase{
		repo:    repo,
		dataset: dataset,
		now:     now,
		cache:   make(map[string]statsCacheEntry),
	}
}

// DashboardStats serves stats for the requested source: "dataset" forces the
// curated dataset, anything else reads the database first.
func (uc *StatsUseCase) DashboardStats(ctx context.Context, source string) (*domain.DashboardStats, error) {
	key := "database"
	if source == "dataset" {
		key = "dataset"
	}

	if cached := uc.cachedStats(key); cached != nil {
		return cached, nil
	}

	stats, err := uc.computeStats(ctx, key)
	if err != nil {
		return nil, err
	}
	uc.storeStats(key, stats)
	return stats, nil
}

func (uc *StatsUseCase) computeStats(ctx context.Context, key string) (*domain.DashboardStats, error) {
	if key == "dataset" {
		return uc.datasetStats(ctx)
	}

	stats, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate feedback stats: %w", err)
	}
	if stats.Total == 0 && uc.dataset != nil {
		return uc.datasetStats(ctx)
	}
	stats.Source = "database"
	return stats, nil
}

func (uc *StatsUseCase) datasetStats(ctx context.Context) (*domain.DashboardStats, error) {
	if uc.dataset == nil {
		return &domain.DashboardStats{Source: "database", Timeseries: []domain.DayBucket{}}, nil
	}
	stats, err := uc.dataset.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate dataset stats: %w", err)
	}
	stats.Source = "dataset"
	return stats, nil
}

func (uc *StatsUseCase) cachedStats(key string) *domain.DashboardStats {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	entry, ok := uc.cache[key]
	if !ok || uc.now().After(entry.expiresAt) {
		return nil
	}
	return entry.stats
}

func (uc *StatsUseCase) storeStats(key string, stats *domain.DashboardStats) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.cache[key] = statsCacheEntry{
		stats:     stats,
		expiresAt: uc.now().Add(statsCacheTTL),
	}
}
