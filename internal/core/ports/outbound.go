package ports

import (
	"context"
	"time"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
)

// ContextClassifier is the pretrained-model capability. Implementations must
// report any non-success outcome (load failure, timeout, transport error) as an
// error wrapping domain.ErrClassifierUnavailable; callers treat that as "signal
// absent", never as a fatal condition.
type ContextClassifier interface {
	Classify(ctx context.Context, text string) (domain.SentimentSignal, error)
}

// LexiconScorer counts indicator-term hits in feedback text. Implementations
// must be pure: no I/O, no errors, all-zero counts for unmatched text.
type LexiconScorer interface {
	Score(text string) domain.LexiconCounts
}

// PolarityEstimator produces a continuous polarity value in [-1, 1].
type PolarityEstimator interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// SuggestionGenerator creates an improvement suggestion for classified feedback.
type SuggestionGenerator interface {
	GenerateSuggestion(ctx context.Context, text string, label domain.SentimentLabel, studyDomain string) (string, error)
}

// FeedbackRepository persists and reads feedback records.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.Feedback) error
	GetByID(ctx context.Context, id string) (*domain.Feedback, error)
	List(ctx context.Context, limit int) ([]domain.Feedback, error)
	SaveSuggestion(ctx context.Context, id, suggestion string, status domain.SuggestionStatus) error
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}

// MessageQueue publishes/consumes feedback lifecycle events.
type MessageQueue interface {
	PublishFeedbackCreated(ctx context.Context, feedbackID string) error
	SubscribeFeedbackCreated(ctx context.Context, handler func(context.Context, string) error) error
}

// DatasetSource reads the curated feedback dataset used for dashboard stats
// before any live records exist.
type DatasetSource interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}

// Clock abstracts time for cache expiry in tests.
type Clock func() time.Time
