package ports

import (
	"context"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
)

// SentimentAnalyzer is the inbound contract for the hybrid classification engine.
// Analyze never fails for string input; degraded signals lower the confidence
// and coarsen the method instead.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) domain.SentimentResult
}

// FeedbackIntake is the inbound contract for feedback submission.
type FeedbackIntake interface {
	Submit(ctx context.Context, text, studyDomain string) (*domain.Feedback, error)
}

// FeedbackReader is the inbound read model for stored feedback.
type FeedbackReader interface {
	GetByID(ctx context.Context, id string) (*domain.Feedback, error)
	List(ctx context.Context, limit int) ([]domain.Feedback, error)
}

// StatsProvider serves aggregated dashboard figures.
type StatsProvider interface {
	DashboardStats(ctx context.Context, source string) (*domain.DashboardStats, error)
}

// SuggestionService classifies text and produces a suggestion in one call.
type SuggestionService interface {
	Suggest(ctx context.Context, text, studyDomain string) (*domain.SentimentResult, string, error)
}

// SuggestionProcessor is the inbound contract for asynchronous suggestion
// generation on stored feedback.
type SuggestionProcessor interface {
	ProcessByID(ctx context.Context, feedbackID string) error
}
