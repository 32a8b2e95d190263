package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
	"github.com/mehtaish/feedback-insight/internal/core/ports"
)

// ProcessSuggestionUseCase fills in the suggestion for a stored feedback
// record. It runs on the worker, off the request path, because generation can
// take seconds.
type ProcessSuggestionUseCase struct {
	repo      ports.FeedbackRepository
	generator ports.SuggestionGenerator
}

func NewProcessSuggestionUseCase(repo ports.FeedbackRepository, generator ports.SuggestionGenerator) *ProcessSuggestionUseCase {
	return &ProcessSuggestionUseCase{
		repo:      repo,
		generator: generator,
	}
}

func (uc *ProcessSuggestionUseCase) ProcessByID(ctx context.Context, feedbackID string) error {
	fb, err := uc.repo.GetByID(ctx, feedbackID)
	if err != nil {
		return fmt.Errorf("fetch feedback by id: %w", err)
	}
	if fb.SuggestionStatus == domain.SuggestionReady {
		return nil
	}

	status := domain.SuggestionReady
	var suggestion string
	if uc.generator != nil {
		suggestion, err = uc.generator.GenerateSuggestion(ctx, fb.Text, fb.SentimentLabel, fb.Domain)
	}
	if err != nil || strings.TrimSpace(suggestion) == "" {
		if err != nil {
			slog.Warn("suggestion_generator_failed", "feedback_id", feedbackID, "error", err)
		}
		suggestion = heuristicSuggestion(fb.Text, fb.SentimentLabel, fb.Domain)
		status = domain.SuggestionDegraded
	}

	if err := uc.repo.SaveSuggestion(ctx, feedbackID, suggestion, status); err != nil {
		return fmt.Errorf("save suggestion: %w", err)
	}
	return nil
}
