package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
	"github.com/mehtaish/feedback-insight/internal/core/ports"
)

type SubmitFeedbackUseCase struct {
	repo     ports.FeedbackRepository
	queue    ports.MessageQueue
	analyzer ports.SentimentAnalyzer
}

func NewSubmitFeedbackUseCase(
	repo ports.FeedbackRepository,
	queue ports.MessageQueue,
	analyzer ports.SentimentAnalyzer,
) *SubmitFeedbackUseCase {
	return &SubmitFeedbackUseCase{
		repo:     repo,
		queue:    queue,
		analyzer: analyzer,
	}
}

// Submit validates and classifies feedback text, persists the record and
// schedules asynchronous suggestion generation.
func (uc *SubmitFeedbackUseCase) Submit(ctx context.Context, text, studyDomain string) (*domain.Feedback, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "submit feedback", errors.New("feedback_text is required"))
	}

	result := uc.analyzer.Analyze(ctx, text)
	now := time.Now().UTC()

	fb := &domain.Feedback{
		ID:               uuid.NewString(),
		Text:             text,
		Domain:           domain.NormalizeDomain(studyDomain),
		SentimentLabel:   result.Label,
		SentimentScore:   result.Confidence,
		Method:           result.Method,
		SuggestionStatus: domain.SuggestionPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := uc.repo.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("create feedback record: %w", err)
	}

	// The record is already stored; a broken queue must not fail the submit.
	// Fill in the heuristic suggestion so the record does not stay pending.
	if err := uc.queue.PublishFeedbackCreated(ctx, fb.ID); err != nil {
		slog.Warn("publish_feedback_created_failed", "feedback_id", fb.ID, "error", err)
		fb.Suggestion = heuristicSuggestion(fb.Text, fb.SentimentLabel, fb.Domain)
		fb.SuggestionStatus = domain.SuggestionDegraded
		if saveErr := uc.repo.SaveSuggestion(ctx, fb.ID, fb.Suggestion, fb.SuggestionStatus); saveErr != nil {
			slog.Warn("save_degraded_suggestion_failed", "feedback_id", fb.ID, "error", saveErr)
		}
	}

	return fb, nil
}
