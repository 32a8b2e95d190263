package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
)

type memoryRepo struct {
	records     map[string]*domain.Feedback
	createErr   error
	statsResult *domain.DashboardStats
	statsErr    error
	statsCalls  int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[string]*domain.Feedback)}
}

func (r *memoryRepo) Create(_ context.Context, fb *domain.Feedback) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *fb
	r.records[fb.ID] = &copied
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Feedback, error) {
	fb, ok := r.records[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrFeedbackNotFound, "get feedback", errors.New(id))
	}
	copied := *fb
	return &copied, nil
}

func (r *memoryRepo) List(_ context.Context, _ int) ([]domain.Feedback, error) {
	out := make([]domain.Feedback, 0, len(r.records))
	for _, fb := range r.records {
		out = append(out, *fb)
	}
	return out, nil
}

func (r *memoryRepo) SaveSuggestion(_ context.Context, id, suggestion string, status domain.SuggestionStatus) error {
	fb, ok := r.records[id]
	if !ok {
		return domain.WrapError(domain.ErrFeedbackNotFound, "save suggestion", errors.New(id))
	}
	fb.Suggestion = suggestion
	fb.SuggestionStatus = status
	return nil
}

func (r *memoryRepo) Stats(_ context.Context) (*domain.DashboardStats, error) {
	r.statsCalls++
	if r.statsErr != nil {
		return nil, r.statsErr
	}
	if r.statsResult != nil {
		copied := *r.statsResult
		return &copied, nil
	}
	return &domain.DashboardStats{Timeseries: []domain.DayBucket{}}, nil
}

type fakeQueue struct {
	publishErr error
	published  []string
}

func (q *fakeQueue) PublishFeedbackCreated(_ context.Context, feedbackID string) error {
	if q.publishErr != nil {
		return q.publishErr
	}
	q.published = append(q.published, feedbackID)
	return nil
}

func (q *fakeQueue) SubscribeFeedbackCreated(context.Context, func(context.Context, string) error) error {
	return nil
}

type stubAnalyzer struct {
	result domain.SentimentResult
}

func (a stubAnalyzer) Analyze(context.Context, string) domain.SentimentResult {
	return a.result
}

func TestSubmitStoresClassifiedFeedback(t *testing.T) {
	repo := newMemoryRepo()
	queue := &fakeQueue{}
	uc := NewSubmitFeedbackUseCase(repo, queue, stubAnalyzer{result: domain.SentimentResult{
		Label:      domain.SentimentPositive,
		Confidence: 0.85,
		Method:     domain.MethodKeywordStrong,
	}})

	fb, err := uc.Submit(context.Background(), "  great communication and reliable delivery  ", "Science")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if fb.ID == "" {
		t.Fatalf("expected generated id")
	}
	if fb.Text != "great communication and reliable delivery" {
		t.Fatalf("expected trimmed text, got %q", fb.Text)
	}
	if fb.Domain != "science" {
		t.Fatalf("expected normalized domain science, got %q", fb.Domain)
	}
	if fb.SentimentLabel != domain.SentimentPositive || fb.SentimentScore != 0.85 {
		t.Fatalf("classification not carried onto record: %+v", fb)
	}
	if fb.SuggestionStatus != domain.SuggestionPending {
		t.Fatalf("expected pending suggestion, got %s", fb.SuggestionStatus)
	}
	if len(queue.published) != 1 || queue.published[0] != fb.ID {
		t.Fatalf("expected one published event for %s, got %v", fb.ID, queue.published)
	}
	if _, ok := repo.records[fb.ID]; !ok {
		t.Fatalf("record not persisted")
	}
}

func TestSubmitRejectsBlankText(t *testing.T) {
	uc := NewSubmitFeedbackUseCase(newMemoryRepo(), &fakeQueue{}, stubAnalyzer{})

	_, err := uc.Submit(context.Background(), "   ", "engineering")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestSubmitUnknownDomainFallsBackToDefault(t *testing.T) {
	repo := newMemoryRepo()
	uc := NewSubmitFeedbackUseCase(repo, &fakeQueue{}, stubAnalyzer{result: domain.SentimentResult{
		Label: domain.SentimentNeutral,
	}})

	fb, err := uc.Submit(context.Background(), "fine work", "astrology")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if fb.Domain != domain.DefaultDomain {
		t.Fatalf("expected default domain, got %q", fb.Domain)
	}
}

func TestSubmitSurvivesBrokenQueue(t *testing.T) {
	repo := newMemoryRepo()
	queue := &fakeQueue{publishErr: errors.New("nats down")}
	uc := NewSubmitFeedbackUseCase(repo, queue, stubAnalyzer{result: domain.SentimentResult{
		Label:      domain.SentimentNegative,
		Confidence: 0.52,
		Method:     domain.MethodFallback,
	}})

	fb, err := uc.Submit(context.Background(), "always late with deliverables", "engineering")
	if err != nil {
		t.Fatalf("submit must not fail on publish error: %v", err)
	}
	if fb.SuggestionStatus != domain.SuggestionDegraded {
		t.Fatalf("expected degraded suggestion when publish fails, got %s", fb.SuggestionStatus)
	}
	if fb.Suggestion == "" {
		t.Fatalf("expected heuristic suggestion to be filled in")
	}

	stored := repo.records[fb.ID]
	if stored.SuggestionStatus != domain.SuggestionDegraded || stored.Suggestion == "" {
		t.Fatalf("degraded suggestion not persisted: %+v", stored)
	}
}

func TestSubmitPropagatesRepositoryFailure(t *testing.T) {
	repo := newMemoryRepo()
	repo.createErr = errors.New("connection refused")
	uc := NewSubmitFeedbackUseCase(repo, &fakeQueue{}, stubAnalyzer{})

	if _, err := uc.Submit(context.Background(), "anything", "engineering"); err == nil {
		t.Fatalf("expected error when the repository is down")
	}
}
