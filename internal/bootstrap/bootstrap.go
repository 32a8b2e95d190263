package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mehtaish/feedback-insight/internal/config"
	"github.com/mehtaish/feedback-insight/internal/core/ports"
	"github.com/mehtaish/feedback-insight/internal/core/usecase"
	"github.com/mehtaish/feedback-insight/internal/infrastructure/dataset/excel"
	"github.com/mehtaish/feedback-insight/internal/infrastructure/lexicon"
	"github.com/mehtaish/feedback-insight/internal/infrastructure/ml/inference"
	"github.com/mehtaish/feedback-insight/internal/infrastructure/polarity/vader"
	"github.com/mehtaish/feedback-insight/internal/infrastructure/queue/nats"
	"github.com/mehtaish/feedback-insight/internal/infrastructure/repository/postgres"
	"github.com/mehtaish/feedback-insight/internal/infrastructure/resilience"
	"github.com/mehtaish/feedback-insight/internal/infrastructure/suggestion/gemini"
	"github.com/mehtaish/feedback-insight/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	Repo      ports.FeedbackRepository
	Analyzer  ports.SentimentAnalyzer
	SubmitUC  ports.FeedbackIntake
	StatsUC   ports.StatsProvider
	SuggestUC ports.SuggestionService
	ProcessUC ports.SuggestionProcessor

	closeFn func()
}

// New wires the application graph. serverMetrics may be nil; the worker runs
// without the http-side instruments.
func New(ctx context.Context, cfg config.Config, serverMetrics *metrics.HTTPServerMetrics) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewFeedbackRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	lexiconSet, err := lexicon.Load(cfg.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	scorer := lexicon.NewScorer(lexiconSet)
	slog.Info("lexicon loaded", "version", lexiconSet.Version)

	classifier := inference.New(cfg.InferenceURL, cfg.InferenceModel, cfg.InferenceTimeout, executor)
	estimator := vader.NewEstimator()
	var analyzer ports.SentimentAnalyzer = usecase.NewAnalyzeSentimentUseCase(classifier, estimator, scorer, usecase.DefaultArbitrationConfig())
	if serverMetrics != nil {
		analyzer = metrics.ObserveAnalyzer(analyzer, serverMetrics, "feedback-api")
	}

	// The generator stays optional: without a key the heuristic fallback
	// serves every suggestion.
	var generator ports.SuggestionGenerator
	var geminiGen *gemini.Generator
	if cfg.GeminiAPIKey != "" {
		geminiGen, err = gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("init suggestion generator: %w", err)
		}
		generator = geminiGen
	} else {
		slog.Warn("gemini api key not set, suggestions degrade to heuristics")
	}

	var dataset ports.DatasetSource
	if cfg.DatasetPath != "" {
		dataset = excel.NewSource(cfg.DatasetPath)
	}

	submitUC := usecase.NewSubmitFeedbackUseCase(repo, queue, analyzer)
	statsUC := usecase.NewStatsUseCase(repo, dataset, nil)
	suggestUC := usecase.NewSuggestUseCase(analyzer, generator)
	processUC := usecase.NewProcessSuggestionUseCase(repo, generator)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		Analyzer:  analyzer,
		SubmitUC:  submitUC,
		StatsUC:   statsUC,
		SuggestUC: suggestUC,
		ProcessUC: processUC,

		closeFn: func() {
			queue.Close()
			if geminiGen != nil {
				_ = geminiGen.Close()
			}
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
