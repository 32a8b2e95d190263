package metrics

import (
	"context"
	"time"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
	"github.com/mehtaish/feedback-insight/internal/core/ports"
)

// AnalyzerObserver decorates a sentiment analyzer with classification metrics.
type AnalyzerObserver struct {
	inner   ports.SentimentAnalyzer
	metrics *HTTPServerMetrics
	service string
}

func ObserveAnalyzer(inner ports.SentimentAnalyzer, m *HTTPServerMetrics, service string) *AnalyzerObserver {
	return &AnalyzerObserver{
		inner:   inner,
		metrics: m,
		service: service,
	}
}

func (a *AnalyzerObserver) Analyze(ctx context.Context, text string) domain.SentimentResult {
	start := time.Now()
	result := a.inner.Analyze(ctx, text)
	a.metrics.RecordClassification(a.service, string(result.Method), string(result.Label), time.Since(start))

	if result.Method == domain.MethodFallback {
		a.metrics.RecordFallbackActivation(a.service)
	}
	if result.Method != domain.MethodEmptyInput && !hasTransformerSignal(result.Signals) {
		a.metrics.RecordClassifierFailure(a.service)
	}
	return result
}

func hasTransformerSignal(signals []domain.SentimentSignal) bool {
	for _, s := range signals {
		if s.Source == "transformer" {
			return true
		}
	}
	return false
}
