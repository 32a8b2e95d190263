package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
	"github.com/mehtaish/feedback-insight/internal/core/ports"
)

// ArbitrationConfig holds the thresholds of the hybrid classification chain.
type ArbitrationConfig struct {
	// ModelHighConfidence is the probability at or above which the context
	// classifier's answer is taken as final.
	ModelHighConfidence float64
	// KeywordStrongCount is the indicator-hit count that makes lexicon
	// evidence override a low-confidence model.
	KeywordStrongCount      int
	KeywordStrongConfidence float64
	KeywordWeakConfidence   float64
	// ModelLowFactor discounts the classifier probability when it is used
	// below ModelHighConfidence.
	ModelLowFactor float64
	// FallbackConfidence must stay within [0.50, 0.55]; the polarity fallback
	// is deliberately marked low-trust.
	FallbackConfidence float64
	PolarityPositive   float64
	PolarityNegative   float64
}

func DefaultArbitrationConfig() ArbitrationConfig {
	return ArbitrationConfig{
		ModelHighConfidence:     0.65,
		KeywordStrongCount:      2,
		KeywordStrongConfidence: 0.85,
		KeywordWeakConfidence:   0.70,
		ModelLowFactor:          0.6,
		FallbackConfidence:      0.52,
		PolarityPositive:        0.1,
		PolarityNegative:        -0.1,
	}
}

// signalFrame carries the per-call evidence the arbitration rules decide on.
type signalFrame struct {
	ctx    context.Context
	text   string
	model  *domain.SentimentSignal
	counts domain.LexiconCounts
}

// arbitrationRule returns a final result and true when it applies. Rules are
// evaluated in order; the first match wins.
type arbitrationRule func(frame signalFrame) (domain.SentimentResult, bool)

// AnalyzeSentimentUseCase combines the context classifier, the lexicon scorer
// and the polarity fallback into one deterministic decision per call. It never
// fails: every sub-method error or panic is absorbed here and the chain falls
// through to the next applicable rule.
type AnalyzeSentimentUseCase struct {
	classifier ports.ContextClassifier
	estimator  ports.PolarityEstimator
	scorer     ports.LexiconScorer
	cfg        ArbitrationConfig
	rules      []arbitrationRule
}

func NewAnalyzeSentimentUseCase(
	classifier ports.ContextClassifier,
	estimator ports.PolarityEstimator,
	scorer ports.LexiconScorer,
	cfg ArbitrationConfig,
) *AnalyzeSentimentUseCase {
	uc := &AnalyzeSentimentUseCase{
		classifier: classifier,
		estimator:  estimator,
		scorer:     scorer,
		cfg:        cfg,
	}
	uc.rules = []arbitrationRule{
		uc.ruleTransformerHigh,
		uc.ruleKeywordStrong,
		uc.ruleKeywordWeak,
		uc.ruleTransformerLow,
		uc.rulePolarityFallback,
	}
	return uc
}

// Analyze classifies feedback text. Empty or non-UTF-8 input short-circuits to
// the fixed empty-input result without invoking any sub-method.
func (uc *AnalyzeSentimentUseCase) Analyze(ctx context.Context, text string) domain.SentimentResult {
	if strings.TrimSpace(text) == "" || !utf8.ValidString(text) {
		return domain.SentimentResult{
			Label:  domain.SentimentNeutral,
			Method: domain.MethodEmptyInput,
		}
	}

	frame := signalFrame{
		ctx:    ctx,
		text:   text,
		counts: uc.scorer.Score(text),
		model:  uc.classifierSignal(ctx, text),
	}

	for _, rule := range uc.rules {
		if result, ok := rule(frame); ok {
			result.Confidence = domain.ClampConfidence(result.Confidence)
			if frame.model != nil {
				result.Signals = append([]domain.SentimentSignal{*frame.model}, result.Signals...)
			}
			return result
		}
	}

	// The fallback rule always matches; this is unreachable.
	return domain.SentimentResult{Label: domain.SentimentNeutral, Method: domain.MethodFallback}
}

func (uc *AnalyzeSentimentUseCase) ruleTransformerHigh(frame signalFrame) (domain.SentimentResult, bool) {
	if frame.model == nil || frame.model.Confidence < uc.cfg.ModelHighConfidence {
		return domain.SentimentResult{}, false
	}
	return domain.SentimentResult{
		Label:      frame.model.Label,
		Confidence: frame.model.Confidence,
		Method:     domain.MethodTransformerHigh,
	}, true
}

func (uc *AnalyzeSentimentUseCase) ruleKeywordStrong(frame signalFrame) (domain.SentimentResult, bool) {
	switch {
	case frame.counts.Negative >= uc.cfg.KeywordStrongCount:
		return domain.SentimentResult{
			Label:      domain.SentimentNegative,
			Confidence: uc.cfg.KeywordStrongConfidence,
			Method:     domain.MethodKeywordStrong,
		}, true
	case frame.counts.Positive >= uc.cfg.KeywordStrongCount:
		return domain.SentimentResult{
			Label:      domain.SentimentPositive,
			Confidence: uc.cfg.KeywordStrongConfidence,
			Method:     domain.MethodKeywordStrong,
		}, true
	default:
		return domain.SentimentResult{}, false
	}
}

func (uc *AnalyzeSentimentUseCase) ruleKeywordWeak(frame signalFrame) (domain.SentimentResult, bool) {
	switch {
	case frame.counts.Negative == 1 && frame.counts.Positive == 0:
		return domain.SentimentResult{
			Label:      domain.SentimentNegative,
			Confidence: uc.cfg.KeywordWeakConfidence,
			Method:     domain.MethodKeywordWeak,
		}, true
	case frame.counts.Positive == 1 && frame.counts.Negative == 0:
		return domain.SentimentResult{
			Label:      domain.SentimentPositive,
			Confidence: uc.cfg.KeywordWeakConfidence,
			Method:     domain.MethodKeywordWeak,
		}, true
	default:
		return domain.SentimentResult{}, false
	}
}

func (uc *AnalyzeSentimentUseCase) ruleTransformerLow(frame signalFrame) (domain.SentimentResult, bool) {
	if frame.model == nil {
		return domain.SentimentResult{}, false
	}
	return domain.SentimentResult{
		Label:      frame.model.Label,
		Confidence: frame.model.Confidence * uc.cfg.ModelLowFactor,
		Method:     domain.MethodTransformerLow,
	}, true
}

func (uc *AnalyzeSentimentUseCase) rulePolarityFallback(frame signalFrame) (domain.SentimentResult, bool) {
	polarity, err := uc.polarityValue(frame.ctx, frame.text)
	if err != nil {
		slog.Warn("polarity_fallback_failed", "error", err)
		return domain.SentimentResult{
			Label:  domain.SentimentNeutral,
			Method: domain.MethodFallback,
			Signals: []domain.SentimentSignal{
				{Label: domain.SentimentNeutral, Confidence: 0, Source: "polarity-failed"},
			},
		}, true
	}

	label := domain.SentimentNeutral
	switch {
	case polarity > uc.cfg.PolarityPositive:
		label = domain.SentimentPositive
	case polarity < uc.cfg.PolarityNegative:
		label = domain.SentimentNegative
	}
	return domain.SentimentResult{
		Label:      label,
		Confidence: uc.cfg.FallbackConfidence,
		Method:     domain.MethodFallback,
		Signals: []domain.SentimentSignal{
			{Label: label, Confidence: uc.cfg.FallbackConfidence, Source: "polarity"},
		},
	}, true
}

// classifierSignal asks the context classifier and absorbs every failure mode,
// returning nil when the signal is absent.
func (uc *AnalyzeSentimentUseCase) classifierSignal(ctx context.Context, text string) *domain.SentimentSignal {
	if uc.classifier == nil {
		return nil
	}

	signal, err := func() (signal domain.SentimentSignal, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("classifier panic: %v", r)
			}
		}()
		return uc.classifier.Classify(ctx, text)
	}()
	if err != nil {
		slog.Warn("context_classifier_unavailable", "error", err)
		return nil
	}
	if !signal.Label.Valid() {
		slog.Warn("context_classifier_bad_label", "label", string(signal.Label))
		return nil
	}

	signal.Confidence = domain.ClampConfidence(signal.Confidence)
	if signal.Source == "" {
		signal.Source = "transformer"
	}
	return &signal
}

func (uc *AnalyzeSentimentUseCase) polarityValue(ctx context.Context, text string) (float64, error) {
	if uc.estimator == nil {
		return 0, domain.ErrPolarityUnavailable
	}

	polarity, err := func() (polarity float64, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("polarity estimator panic: %v", r)
			}
		}()
		return uc.estimator.Polarity(ctx, text)
	}()
	if err != nil {
		return 0, err
	}

	if polarity > 1 {
		polarity = 1
	}
	if polarity < -1 {
		polarity = -1
	}
	return polarity, nil
}
