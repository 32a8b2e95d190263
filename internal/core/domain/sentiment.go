package domain

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNegative SentimentLabel = "Negative"
)

func (l SentimentLabel) Valid() bool {
	switch l {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	default:
		return false
	}
}

// ClassificationMethod records which arbitration rule produced a result.
type ClassificationMethod string

const (
	MethodTransformerHigh ClassificationMethod = "transformer-high"
	MethodKeywordStrong   ClassificationMethod = "keyword-strong"
	MethodKeywordWeak     ClassificationMethod = "keyword-weak"
	MethodTransformerLow  ClassificationMethod = "transformer-low"
	MethodFallback        ClassificationMethod = "fallback"
	MethodEmptyInput      ClassificationMethod = "empty-input"
)

// SentimentSignal is one sub-method's independent classification attempt.
type SentimentSignal struct {
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
	Source     string         `json:"source"`
}

// SentimentResult is the arbitrated decision for one piece of feedback text.
// Only Label and Confidence are persisted; Method and Signals are diagnostic.
type SentimentResult struct {
	Label      SentimentLabel       `json:"label"`
	Confidence float64              `json:"confidence"`
	Method     ClassificationMethod `json:"method"`
	Signals    []SentimentSignal    `json:"signals,omitempty"`
}

// LexiconCounts is the number of distinct indicator terms found per polarity.
type LexiconCounts struct {
	Positive int
	Negative int
	Neutral  int
}

func ClampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
