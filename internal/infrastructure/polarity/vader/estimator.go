package vader

import (
	"context"

	"github.com/jonreiter/govader"
)

// Estimator wraps the VADER rule-based analyzer as the continuous polarity
// capability. The compound score already lives in [-1, 1]. The underlying
// analyzer is read-only after construction, so concurrent calls are safe.
type Estimator struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewEstimator() *Estimator {
	return &Estimator{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (e *Estimator) Polarity(ctx context.Context, text string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	compound := e.analyzer.PolarityScores(text).Compound
	if compound > 1 {
		compound = 1
	}
	if compound < -1 {
		compound = -1
	}
	return compound, nil
}
