package vader

import (
	"context"
	"testing"
)

func TestPolarityDirection(t *testing.T) {
	estimator := NewEstimator()

	positive, err := estimator.Polarity(context.Background(), "This intern is excellent, wonderful and a joy to work with")
	if err != nil {
		t.Fatalf("polarity: %v", err)
	}
	if positive <= 0 {
		t.Fatalf("expected positive compound score, got %v", positive)
	}

	negative, err := estimator.Polarity(context.Background(), "Terrible work, awful attitude and constant failure")
	if err != nil {
		t.Fatalf("polarity: %v", err)
	}
	if negative >= 0 {
		t.Fatalf("expected negative compound score, got %v", negative)
	}
}

func TestPolarityStaysInRange(t *testing.T) {
	estimator := NewEstimator()

	for _, text := range []string{"", "ok", "amazing amazing amazing amazing amazing"} {
		score, err := estimator.Polarity(context.Background(), text)
		if err != nil {
			t.Fatalf("polarity(%q): %v", text, err)
		}
		if score < -1 || score > 1 {
			t.Fatalf("score %v out of range for %q", score, text)
		}
	}
}

func TestPolarityHonorsCancelledContext(t *testing.T) {
	estimator := NewEstimator()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := estimator.Polarity(ctx, "fine"); err == nil {
		t.Fatalf("expected context error")
	}
}
