package lexicon

import (
	"testing"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
)

func testSet() Set {
	return Set{
		Version:  "test",
		Positive: []string{"excellent", "skilled", "exceeds expectations"},
		Negative: []string{"poor", "needs improvement", "late"},
		Neutral:  []string{"okay", "average"},
	}
}

func TestScoreCountsDistinctTerms(t *testing.T) {
	scorer := NewScorer(testSet())

	counts := scorer.Score("Excellent and skilled, but often late and poor at planning")
	want := domain.LexiconCounts{Positive: 2, Negative: 2}
	if counts != want {
		t.Fatalf("expected %+v, got %+v", want, counts)
	}
}

func TestScoreIsCaseInsensitive(t *testing.T) {
	scorer := NewScorer(testSet())

	counts := scorer.Score("EXCELLENT work, NEEDS IMPROVEMENT in testing")
	if counts.Positive != 1 || counts.Negative != 1 {
		t.Fatalf("expected case-insensitive matches, got %+v", counts)
	}
}

func TestScoreRepeatedTermCountsOnce(t *testing.T) {
	scorer := NewScorer(testSet())

	counts := scorer.Score("poor planning, poor testing, poor documentation")
	if counts.Negative != 1 {
		t.Fatalf("repeated term must count once, got %d", counts.Negative)
	}
}

func TestScoreMatchesMultiWordPhrases(t *testing.T) {
	scorer := NewScorer(testSet())

	if counts := scorer.Score("consistently exceeds expectations"); counts.Positive != 1 {
		t.Fatalf("expected phrase match, got %+v", counts)
	}
	if counts := scorer.Score("expectations were exceeded"); counts.Positive != 0 {
		t.Fatalf("reordered words must not match the phrase, got %+v", counts)
	}
}

func TestScoreUnmatchedTextIsAllZero(t *testing.T) {
	scorer := NewScorer(testSet())

	if counts := scorer.Score("the intern wrote some code"); counts != (domain.LexiconCounts{}) {
		t.Fatalf("expected zero counts, got %+v", counts)
	}
}

func TestScorerDeduplicatesConfiguredTerms(t *testing.T) {
	scorer := NewScorer(Set{
		Positive: []string{"great", "Great", " great "},
		Negative: []string{"bad"},
		Neutral:  []string{"okay"},
	})

	if counts := scorer.Score("great effort"); counts.Positive != 1 {
		t.Fatalf("duplicate configured terms must collapse, got %+v", counts)
	}
}
