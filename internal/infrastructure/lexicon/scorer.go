package lexicon

import (
	"strings"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
)

// Scorer matches indicator terms and phrases by substring containment over
// lowercase-normalized text. Multi-word phrases match only as contiguous text.
// The scorer is immutable after construction and safe for concurrent use.
type Scorer struct {
	positive []string
	negative []string
	neutral  []string
}

func NewScorer(set Set) *Scorer {
	return &Scorer{
		positive: normalizeTerms(set.Positive),
		negative: normalizeTerms(set.Negative),
		neutral:  normalizeTerms(set.Neutral),
	}
}

// Score counts indicator hits in text. Each distinct term contributes at most
// once. Unmatched text yields all-zero counts.
func (s *Scorer) Score(text string) domain.LexiconCounts {
	lower := strings.ToLower(text)
	return domain.LexiconCounts{
		Positive: countContained(lower, s.positive),
		Negative: countContained(lower, s.negative),
		Neutral:  countContained(lower, s.neutral),
	}
}

func countContained(lower string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			n++
		}
	}
	return n
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		normalized := strings.ToLower(strings.TrimSpace(term))
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
