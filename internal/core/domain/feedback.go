package domain

import (
	"strings"
	"time"
)

type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionReady    SuggestionStatus = "ready"
	SuggestionDegraded SuggestionStatus = "degraded"
)

type Feedback struct {
	ID               string               `json:"id"`
	Text             string               `json:"feedback_text"`
	Domain           string               `json:"domain"`
	SentimentLabel   SentimentLabel       `json:"sentiment_label"`
	SentimentScore   float64              `json:"sentiment_score"`
	Method           ClassificationMethod `json:"method"`
	Suggestion       string               `json:"suggestion,omitempty"`
	SuggestionStatus SuggestionStatus     `json:"suggestion_status"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

const DefaultDomain = "engineering"

var knownDomains = map[string]struct{}{
	"engineering": {},
	"commerce":    {},
	"science":     {},
	"arts":        {},
	"medical":     {},
	"law":         {},
	"management":  {},
	"other":       {},
}

// NormalizeDomain lowercases and validates a study domain, falling back to the
// default for anything unknown.
func NormalizeDomain(domain string) string {
	normalized := strings.ToLower(strings.TrimSpace(domain))
	if _, ok := knownDomains[normalized]; ok {
		return normalized
	}
	return DefaultDomain
}

type DayBucket struct {
	Date     string  `json:"date"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

type DashboardStats struct {
	Total         int         `json:"total"`
	AvgScore      float64     `json:"avg_sentiment_score"`
	CountPositive int         `json:"count_positive"`
	CountNeutral  int         `json:"count_neutral"`
	CountNegative int         `json:"count_negative"`
	Timeseries    []DayBucket `json:"timeseries"`
	Source        string      `json:"source"`
}
