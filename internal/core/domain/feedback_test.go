package domain

import "testing"

func TestNormalizeDomain(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"engineering", "engineering"},
		{"  Science ", "science"},
		{"LAW", "law"},
		{"astrology", DefaultDomain},
		{"", DefaultDomain},
	}
	for _, tc := range cases {
		if got := NormalizeDomain(tc.in); got != tc.want {
			t.Fatalf("NormalizeDomain(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClampConfidence(t *testing.T) {
	if got := ClampConfidence(-0.2); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := ClampConfidence(1.4); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
	if got := ClampConfidence(0.52); got != 0.52 {
		t.Fatalf("expected passthrough, got %v", got)
	}
}

func TestSentimentLabelValid(t *testing.T) {
	for _, label := range []SentimentLabel{SentimentPositive, SentimentNeutral, SentimentNegative} {
		if !label.Valid() {
			t.Fatalf("expected %s to be valid", label)
		}
	}
	if SentimentLabel("positive").Valid() {
		t.Fatalf("labels are case-sensitive on the wire")
	}
}
