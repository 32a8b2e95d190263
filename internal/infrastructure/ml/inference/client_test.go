package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
)

func TestClassifyParsesModelResponse(t *testing.T) {
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/classify" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"label": "NEGATIVE", "score": 0.91})
	}))
	defer server.Close()

	client := New(server.URL, "distilbert-sentiment", time.Second, nil)
	signal, err := client.Classify(context.Background(), "the intern struggled with deadlines")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if signal.Label != domain.SentimentNegative {
		t.Fatalf("expected Negative, got %s", signal.Label)
	}
	if signal.Confidence != 0.91 {
		t.Fatalf("expected confidence 0.91, got %v", signal.Confidence)
	}
	if signal.Source != "transformer" {
		t.Fatalf("expected transformer source, got %q", signal.Source)
	}
	if gotPayload["model"] != "distilbert-sentiment" {
		t.Fatalf("expected model in payload, got %v", gotPayload["model"])
	}
}

func TestClassifyTruncatesLongInput(t *testing.T) {
	var sentText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Text string `json:"text"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		sentText = payload.Text
		_ = json.NewEncoder(w).Encode(map[string]any{"label": "NEUTRAL", "score": 0.5})
	}))
	defer server.Close()

	client := New(server.URL, "m", time.Second, nil)
	long := strings.Repeat("я", 2000)
	if _, err := client.Classify(context.Background(), long); err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got := len([]rune(sentText)); got != maxInputRunes {
		t.Fatalf("expected %d runes sent, got %d", maxInputRunes, got)
	}
}

func TestClassifyWrapsHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, "m", time.Second, nil)
	_, err := client.Classify(context.Background(), "text")
	if !domain.IsKind(err, domain.ErrClassifierUnavailable) {
		t.Fatalf("expected classifier-unavailable kind, got %v", err)
	}
}

func TestClassifyRejectsUnknownLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"label": "MIXED", "score": 0.8})
	}))
	defer server.Close()

	client := New(server.URL, "m", time.Second, nil)
	_, err := client.Classify(context.Background(), "text")
	if !domain.IsKind(err, domain.ErrClassifierUnavailable) {
		t.Fatalf("expected classifier-unavailable for unknown label, got %v", err)
	}
}

func TestClassifyConnectionRefused(t *testing.T) {
	client := New("http://127.0.0.1:1", "m", 200*time.Millisecond, nil)

	_, err := client.Classify(context.Background(), "text")
	if !domain.IsKind(err, domain.ErrClassifierUnavailable) {
		t.Fatalf("expected classifier-unavailable on refused connection, got %v", err)
	}
}

func TestClassifyErrorVerdicts(t *testing.T) {
	retryable := classifyInferenceError(&HTTPStatusError{StatusCode: http.StatusServiceUnavailable, Status: "503"})
	if !retryable.Retryable || !retryable.RecordFailure {
		t.Fatalf("503 must retry and record, got %+v", retryable)
	}

	clientErr := classifyInferenceError(&HTTPStatusError{StatusCode: http.StatusBadRequest, Status: "400"})
	if clientErr.Retryable || clientErr.RecordFailure {
		t.Fatalf("400 must neither retry nor record, got %+v", clientErr)
	}

	ctxErr := classifyInferenceError(context.Canceled)
	if ctxErr.Retryable || ctxErr.RecordFailure {
		t.Fatalf("context cancellation must neither retry nor record, got %+v", ctxErr)
	}
}
