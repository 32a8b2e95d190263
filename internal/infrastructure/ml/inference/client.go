package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
	"github.com/mehtaish/feedback-insight/internal/infrastructure/resilience"
)

// maxInputRunes mirrors the sequence limit of the sentiment model; longer
// feedback is truncated before the call.
const maxInputRunes = 512

// Client talks to the remote transformer inference service. Every failure
// mode (connection refused, timeout, bad payload, open breaker) surfaces as
// domain.ErrClassifierUnavailable so the arbitration chain can proceed
// without the signal.
type Client struct {
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	executor   *resilience.Executor
}

// New builds a classifier client. timeout caps each Classify call; it is a
// required setting, not a default the caller may skip.
func New(baseURL, model string, timeout time.Duration, executor *resilience.Executor) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		executor:   executor,
	}
}

func (c *Client) Classify(ctx context.Context, text string) (domain.SentimentSignal, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var response struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	call := func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/v1/classify", map[string]any{
			"model": c.model,
			"text":  truncateRunes(text, maxInputRunes),
		}, &response)
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(callCtx, "inference.classify", call, classifyInferenceError)
	} else {
		err = call(callCtx)
	}
	if err != nil {
		return domain.SentimentSignal{}, domain.WrapError(domain.ErrClassifierUnavailable, "inference classify", err)
	}

	label, ok := mapModelLabel(response.Label)
	if !ok {
		return domain.SentimentSignal{}, domain.WrapError(
			domain.ErrClassifierUnavailable,
			"inference classify",
			fmt.Errorf("unknown model label %q", response.Label),
		)
	}

	return domain.SentimentSignal{
		Label:      label,
		Confidence: domain.ClampConfidence(response.Score),
		Source:     "transformer",
	}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &HTTPStatusError{
			Operation:  "classify",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(raw),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode inference response: %w", err)
	}
	return nil
}

func mapModelLabel(raw string) (domain.SentimentLabel, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "POSITIVE":
		return domain.SentimentPositive, true
	case "NEGATIVE":
		return domain.SentimentNegative, true
	case "NEUTRAL":
		return domain.SentimentNeutral, true
	default:
		return "", false
	}
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
