package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
	"github.com/mehtaish/feedback-insight/internal/core/ports"
	"github.com/mehtaish/feedback-insight/internal/observability/metrics"
)

type Router struct {
	intake    ports.FeedbackIntake
	reader    ports.FeedbackReader
	stats     ports.StatsProvider
	suggester ports.SuggestionService

	service string
	metrics *metrics.HTTPServerMetrics
	limiter *writeLimiter
}

type RouterOptions struct {
	Service        string
	Metrics        *metrics.HTTPServerMetrics
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(
	intake ports.FeedbackIntake,
	reader ports.FeedbackReader,
	stats ports.StatsProvider,
	suggester ports.SuggestionService,
	options RouterOptions,
) *Router {
	service := options.Service
	if service == "" {
		service = "api"
	}
	return &Router{
		intake:    intake,
		reader:    reader,
		stats:     stats,
		suggester: suggester,
		service:   service,
		metrics:   options.Metrics,
		limiter:   newWriteLimiter(options.RateLimitRPS, options.RateLimitBurst),
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/api/feedback", rt.feedbackCollection)
	mux.HandleFunc("/api/feedback/", rt.getFeedbackByID)
	mux.HandleFunc("/api/dashboard_stats", rt.dashboardStats)
	mux.HandleFunc("/api/suggest", rt.suggest)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) feedbackCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.submitFeedback(w, r)
	case http.MethodGet:
		rt.listFeedback(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) submitFeedback(w http.ResponseWriter, r *http.Request) {
	if !rt.allowWrite(w, r) {
		return
	}

	var req struct {
		Text   string `json:"feedback_text"`
		Domain string `json:"domain"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "feedback_text is required"})
		return
	}

	fb, err := rt.intake.Submit(r.Context(), req.Text, req.Domain)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, fb)
}

func (rt *Router) listFeedback(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	records, err := rt.reader.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []domain.Feedback{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (rt *Router) getFeedbackByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/feedback/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "feedback id is required"})
		return
	}

	fb, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fb)
}

func (rt *Router) dashboardStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	stats, err := rt.stats.DashboardStats(r.Context(), r.URL.Query().Get("source"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (rt *Router) suggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if !rt.allowWrite(w, r) {
		return
	}

	var req struct {
		Text   string `json:"feedback_text"`
		Domain string `json:"domain"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "feedback_text is required"})
		return
	}

	result, suggestion, err := rt.suggester.Suggest(r.Context(), req.Text, req.Domain)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordSuggestion(rt.service, "inline")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sentiment_label": result.Label,
		"confidence":      result.Confidence,
		"method":          result.Method,
		"suggestion":      suggestion,
	})
}

func (rt *Router) allowWrite(w http.ResponseWriter, r *http.Request) bool {
	if rt.limiter == nil || rt.limiter.Allow() {
		return true
	}
	if rt.metrics != nil {
		rt.metrics.RecordRateLimited(rt.service, r.URL.Path)
	}
	w.Header().Set("Retry-After", "1")
	writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
