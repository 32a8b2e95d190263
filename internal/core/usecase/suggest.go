package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
	"github.com/mehtaish/feedback-insight/internal/core/ports"
)

type SuggestUseCase struct {
	analyzer  ports.SentimentAnalyzer
	generator ports.SuggestionGenerator
}

func NewSuggestUseCase(analyzer ports.SentimentAnalyzer, generator ports.SuggestionGenerator) *SuggestUseCase {
	return &SuggestUseCase{
		analyzer:  analyzer,
		generator: generator,
	}
}

// Suggest classifies text and produces a suggestion synchronously. A failing
// generator degrades to the heuristic suggestion; the caller always gets a
// usable answer for valid input.
func (uc *SuggestUseCase) Suggest(ctx context.Context, text, studyDomain string) (*domain.SentimentResult, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, "", domain.WrapError(domain.ErrInvalidInput, "suggest", errors.New("feedback_text is required"))
	}
	studyDomain = domain.NormalizeDomain(studyDomain)

	result := uc.analyzer.Analyze(ctx, text)

	if uc.generator == nil {
		return &result, heuristicSuggestion(text, result.Label, studyDomain), nil
	}

	suggestion, err := uc.generator.GenerateSuggestion(ctx, text, result.Label, studyDomain)
	if err != nil || strings.TrimSpace(suggestion) == "" {
		if err != nil {
			slog.Warn("suggestion_generator_failed", "error", err)
		}
		suggestion = heuristicSuggestion(text, result.Label, studyDomain)
	}
	return &result, suggestion, nil
}

// heuristicSuggestion is the deterministic fallback used when the LLM
// generator is unavailable. Topic detection first, then a per-domain default.
func heuristicSuggestion(text string, label domain.SentimentLabel, studyDomain string) string {
	lower := strings.ToLower(text)

	if label == domain.SentimentNegative {
		if containsAny(lower, "communication", "communicate", "presentation", "speak") {
			switch studyDomain {
			case "commerce":
				return "Focus on business communication: practice elevator pitches and presentation skills for client interactions."
			case "science":
				return "Practice explaining complex concepts simply and develop poster and paper presentation skills."
			case "arts":
				return "Develop your portfolio presentation skills and practice articulating your creative process."
			default:
				return "Focus on technical communication: practice concise updates and seek peer feedback after presentations."
			}
		}
		if containsAny(lower, "deadline", "time", "late", "schedule") {
			return "Improve time management: break tasks into milestones, use a planner, and review progress daily."
		}
		if containsAny(lower, "quality", "work", "performance", "output") {
			return "Strengthen quality: add test cases, use reviews, and adopt a checklist for deliverables."
		}
		switch studyDomain {
		case "commerce":
			return "Set weekly goals for business skills such as financial analysis or client communication, and seek mentorship."
		case "science":
			return "Strengthen experimental design, literature review and data analysis through targeted practice."
		case "arts":
			return "Dedicate time daily to your craft, seek constructive critiques, and study works in your field."
		default:
			return "Identify one improvement area, set a weekly goal, and review progress with a mentor."
		}
	}

	if label == domain.SentimentNeutral {
		switch studyDomain {
		case "commerce":
			return "Build on business acumen: pursue certifications and develop industry-specific knowledge."
		case "science":
			return "Collaborate on publications, learn new lab techniques, and present at conferences."
		default:
			return "Build on current performance: set stretch goals and ask for targeted feedback to level up."
		}
	}

	switch studyDomain {
	case "commerce":
		return "Document your successful strategies and mentor junior students in your field."
	case "science":
		return "Consider publishing your findings and explore advanced research opportunities."
	case "arts":
		return "Showcase your portfolio publicly and inspire fellow artists through workshops."
	default:
		return "Keep up the good work: document best practices and mentor peers to amplify impact."
	}
}

func containsAny(lower string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
