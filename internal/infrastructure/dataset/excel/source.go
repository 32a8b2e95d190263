package excel

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mehtaish/feedback-insight/internal/core/domain"
)

// Source computes dashboard stats from a labelled feedback spreadsheet. It
// backs the dashboard before any feedback has reached the database, and on
// explicit source=dataset requests.
type Source struct {
	path string
}

func NewSource(path string) *Source {
	return &Source{path: path}
}

var (
	textColumns  = map[string]bool{"feedback_text": true, "feedback": true, "text": true}
	labelColumns = map[string]bool{"sentiment_label": true, "label": true, "sentiment": true, "target": true}
	yearColumns  = map[string]bool{"year_of_passout": true, "year": true, "passout_year": true}
)

func (s *Source) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", s.path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("dataset %s: no sheets", s.path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read dataset sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return emptyStats(), nil
	}

	labelIdx := findColumn(rows[0], labelColumns)
	yearIdx := findColumn(rows[0], yearColumns)
	if labelIdx < 0 {
		// Without labels there is nothing to aggregate; the original data
		// always ships labelled, so an unlabelled file counts as empty.
		return emptyStats(), nil
	}

	stats := emptyStats()
	type yearAgg struct {
		count int
		sum   float64
	}
	byYear := map[string]*yearAgg{}

	for _, row := range rows[1:] {
		if labelIdx >= len(row) {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(row[labelIdx]))
		var score float64
		switch label {
		case "positive":
			stats.CountPositive++
			score = 1.0
		case "neutral":
			stats.CountNeutral++
		case "negative":
			stats.CountNegative++
			score = -1.0
		default:
			continue
		}
		stats.Total++
		stats.AvgScore += score

		if yearIdx >= 0 && yearIdx < len(row) {
			year := strings.TrimSpace(row[yearIdx])
			if year != "" {
				agg := byYear[year]
				if agg == nil {
					agg = &yearAgg{}
					byYear[year] = agg
				}
				agg.count++
				agg.sum += score
			}
		}
	}

	if stats.Total > 0 {
		stats.AvgScore /= float64(stats.Total)
	}

	for year, agg := range byYear {
		stats.Timeseries = append(stats.Timeseries, domain.DayBucket{
			Date:     year,
			Count:    agg.count,
			AvgScore: agg.sum / float64(agg.count),
		})
	}
	sortBuckets(stats.Timeseries)

	return stats, nil
}

func emptyStats() *domain.DashboardStats {
	return &domain.DashboardStats{
		Source:     "dataset",
		Timeseries: []domain.DayBucket{},
	}
}

func findColumn(header []string, candidates map[string]bool) int {
	for i, name := range header {
		if candidates[strings.ToLower(strings.TrimSpace(name))] {
			return i
		}
	}
	return -1
}

// sortBuckets orders by numeric year when every bucket parses as one, else
// lexically.
func sortBuckets(buckets []domain.DayBucket) {
	allNumeric := true
	for _, b := range buckets {
		if _, err := strconv.Atoi(b.Date); err != nil {
			allNumeric = false
			break
		}
	}
	sort.Slice(buckets, func(i, j int) bool {
		if allNumeric {
			a, _ := strconv.Atoi(buckets[i].Date)
			b, _ := strconv.Atoi(buckets[j].Date)
			return a < b
		}
		return buckets[i].Date < buckets[j].Date
	})
}
