// ABOUTME: Temporal range resolution and trailing-window heuristics
// ABOUTME: Presentation heuristics only; no statistical confidence implied
package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/wingmanhq/wingman-backend/internal/models"
)

// dateRange is a resolved inclusive span of dates.
type dateRange struct {
	Label string
	Start string
	End   string
}

// resolveTimeReference translates a literal temporal phrase into a concrete
// date range anchored on today. Unrecognized phrases return false and are
// dropped silently.
func resolveTimeReference(ref string, today time.Time) (dateRange, bool) {
	switch {
	case ref == "yesterday":
		day := today.AddDate(0, 0, -1).Format(models.DateFormat)
		return dateRange{Label: "yesterday", Start: day, End: day}, true
	case ref == "last week":
		return dateRange{
			Label: "last week",
			Start: today.AddDate(0, 0, -7).Format(models.DateFormat),
			End:   today.Format(models.DateFormat),
		}, true
	case ref == "last month":
		return dateRange{
			Label: "last month",
			Start: today.AddDate(0, 0, -30).Format(models.DateFormat),
			End:   today.Format(models.DateFormat),
		}, true
	case strings.HasSuffix(ref, "ago"):
		var n int
		if _, err := fmt.Sscanf(ref, "%d day", &n); err == nil && n > 0 {
			return dateRange{
				Label: ref,
				Start: today.AddDate(0, 0, -n).Format(models.DateFormat),
				End:   today.Format(models.DateFormat),
			}, true
		}
	}
	return dateRange{}, false
}

// dayStats aggregates one day's task counts.
type dayStats struct {
	Completed int
	Pending   int
	Failed    int
}

func tallyTasks(tasks []models.Task) dayStats {
	var stats dayStats
	for _, t := range tasks {
		switch {
		case t.Completed:
			stats.Completed++
		case t.Failed:
			stats.Failed++
		default:
			stats.Pending++
		}
	}
	return stats
}

func (s dayStats) Total() int {
	return s.Completed + s.Pending + s.Failed
}

// bestCompletionWeekday returns the weekday with the highest task completion
// ratio over the given tasks, or false when there are no tasks.
func bestCompletionWeekday(tasks []models.Task) (time.Weekday, float64, bool) {
	var done, total [7]int
	for _, t := range tasks {
		day, err := time.Parse(models.DateFormat, t.Date)
		if err != nil {
			continue
		}
		wd := int(day.Weekday())
		total[wd]++
		if t.Completed {
			done[wd]++
		}
	}

	best := -1
	bestRatio := -1.0
	for wd := 0; wd < 7; wd++ {
		if total[wd] == 0 {
			continue
		}
		ratio := float64(done[wd]) / float64(total[wd])
		if ratio > bestRatio {
			best = wd
			bestRatio = ratio
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return time.Weekday(best), bestRatio, true
}

// dominantMood returns the most frequent non-empty mood, or false when none
// exist. Ties break toward the mood seen first (entries arrive newest first).
func dominantMood(entries []models.DiaryEntry) (string, bool) {
	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		if e.Mood == "" {
			continue
		}
		if counts[e.Mood] == 0 {
			order = append(order, e.Mood)
		}
		counts[e.Mood]++
	}

	best := ""
	for _, mood := range order {
		if best == "" || counts[mood] > counts[best] {
			best = mood
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
