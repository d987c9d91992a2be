// ABOUTME: Builder assembles the natural-language context for one chat request
// ABOUTME: Selects sections by intent, bounds each, and never fails outright
package core

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/wingmanhq/wingman-backend/internal/models"
)

const (
	// snippetLimit bounds content excerpts inside context lines.
	snippetLimit = 100
	// recentActivityCap bounds the interleaved recent-activity section.
	recentActivityCap = 5
	// patternWindowDays is the trailing window for pattern heuristics.
	patternWindowDays = 30
	// reflectionWindowDays is the trailing window for diary context.
	reflectionWindowDays = 7
)

// Builder assembles prompt context from a user's stored data.
type Builder struct {
	recall     *Recall
	analyzer   *Analyzer
	chatLimit  int
	recentDays int
	now        func() time.Time
}

// NewBuilder creates a Builder. chatLimit bounds the recent-conversation
// section; recentDays is the recent-activity window.
func NewBuilder(src DataSource, cfg *KeywordConfig, chatLimit, recentDays int) *Builder {
	if chatLimit < 1 {
		chatLimit = 10
	}
	if recentDays < 1 {
		recentDays = 3
	}
	return &Builder{
		recall:     NewRecall(src),
		analyzer:   NewAnalyzer(cfg),
		chatLimit:  chatLimit,
		recentDays: recentDays,
		now:        time.Now,
	}
}

// SetClock overrides the time source (for testing).
func (b *Builder) SetClock(now func() time.Time) {
	b.now = now
}

// BuildContext assembles the context string for one message. An empty date
// defaults to today. The result is deterministic for identical inputs and
// data, and is never empty: the worst case is the header-only string.
func (b *Builder) BuildContext(userID, message, date string) string {
	today := b.now()
	if date == "" {
		date = today.Format(models.DateFormat)
	} else if parsed, err := time.Parse(models.DateFormat, date); err == nil {
		today = parsed
	}

	header := b.headerLine(userID, message, date)

	sections := func() (out []string) {
		// The context must survive any data-layer behavior; worst case is
		// header-only (recovered below).
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Context] section build panicked: %v", r)
				out = nil
			}
		}()

		signals := b.analyzer.Analyze(message)

		if signals.WantsTasks || signals.GeneralQuery {
			out = appendSection(out, b.tasksSection(userID, date))
		}
		if signals.WantsSchedule || signals.GeneralQuery {
			out = appendSection(out, b.scheduleSection(userID, date))
		}
		if signals.WantsReflection || signals.GeneralQuery {
			out = appendSection(out, b.reflectionSection(userID, today))
		}
		if signals.WantsSearch {
			out = appendSection(out, b.searchSection(userID, signals))
		}
		if signals.WantsTemporal {
			out = appendSection(out, b.temporalSection(userID, signals.TimeReferences, today))
		}
		if signals.WantsStatus || signals.GeneralQuery {
			out = appendSection(out, b.statusSection(userID, date, today))
		}
		if signals.WantsPatterns {
			out = appendSection(out, b.patternsSection(userID, today))
		}

		out = appendSection(out, b.conversationSection(userID))
		out = appendSection(out, b.recentActivitySection(userID, today))
		return out
	}()

	return strings.Join(append([]string{header}, sections...), "\n\n")
}

func (b *Builder) headerLine(userID, message, date string) string {
	short := userID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("User %s | Date %s | Message: %s", short, date, message)
}

func appendSection(sections []string, section string) []string {
	if section == "" {
		return sections
	}
	return append(sections, section)
}

// tasksSection lists the day's tasks grouped by state. Empty day yields no
// section.
func (b *Builder) tasksSection(userID, date string) string {
	tasks := b.recall.TasksForDate(userID, date)
	if len(tasks) == 0 {
		return ""
	}

	var pending, completed, failed []models.Task
	for _, t := range tasks {
		switch {
		case t.Completed:
			completed = append(completed, t)
		case t.Failed:
			failed = append(failed, t)
		default:
			pending = append(pending, t)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== TODAY'S TASKS (%s) ===", date)

	writeGroup := func(label string, group []models.Task, cap int) {
		if len(group) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n%s (%d):", label, len(group))
		if len(group) > cap {
			group = group[:cap]
		}
		for _, t := range group {
			sb.WriteString("\n  - ")
			if t.Urgent() {
				sb.WriteString("[urgent] ")
			}
			sb.WriteString(t.Title)
			if t.Time != "" {
				fmt.Fprintf(&sb, " at %s", t.Time)
			}
		}
	}

	writeGroup("PENDING", pending, 5)
	writeGroup("COMPLETED", completed, 3)
	writeGroup("FAILED", failed, 3)

	return sb.String()
}

// scheduleSection lists the day's calendar events in time order.
func (b *Builder) scheduleSection(userID, date string) string {
	events := b.recall.EventsForDate(userID, date)
	if len(events) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== TODAY'S SCHEDULE (%s) ===", date)
	for _, e := range events {
		sb.WriteString("\n- ")
		if e.Time != "" {
			fmt.Fprintf(&sb, "%s ", e.Time)
		}
		if e.Type != "" {
			fmt.Fprintf(&sb, "[%s] ", e.Type)
		}
		sb.WriteString(e.Title)
		if e.Description != "" {
			fmt.Fprintf(&sb, "\n    %s", snippet(e.Description))
		}
	}
	return sb.String()
}

// reflectionSection shows recent diary entries, newest first.
func (b *Builder) reflectionSection(userID string, today time.Time) string {
	cutoff := today.AddDate(0, 0, -reflectionWindowDays).Format(models.DateFormat)
	entries := b.recall.DiarySince(userID, cutoff)
	if len(entries) == 0 {
		return ""
	}
	if len(entries) > 3 {
		entries = entries[:3]
	}

	var sb strings.Builder
	sb.WriteString("=== RECENT REFLECTIONS ===")
	for _, e := range entries {
		fmt.Fprintf(&sb, "\n%s: %s", e.Date, entryTitle(e))
		if e.Mood != "" {
			fmt.Fprintf(&sb, " (mood: %s)", e.Mood)
		}
		if e.Content != "" {
			fmt.Fprintf(&sb, "\n    %q", snippet(e.Content))
		}
	}
	return sb.String()
}

// searchSection runs term search over the categories the message is about,
// or all of them when no category was detected.
func (b *Builder) searchSection(userID string, signals IntentSignals) string {
	if len(signals.SearchTerms) == 0 {
		return ""
	}

	types := signals.DataTypes
	if len(types) == 0 {
		types = []string{DataTasks, DataEvents, DataDiary, DataChat}
	}
	wanted := make(map[string]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	var parts []string

	if wanted[DataTasks] {
		if tasks := b.recall.TasksMatching(userID, signals.SearchTerms); len(tasks) > 0 {
			var sb strings.Builder
			sb.WriteString("MATCHING TASKS:")
			for _, t := range tasks {
				fmt.Fprintf(&sb, "\n  - %s (%s)%s", t.Title, t.Date, taskState(t))
			}
			parts = append(parts, sb.String())
		}
	}
	if wanted[DataEvents] {
		if events := b.recall.EventsMatching(userID, signals.SearchTerms); len(events) > 0 {
			var sb strings.Builder
			sb.WriteString("MATCHING EVENTS:")
			for _, e := range events {
				fmt.Fprintf(&sb, "\n  - %s (%s", e.Title, e.Date)
				if e.Time != "" {
					fmt.Fprintf(&sb, " %s", e.Time)
				}
				sb.WriteString(")")
				if e.Description != "" {
					fmt.Fprintf(&sb, " %s", snippet(e.Description))
				}
			}
			parts = append(parts, sb.String())
		}
	}
	if wanted[DataDiary] {
		if entries := b.recall.DiaryMatching(userID, signals.SearchTerms); len(entries) > 0 {
			var sb strings.Builder
			sb.WriteString("MATCHING DIARY ENTRIES:")
			for _, e := range entries {
				fmt.Fprintf(&sb, "\n  - %s: %s - %s", e.Date, entryTitle(e), snippet(e.Content))
			}
			parts = append(parts, sb.String())
		}
	}
	if wanted[DataChat] {
		if msgs := b.recall.ChatMatching(userID, signals.SearchTerms); len(msgs) > 0 {
			var sb strings.Builder
			sb.WriteString("MATCHING MESSAGES:")
			for _, m := range msgs {
				fmt.Fprintf(&sb, "\n  - %s: %s", speaker(m), snippet(m.Text))
			}
			parts = append(parts, sb.String())
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("=== SEARCH RESULTS (%s) ===\n%s",
		strings.Join(signals.SearchTerms, ", "), strings.Join(parts, "\n"))
}

// temporalSection renders tasks and events for each resolved time reference,
// grouped by range. Unrecognized references are dropped.
func (b *Builder) temporalSection(userID string, refs []string, today time.Time) string {
	var parts []string
	for _, ref := range refs {
		rng, ok := resolveTimeReference(ref, today)
		if !ok {
			continue
		}

		tasks := b.recall.TasksBetween(userID, rng.Start, rng.End)
		events := b.recall.EventsBetween(userID, rng.Start, rng.End)
		if len(tasks) == 0 && len(events) == 0 {
			continue
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s (%s to %s):", strings.ToUpper(rng.Label), rng.Start, rng.End)
		for _, t := range tasks {
			fmt.Fprintf(&sb, "\n  - [task] %s (%s)%s", t.Title, t.Date, taskState(t))
		}
		for _, e := range events {
			fmt.Fprintf(&sb, "\n  - [event] %s (%s)", e.Title, e.Date)
		}
		parts = append(parts, sb.String())
	}

	if len(parts) == 0 {
		return ""
	}
	return "=== TIMEFRAME ===\n" + strings.Join(parts, "\n")
}

// statusSection is a compact same-day summary. Unlike the other sections it
// may say "none": a status question deserves an answer even when the day is
// empty.
func (b *Builder) statusSection(userID, date string, today time.Time) string {
	stats := tallyTasks(b.recall.TasksForDate(userID, date))
	eventCount := len(b.recall.EventsForDate(userID, date))

	mood := ""
	cutoff := today.AddDate(0, 0, -reflectionWindowDays).Format(models.DateFormat)
	if entries := b.recall.DiarySince(userID, cutoff); len(entries) > 0 {
		mood = entries[0].Mood
	}

	var parts []string
	if stats.Total() > 0 {
		parts = append(parts, fmt.Sprintf("%d tasks (%d completed, %d pending, %d failed)",
			stats.Total(), stats.Completed, stats.Pending, stats.Failed))
	} else {
		parts = append(parts, "no tasks")
	}
	if eventCount > 0 {
		parts = append(parts, fmt.Sprintf("%d events", eventCount))
	} else {
		parts = append(parts, "no events")
	}
	if mood != "" {
		parts = append(parts, fmt.Sprintf("latest mood: %s", mood))
	}

	return fmt.Sprintf("=== STATUS (%s) ===\n%s.", date, strings.Join(parts, "; "))
}

// patternsSection reports simple trailing-window heuristics. Omitted when
// there are no tasks or no moods in the window.
func (b *Builder) patternsSection(userID string, today time.Time) string {
	start := today.AddDate(0, 0, -patternWindowDays).Format(models.DateFormat)
	end := today.Format(models.DateFormat)

	tasks := b.recall.TasksBetween(userID, start, end)
	entries := b.recall.DiarySince(userID, start)

	weekday, ratio, haveWeekday := bestCompletionWeekday(tasks)
	mood, haveMood := dominantMood(entries)
	if !haveWeekday && !haveMood {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== PATTERNS (last %d days) ===", patternWindowDays)
	if haveWeekday {
		fmt.Fprintf(&sb, "\nMost productive day: %s (%.0f%% completion).", weekday, ratio*100)
	}
	if haveMood {
		fmt.Fprintf(&sb, "\nDominant mood: %s.", mood)
	}
	return sb.String()
}

// conversationSection replays the most recent chat exchange chronologically.
func (b *Builder) conversationSection(userID string) string {
	msgs := b.recall.ChatRecent(userID, b.chatLimit)
	if len(msgs) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("=== RECENT CONVERSATION ===")
	for _, m := range msgs {
		fmt.Fprintf(&sb, "\n%s: %s", speaker(m), snippet(m.Text))
	}
	return sb.String()
}

// recentActivitySection interleaves the last few days of tasks and events,
// newest date first, capped.
func (b *Builder) recentActivitySection(userID string, today time.Time) string {
	start := today.AddDate(0, 0, -b.recentDays).Format(models.DateFormat)
	end := today.Format(models.DateFormat)

	type activity struct {
		date string
		line string
	}
	var items []activity
	for _, t := range b.recall.TasksBetween(userID, start, end) {
		items = append(items, activity{
			date: t.Date,
			line: fmt.Sprintf("%s [task] %s%s", t.Date, t.Title, taskState(t)),
		})
	}
	for _, e := range b.recall.EventsBetween(userID, start, end) {
		line := fmt.Sprintf("%s [event] %s", e.Date, e.Title)
		if e.Time != "" {
			line += " at " + e.Time
		}
		items = append(items, activity{date: e.Date, line: line})
	}
	if len(items) == 0 {
		return ""
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].date > items[j].date
	})
	if len(items) > recentActivityCap {
		items = items[:recentActivityCap]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== RECENT ACTIVITY (last %d days) ===", b.recentDays)
	for _, item := range items {
		sb.WriteString("\n- ")
		sb.WriteString(item.line)
	}
	return sb.String()
}

// Formatting helpers

func snippet(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= snippetLimit {
		return s
	}
	return string(runes[:snippetLimit]) + "..."
}

func taskState(t models.Task) string {
	switch {
	case t.Completed:
		return " (completed)"
	case t.Failed:
		return " (failed)"
	default:
		return ""
	}
}

func entryTitle(e models.DiaryEntry) string {
	if e.Title != "" {
		return e.Title
	}
	return "(untitled)"
}

func speaker(m models.Message) string {
	if m.IsAI {
		return "Wingman"
	}
	return "You"
}
