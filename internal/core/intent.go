// ABOUTME: Intent analysis for chat messages via keyword and regex matching
// ABOUTME: Pure and deterministic; all keyword tables are immutable injected config
package core

import (
	"regexp"
	"strings"
)

// Data categories the search path can be narrowed to.
const (
	DataTasks  = "tasks"
	DataEvents = "events"
	DataDiary  = "diary"
	DataChat   = "chat"
)

// IntentSignals is the ephemeral classification of one message. It is never
// persisted.
type IntentSignals struct {
	WantsTasks      bool
	WantsSchedule   bool
	WantsReflection bool
	WantsSearch     bool
	WantsTemporal   bool
	WantsStatus     bool
	WantsPatterns   bool
	GeneralQuery    bool

	// SearchTerms holds extracted terms in order of first appearance.
	SearchTerms []string
	// TimeReferences holds the literal temporal phrases found in the message.
	TimeReferences []string
	// DataTypes lists the categories the message is specifically about;
	// empty means no category was detected and search covers everything.
	DataTypes []string
}

// KeywordConfig holds the keyword tables the analyzer matches against.
// Matching is case-insensitive substring containment; a keyword matching
// inside another word is accepted.
type KeywordConfig struct {
	Tasks      []string
	Schedule   []string
	Reflection []string
	Search     []string
	Temporal   []string
	Status     []string
	Patterns   []string
	Help       []string
	StopWords  map[string]bool

	timePatterns []*regexp.Regexp
	wordPattern  *regexp.Regexp
}

// DefaultKeywordConfig returns the standard keyword tables.
func DefaultKeywordConfig() *KeywordConfig {
	cfg := &KeywordConfig{
		Tasks:      []string{"task", "todo", "complete", "pending", "work", "do", "finish", "done"},
		Schedule:   []string{"schedule", "calendar", "event", "meeting", "appointment", "time", "when"},
		Reflection: []string{"diary", "mood", "feel", "think", "reflect", "journal", "emotion"},
		Search:     []string{"find", "search", "look", "show", "remember"},
		Temporal:   []string{"yesterday", "last week", "last month", "ago", "since", "recently", "earlier"},
		Status:     []string{"current", "now", "today", "status"},
		Patterns:   []string{"how often", "usually", "pattern", "trend", "habit", "tend to"},
		Help:       []string{"how", "what", "help", "status", "summary", "overview"},
		StopWords:  defaultStopWords(),

		timePatterns: []*regexp.Regexp{
			regexp.MustCompile(`\d+ days? ago`),
			regexp.MustCompile(`last (?:week|month|year)`),
			regexp.MustCompile(`yesterday`),
			regexp.MustCompile(`since \w+`),
		},
		wordPattern: regexp.MustCompile(`[a-z0-9']+`),
	}
	return cfg
}

func defaultStopWords() map[string]bool {
	words := []string{
		"the", "and", "but", "for", "with", "about", "from", "this", "that",
		"these", "those", "you", "your", "our", "they", "them", "its",
		"can", "could", "would", "should", "will", "have", "has", "had",
		"are", "was", "were", "been", "does", "did", "please",
		"what", "when", "where", "which", "who", "why", "how",
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Analyzer classifies messages against an immutable keyword config.
type Analyzer struct {
	cfg *KeywordConfig
}

// NewAnalyzer creates an Analyzer. A nil config uses the defaults.
func NewAnalyzer(cfg *KeywordConfig) *Analyzer {
	if cfg == nil {
		cfg = DefaultKeywordConfig()
	}
	return &Analyzer{cfg: cfg}
}

// Analyze classifies a message into intent signals. Pure function of the
// message text; no I/O.
func (a *Analyzer) Analyze(message string) IntentSignals {
	lower := strings.ToLower(message)

	signals := IntentSignals{
		WantsTasks:      containsAny(lower, a.cfg.Tasks),
		WantsSchedule:   containsAny(lower, a.cfg.Schedule),
		WantsReflection: containsAny(lower, a.cfg.Reflection),
		WantsSearch:     containsAny(lower, a.cfg.Search),
		WantsStatus:     containsAny(lower, a.cfg.Status),
		WantsPatterns:   containsAny(lower, a.cfg.Patterns),
	}

	signals.WantsTemporal = containsAny(lower, a.cfg.Temporal) || a.matchesTimePattern(lower)
	signals.GeneralQuery = len(strings.Fields(lower)) <= 3 || containsAny(lower, a.cfg.Help)

	if signals.WantsSearch {
		signals.SearchTerms = a.extractSearchTerms(lower)
	}
	if signals.WantsTemporal {
		signals.TimeReferences = a.extractTimeReferences(lower)
	}

	if signals.WantsTasks {
		signals.DataTypes = append(signals.DataTypes, DataTasks)
	}
	if signals.WantsSchedule {
		signals.DataTypes = append(signals.DataTypes, DataEvents)
	}
	if signals.WantsReflection {
		signals.DataTypes = append(signals.DataTypes, DataDiary)
	}

	return signals
}

// extractSearchTerms tokenizes the lower-cased message, dropping stop words
// and tokens of length <= 2. Order of first appearance, no deduplication.
func (a *Analyzer) extractSearchTerms(lower string) []string {
	var terms []string
	for _, token := range a.cfg.wordPattern.FindAllString(lower, -1) {
		if len(token) <= 2 || a.cfg.StopWords[token] {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

// extractTimeReferences collects the literal phrases matched by the time
// patterns, in pattern order.
func (a *Analyzer) extractTimeReferences(lower string) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, pattern := range a.cfg.timePatterns {
		for _, match := range pattern.FindAllString(lower, -1) {
			if !seen[match] {
				seen[match] = true
				refs = append(refs, match)
			}
		}
	}
	return refs
}

func (a *Analyzer) matchesTimePattern(lower string) bool {
	for _, pattern := range a.cfg.timePatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
