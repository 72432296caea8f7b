package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// KeywordResult is the outcome of ScoreByKeywords.
type KeywordResult struct {
	Breakdown
	Overall  int      `json:"overall"`
	Grade    Grade    `json:"grade"`
	Priority Priority `json:"priority"`
}

// bucket pairs a predicate with the points awarded when it is the first match.
type bucket[T any] struct {
	score int
	match func(T) bool
}

func firstMatch[T any](value T, buckets []bucket[T], fallback int) int {
	for _, b := range buckets {
		if b.match(value) {
			return b.score
		}
	}
	return fallback
}

// budgetSignal is the free-text budget plus the largest dollar amount found in it.
type budgetSignal struct {
	text      string
	amount    int
	hasAmount bool
}

func amountAtLeast(min int) func(budgetSignal) bool {
	return func(s budgetSignal) bool {
		return s.hasAmount && s.amount >= min
	}
}

var budgetBuckets = []bucket[budgetSignal]{
	{score: 25, match: func(s budgetSignal) bool {
		return containsAny(s.text, []string{"unlimited", "no limit"}) || amountAtLeast(50000)(s)
	}},
	{score: 20, match: amountAtLeast(25000)},
	{score: 15, match: amountAtLeast(15000)},
	{score: 10, match: amountAtLeast(5000)},
	{score: 8, match: func(s budgetSignal) bool {
		return containsAny(s.text, []string{"flexible", "depends", "varies"})
	}},
}

var authorityBuckets = []bucket[string]{
	{score: 25, match: keywords("self", "homeowner", "sole decision", "i am")},
	{score: 20, match: keywords("spouse", "partner", "joint")},
	{score: 15, match: keywords("committee", "board", "family")},
	{score: 8, match: keywords("need approval", "landlord")},
}

var needBuckets = []bucket[string]{
	{score: 25, match: keywords("leak", "storm", "damage", "emergency", "urgent")},
	{score: 22, match: keywords("replace", "new roof")},
	{score: 18, match: keywords("repair", "fix", "maintenance")},
	{score: 12, match: keywords("inspection", "assessment", "estimate")},
	{score: 8, match: keywords("planning", "future", "considering")},
}

// timelineBuckets uses plain substring matching, so "3 months" is caught by
// "month" before the season bucket is reached.
var timelineBuckets = []bucket[string]{
	{score: 25, match: keywords("immediately", "asap", "emergency")},
	{score: 22, match: keywords("week", "2 weeks", "this month")},
	{score: 18, match: keywords("month", "30 days")},
	{score: 15, match: keywords("season", "3 months")},
	{score: 10, match: keywords("year", "6 months", "planning")},
}

const (
	budgetPresentScore    = 5
	authorityPresentScore = 10
	needPresentScore      = 10
	timelinePresentScore  = 8
)

// ScoreByKeywords scores free-text answers from the conversational intake.
// Each dimension is matched case-insensitively against an ordered bucket
// list where the first match wins. Absent answers score 0.
func ScoreByKeywords(in Input) KeywordResult {
	breakdown := Breakdown{
		Budget:    scoreKeywordBudget(in.Budget),
		Authority: scoreText(in.Authority, authorityBuckets, authorityPresentScore),
		Need:      scoreText(in.Need, needBuckets, needPresentScore),
		Timeline:  scoreText(in.Timeline, timelineBuckets, timelinePresentScore),
	}

	overall := clampScore(breakdown.Sum())
	grade, priority := GradeFor(overall)

	return KeywordResult{
		Breakdown: breakdown,
		Overall:   overall,
		Grade:     grade,
		Priority:  priority,
	}
}

func scoreText(raw string, buckets []bucket[string], present int) int {
	text := normalize(raw)
	if text == "" {
		return 0
	}
	return clampInt(firstMatch(text, buckets, present), 0, MaxDimensionScore)
}

func scoreKeywordBudget(raw string) int {
	text := normalize(raw)
	if text == "" {
		return 0
	}

	amount, ok := largestAmount(text)
	signal := budgetSignal{text: text, amount: amount, hasAmount: ok}
	return clampInt(firstMatch(signal, budgetBuckets, budgetPresentScore), 0, MaxDimensionScore)
}

var amountPattern = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)(\s*[km]\b)?`)

// largestAmount extracts the biggest dollar figure from a budget answer.
// "50k" and "1.5m" are expanded. Amounts qualified with "under", "less than"
// or "below" are treated as exclusive upper bounds.
func largestAmount(text string) (int, bool) {
	matches := amountPattern.FindAllStringSubmatch(text, -1)
	best := 0
	found := false
	for _, m := range matches {
		value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		switch strings.TrimSpace(m[2]) {
		case "k":
			value *= 1_000
		case "m":
			value *= 1_000_000
		}
		value = math.Min(value, math.MaxInt32)
		if !found || int(value) > best {
			best = int(value)
			found = true
		}
	}

	if found && containsAny(text, []string{"under", "less than", "below"}) {
		best--
	}
	return best, found
}

func keywords(words ...string) func(string) bool {
	return func(text string) bool {
		return containsAny(text, words)
	}
}

// containsAny checks if s contains any of the keywords.
func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
