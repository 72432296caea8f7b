// Package scoring implements BANT (Budget, Authority, Need, Timeline) lead
// qualification. Two policies coexist and are kept separate on purpose:
// ScoreByKeywords for the conversational intake and ScoreByStructuredFields
// for the form-based qualification endpoint. Their bucket tables and tier
// thresholds differ and must not be merged.
//
// Every function in this package is pure and safe for concurrent use.
package scoring

import "strings"

const (
	// Version tracks the bucket tables. Bump it whenever a table or threshold
	// changes so persisted scores can be traced back to the rules that produced them.
	Version = "bant-2026-v1"

	// MaxDimensionScore is the ceiling of a single BANT dimension.
	MaxDimensionScore = 25
	// MaxScore is the ceiling of the overall score.
	MaxScore = 100

	// DefaultEmergencyThreshold is the overall score at which an emergency
	// callback is requested.
	DefaultEmergencyThreshold = 80
)

// Policy names which bucket table produced a score.
type Policy string

const (
	PolicyKeywords   Policy = "keywords"
	PolicyStructured Policy = "structured"
)

// DamageSeverity is the structured need signal.
type DamageSeverity string

const (
	SeverityMinor     DamageSeverity = "minor"
	SeverityModerate  DamageSeverity = "moderate"
	SeveritySevere    DamageSeverity = "severe"
	SeverityEmergency DamageSeverity = "emergency"
)

// ParseDamageSeverity normalizes free input. Unknown values return "".
func ParseDamageSeverity(value string) DamageSeverity {
	switch DamageSeverity(strings.ToLower(strings.TrimSpace(value))) {
	case SeverityMinor:
		return SeverityMinor
	case SeverityModerate:
		return SeverityModerate
	case SeveritySevere:
		return SeveritySevere
	case SeverityEmergency:
		return SeverityEmergency
	default:
		return ""
	}
}

// Input holds the raw answers collected from a prospect. All fields are
// optional; blank strings and nil pointers count as absent.
type Input struct {
	Budget    string
	Authority string
	Need      string
	Timeline  string

	IsDecisionMaker *bool
	DamageSeverity  DamageSeverity
	UrgencyLevel    *int

	HasInsurance bool
	ClaimFiled   bool
	PropertyType string
}

// Breakdown holds per-dimension points.
type Breakdown struct {
	Budget    int `json:"budget"`
	Authority int `json:"authority"`
	Need      int `json:"need"`
	Timeline  int `json:"timeline"`
	Bonus     int `json:"bonus"`
}

// Sum returns the uncapped total of all terms.
func (b Breakdown) Sum() int {
	return b.Budget + b.Authority + b.Need + b.Timeline + b.Bonus
}

// Grade is the letter bucket of a keyword score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Priority drives follow-up urgency for keyword-scored leads.
type Priority string

const (
	PriorityHot  Priority = "hot"
	PriorityWarm Priority = "warm"
	PriorityCold Priority = "cold"
)

// Status is the three-tier qualification status of a structured score.
type Status string

const (
	StatusNew       Status = "new"
	StatusQualified Status = "qualified"
	StatusHot       Status = "hot"
)

type gradeStep struct {
	min      int
	grade    Grade
	priority Priority
}

// gradeSteps is checked top to bottom.
var gradeSteps = []gradeStep{
	{min: 85, grade: GradeA, priority: PriorityHot},
	{min: 70, grade: GradeB, priority: PriorityHot},
	{min: 55, grade: GradeC, priority: PriorityWarm},
	{min: 40, grade: GradeD, priority: PriorityWarm},
}

// GradeFor maps an overall keyword score to its grade and priority.
func GradeFor(overall int) (Grade, Priority) {
	for _, step := range gradeSteps {
		if overall >= step.min {
			return step.grade, step.priority
		}
	}
	return GradeF, PriorityCold
}

// StatusFor maps an overall structured score to its qualification status.
func StatusFor(overall int) Status {
	switch {
	case overall >= 80:
		return StatusHot
	case overall >= 60:
		return StatusQualified
	default:
		return StatusNew
	}
}

// RequiresEmergencyCallback reports whether a lead must be called back
// right away. A non-positive threshold falls back to DefaultEmergencyThreshold.
func RequiresEmergencyCallback(overall int, severity DamageSeverity, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultEmergencyThreshold
	}
	return overall >= threshold || severity == SeverityEmergency
}

func clampScore(value int) int {
	return clampInt(value, 0, MaxScore)
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
