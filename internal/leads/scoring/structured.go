package scoring

// StructuredResult is the outcome of ScoreByStructuredFields.
type StructuredResult struct {
	Breakdown
	Overall int    `json:"overall"`
	Status  Status `json:"status"`
}

// Budget range buckets accepted by the qualification form.
const (
	BudgetRange50kPlus  = "50000+"
	BudgetRange20kTo50k = "20000-50000"
	BudgetRange10kTo20k = "10000-20000"
	BudgetRange5kTo10k  = "5000-10000"
	BudgetRangeUnder5k  = "under-5000"
)

// PropertyTypeCommercial earns the commercial property bonus.
const PropertyTypeCommercial = "commercial"

// BudgetRanges lists the enumerated budget buckets, highest first.
var BudgetRanges = []string{
	BudgetRange50kPlus,
	BudgetRange20kTo50k,
	BudgetRange10kTo20k,
	BudgetRange5kTo10k,
	BudgetRangeUnder5k,
}

var budgetRangeScores = map[string]int{
	BudgetRange50kPlus:  25,
	BudgetRange20kTo50k: 20,
	BudgetRange10kTo20k: 15,
	BudgetRange5kTo10k:  10,
}

var severityScores = map[DamageSeverity]int{
	SeverityEmergency: 25,
	SeveritySevere:    20,
	SeverityModerate:  15,
}

var urgencyBuckets = []bucket[int]{
	{score: 25, match: func(level int) bool { return level >= 8 }},
	{score: 20, match: func(level int) bool { return level >= 6 }},
	{score: 15, match: func(level int) bool { return level >= 4 }},
}

const (
	structuredBudgetPresentScore = 5
	decisionMakerScore           = 25
	nonDecisionMakerScore        = 10
	structuredNeedDefaultScore   = 10
	urgencyDefaultScore          = 10

	insuranceBonus  = 10
	claimFiledBonus = 5
	commercialBonus = 5
)

// ScoreByStructuredFields scores the enumerated answers of the qualification
// form. Unlike ScoreByKeywords it adds insurance, claim and property bonuses
// and caps the sum at MaxScore.
func ScoreByStructuredFields(in Input) StructuredResult {
	breakdown := Breakdown{
		Budget:    scoreBudgetRange(in.Budget),
		Authority: scoreDecisionMaker(in.IsDecisionMaker),
		Need:      scoreSeverity(in.DamageSeverity),
		Timeline:  scoreUrgency(in.UrgencyLevel),
		Bonus:     scoreBonus(in),
	}

	overall := clampScore(breakdown.Sum())

	return StructuredResult{
		Breakdown: breakdown,
		Overall:   overall,
		Status:    StatusFor(overall),
	}
}

func scoreBudgetRange(raw string) int {
	value := normalize(raw)
	if value == "" {
		return 0
	}
	if score, ok := budgetRangeScores[value]; ok {
		return score
	}
	return structuredBudgetPresentScore
}

func scoreDecisionMaker(isDecisionMaker *bool) int {
	if isDecisionMaker == nil {
		return 0
	}
	if *isDecisionMaker {
		return decisionMakerScore
	}
	return nonDecisionMakerScore
}

func scoreSeverity(severity DamageSeverity) int {
	if score, ok := severityScores[ParseDamageSeverity(string(severity))]; ok {
		return score
	}
	return structuredNeedDefaultScore
}

func scoreUrgency(level *int) int {
	if level == nil {
		return urgencyDefaultScore
	}
	return firstMatch(*level, urgencyBuckets, urgencyDefaultScore)
}

func scoreBonus(in Input) int {
	bonus := 0
	if in.HasInsurance {
		bonus += insuranceBonus
	}
	if in.ClaimFiled {
		bonus += claimFiledBonus
	}
	if normalize(in.PropertyType) == PropertyTypeCommercial {
		bonus += commercialBonus
	}
	return bonus
}
