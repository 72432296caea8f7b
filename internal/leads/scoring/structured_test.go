package scoring

import "testing"

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func TestScoreByStructuredFieldsCapsAtMax(t *testing.T) {
	result := ScoreByStructuredFields(Input{
		Budget:          "50000+",
		IsDecisionMaker: boolPtr(true),
		DamageSeverity:  SeverityEmergency,
		UrgencyLevel:    intPtr(9),
		HasInsurance:    true,
		ClaimFiled:      true,
		PropertyType:    "commercial",
	})

	want := Breakdown{Budget: 25, Authority: 25, Need: 25, Timeline: 25, Bonus: 20}
	if result.Breakdown != want {
		t.Fatalf("expected breakdown %+v, got %+v", want, result.Breakdown)
	}
	if result.Sum() != 120 {
		t.Fatalf("expected uncapped sum 120, got %d", result.Sum())
	}
	if result.Overall != 100 {
		t.Fatalf("expected overall capped at 100, got %d", result.Overall)
	}
	if result.Status != StatusHot {
		t.Fatalf("expected status hot, got %s", result.Status)
	}
}

func TestScoreByStructuredFieldsLowLead(t *testing.T) {
	result := ScoreByStructuredFields(Input{
		Budget:          "5000-10000",
		IsDecisionMaker: boolPtr(false),
		DamageSeverity:  SeverityMinor,
		UrgencyLevel:    intPtr(2),
	})

	want := Breakdown{Budget: 10, Authority: 10, Need: 10, Timeline: 10}
	if result.Breakdown != want {
		t.Fatalf("expected breakdown %+v, got %+v", want, result.Breakdown)
	}
	if result.Overall != 40 {
		t.Fatalf("expected overall 40, got %d", result.Overall)
	}
	if result.Status != StatusNew {
		t.Fatalf("expected status new, got %s", result.Status)
	}
}

func TestScoreByStructuredFieldsAbsentInput(t *testing.T) {
	result := ScoreByStructuredFields(Input{})

	want := Breakdown{Budget: 0, Authority: 0, Need: 10, Timeline: 10}
	if result.Breakdown != want {
		t.Fatalf("expected lowest buckets %+v, got %+v", want, result.Breakdown)
	}
	if result.Status != StatusNew {
		t.Fatalf("expected status new, got %s", result.Status)
	}
}

func TestScoreBudgetRange(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"50000+", 25},
		{"20000-50000", 20},
		{"10000-20000", 15},
		{"5000-10000", 10},
		{" 5000-10000 ", 10},
		{"under-5000", 5},
		{"no idea", 5},
		{"", 0},
	}

	for _, tc := range cases {
		if got := scoreBudgetRange(tc.input); got != tc.want {
			t.Errorf("scoreBudgetRange(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestScoreSeverity(t *testing.T) {
	cases := []struct {
		input DamageSeverity
		want  int
	}{
		{SeverityEmergency, 25},
		{"EMERGENCY", 25},
		{SeveritySevere, 20},
		{SeverityModerate, 15},
		{SeverityMinor, 10},
		{"catastrophic", 10},
		{"", 10},
	}

	for _, tc := range cases {
		if got := scoreSeverity(tc.input); got != tc.want {
			t.Errorf("scoreSeverity(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestScoreUrgency(t *testing.T) {
	cases := []struct {
		level *int
		want  int
	}{
		{intPtr(10), 25},
		{intPtr(8), 25},
		{intPtr(7), 20},
		{intPtr(6), 20},
		{intPtr(5), 15},
		{intPtr(4), 15},
		{intPtr(3), 10},
		{intPtr(1), 10},
		{intPtr(-4), 10},
		{nil, 10},
	}

	for _, tc := range cases {
		if got := scoreUrgency(tc.level); got != tc.want {
			t.Errorf("scoreUrgency(%v) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestScoreBonus(t *testing.T) {
	cases := []struct {
		in   Input
		want int
	}{
		{Input{}, 0},
		{Input{HasInsurance: true}, 10},
		{Input{ClaimFiled: true}, 5},
		{Input{PropertyType: "Commercial"}, 5},
		{Input{PropertyType: "residential"}, 0},
		{Input{HasInsurance: true, ClaimFiled: true, PropertyType: "commercial"}, 20},
	}

	for _, tc := range cases {
		if got := scoreBonus(tc.in); got != tc.want {
			t.Errorf("scoreBonus(%+v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestStatusForBoundaries(t *testing.T) {
	cases := []struct {
		overall int
		want    Status
	}{
		{100, StatusHot},
		{80, StatusHot},
		{79, StatusQualified},
		{60, StatusQualified},
		{59, StatusNew},
		{0, StatusNew},
	}

	for _, tc := range cases {
		if got := StatusFor(tc.overall); got != tc.want {
			t.Errorf("StatusFor(%d) = %s, want %s", tc.overall, got, tc.want)
		}
	}
}

func TestScoreByStructuredFieldsInvariants(t *testing.T) {
	budgets := append([]string{"", "garbage"}, BudgetRanges...)
	severities := []DamageSeverity{"", SeverityMinor, SeverityModerate, SeveritySevere, SeverityEmergency, "unknown"}
	decisions := []*bool{nil, boolPtr(true), boolPtr(false)}
	urgencies := []*int{nil, intPtr(1), intPtr(4), intPtr(6), intPtr(8), intPtr(42)}

	for _, budget := range budgets {
		for _, severity := range severities {
			for _, decision := range decisions {
				for _, urgency := range urgencies {
					for _, bonus := range []bool{false, true} {
						in := Input{
							Budget:          budget,
							DamageSeverity:  severity,
							IsDecisionMaker: decision,
							UrgencyLevel:    urgency,
							HasInsurance:    bonus,
							ClaimFiled:      bonus,
						}
						result := ScoreByStructuredFields(in)

						for _, v := range []int{result.Budget, result.Authority, result.Need, result.Timeline} {
							if v < 0 || v > MaxDimensionScore {
								t.Fatalf("dimension out of range for %+v: %+v", in, result.Breakdown)
							}
						}
						if result.Bonus < 0 {
							t.Fatalf("negative bonus %d", result.Bonus)
						}
						expected := result.Sum()
						if expected > MaxScore {
							expected = MaxScore
						}
						if result.Overall != expected {
							t.Fatalf("overall %d, want capped sum %d", result.Overall, expected)
						}
						if result.Status != StatusFor(result.Overall) {
							t.Fatalf("status %s does not match overall %d", result.Status, result.Overall)
						}
						if again := ScoreByStructuredFields(in); again != result {
							t.Fatalf("non-deterministic result for %+v", in)
						}
					}
				}
			}
		}
	}
}
