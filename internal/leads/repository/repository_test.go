package repository

import (
	"testing"
)

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func TestBuildLeadListWhereWithoutFilters(t *testing.T) {
	where, args, next := buildLeadListWhere(ListParams{})
	if where != "TRUE" {
		t.Fatalf("expected TRUE, got %q", where)
	}
	if len(args) != 0 || next != 1 {
		t.Fatalf("expected no args and next placeholder 1, got %v and %d", args, next)
	}
}

func TestBuildLeadListWhereNumbersPlaceholdersInOrder(t *testing.T) {
	where, args, next := buildLeadListWhere(ListParams{
		ScoringPolicy:       strPtr("structured"),
		QualificationStatus: strPtr("hot"),
		MinScore:            intPtr(60),
		Search:              "  smith ",
	})

	want := "scoring_policy = $1 AND qualification_status = $2 AND lead_score >= $3 AND " +
		"(first_name ILIKE $4 OR last_name ILIKE $4 OR email ILIKE $4 OR phone ILIKE $4)"
	if where != want {
		t.Fatalf("unexpected where clause:\n got: %s\nwant: %s", where, want)
	}
	if next != 5 {
		t.Fatalf("expected next placeholder 5, got %d", next)
	}
	if len(args) != 4 || args[0] != "structured" || args[1] != "hot" || args[2] != 60 || args[3] != "%smith%" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestMapLeadSortColumn(t *testing.T) {
	cases := map[string]string{
		"":          "created_at",
		"createdAt": "created_at",
		"leadScore": "lead_score",
		"id; DROP":  "created_at",
	}
	for in, want := range cases {
		if got := mapLeadSortColumn(in); got != want {
			t.Errorf("mapLeadSortColumn(%q) = %q, want %q", in, got, want)
		}
	}
}
