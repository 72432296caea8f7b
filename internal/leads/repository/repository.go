package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"orpaynter_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const msgLeadNotFound = "lead not found"

// Lead sources.
const (
	SourceChat = "chat"
	SourceForm = "form"
)

// Lead is a stored lead with the answers it was scored on and the score itself.
type Lead struct {
	ID     uuid.UUID
	Source string

	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	ZipCode   string

	Budget          string
	Authority       string
	Need            string
	Timeline        string
	IsDecisionMaker *bool
	DamageSeverity  string
	UrgencyLevel    *int
	HasInsurance    bool
	ClaimFiled      bool
	PropertyType    string

	ScoringPolicy       string
	ScoreVersion        string
	BudgetScore         int
	AuthorityScore      int
	NeedScore           int
	TimelineScore       int
	BonusScore          int
	LeadScore           int
	Grade               *string
	Priority            *string
	QualificationStatus *string
	EmergencyCallback   bool

	CreatedAt time.Time
}

// CreateParams holds everything written when a lead is stored.
type CreateParams struct {
	Source string

	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	ZipCode   string

	Budget          string
	Authority       string
	Need            string
	Timeline        string
	IsDecisionMaker *bool
	DamageSeverity  string
	UrgencyLevel    *int
	HasInsurance    bool
	ClaimFiled      bool
	PropertyType    string

	ScoringPolicy       string
	ScoreVersion        string
	BudgetScore         int
	AuthorityScore      int
	NeedScore           int
	TimelineScore       int
	BonusScore          int
	LeadScore           int
	Grade               *string
	Priority            *string
	QualificationStatus *string
	EmergencyCallback   bool
}

// ListParams filters and pages the dashboard lead list.
type ListParams struct {
	Source              *string
	ScoringPolicy       *string
	QualificationStatus *string
	Priority            *string
	MinScore            *int
	Search              string
	Offset              int
	Limit               int
	SortBy              string
	SortOrder           string
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leadColumns = `
	id, source, first_name, last_name, email, phone, address, zip_code,
	budget, authority, need, timeline, is_decision_maker, damage_severity, urgency_level,
	has_insurance, claim_filed, property_type,
	scoring_policy, score_version, budget_score, authority_score, need_score, timeline_score,
	bonus_score, lead_score, grade, priority, qualification_status, emergency_callback,
	created_at`

func (r *Repository) Create(ctx context.Context, params CreateParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			id, source, first_name, last_name, email, phone, address, zip_code,
			budget, authority, need, timeline, is_decision_maker, damage_severity, urgency_level,
			has_insurance, claim_filed, property_type,
			scoring_policy, score_version, budget_score, authority_score, need_score, timeline_score,
			bonus_score, lead_score, grade, priority, qualification_status, emergency_callback
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18,
			$19, $20, $21, $22, $23, $24,
			$25, $26, $27, $28, $29, $30
		)
		RETURNING`+leadColumns,
		uuid.New(), params.Source, params.FirstName, params.LastName, params.Email, params.Phone, params.Address, params.ZipCode,
		params.Budget, params.Authority, params.Need, params.Timeline, params.IsDecisionMaker, params.DamageSeverity, params.UrgencyLevel,
		params.HasInsurance, params.ClaimFiled, params.PropertyType,
		params.ScoringPolicy, params.ScoreVersion, params.BudgetScore, params.AuthorityScore, params.NeedScore, params.TimelineScore,
		params.BonusScore, params.LeadScore, params.Grade, params.Priority, params.QualificationStatus, params.EmergencyCallback,
	)

	lead, err := scanLead(row)
	if err != nil {
		return Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return lead, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+leadColumns+` FROM leads WHERE id = $1`, id)

	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, apperr.NotFound(msgLeadNotFound)
	}
	if err != nil {
		return Lead{}, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	whereClause, args, argIdx := buildLeadListWhere(params)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM leads WHERE %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	sortColumn := mapLeadSortColumn(params.SortBy)
	sortOrder := "DESC"
	if params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM leads
		WHERE %s
		ORDER BY %s %s, id %s
		LIMIT $%d OFFSET $%d
	`, leadColumns, whereClause, sortColumn, sortOrder, sortOrder, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate leads: %w", err)
	}

	return leads, total, nil
}

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.Source, &lead.FirstName, &lead.LastName, &lead.Email, &lead.Phone, &lead.Address, &lead.ZipCode,
		&lead.Budget, &lead.Authority, &lead.Need, &lead.Timeline, &lead.IsDecisionMaker, &lead.DamageSeverity, &lead.UrgencyLevel,
		&lead.HasInsurance, &lead.ClaimFiled, &lead.PropertyType,
		&lead.ScoringPolicy, &lead.ScoreVersion, &lead.BudgetScore, &lead.AuthorityScore, &lead.NeedScore, &lead.TimelineScore,
		&lead.BonusScore, &lead.LeadScore, &lead.Grade, &lead.Priority, &lead.QualificationStatus, &lead.EmergencyCallback,
		&lead.CreatedAt,
	)
	return lead, err
}

func buildLeadListWhere(params ListParams) (string, []any, int) {
	whereClauses := []string{"TRUE"}
	args := []any{}
	argIdx := 1

	addEquals := func(column string, value any) {
		whereClauses = append(whereClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if params.Source != nil {
		addEquals("source", *params.Source)
	}
	if params.ScoringPolicy != nil {
		addEquals("scoring_policy", *params.ScoringPolicy)
	}
	if params.QualificationStatus != nil {
		addEquals("qualification_status", *params.QualificationStatus)
	}
	if params.Priority != nil {
		addEquals("priority", *params.Priority)
	}
	if params.MinScore != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lead_score >= $%d", argIdx))
		args = append(args, *params.MinScore)
		argIdx++
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + search + "%"
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx,
		))
		args = append(args, pattern)
		argIdx++
	}

	if len(whereClauses) > 1 {
		whereClauses = whereClauses[1:]
	}
	return strings.Join(whereClauses, " AND "), args, argIdx
}

func mapLeadSortColumn(sortBy string) string {
	switch sortBy {
	case "leadScore":
		return "lead_score"
	default:
		return "created_at"
	}
}
