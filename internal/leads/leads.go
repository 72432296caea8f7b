// Package leads provides the lead intake and qualification bounded context.
// This file defines the public API of the context.
// Only types and interfaces defined here should be imported by other domains.
package leads

import (
	"context"
	"strings"

	"orpaynter_backend/internal/leads/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Lead is the summary of a qualified lead shared with other domains.
type Lead struct {
	ID                  uuid.UUID
	ContactName         string
	Phone               string
	Email               string
	Address             string
	ZipCode             string
	Need                string
	DamageSeverity      string
	LeadScore           int
	QualificationStatus string
	HasInsurance        bool
	ClaimFiled          bool
	PropertyType        string
}

// Reader is the read surface other domains may depend on.
type Reader interface {
	GetLeadByID(ctx context.Context, id uuid.UUID) (Lead, error)
}

type reader struct {
	repo repository.LeadReader
}

// NewReader builds a Reader backed by the leads table.
func NewReader(pool *pgxpool.Pool) Reader {
	return &reader{repo: repository.New(pool)}
}

func (r *reader) GetLeadByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	lead, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return Lead{}, err
	}
	return toSummary(lead), nil
}

func toSummary(lead repository.Lead) Lead {
	status := ""
	if lead.QualificationStatus != nil {
		status = *lead.QualificationStatus
	}
	return Lead{
		ID:                  lead.ID,
		ContactName:         strings.TrimSpace(lead.FirstName + " " + lead.LastName),
		Phone:               lead.Phone,
		Email:               lead.Email,
		Address:             lead.Address,
		ZipCode:             lead.ZipCode,
		Need:                lead.Need,
		DamageSeverity:      lead.DamageSeverity,
		LeadScore:           lead.LeadScore,
		QualificationStatus: status,
		HasInsurance:        lead.HasInsurance,
		ClaimFiled:          lead.ClaimFiled,
		PropertyType:        lead.PropertyType,
	}
}
