package repository

import (
	"context"

	"github.com/google/uuid"
)

// LeadReader provides read-only access to scored leads.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
}

// LeadWriter stores a lead together with its score. Scores are written once;
// there is no update path.
type LeadWriter interface {
	Create(ctx context.Context, params CreateParams) (Lead, error)
}

// LeadsRepository is the full persistence surface of the leads context.
type LeadsRepository interface {
	LeadReader
	LeadWriter
}

var _ LeadsRepository = (*Repository)(nil)
