package service

import (
	"orpaynter_backend/internal/leads/repository"
	"orpaynter_backend/internal/leads/scoring"
	"orpaynter_backend/internal/leads/transport"
)

// ToLeadResponse maps a stored lead to its dashboard representation.
func ToLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:     lead.ID,
		Source: lead.Source,
		Contact: transport.ContactResponse{
			FirstName: lead.FirstName,
			LastName:  lead.LastName,
			Email:     lead.Email,
			Phone:     lead.Phone,
			Address:   lead.Address,
			ZipCode:   lead.ZipCode,
		},
		Answers: transport.AnswersResponse{
			Budget:          lead.Budget,
			Authority:       lead.Authority,
			Need:            lead.Need,
			Timeline:        lead.Timeline,
			IsDecisionMaker: lead.IsDecisionMaker,
			DamageSeverity:  lead.DamageSeverity,
			UrgencyLevel:    lead.UrgencyLevel,
			HasInsurance:    lead.HasInsurance,
			ClaimFiled:      lead.ClaimFiled,
			PropertyType:    lead.PropertyType,
		},
		Score: transport.ScoreResponse{
			Policy:              lead.ScoringPolicy,
			Version:             lead.ScoreVersion,
			LeadScore:           lead.LeadScore,
			Grade:               lead.Grade,
			Priority:            lead.Priority,
			QualificationStatus: lead.QualificationStatus,
			EmergencyCallback:   lead.EmergencyCallback,
			Breakdown: transport.BreakdownResponse{
				Budget:    lead.BudgetScore,
				Authority: lead.AuthorityScore,
				Need:      lead.NeedScore,
				Timeline:  lead.TimelineScore,
				Bonus:     lead.BonusScore,
			},
		},
		CreatedAt: lead.CreatedAt,
	}
}

func toBreakdownResponse(b scoring.Breakdown) transport.BreakdownResponse {
	return transport.BreakdownResponse{
		Budget:    b.Budget,
		Authority: b.Authority,
		Need:      b.Need,
		Timeline:  b.Timeline,
		Bonus:     b.Bonus,
	}
}
