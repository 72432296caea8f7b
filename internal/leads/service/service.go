// Package service scores incoming leads, stores them and announces the
// outcome on the event bus.
package service

import (
	"context"
	"strings"

	"orpaynter_backend/internal/events"
	"orpaynter_backend/internal/leads/repository"
	"orpaynter_backend/internal/leads/scoring"
	"orpaynter_backend/internal/leads/transport"
	"orpaynter_backend/platform/logger"
	"orpaynter_backend/platform/metrics"
	"orpaynter_backend/platform/phone"
	"orpaynter_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Config is the slice of configuration the service reads.
type Config interface {
	GetEmergencyScoreThreshold() int
	GetPhoneDefaultRegion() string
}

type Service struct {
	repo     repository.LeadsRepository
	eventBus events.Bus
	cfg      Config
	log      *logger.Logger
}

func New(repo repository.LeadsRepository, eventBus events.Bus, cfg Config, log *logger.Logger) *Service {
	return &Service{repo: repo, eventBus: eventBus, cfg: cfg, log: log}
}

// IntakeChat scores the answers gathered by the chatbot with the keyword
// policy and stores the lead.
func (s *Service) IntakeChat(ctx context.Context, req transport.ChatIntakeRequest) (transport.ChatIntakeResponse, error) {
	result := scoring.ScoreByKeywords(keywordInput(req.Answers))
	grade := string(result.Grade)
	priority := string(result.Priority)

	params := repository.CreateParams{
		Source:        repository.SourceChat,
		Budget:        sanitize.Text(req.Answers.Budget),
		Authority:     sanitize.Text(req.Answers.Authority),
		Need:          sanitize.Text(req.Answers.Need),
		Timeline:      sanitize.Text(req.Answers.Timeline),
		ScoringPolicy: string(scoring.PolicyKeywords),
		ScoreVersion:  scoring.Version,
		LeadScore:     result.Overall,
		Grade:         &grade,
		Priority:      &priority,
	}
	s.applyContact(&params, req.Contact.FirstName, req.Contact.LastName, req.Contact.Email, req.Contact.Phone, req.Contact.Address, req.Contact.ZipCode)
	applyBreakdown(&params, result.Breakdown)

	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.ChatIntakeResponse{}, err
	}

	s.recordScored(ctx, lead, grade)

	return transport.ChatIntakeResponse{
		LeadID:    lead.ID,
		LeadScore: lead.LeadScore,
		Grade:     grade,
		Priority:  priority,
		Breakdown: toBreakdownResponse(result.Breakdown),
	}, nil
}

// Qualify scores the structured form with the structured policy, stores the
// lead and requests an emergency callback when the lead warrants one.
func (s *Service) Qualify(ctx context.Context, req transport.QualifyLeadRequest) (transport.QualifyLeadResponse, error) {
	in := structuredInput(req.StructuredAnswers)
	result := scoring.ScoreByStructuredFields(in)
	status := string(result.Status)
	emergency := scoring.RequiresEmergencyCallback(result.Overall, in.DamageSeverity, s.cfg.GetEmergencyScoreThreshold())

	params := repository.CreateParams{
		Source:              repository.SourceForm,
		Budget:              sanitize.Text(req.BudgetRange),
		IsDecisionMaker:     req.IsDecisionMaker,
		DamageSeverity:      sanitize.Text(req.DamageSeverity),
		UrgencyLevel:        in.UrgencyLevel,
		HasInsurance:        req.HasInsurance,
		ClaimFiled:          req.ClaimFiled,
		PropertyType:        strings.ToLower(strings.TrimSpace(req.PropertyType)),
		ScoringPolicy:       string(scoring.PolicyStructured),
		ScoreVersion:        scoring.Version,
		LeadScore:           result.Overall,
		QualificationStatus: &status,
		EmergencyCallback:   emergency,
	}
	s.applyContact(&params, req.FirstName, req.LastName, req.Email, req.Phone, req.Address, req.ZipCode)
	applyBreakdown(&params, result.Breakdown)

	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.QualifyLeadResponse{}, err
	}

	s.recordScored(ctx, lead, status)

	if emergency {
		metrics.EmergencyCallbacks.Inc()
		s.eventBus.Publish(ctx, events.EmergencyCallbackRequested{
			BaseEvent:      events.NewBaseEvent(),
			LeadID:         lead.ID,
			LeadScore:      lead.LeadScore,
			DamageSeverity: lead.DamageSeverity,
			ContactName:    strings.TrimSpace(lead.FirstName + " " + lead.LastName),
			ContactPhone:   lead.Phone,
			ContactEmail:   lead.Email,
			Address:        lead.Address,
			Need:           lead.Need,
			HasInsurance:   lead.HasInsurance,
			ClaimFiled:     lead.ClaimFiled,
		})
	}

	return transport.QualifyLeadResponse{
		LeadID:              lead.ID,
		LeadScore:           lead.LeadScore,
		QualificationStatus: status,
		EmergencyCallback:   emergency,
		Breakdown:           toBreakdownResponse(result.Breakdown),
	}, nil
}

// PreviewKeywords scores chat answers without storing anything.
func (s *Service) PreviewKeywords(req transport.KeywordAnswers) transport.KeywordPreviewResponse {
	result := scoring.ScoreByKeywords(keywordInput(req))
	return transport.KeywordPreviewResponse{
		ScoreVersion: scoring.Version,
		LeadScore:    result.Overall,
		Grade:        string(result.Grade),
		Priority:     string(result.Priority),
		Breakdown:    toBreakdownResponse(result.Breakdown),
	}
}

// PreviewStructured scores form answers without storing anything.
func (s *Service) PreviewStructured(req transport.StructuredAnswers) transport.StructuredPreviewResponse {
	in := structuredInput(req)
	result := scoring.ScoreByStructuredFields(in)
	return transport.StructuredPreviewResponse{
		ScoreVersion:        scoring.Version,
		LeadScore:           result.Overall,
		QualificationStatus: string(result.Status),
		EmergencyCallback:   scoring.RequiresEmergencyCallback(result.Overall, in.DamageSeverity, s.cfg.GetEmergencyScoreThreshold()),
		Breakdown:           toBreakdownResponse(result.Breakdown),
	}
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return ToLeadResponse(lead), nil
}

func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	params := repository.ListParams{
		Source:              optionalLower(req.Source),
		ScoringPolicy:       optionalLower(req.Policy),
		QualificationStatus: optionalLower(req.Status),
		Priority:            optionalLower(req.Priority),
		MinScore:            req.MinScore,
		Search:              req.Search,
		Offset:              (req.Page - 1) * req.PageSize,
		Limit:               req.PageSize,
		SortBy:              req.SortBy,
		SortOrder:           req.SortOrder,
	}

	leads, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	items := make([]transport.LeadResponse, len(leads))
	for i, lead := range leads {
		items[i] = ToLeadResponse(lead)
	}

	totalPages := (total + req.PageSize - 1) / req.PageSize

	return transport.LeadListResponse{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) applyContact(params *repository.CreateParams, firstName, lastName, email, rawPhone, address, zipCode string) {
	params.FirstName = sanitize.Text(firstName)
	params.LastName = sanitize.Text(lastName)
	params.Email = strings.ToLower(strings.TrimSpace(email))
	params.Phone = phone.NormalizeE164(rawPhone, s.cfg.GetPhoneDefaultRegion())
	params.Address = sanitize.Text(address)
	params.ZipCode = strings.ToUpper(strings.TrimSpace(zipCode))
}

func (s *Service) recordScored(ctx context.Context, lead repository.Lead, tier string) {
	metrics.ObserveLeadScore(lead.ScoringPolicy, tier, lead.LeadScore)
	if s.log != nil {
		s.log.WithContext(ctx).LeadScored(lead.ID.String(), lead.ScoringPolicy, lead.LeadScore, tier, lead.EmergencyCallback)
	}

	s.eventBus.Publish(ctx, events.LeadQualified{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       lead.ID,
		Source:       lead.Source,
		Policy:       lead.ScoringPolicy,
		ScoreVersion: lead.ScoreVersion,
		LeadScore:    lead.LeadScore,
		Tier:         tier,
	})
}

func keywordInput(a transport.KeywordAnswers) scoring.Input {
	return scoring.Input{
		Budget:    a.Budget,
		Authority: a.Authority,
		Need:      a.Need,
		Timeline:  a.Timeline,
	}
}

func structuredInput(a transport.StructuredAnswers) scoring.Input {
	return scoring.Input{
		Budget:          a.BudgetRange,
		IsDecisionMaker: a.IsDecisionMaker,
		DamageSeverity:  scoring.ParseDamageSeverity(a.DamageSeverity),
		UrgencyLevel:    a.UrgencyLevel.Ptr(),
		HasInsurance:    a.HasInsurance,
		ClaimFiled:      a.ClaimFiled,
		PropertyType:    a.PropertyType,
	}
}

func applyBreakdown(params *repository.CreateParams, b scoring.Breakdown) {
	params.BudgetScore = b.Budget
	params.AuthorityScore = b.Authority
	params.NeedScore = b.Need
	params.TimelineScore = b.Timeline
	params.BonusScore = b.Bonus
}

func optionalLower(value string) *string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return nil
	}
	return &value
}
