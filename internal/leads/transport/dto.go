package transport

import (
	"time"

	"github.com/google/uuid"
)

// Validation tags registered by the leads module.
const (
	TagScoringPolicy       = "scoringpolicy"
	TagQualificationStatus = "qualificationstatus"
	TagPriority            = "leadpriority"
)

// Contact is the prospect's contact block shared by both intake flows.
type Contact struct {
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
	Phone     string `json:"phone" validate:"max=40"`
	Address   string `json:"address" validate:"max=300"`
	ZipCode   string `json:"zipCode" validate:"max=20"`
}

// KeywordAnswers are the free-text BANT answers collected by the chat flow.
type KeywordAnswers struct {
	Budget    string `json:"budget" validate:"max=500"`
	Authority string `json:"authority" validate:"max=500"`
	Need      string `json:"need" validate:"max=1000"`
	Timeline  string `json:"timeline" validate:"max=500"`
}

// ChatIntakeRequest is posted by the chatbot once all answers are collected.
type ChatIntakeRequest struct {
	Contact Contact        `json:"contact"`
	Answers KeywordAnswers `json:"answers"`
}

// StructuredAnswers are the form fields of the qualification function.
// Field names keep the snake_case of the public form contract.
type StructuredAnswers struct {
	BudgetRange     string      `json:"budget_range" validate:"max=50"`
	IsDecisionMaker *bool       `json:"is_decision_maker"`
	DamageSeverity  string      `json:"damage_severity" validate:"max=50"`
	UrgencyLevel    FlexibleInt `json:"urgency_level"`
	HasInsurance    bool        `json:"has_insurance"`
	ClaimFiled      bool        `json:"claim_filed"`
	PropertyType    string      `json:"property_type" validate:"max=50"`
}

// QualifyLeadRequest is the body of the server-side qualification endpoint.
type QualifyLeadRequest struct {
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
	Phone     string `json:"phone" validate:"max=40"`
	Address   string `json:"address" validate:"max=300"`
	ZipCode   string `json:"zip_code" validate:"max=20"`
	StructuredAnswers
}

// ListLeadsRequest is bound from the dashboard list query string.
type ListLeadsRequest struct {
	Policy    string `form:"policy" validate:"omitempty,scoringpolicy"`
	Status    string `form:"status" validate:"omitempty,qualificationstatus"`
	Priority  string `form:"priority" validate:"omitempty,leadpriority"`
	Source    string `form:"source" validate:"omitempty,oneof=chat form"`
	MinScore  *int   `form:"minScore" validate:"omitempty,min=0,max=100"`
	Search    string `form:"search" validate:"max=100"`
	Page      int    `form:"page" validate:"min=1"`
	PageSize  int    `form:"pageSize" validate:"min=1,max=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=createdAt leadScore"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// Response DTOs

type BreakdownResponse struct {
	Budget    int `json:"budget"`
	Authority int `json:"authority"`
	Need      int `json:"need"`
	Timeline  int `json:"timeline"`
	Bonus     int `json:"bonus"`
}

type ChatIntakeResponse struct {
	LeadID    uuid.UUID         `json:"leadId"`
	LeadScore int               `json:"leadScore"`
	Grade     string            `json:"grade"`
	Priority  string            `json:"priority"`
	Breakdown BreakdownResponse `json:"breakdown"`
}

type QualifyLeadResponse struct {
	LeadID              uuid.UUID         `json:"lead_id"`
	LeadScore           int               `json:"lead_score"`
	QualificationStatus string            `json:"qualification_status"`
	EmergencyCallback   bool              `json:"emergency_callback"`
	Breakdown           BreakdownResponse `json:"breakdown"`
}

type KeywordPreviewResponse struct {
	ScoreVersion string            `json:"scoreVersion"`
	LeadScore    int               `json:"leadScore"`
	Grade        string            `json:"grade"`
	Priority     string            `json:"priority"`
	Breakdown    BreakdownResponse `json:"breakdown"`
}

type StructuredPreviewResponse struct {
	ScoreVersion        string            `json:"score_version"`
	LeadScore           int               `json:"lead_score"`
	QualificationStatus string            `json:"qualification_status"`
	EmergencyCallback   bool              `json:"emergency_callback"`
	Breakdown           BreakdownResponse `json:"breakdown"`
}

type ContactResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	ZipCode   string `json:"zipCode,omitempty"`
}

type AnswersResponse struct {
	Budget          string `json:"budget,omitempty"`
	Authority       string `json:"authority,omitempty"`
	Need            string `json:"need,omitempty"`
	Timeline        string `json:"timeline,omitempty"`
	IsDecisionMaker *bool  `json:"isDecisionMaker,omitempty"`
	DamageSeverity  string `json:"damageSeverity,omitempty"`
	UrgencyLevel    *int   `json:"urgencyLevel,omitempty"`
	HasInsurance    bool   `json:"hasInsurance"`
	ClaimFiled      bool   `json:"claimFiled"`
	PropertyType    string `json:"propertyType,omitempty"`
}

type ScoreResponse struct {
	Policy              string            `json:"policy"`
	Version             string            `json:"version"`
	LeadScore           int               `json:"leadScore"`
	Grade               *string           `json:"grade,omitempty"`
	Priority            *string           `json:"priority,omitempty"`
	QualificationStatus *string           `json:"qualificationStatus,omitempty"`
	EmergencyCallback   bool              `json:"emergencyCallback"`
	Breakdown           BreakdownResponse `json:"breakdown"`
}

type LeadResponse struct {
	ID        uuid.UUID       `json:"id"`
	Source    string          `json:"source"`
	Contact   ContactResponse `json:"contact"`
	Answers   AnswersResponse `json:"answers"`
	Score     ScoreResponse   `json:"score"`
	CreatedAt time.Time       `json:"createdAt"`
}

type LeadListResponse struct {
	Items      []LeadResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}
