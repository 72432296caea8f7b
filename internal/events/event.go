// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"orpaynter_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadQualified is published after a lead has been scored and stored.
// Tier is the grade (keywords policy) or qualification status (structured policy).
type LeadQualified struct {
	BaseEvent
	LeadID       uuid.UUID `json:"leadId"`
	Source       string    `json:"source"`
	Policy       string    `json:"policy"`
	ScoreVersion string    `json:"scoreVersion"`
	LeadScore    int       `json:"leadScore"`
	Tier         string    `json:"tier"`
}

func (e LeadQualified) EventName() string { return "leads.lead.qualified" }

// EmergencyCallbackRequested is published when a qualified lead crosses the
// emergency threshold or reports emergency damage.
type EmergencyCallbackRequested struct {
	BaseEvent
	LeadID         uuid.UUID `json:"leadId"`
	LeadScore      int       `json:"leadScore"`
	DamageSeverity string    `json:"damageSeverity,omitempty"`
	ContactName    string    `json:"contactName"`
	ContactPhone   string    `json:"contactPhone,omitempty"`
	ContactEmail   string    `json:"contactEmail,omitempty"`
	Address        string    `json:"address,omitempty"`
	Need           string    `json:"need,omitempty"`
	HasInsurance   bool      `json:"hasInsurance"`
	ClaimFiled     bool      `json:"claimFiled"`
}

func (e EmergencyCallbackRequested) EventName() string { return "leads.emergency_callback.requested" }
