package email

import (
	"context"

	"orpaynter_backend/platform/config"

	"github.com/google/uuid"
)

// EmergencyCallback is the content of the on-call alert for a lead that
// needs an immediate phone call.
type EmergencyCallback struct {
	LeadID         uuid.UUID
	ContactName    string
	Phone          string
	Email          string
	Address        string
	LeadScore      int
	DamageSeverity string
	Need           string
	HasInsurance   bool
	ClaimFiled     bool
}

type Sender interface {
	SendEmergencyCallbackEmail(ctx context.Context, toEmail string, callback EmergencyCallback) error
}

type NoopSender struct{}

func (NoopSender) SendEmergencyCallbackEmail(ctx context.Context, toEmail string, callback EmergencyCallback) error {
	return nil
}

// NewSender returns an SMTP sender when SMTP is configured and a no-op otherwise.
func NewSender(cfg config.SMTPConfig) (Sender, error) {
	if !cfg.IsSMTPEnabled() {
		return NoopSender{}, nil
	}

	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetSMTPFromAddress(),
		cfg.GetSMTPFromName(),
	), nil
}
