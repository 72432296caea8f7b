// Package notification reacts to lead events with out-of-band alerts.
// Domain modules publish events; this module owns the delivery channels.
package notification

import (
	"context"
	"strings"
	"time"

	"orpaynter_backend/internal/email"
	"orpaynter_backend/internal/events"
	"orpaynter_backend/internal/scheduler"
	"orpaynter_backend/platform/logger"
	"orpaynter_backend/platform/metrics"
)

const defaultCallbackCooldown = 30 * time.Minute

// Config provides the alert recipient and dedupe window.
type Config interface {
	GetEmergencyCallbackEmail() string
	GetEmergencyCallbackCooldown() time.Duration
}

// Module handles emergency callback requests.
type Module struct {
	sender email.Sender
	queue  scheduler.CallbackQueue
	guard  CallbackGuard
	cfg    Config
	log    *logger.Logger
}

// New creates the notification module. A nil queue makes the module send
// alerts inline instead of through the background worker.
func New(sender email.Sender, queue scheduler.CallbackQueue, guard CallbackGuard, cfg Config, log *logger.Logger) *Module {
	if guard == nil {
		guard = NewMemoryCallbackGuard()
	}
	return &Module{sender: sender, queue: queue, guard: guard, cfg: cfg, log: log}
}

// RegisterHandlers subscribes the module to the events it handles.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.EmergencyCallbackRequested{}.EventName(), m)
}

// Handle implements events.Handler.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.EmergencyCallbackRequested:
		return m.handleEmergencyCallbackRequested(ctx, e)
	default:
		return nil
	}
}

func (m *Module) handleEmergencyCallbackRequested(ctx context.Context, e events.EmergencyCallbackRequested) error {
	log := m.log.WithContext(ctx)

	cooldown := m.cfg.GetEmergencyCallbackCooldown()
	if cooldown <= 0 {
		cooldown = defaultCallbackCooldown
	}

	key := callbackKey(e)
	acquired, err := m.guard.Acquire(ctx, key, cooldown)
	if err != nil {
		// a missed emergency costs more than a duplicate call
		log.Warn("callback guard unavailable, alerting anyway", "leadId", e.LeadID, "error", err)
		acquired = true
	}
	if !acquired {
		metrics.EmergencyCallbacksSuppressed.Inc()
		log.Info("emergency callback suppressed during cooldown", "leadId", e.LeadID)
		return nil
	}

	if m.queue != nil {
		if err := m.queue.EnqueueEmergencyCallback(ctx, scheduler.EmergencyCallbackPayload{LeadID: e.LeadID.String()}); err != nil {
			log.Error("failed to enqueue emergency callback", "leadId", e.LeadID, "error", err)
			m.release(ctx, key)
			return err
		}
		log.Info("emergency callback enqueued", "leadId", e.LeadID, "score", e.LeadScore)
		return nil
	}

	recipient := m.cfg.GetEmergencyCallbackEmail()
	if recipient == "" {
		log.Warn("emergency callback skipped: no recipient configured", "leadId", e.LeadID)
		return nil
	}

	if err := m.sender.SendEmergencyCallbackEmail(ctx, recipient, email.EmergencyCallback{
		LeadID:         e.LeadID,
		ContactName:    e.ContactName,
		Phone:          e.ContactPhone,
		Email:          e.ContactEmail,
		Address:        e.Address,
		LeadScore:      e.LeadScore,
		DamageSeverity: e.DamageSeverity,
		Need:           e.Need,
		HasInsurance:   e.HasInsurance,
		ClaimFiled:     e.ClaimFiled,
	}); err != nil {
		log.Error("failed to send emergency callback email", "leadId", e.LeadID, "error", err)
		m.release(ctx, key)
		return err
	}

	log.Info("emergency callback alert sent", "leadId", e.LeadID, "score", e.LeadScore)
	return nil
}

// release frees the cooldown after a failed dispatch so the contact's next
// request is delivered instead of suppressed.
func (m *Module) release(ctx context.Context, key string) {
	if err := m.guard.Release(ctx, key); err != nil {
		m.log.WithContext(ctx).Warn("failed to release callback guard", "key", key, "error", err)
	}
}

// callbackKey identifies the contact so repeat submissions from the same
// person share one cooldown. Leads without contact details fall back to their ID.
func callbackKey(e events.EmergencyCallbackRequested) string {
	if p := strings.TrimSpace(e.ContactPhone); p != "" {
		return "phone:" + p
	}
	if addr := strings.ToLower(strings.TrimSpace(e.ContactEmail)); addr != "" {
		return "email:" + addr
	}
	return "lead:" + e.LeadID.String()
}

var _ events.Handler = (*Module)(nil)
