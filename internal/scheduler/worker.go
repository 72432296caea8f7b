package scheduler

import (
	"context"
	"errors"
	"fmt"

	"orpaynter_backend/internal/email"
	"orpaynter_backend/internal/leads"
	"orpaynter_backend/platform/apperr"
	"orpaynter_backend/platform/config"
	"orpaynter_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// WorkerConfig combines the queue and alert recipient settings.
type WorkerConfig interface {
	config.SchedulerConfig
	GetEmergencyCallbackEmail() string
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	leads     leads.Reader
	sender    email.Sender
	recipient string
	log       *logger.Logger
}

func NewWorker(cfg WorkerConfig, reader leads.Reader, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := newWorker(reader, sender, cfg.GetEmergencyCallbackEmail(), log)
	w.server = server
	return w, nil
}

func newWorker(reader leads.Reader, sender email.Sender, recipient string, log *logger.Logger) *Worker {
	mux := asynq.NewServeMux()
	w := &Worker{
		mux:       mux,
		leads:     reader,
		sender:    sender,
		recipient: recipient,
		log:       log,
	}
	mux.HandleFunc(TaskEmergencyCallback, w.handleEmergencyCallback)
	return w
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleEmergencyCallback(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseEmergencyCallbackPayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return fmt.Errorf("invalid lead id %q: %w", payload.LeadID, asynq.SkipRetry)
	}

	if w.recipient == "" {
		w.log.Warn("emergency callback skipped: no recipient configured", "leadId", leadID)
		return nil
	}

	lead, err := w.leads.GetLeadByID(ctx, leadID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return fmt.Errorf("lead %s: %w", leadID, errors.Join(err, asynq.SkipRetry))
		}
		return err
	}

	if err := w.sender.SendEmergencyCallbackEmail(ctx, w.recipient, email.EmergencyCallback{
		LeadID:         lead.ID,
		ContactName:    lead.ContactName,
		Phone:          lead.Phone,
		Email:          lead.Email,
		Address:        lead.Address,
		LeadScore:      lead.LeadScore,
		DamageSeverity: lead.DamageSeverity,
		Need:           lead.Need,
		HasInsurance:   lead.HasInsurance,
		ClaimFiled:     lead.ClaimFiled,
	}); err != nil {
		return err
	}

	w.log.Info("emergency callback alert sent", "leadId", leadID, "score", lead.LeadScore)
	return nil
}
