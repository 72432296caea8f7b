// Package leads provides the lead intake and qualification bounded context.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"orpaynter_backend/internal/events"
	apphttp "orpaynter_backend/internal/http"
	"orpaynter_backend/internal/leads/handler"
	"orpaynter_backend/internal/leads/repository"
	"orpaynter_backend/internal/leads/service"
	"orpaynter_backend/platform/logger"
	"orpaynter_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
	service       *service.Service
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, cfg service.Config, log *logger.Logger) (*Module, error) {
	if err := handler.RegisterValidations(val); err != nil {
		return nil, err
	}

	repo := repository.New(pool)
	svc := service.New(repo, eventBus, cfg, log)

	return &Module{
		handler:       handler.New(svc, val),
		publicHandler: handler.NewPublicHandler(svc, val),
		service:       svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the qualification service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.publicHandler.RegisterRoutes(ctx.Public.Group("/leads"))
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
