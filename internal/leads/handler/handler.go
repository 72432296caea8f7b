package handler

import (
	"net/http"

	"orpaynter_backend/internal/leads/scoring"
	"orpaynter_backend/internal/leads/service"
	"orpaynter_backend/internal/leads/transport"
	"orpaynter_backend/platform/httpkit"
	"orpaynter_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler serves the dashboard lead endpoints behind AuthRequired.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// RegisterValidations registers the custom tags used by the list filters.
func RegisterValidations(val *validator.Validator) error {
	tags := map[string][]string{
		transport.TagScoringPolicy:       {string(scoring.PolicyKeywords), string(scoring.PolicyStructured)},
		transport.TagQualificationStatus: {string(scoring.StatusNew), string(scoring.StatusQualified), string(scoring.StatusHot)},
		transport.TagPriority:            {string(scoring.PriorityHot), string(scoring.PriorityWarm), string(scoring.PriorityCold)},
	}
	for tag, allowed := range tags {
		if err := val.RegisterOneOfFold(tag, allowed); err != nil {
			return err
		}
	}
	return nil
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
}

func (h *Handler) List(c *gin.Context) {
	if httpkit.MustGetIdentity(c) == nil {
		return
	}

	req := transport.ListLeadsRequest{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) GetByID(c *gin.Context) {
	if httpkit.MustGetIdentity(c) == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, lead)
}
