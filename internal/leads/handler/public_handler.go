package handler

import (
	"net/http"

	"orpaynter_backend/internal/leads/service"
	"orpaynter_backend/internal/leads/transport"
	"orpaynter_backend/platform/httpkit"
	"orpaynter_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated intake and scoring endpoints
// used by the chatbot and the qualification form.
type PublicHandler struct {
	svc *service.Service
	val *validator.Validator
}

func NewPublicHandler(svc *service.Service, val *validator.Validator) *PublicHandler {
	return &PublicHandler{svc: svc, val: val}
}

// RegisterRoutes registers public lead routes under /public/leads.
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.IntakeChat)
	rg.POST("/qualify", h.Qualify)
	rg.POST("/score/keywords", h.PreviewKeywords)
	rg.POST("/score/structured", h.PreviewStructured)
}

func (h *PublicHandler) IntakeChat(c *gin.Context) {
	var req transport.ChatIntakeRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.svc.IntakeChat(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, resp)
}

func (h *PublicHandler) Qualify(c *gin.Context) {
	var req transport.QualifyLeadRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.svc.Qualify(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, resp)
}

func (h *PublicHandler) PreviewKeywords(c *gin.Context) {
	var req transport.KeywordAnswers
	if !h.bind(c, &req) {
		return
	}

	httpkit.OK(c, h.svc.PreviewKeywords(req))
}

func (h *PublicHandler) PreviewStructured(c *gin.Context) {
	var req transport.StructuredAnswers
	if !h.bind(c, &req) {
		return
	}

	httpkit.OK(c, h.svc.PreviewStructured(req))
}

// bind decodes and validates the JSON body, writing the 400 response itself.
func (h *PublicHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return false
	}
	return true
}
