package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"orpaynter_backend/internal/events"
	"orpaynter_backend/internal/leads/repository"
	"orpaynter_backend/internal/leads/service"
	"orpaynter_backend/internal/leads/transport"
	"orpaynter_backend/platform/apperr"
	"orpaynter_backend/platform/httpkit"
	"orpaynter_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type memRepo struct {
	leads map[uuid.UUID]repository.Lead
}

func (r *memRepo) Create(_ context.Context, p repository.CreateParams) (repository.Lead, error) {
	lead := repository.Lead{
		ID: uuid.New(), Source: p.Source, FirstName: p.FirstName,
		ScoringPolicy: p.ScoringPolicy, ScoreVersion: p.ScoreVersion, LeadScore: p.LeadScore,
		Grade: p.Grade, Priority: p.Priority, QualificationStatus: p.QualificationStatus,
		EmergencyCallback: p.EmergencyCallback, CreatedAt: time.Now(),
	}
	r.leads[lead.ID] = lead
	return lead, nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	return lead, nil
}

func (r *memRepo) List(context.Context, repository.ListParams) ([]repository.Lead, int, error) {
	out := make([]repository.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		out = append(out, lead)
	}
	return out, len(out), nil
}

type nopBus struct{}

func (nopBus) Publish(context.Context, events.Event)           {}
func (nopBus) PublishSync(context.Context, events.Event) error { return nil }
func (nopBus) Subscribe(string, events.Handler)                {}

type handlerConfig struct{}

func (handlerConfig) GetEmergencyScoreThreshold() int { return 80 }
func (handlerConfig) GetPhoneDefaultRegion() string   { return "US" }

func newTestRouter(t *testing.T) (*gin.Engine, *memRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	val := validator.New()
	if err := RegisterValidations(val); err != nil {
		t.Fatalf("register validations: %v", err)
	}

	repo := &memRepo{leads: make(map[uuid.UUID]repository.Lead)}
	svc := service.New(repo, nopBus{}, handlerConfig{}, nil)

	r := gin.New()
	NewPublicHandler(svc, val).RegisterRoutes(r.Group("/public/leads"))

	userID := uuid.New()
	protected := r.Group("/leads", func(c *gin.Context) {
		c.Set(httpkit.ContextUserIDKey, userID)
		c.Next()
	})
	New(svc, val).RegisterRoutes(protected)
	return r, repo
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestQualifyEndpoint(t *testing.T) {
	r, repo := newTestRouter(t)

	w := do(r, http.MethodPost, "/public/leads/qualify", `{
		"first_name": "Sam",
		"budget_range": "50000+",
		"is_decision_maker": true,
		"damage_severity": "emergency",
		"urgency_level": "9",
		"has_insurance": true,
		"claim_filed": true,
		"property_type": "commercial"
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp transport.QualifyLeadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.LeadScore != 100 || resp.QualificationStatus != "hot" || !resp.EmergencyCallback {
		t.Fatalf("unexpected response %+v", resp)
	}
	if _, ok := repo.leads[resp.LeadID]; !ok {
		t.Fatal("expected lead to be stored under the returned id")
	}
}

func TestQualifyUnparseableUrgencyIsLowestBucket(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/public/leads/score/structured", `{"urgency_level": "whenever"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp transport.StructuredPreviewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Breakdown.Timeline != 10 || resp.LeadScore != 20 {
		t.Fatalf("expected lowest buckets, got %+v", resp)
	}
}

func TestChatIntakeEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/public/leads/chat", `{
		"contact": {"firstName": "Dana", "email": "dana@example.com"},
		"answers": {"budget": "$50,000", "authority": "I am the homeowner", "need": "storm damage emergency", "timeline": "immediately"}
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp transport.ChatIntakeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.LeadScore != 100 || resp.Grade != "A" || resp.Priority != "hot" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestPublicEndpointsRejectBadInput(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		name string
		path string
		body string
	}{
		{"malformed json", "/public/leads/qualify", `{"first_name":`},
		{"invalid email", "/public/leads/qualify", `{"email": "not-an-email"}`},
		{"oversized answer", "/public/leads/score/keywords", `{"budget": "` + strings.Repeat("x", 501) + `"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := do(r, http.MethodPost, tc.path, tc.body); w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetByIDEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/public/leads/score/keywords", `{"need": "roof leak"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if w := do(r, http.MethodGet, "/leads/not-a-uuid", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/leads/"+uuid.NewString(), ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", w.Code)
	}

	w = do(r, http.MethodPost, "/public/leads/chat", `{"answers": {"need": "roof leak"}}`)
	var created transport.ChatIntakeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	w = do(r, http.MethodGet, "/leads/"+created.LeadID.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var lead transport.LeadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &lead); err != nil {
		t.Fatalf("decode lead: %v", err)
	}
	if lead.Score.Policy != "keywords" || lead.Score.LeadScore != 25 {
		t.Fatalf("unexpected lead %+v", lead.Score)
	}
}

func TestListEndpointValidatesFilters(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := do(r, http.MethodGet, "/leads?status=HOT&policy=Structured", ""); w.Code != http.StatusOK {
		t.Fatalf("expected case-insensitive filters to pass, got %d: %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodGet, "/leads?status=lukewarm", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected unknown status to be rejected, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/leads?pageSize=500", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected oversized page to be rejected, got %d", w.Code)
	}
}
