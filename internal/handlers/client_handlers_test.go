package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jm_store_backend/internal/models"
	"jm_store_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type stubClientService struct {
	registerResult *services.RegistrationResult
	registerErr    error
	client         *models.Client
	clientErr      error
	count          int
}

func (s *stubClientService) Register(req services.RegisterClientRequest) (*services.RegistrationResult, error) {
	return s.registerResult, s.registerErr
}

func (s *stubClientService) GetClientByID(id string) (*models.Client, error) {
	return s.client, s.clientErr
}

func (s *stubClientService) GetClientByWhatsApp(whatsapp string) (*models.Client, error) {
	return s.client, s.clientErr
}

func (s *stubClientService) GetClients() ([]models.Client, error) {
	if s.client == nil {
		return nil, nil
	}
	return []models.Client{*s.client}, nil
}

func (s *stubClientService) Count() (int, error) {
	return s.count, nil
}

func newClientRouter(svc services.ClientService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewClientHandler(svc)
	engine.POST("/register", handler.Register)
	engine.GET("/clients/count", handler.GetClientCount)
	engine.GET("/clients/lookup", handler.LookupClient)
	return engine
}

func TestRegisterRespondsCreatedForNewClient(t *testing.T) {
	svc := &stubClientService{registerResult: &services.RegistrationResult{
		ID: "abc", FirstName: "Maria", WhatsApp: "5511999990000",
		AccessCode: "123456", Created: true,
	}}
	engine := newClientRouter(svc)

	body := `{"firstName":"Maria","lastName":"Silva","whatsapp":"5511999990000"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var result services.RegistrationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.AccessCode != "123456" || !result.Created {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestRegisterRespondsOKForExistingClient(t *testing.T) {
	svc := &stubClientService{registerResult: &services.RegistrationResult{
		ID: "abc", FirstName: "Maria", WhatsApp: "5511999990000",
		AccessCode: "123456", Created: false,
	}}
	engine := newClientRouter(svc)

	body := `{"firstName":"Maria","lastName":"Silva","whatsapp":"5511999990000"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for an existing client, got %d", rec.Code)
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	engine := newClientRouter(&stubClientService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"firstName":"Maria"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetClientCount(t *testing.T) {
	engine := newClientRouter(&stubClientService{count: 42})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clients/count", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["count"] != 42 {
		t.Fatalf("expected raw count 42, got %d", out["count"])
	}
}

func TestLookupClientHidesAccessCode(t *testing.T) {
	svc := &stubClientService{client: &models.Client{
		ID: "abc", FirstName: "Maria", WhatsApp: "5511999990000", AccessCode: "123456",
	}}
	engine := newClientRouter(svc)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clients/lookup?whatsapp=5511999990000", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "123456") {
		t.Fatal("lookup response must not leak the access code")
	}
	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["id"] != "abc" || out["firstName"] != "Maria" {
		t.Fatalf("unexpected identity payload: %+v", out)
	}
}

func TestLookupClientNotFound(t *testing.T) {
	engine := newClientRouter(&stubClientService{clientErr: services.ErrClientNotFound})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clients/lookup?whatsapp=999", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLookupClientRequiresWhatsApp(t *testing.T) {
	engine := newClientRouter(&stubClientService{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clients/lookup", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
