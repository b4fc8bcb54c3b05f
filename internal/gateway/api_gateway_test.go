package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jm_store_backend/internal/models"
)

func TestAPIGatewayFetchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/products" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]models.Product{
			{ID: 1, Name: "Vestido Midi Floral Grace", Price: 189.90, LikesCount: 3},
		})
	}))
	defer server.Close()

	gw := NewAPIGateway(server.URL, server.Client())
	products, err := gw.FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Vestido Midi Floral Grace" {
		t.Fatalf("unexpected products: %+v", products)
	}
	if products[0].LikesCount != 3 {
		t.Errorf("likes not decoded: %d", products[0].LikesCount)
	}
}

func TestAPIGatewayRegisterClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/register" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var input RegisterInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if input.WhatsApp != "5511999990000" {
			t.Errorf("unexpected whatsapp: %q", input.WhatsApp)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Registration{
			ID: "abc", FirstName: input.FirstName, WhatsApp: input.WhatsApp,
			AccessCode: "123456", Created: true,
		})
	}))
	defer server.Close()

	gw := NewAPIGateway(server.URL, server.Client())
	reg, err := gw.RegisterClient(context.Background(), RegisterInput{
		FirstName: "Maria", LastName: "Silva", WhatsApp: "5511999990000",
	})
	if err != nil {
		t.Fatalf("RegisterClient: %v", err)
	}
	if !reg.Created || reg.AccessCode != "123456" {
		t.Fatalf("unexpected registration: %+v", reg)
	}
}

func TestAPIGatewayLookupClientUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	gw := NewAPIGateway(server.URL, server.Client())
	_, err := gw.LookupClient(context.Background(), "999")
	if !errors.Is(err, ErrClientUnknown) {
		t.Fatalf("expected ErrClientUnknown, got %v", err)
	}
}

func TestAPIGatewayLookupClientFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("whatsapp"); got != "5511999990000" {
			t.Errorf("unexpected whatsapp query: %q", got)
		}
		json.NewEncoder(w).Encode(Identity{ID: "abc", FirstName: "Maria", WhatsApp: "5511999990000"})
	}))
	defer server.Close()

	gw := NewAPIGateway(server.URL, server.Client())
	identity, err := gw.LookupClient(context.Background(), "5511999990000")
	if err != nil {
		t.Fatalf("LookupClient: %v", err)
	}
	if identity.ID != "abc" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestAPIGatewayUpdateLikes(t *testing.T) {
	var gotPath string
	var gotBody map[string]int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	gw := NewAPIGateway(server.URL, server.Client())
	if err := gw.UpdateLikes(context.Background(), 4, 17); err != nil {
		t.Fatalf("UpdateLikes: %v", err)
	}
	if gotPath != "PATCH /products/4/likes" {
		t.Errorf("unexpected request: %s", gotPath)
	}
	if gotBody["count"] != 17 {
		t.Errorf("unexpected body: %+v", gotBody)
	}
}

func TestAPIGatewayClientCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int{"count": 42})
	}))
	defer server.Close()

	gw := NewAPIGateway(server.URL, server.Client())
	count, err := gw.ClientCount(context.Background())
	if err != nil {
		t.Fatalf("ClientCount: %v", err)
	}
	if count != 42 {
		t.Fatalf("expected 42, got %d", count)
	}
}

func TestAPIGatewayStatusErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	gw := NewAPIGateway(server.URL, server.Client())
	if _, err := gw.FetchProducts(context.Background()); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	if err := gw.UpdateLikes(context.Background(), 1, 1); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}

func TestAPIGatewayPostComment(t *testing.T) {
	created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Comment{
			ID: "c1", Text: body["text"].(string), ClientID: body["client_id"].(string),
			ProductID: 2, CreatedAt: created, FirstName: "Maria",
		})
	}))
	defer server.Close()

	gw := NewAPIGateway(server.URL, server.Client())
	comment, err := gw.PostComment(context.Background(), "abc", 2, "Lindo demais!")
	if err != nil {
		t.Fatalf("PostComment: %v", err)
	}
	if comment.Text != "Lindo demais!" || comment.FirstName != "Maria" {
		t.Fatalf("unexpected comment: %+v", comment)
	}
	if !comment.CreatedAt.Equal(created) {
		t.Errorf("timestamp not decoded: %v", comment.CreatedAt)
	}
}
