package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"jm_store_backend/internal/models"
)

// APIGateway talks to the JSON REST backend (the /api/v1 surface).
type APIGateway struct {
	baseURL string
	client  *http.Client
}

// NewAPIGateway creates a gateway against a REST base URL such as
// "https://api.example.com/api/v1".
func NewAPIGateway(baseURL string, client *http.Client) *APIGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &APIGateway{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (g *APIGateway) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrClientUnknown
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

func (g *APIGateway) FetchProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := g.doJSON(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (g *APIGateway) FetchComments(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	if err := g.doJSON(ctx, http.MethodGet, "/comments", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (g *APIGateway) FetchStories(ctx context.Context) ([]models.Story, error) {
	var stories []models.Story
	if err := g.doJSON(ctx, http.MethodGet, "/stories", nil, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (g *APIGateway) RegisterClient(ctx context.Context, input RegisterInput) (*Registration, error) {
	var reg Registration
	if err := g.doJSON(ctx, http.MethodPost, "/register", input, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (g *APIGateway) LookupClient(ctx context.Context, whatsapp string) (*Identity, error) {
	var identity Identity
	path := "/clients/lookup?whatsapp=" + url.QueryEscape(whatsapp)
	if err := g.doJSON(ctx, http.MethodGet, path, nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (g *APIGateway) ClientCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := g.doJSON(ctx, http.MethodGet, "/clients/count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (g *APIGateway) PostComment(ctx context.Context, clientID string, productID int64, text string) (*models.Comment, error) {
	body := map[string]interface{}{
		"client_id":  clientID,
		"product_id": productID,
		"text":       text,
	}
	var comment models.Comment
	if err := g.doJSON(ctx, http.MethodPost, "/comments", body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (g *APIGateway) UpdateLikes(ctx context.Context, productID int64, count int) error {
	body := map[string]interface{}{"count": count}
	return g.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/products/%d/likes", productID), body, nil)
}

var _ Gateway = (*APIGateway)(nil)
