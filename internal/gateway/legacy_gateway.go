package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"jm_store_backend/internal/models"
)

// legacyTimeLayout is how the PHP backend formats timestamps.
const legacyTimeLayout = "2006-01-02 15:04:05"

// LegacyGateway talks to the single-endpoint PHP/MySQL backend, where every
// operation is selected with an ?action= query parameter and numeric fields
// may arrive as strings.
type LegacyGateway struct {
	endpoint string
	client   *http.Client
}

// NewLegacyGateway creates a gateway against a script URL such as
// "https://example.com/api.php".
func NewLegacyGateway(endpoint string, client *http.Client) *LegacyGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &LegacyGateway{endpoint: endpoint, client: client}
}

func (g *LegacyGateway) call(ctx context.Context, action string, params url.Values, body interface{}, out interface{}) error {
	target := g.endpoint + "?action=" + action
	for key, values := range params {
		for _, value := range values {
			target += "&" + key + "=" + url.QueryEscape(value)
		}
	}

	method := http.MethodGet
	var reader *bytes.Reader
	if body != nil {
		method = http.MethodPost
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", action, err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("building %s request: %w", action, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: unexpected status %d", action, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", action, err)
	}
	return nil
}

// legacyProduct tolerates the PHP habit of returning numbers as strings.
type legacyProduct struct {
	ID          json.Number `json:"id"`
	Name        string      `json:"name"`
	Price       json.Number `json:"price"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	ImageURL    string      `json:"imageUrl"`
	VideoURL    *string     `json:"videoUrl"`
	Sizes       []string    `json:"sizes"`
	LikesCount  json.Number `json:"likes_count"`
}

func (p legacyProduct) toModel() models.Product {
	id, _ := p.ID.Int64()
	price, _ := p.Price.Float64()
	likes, _ := p.LikesCount.Int64()
	if likes < 0 {
		likes = 0
	}
	return models.Product{
		ID:          id,
		Name:        p.Name,
		Price:       price,
		Description: p.Description,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		VideoURL:    p.VideoURL,
		Sizes:       p.Sizes,
		LikesCount:  int(likes),
	}
}

type legacyComment struct {
	ID           string      `json:"id"`
	Text         string      `json:"text"`
	ClientID     string      `json:"client_id"`
	ProductID    json.Number `json:"product_id"`
	CreatedAt    string      `json:"created_at"`
	FirstName    string      `json:"first_name"`
	ProductName  string      `json:"product_name"`
	ProductImage string      `json:"product_image"`
}

func (c legacyComment) toModel() models.Comment {
	productID, _ := c.ProductID.Int64()
	createdAt, _ := time.Parse(legacyTimeLayout, c.CreatedAt)
	return models.Comment{
		ID:           c.ID,
		Text:         c.Text,
		ClientID:     c.ClientID,
		ProductID:    productID,
		CreatedAt:    createdAt,
		FirstName:    c.FirstName,
		ProductName:  c.ProductName,
		ProductImage: c.ProductImage,
	}
}

type legacyStory struct {
	ID              string      `json:"id"`
	Kind            string      `json:"type"`
	Content         string      `json:"content"`
	BackgroundColor *string     `json:"backgroundColor"`
	TextColor       *string     `json:"textColor"`
	Timestamp       json.Number `json:"timestamp"` // epoch milliseconds
}

func (s legacyStory) toModel() models.Story {
	ms, _ := s.Timestamp.Int64()
	return models.Story{
		ID:              s.ID,
		Kind:            s.Kind,
		Content:         s.Content,
		BackgroundColor: s.BackgroundColor,
		TextColor:       s.TextColor,
		PostedAt:        time.UnixMilli(ms),
	}
}

func (g *LegacyGateway) FetchProducts(ctx context.Context) ([]models.Product, error) {
	var raw []legacyProduct
	if err := g.call(ctx, "get_products", nil, nil, &raw); err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(raw))
	for _, p := range raw {
		products = append(products, p.toModel())
	}
	return products, nil
}

func (g *LegacyGateway) FetchComments(ctx context.Context) ([]models.Comment, error) {
	var raw []legacyComment
	if err := g.call(ctx, "get_comments", nil, nil, &raw); err != nil {
		return nil, err
	}
	comments := make([]models.Comment, 0, len(raw))
	for _, c := range raw {
		comments = append(comments, c.toModel())
	}
	return comments, nil
}

func (g *LegacyGateway) FetchStories(ctx context.Context) ([]models.Story, error) {
	var raw []legacyStory
	if err := g.call(ctx, "get_stories", nil, nil, &raw); err != nil {
		return nil, err
	}
	stories := make([]models.Story, 0, len(raw))
	for _, s := range raw {
		stories = append(stories, s.toModel())
	}
	return stories, nil
}

func (g *LegacyGateway) RegisterClient(ctx context.Context, input RegisterInput) (*Registration, error) {
	var out struct {
		ID         string `json:"id"`
		FirstName  string `json:"first_name"`
		WhatsApp   string `json:"whatsapp"`
		AccessCode string `json:"password"`
		Created    bool   `json:"created"`
	}
	if err := g.call(ctx, "register_client", nil, input, &out); err != nil {
		return nil, err
	}
	return &Registration{
		ID:         out.ID,
		FirstName:  out.FirstName,
		WhatsApp:   out.WhatsApp,
		AccessCode: out.AccessCode,
		Created:    out.Created,
	}, nil
}

func (g *LegacyGateway) LookupClient(ctx context.Context, whatsapp string) (*Identity, error) {
	var out struct {
		ID        string `json:"id"`
		FirstName string `json:"first_name"`
		WhatsApp  string `json:"whatsapp"`
	}
	params := url.Values{"whatsapp": {whatsapp}}
	if err := g.call(ctx, "get_client", params, nil, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, ErrClientUnknown
	}
	return &Identity{ID: out.ID, FirstName: out.FirstName, WhatsApp: out.WhatsApp}, nil
}

func (g *LegacyGateway) ClientCount(ctx context.Context) (int, error) {
	var out struct {
		Count json.Number `json:"count"`
	}
	if err := g.call(ctx, "get_client_count", nil, nil, &out); err != nil {
		return 0, err
	}
	count, _ := out.Count.Int64()
	return int(count), nil
}

func (g *LegacyGateway) PostComment(ctx context.Context, clientID string, productID int64, text string) (*models.Comment, error) {
	body := map[string]interface{}{
		"client_id":  clientID,
		"product_id": productID,
		"text":       text,
	}
	var raw legacyComment
	if err := g.call(ctx, "post_comment", nil, body, &raw); err != nil {
		return nil, err
	}
	comment := raw.toModel()
	return &comment, nil
}

func (g *LegacyGateway) UpdateLikes(ctx context.Context, productID int64, count int) error {
	body := map[string]interface{}{"id": productID, "count": count}
	return g.call(ctx, "update_likes", nil, body, nil)
}

var _ Gateway = (*LegacyGateway)(nil)
