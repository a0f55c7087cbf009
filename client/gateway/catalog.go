package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/feliperosa-dev/storefront-api/models"
)

// CatalogGateway fetches and manages products on the storefront API.
type CatalogGateway struct {
	baseURL    string
	httpClient *http.Client
}

func NewCatalogGateway(baseURL string) *CatalogGateway {
	return &CatalogGateway{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// productPayload is the wire shape. Older deployments of the catalog
// service report stock as "quantity", so both spellings are accepted.
type productPayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       *int    `json:"stock"`
	Quantity    *int    `json:"quantity"`
	SellerID    string  `json:"seller_id"`
	SellerName  string  `json:"seller_name"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// toProduct maps a payload onto the local Product shape with a fixed
// default for every optional field.
func (p productPayload) toProduct() models.Product {
	stock := 0
	if p.Stock != nil {
		stock = *p.Stock
	} else if p.Quantity != nil {
		stock = *p.Quantity
	}

	category := p.Category
	if category == "" {
		category = "General"
	}

	return models.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       stock,
		SellerID:    p.SellerID,
		SellerName:  p.SellerName,
		Image:       p.Image,
		Category:    category,
	}
}

type ProductQuery struct {
	Name     string
	Category string
	SellerID string
}

// List fetches the catalog, optionally filtered.
func (g *CatalogGateway) List(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	params := url.Values{}
	if q.Name != "" {
		params.Set("name", q.Name)
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.SellerID != "" {
		params.Set("seller_id", q.SellerID)
	}

	endpoint := g.baseURL + "/products"
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: unexpected status %d", resp.StatusCode)
	}

	var payloads []productPayload
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, fmt.Errorf("invalid catalog response: %w", err)
	}

	products := make([]models.Product, 0, len(payloads))
	for _, p := range payloads {
		products = append(products, p.toProduct())
	}
	return products, nil
}

// Get fetches one product by id.
func (g *CatalogGateway) Get(ctx context.Context, id string) (models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/products/"+url.PathEscape(id), nil)
	if err != nil {
		return models.Product{}, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return models.Product{}, fmt.Errorf("catalog unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return models.Product{}, fmt.Errorf("product %s not found", id)
	default:
		return models.Product{}, fmt.Errorf("catalog: unexpected status %d", resp.StatusCode)
	}

	var payload productPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Product{}, fmt.Errorf("invalid catalog response: %w", err)
	}
	return payload.toProduct(), nil
}

type ProductForm struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	SellerName  string  `json:"seller_name"`
}

// Create publishes a new product for the authenticated seller.
func (g *CatalogGateway) Create(ctx context.Context, token string, form ProductForm) (models.Product, error) {
	body, _ := json.Marshal(form)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/products", bytes.NewReader(body))
	if err != nil {
		return models.Product{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return models.Product{}, fmt.Errorf("catalog unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return models.Product{}, fmt.Errorf("catalog: unexpected status %d", resp.StatusCode)
	}

	var payload productPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Product{}, fmt.Errorf("invalid catalog response: %w", err)
	}
	return payload.toProduct(), nil
}

// Update edits one of the seller's products.
func (g *CatalogGateway) Update(ctx context.Context, token, id string, form ProductForm) (models.Product, error) {
	body, _ := json.Marshal(form)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, g.baseURL+"/products/"+url.PathEscape(id), bytes.NewReader(body))
	if err != nil {
		return models.Product{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return models.Product{}, fmt.Errorf("catalog unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Product{}, fmt.Errorf("catalog: unexpected status %d", resp.StatusCode)
	}

	var payload productPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Product{}, fmt.Errorf("invalid catalog response: %w", err)
	}
	return payload.toProduct(), nil
}

// Delete removes one of the seller's products.
func (g *CatalogGateway) Delete(ctx context.Context, token, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, g.baseURL+"/products/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog: unexpected status %d", resp.StatusCode)
	}
	return nil
}
