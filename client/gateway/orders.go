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

// OrderGateway submits checkouts and reads order history.
type OrderGateway struct {
	baseURL    string
	httpClient *http.Client
}

func NewOrderGateway(baseURL string) *OrderGateway {
	return &OrderGateway{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type createOrderRequest struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
}

// Create submits the cart snapshot as a new order. The server recomputes
// the total; the one sent along is what the customer saw.
func (g *OrderGateway) Create(ctx context.Context, token string, items []models.CartItem, total float64) (models.Order, error) {
	body, _ := json.Marshal(createOrderRequest{Items: items, Total: total})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return models.Order{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return models.Order{}, fmt.Errorf("order service unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
	case http.StatusUnauthorized:
		return models.Order{}, ErrUnauthorized
	default:
		return models.Order{}, fmt.Errorf("order service: unexpected status %d", resp.StatusCode)
	}

	var order models.Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return models.Order{}, fmt.Errorf("invalid order response: %w", err)
	}
	return order, nil
}

// ListByUser fetches a user's order history, newest first.
func (g *OrderGateway) ListByUser(ctx context.Context, token, userID string) ([]models.Order, error) {
	endpoint := g.baseURL + "/orders?userId=" + url.QueryEscape(userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order service unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	default:
		return nil, fmt.Errorf("order service: unexpected status %d", resp.StatusCode)
	}

	var orders []models.Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, fmt.Errorf("invalid order response: %w", err)
	}
	return orders, nil
}
