package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/domain"
)

// Client fetches the vehicle inventory from the fleet service. Results are
// never cached: every filter change hits the endpoint again.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(cfg config.CatalogConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ListCars queries GET /api/cars?type=<t>&city=<c>. Empty filter values are
// omitted from the query.
func (c *Client) ListCars(ctx context.Context, carType, city string) ([]domain.Vehicle, error) {
	u, err := url.Parse(c.baseURL + "/api/cars")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	if carType != "" {
		q.Set("type", carType)
	}
	if city != "" {
		q.Set("city", city)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch cars: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fleet service returned status %d", resp.StatusCode)
	}

	var cars []domain.Vehicle
	if err := json.NewDecoder(resp.Body).Decode(&cars); err != nil {
		return nil, fmt.Errorf("decode cars: %w", err)
	}
	return cars, nil
}
