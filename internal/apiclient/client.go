// Package apiclient provides the HTTP client for the property-management
// backend.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/oauth2"

	"github.com/gestloc/gestloc/internal/constants"
	"github.com/gestloc/gestloc/internal/log"
	"github.com/gestloc/gestloc/internal/model"
)

// envelope is the {success, data} wrapper every backend endpoint uses. The
// payload sits under a resource-named key inside data.
type envelope struct {
	Success bool                       `json:"success"`
	Data    map[string]json.RawMessage `json:"data"`
	Error   string                     `json:"error,omitempty"`
}

// Client talks to the property-management backend.
type Client struct {
	baseURL string
	// token is intentionally unexported. NEVER add String(), MarshalJSON(),
	// or any method that could expose this value in logs or serialized output.
	token      string
	httpClient *http.Client
}

// New creates a backend client. An empty token produces an unauthenticated
// client; every endpoint will answer 401 and callers are expected to have
// checked token presence first.
func New(baseURL, token string) *Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = constants.RequestTimeout

	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: hc,
	}
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// BillFilters narrows the bill list endpoint. The zero value fetches
// everything.
type BillFilters struct {
	Status model.BillStatus
	Month  string // YYYY-MM
	Page   int
}

// Query encodes the filters as URL query parameters.
func (f BillFilters) Query() url.Values {
	params := url.Values{}
	if f.Status != "" {
		params.Set("status", string(f.Status))
	}
	if f.Month != "" {
		params.Set("month", f.Month)
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	return params
}

// CacheKey serializes the filters into a stable cache-key suffix. Field
// order is fixed so equal filters always produce equal keys.
func (f BillFilters) CacheKey() string {
	return fmt.Sprintf("status=%s&month=%s&page=%d", f.Status, f.Month, f.Page)
}

// ListProperties fetches all properties.
func (c *Client) ListProperties(ctx context.Context) ([]model.Property, error) {
	var properties []model.Property
	if err := c.get(ctx, "/api/properties", "properties", &properties); err != nil {
		return nil, fmt.Errorf("apiclient.ListProperties: %w", err)
	}
	return properties, nil
}

// ListTenants fetches all tenants.
func (c *Client) ListTenants(ctx context.Context) ([]model.Tenant, error) {
	var tenants []model.Tenant
	if err := c.get(ctx, "/api/tenants", "tenants", &tenants); err != nil {
		return nil, fmt.Errorf("apiclient.ListTenants: %w", err)
	}
	return tenants, nil
}

// ListBills fetches bills, optionally narrowed by filters.
func (c *Client) ListBills(ctx context.Context, filters BillFilters) ([]model.Bill, error) {
	path := "/api/bills"
	if params := filters.Query(); len(params) > 0 {
		path += "?" + params.Encode()
	}

	var bills []model.Bill
	if err := c.get(ctx, path, "bills", &bills); err != nil {
		return nil, fmt.Errorf("apiclient.ListBills: %w", err)
	}
	return bills, nil
}

// BillsStats fetches the backend's bill aggregates.
func (c *Client) BillsStats(ctx context.Context) (*model.BillsStats, error) {
	var stats model.BillsStats
	if err := c.get(ctx, "/api/bills/stats", "stats", &stats); err != nil {
		return nil, fmt.Errorf("apiclient.BillsStats: %w", err)
	}
	return &stats, nil
}

// ListExpenses fetches all expenses.
func (c *Client) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	var expenses []model.Expense
	if err := c.get(ctx, "/api/expenses", "expenses", &expenses); err != nil {
		return nil, fmt.Errorf("apiclient.ListExpenses: %w", err)
	}
	return expenses, nil
}

// PropertyPhotos fetches the photo set of one property.
func (c *Client) PropertyPhotos(ctx context.Context, propertyID int64) ([]model.Photo, error) {
	path := fmt.Sprintf("/api/properties/%d/photos", propertyID)

	var photos []model.Photo
	if err := c.get(ctx, path, "photos", &photos); err != nil {
		return nil, fmt.Errorf("apiclient.PropertyPhotos: %w", err)
	}
	return photos, nil
}

// get performs a GET request and unwraps the response envelope, decoding
// the payload found under the given resource key into out.
func (c *Client) get(ctx context.Context, path, resource string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	log.Trace("backend request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if !env.Success || env.Data == nil {
		return ErrInvalidEnvelope
	}

	raw, ok := env.Data[resource]
	if !ok {
		return ErrInvalidEnvelope
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", resource, err)
	}
	return nil
}
