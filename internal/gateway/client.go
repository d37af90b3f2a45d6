// Package gateway is the boundary to the upstream tool-catalog REST API.
// Every failure mode (transport error, non-2xx status, malformed body) is
// normalized into a single wrapped error; read callers degrade to empty
// defaults, write callers propagate.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/techcorp/toolspend/internal/forms"
	"github.com/techcorp/toolspend/internal/models"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

type Config struct {
	URL      string
	Username string
	Password string
	Timeout  time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	parsed, err := url.Parse(cfg.URL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid upstream URL %q", cfg.URL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.Username != "" && cfg.Password != "" {
		httpClient.Transport = &basicAuthTransport{
			username: cfg.Username,
			password: cfg.Password,
		}
	}

	return &Client{
		baseURL: parsed.Scheme + "://" + parsed.Host + parsed.Path,
		http:    httpClient,
	}, nil
}

// HealthCheck probes the upstream with the cheapest read available.
func (c *Client) HealthCheck(ctx context.Context) error {
	var tools []models.Tool
	if err := c.get(ctx, "/tools", url.Values{"_limit": {"1"}}, &tools); err != nil {
		return fmt.Errorf("upstream health check failed: %w", err)
	}
	return nil
}

// ToolQuery is the optional server-side narrowing for ListTools.
type ToolQuery struct {
	Status string
	Sort   string
	Order  string
	Limit  int
}

func (q ToolQuery) values() url.Values {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Sort != "" {
		v.Set("_sort", q.Sort)
	}
	if q.Order != "" {
		v.Set("_order", q.Order)
	}
	if q.Limit > 0 {
		v.Set("_limit", strconv.Itoa(q.Limit))
	}
	return v
}

func (c *Client) ListTools(ctx context.Context, q ToolQuery) ([]models.Tool, error) {
	var tools []models.Tool
	if err := c.get(ctx, "/tools", q.values(), &tools); err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return tools, nil
}

// RecentTools fetches the eight most recently updated tools for the
// dashboard table.
func (c *Client) RecentTools(ctx context.Context) ([]models.Tool, error) {
	return c.ListTools(ctx, ToolQuery{Sort: "updated_at", Order: "desc", Limit: 8})
}

// SearchTools matches the query as a server-side name substring.
func (c *Client) SearchTools(ctx context.Context, query string) ([]models.Tool, error) {
	var tools []models.Tool
	if err := c.get(ctx, "/tools", url.Values{"name_like": {query}}, &tools); err != nil {
		return nil, fmt.Errorf("failed to search tools: %w", err)
	}
	return tools, nil
}

func (c *Client) GetAnalytics(ctx context.Context) (*models.Analytics, error) {
	var analytics models.Analytics
	if err := c.get(ctx, "/analytics", nil, &analytics); err != nil {
		return nil, fmt.Errorf("failed to get analytics: %w", err)
	}
	return &analytics, nil
}

// GetDepartmentCosts reads the legacy per-department rollup endpoint.
func (c *Client) GetDepartmentCosts(ctx context.Context) (*models.DepartmentCostsResponse, error) {
	var resp models.DepartmentCostsResponse
	if err := c.get(ctx, "/analytics/department-costs", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get department costs: %w", err)
	}
	return &resp, nil
}

func (c *Client) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := c.get(ctx, "/departments", nil, &departments); err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

// UserQuery filters the user listing. Nil fields are unset.
type UserQuery struct {
	Active       *bool
	DepartmentID *int64
}

func (q UserQuery) values() url.Values {
	v := url.Values{}
	if q.Active != nil {
		v.Set("active", strconv.FormatBool(*q.Active))
	}
	if q.DepartmentID != nil {
		v.Set("department_id", strconv.FormatInt(*q.DepartmentID, 10))
	}
	return v
}

func (c *Client) ListUsers(ctx context.Context, q UserQuery) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "/users", q.values(), &users); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateTool submits a new tool; the upstream assigns id and timestamps.
func (c *Client) CreateTool(ctx context.Context, form forms.ToolForm) (*models.Tool, error) {
	var tool models.Tool
	if err := c.write(ctx, http.MethodPost, "/tools", form, &tool); err != nil {
		return nil, fmt.Errorf("failed to create tool: %w", err)
	}
	return &tool, nil
}

// UpdateTool partially replaces fields of an existing tool.
func (c *Client) UpdateTool(ctx context.Context, id int64, form forms.ToolForm) (*models.Tool, error) {
	var tool models.Tool
	if err := c.write(ctx, http.MethodPatch, "/tools/"+strconv.FormatInt(id, 10), form, &tool); err != nil {
		return nil, fmt.Errorf("failed to update tool %d: %w", id, err)
	}
	return &tool, nil
}

func (c *Client) DeleteTool(ctx context.Context, id int64) error {
	if err := c.write(ctx, http.MethodDelete, "/tools/"+strconv.FormatInt(id, 10), nil, nil); err != nil {
		return fmt.Errorf("failed to delete tool %d: %w", id, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	return nil
}

func (c *Client) write(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("malformed response: %w", err)
		}
	}
	return nil
}

type basicAuthTransport struct {
	username string
	password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.username, t.password)
	return http.DefaultTransport.RoundTrip(req)
}
