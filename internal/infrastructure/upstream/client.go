package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pharmaudit/dashboard/internal/application/ports"
	"github.com/pharmaudit/dashboard/internal/domain"
	"github.com/pharmaudit/dashboard/internal/infrastructure/metrics"
)

// Compile-time check that Client implements the inventory port.
var _ ports.InventoryService = (*Client)(nil)

const basePath = "/api/productmgmt"

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 4 << 20

// Client is the typed HTTP adapter for the remote inventory service: one
// method per backend operation, no retries, errors surfaced to the caller.
// Non-2xx responses become a generic error carrying the status text; only
// the enveloped endpoints (suppliers, locations, newproduct) parse the body
// for structured failure detail.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// New builds the adapter. baseURL is the upstream origin without trailing
// slash; metrics may be nil.
func New(baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
	}
}

// ── Envelope shapes ───────────────────────────────────────────────────────────

// statusEnvelope is the {status, message} body of the stock mutation
// endpoints. Failure is also possible on HTTP 200 with status != "success".
type statusEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// successEnvelope is the {success, message, data?} body of the "create"
// style endpoints.
type successEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ── Reads ─────────────────────────────────────────────────────────────────────

// SearchProducts queries the product index by name or drug composition.
func (c *Client) SearchProducts(ctx context.Context, query string) (out []domain.Product, err error) {
	defer c.observe("search", time.Now(), &err)
	err = c.getJSON(ctx, basePath+"/search?q="+url.QueryEscape(query), &out)
	return out, err
}

// GetProductStock returns the per-location/batch snapshots for a product.
func (c *Client) GetProductStock(ctx context.Context, productID int64) (out []domain.StockInfo, err error) {
	defer c.observe("stock", time.Now(), &err)
	err = c.getJSON(ctx, fmt.Sprintf("%s/product/%d/stock", basePath, productID), &out)
	return out, err
}

// GetProductAudits returns the audit trail for a product.
func (c *Client) GetProductAudits(ctx context.Context, productID int64) (out []domain.Audit, err error) {
	defer c.observe("audits", time.Now(), &err)
	err = c.getJSON(ctx, fmt.Sprintf("%s/product/%d/audits", basePath, productID), &out)
	return out, err
}

// GetMonthlySales returns the monthly sales summary for a product.
func (c *Client) GetMonthlySales(ctx context.Context, productID int64) (out []domain.MonthlySales, err error) {
	defer c.observe("sales", time.Now(), &err)
	err = c.getJSON(ctx, fmt.Sprintf("%s/product/%d/sales-summary", basePath, productID), &out)
	return out, err
}

// GetSuppliers returns the supplier reference list.
func (c *Client) GetSuppliers(ctx context.Context) (out []domain.Supplier, err error) {
	defer c.observe("suppliers", time.Now(), &err)
	err = c.getEnvelopedList(ctx, basePath+"/supplier", &out)
	return out, err
}

// GetLocations returns the location reference list.
func (c *Client) GetLocations(ctx context.Context) (out []domain.Location, err error) {
	defer c.observe("locations", time.Now(), &err)
	err = c.getEnvelopedList(ctx, basePath+"/locations", &out)
	return out, err
}

// ── Mutations ─────────────────────────────────────────────────────────────────

// SubmitDelivery records a stock delivery.
func (c *Client) SubmitDelivery(ctx context.Context, req domain.DeliveryRequest) (err error) {
	defer c.observe("delivery", time.Now(), &err)
	return c.postStatus(ctx, basePath+"/stock/delivery", req)
}

// SubmitPhysicalAudit records a physical stock count.
func (c *Client) SubmitPhysicalAudit(ctx context.Context, req domain.PhysicalAuditRequest) (err error) {
	defer c.observe("physical_audit", time.Now(), &err)
	return c.postStatus(ctx, basePath+"/stock/physical-audit", req)
}

// SubmitStockMovement transfers stock between locations.
func (c *Client) SubmitStockMovement(ctx context.Context, req domain.StockMovementRequest) (err error) {
	defer c.observe("move_stock", time.Now(), &err)
	return c.postStatus(ctx, basePath+"/movestock", req)
}

// CreateProduct registers a new product. Failure may arrive as HTTP 200 with
// success:false; a message containing "duplicate" maps to domain.ErrDuplicate
// so callers can translate it for the user.
func (c *Client) CreateProduct(ctx context.Context, req domain.NewProductRequest) (prod *domain.Product, err error) {
	defer c.observe("create_product", time.Now(), &err)

	body, status, err := c.do(ctx, http.MethodPost, basePath+"/newproduct", req)
	if err != nil {
		return nil, err
	}

	var env successEnvelope
	if jsonErr := json.Unmarshal(body, &env); jsonErr != nil {
		if status < 200 || status >= 300 {
			return nil, fmt.Errorf("upstream: newproduct: %w: HTTP %d", domain.ErrUpstream, status)
		}
		return nil, fmt.Errorf("upstream: decode newproduct response: %w", jsonErr)
	}
	if !env.Success {
		if strings.Contains(strings.ToLower(env.Message), "duplicate") {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicate, env.Message)
		}
		if env.Message == "" {
			return nil, fmt.Errorf("upstream: newproduct: %w: HTTP %d", domain.ErrUpstream, status)
		}
		return nil, fmt.Errorf("upstream: newproduct: %s", env.Message)
	}

	if len(env.Data) > 0 {
		var p domain.Product
		if jsonErr := json.Unmarshal(env.Data, &p); jsonErr != nil {
			return nil, fmt.Errorf("upstream: decode created product: %w", jsonErr)
		}
		prod = &p
	}
	return prod, nil
}

// ── Transport helpers ─────────────────────────────────────────────────────────

// do issues one request and returns the (bounded) body and status code.
// Transport failures and context cancellation come back as wrapped errors.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("upstream: encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("upstream: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, fmt.Errorf("upstream: %s %s canceled: %w", method, path, ctx.Err())
		}
		return nil, 0, fmt.Errorf("upstream: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("upstream: read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// getJSON fetches a plain JSON payload; non-2xx is a generic failure carrying
// the status text, the body is not inspected.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, status, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("upstream: GET %s: %w: %s", path, domain.ErrUpstream, http.StatusText(status))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("upstream: decode GET %s: %w", path, err)
	}
	return nil
}

// getEnvelopedList unwraps a {success, data} list response.
func (c *Client) getEnvelopedList(ctx context.Context, path string, out any) error {
	body, status, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("upstream: GET %s: %w: %s", path, domain.ErrUpstream, http.StatusText(status))
	}
	var env successEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("upstream: decode GET %s: %w", path, err)
	}
	if !env.Success {
		return fmt.Errorf("upstream: GET %s: %w: %s", path, domain.ErrUpstream, env.Message)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("upstream: decode GET %s data: %w", path, err)
	}
	return nil
}

// postStatus posts a mutation whose response is a {status, message} envelope.
func (c *Client) postStatus(ctx context.Context, path string, payload any) error {
	body, status, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("upstream: POST %s: %w: %s", path, domain.ErrUpstream, http.StatusText(status))
	}
	var env statusEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("upstream: decode POST %s: %w", path, err)
	}
	if env.Status != "success" {
		return fmt.Errorf("upstream: POST %s: %w: %s", path, domain.ErrUpstream, env.Message)
	}
	return nil
}

func (c *Client) observe(operation string, start time.Time, err *error) {
	c.metrics.ObserveUpstream(operation, start, *err)
}
