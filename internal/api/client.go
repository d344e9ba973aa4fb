package api

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

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"ruleta/internal/log"
)

const defaultTimeout = 15 * time.Second

// Client talks to the remote campaign API over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	campaign   string
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTracer attaches a tracer; every remote call becomes a span.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// NewClient creates a campaign API client. baseURL is the API origin
// (no trailing slash needed); campaign scopes every request that takes one.
func NewClient(baseURL, campaign string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
			Timeout: defaultTimeout,
		},
		baseURL:  baseURL,
		campaign: campaign,
		tracer:   noop.NewTracerProvider().Tracer("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// storeEnvelope is the store lookup response body.
type storeEnvelope struct {
	Success bool  `json:"success"`
	Data    Store `json:"data"`
}

// GetStore resolves a store's display name by id.
func (c *Client) GetStore(ctx context.Context, storeID string) (Store, error) {
	ctx, span := c.tracer.Start(ctx, "api.GetStore",
		trace.WithAttributes(attribute.String("store.id", storeID)))
	defer span.End()

	var envelope storeEnvelope
	err := c.getJSON(ctx, "/api/v1/admin/stores/"+url.PathEscape(storeID), nil, &envelope)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Store{}, err
	}
	if !envelope.Success || envelope.Data.Name == "" {
		err := fmt.Errorf("store %s: malformed lookup payload", storeID)
		span.SetStatus(codes.Error, err.Error())
		return Store{}, err
	}
	if envelope.Data.ID == "" {
		envelope.Data.ID = storeID
	}
	return envelope.Data, nil
}

// storesEnvelope is the stores listing response body.
type storesEnvelope struct {
	Data struct {
		Stores []Store `json:"stores"`
	} `json:"data"`
}

// ListStores returns the stores participating in the campaign.
func (c *Client) ListStores(ctx context.Context, page, limit int) ([]Store, error) {
	ctx, span := c.tracer.Start(ctx, "api.ListStores")
	defer span.End()

	query := url.Values{
		"page":     {strconv.Itoa(page)},
		"limit":    {strconv.Itoa(limit)},
		"campaign": {c.campaign},
	}

	var envelope storesEnvelope
	if err := c.getJSON(ctx, "/api/v1/admin/stores", query, &envelope); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return envelope.Data.Stores, nil
}

// spinResponse is the 2xx register-spin body.
type spinResponse struct {
	Prize      string `json:"prize"`
	RegisterID string `json:"registerId"`
}

// RegisterSpin submits identity fields and requests a prize outcome.
// A non-2xx response comes back as *Error carrying the server message;
// transport failures are plain wrapped errors.
func (c *Client) RegisterSpin(ctx context.Context, req SpinRequest) (SpinOutcome, error) {
	ctx, span := c.tracer.Start(ctx, "api.RegisterSpin",
		trace.WithAttributes(attribute.String("store.id", req.StoreID)))
	defer span.End()

	if req.Campaign == "" {
		req.Campaign = c.campaign
	}

	body, err := json.Marshal(req)
	if err != nil {
		return SpinOutcome{}, fmt.Errorf("encode spin request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/register-spin", bytes.NewReader(body))
	if err != nil {
		return SpinOutcome{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return SpinOutcome{}, fmt.Errorf("register-spin: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		span.SetStatus(codes.Error, apiErr.Error())
		return SpinOutcome{}, apiErr
	}

	var sr spinResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return SpinOutcome{}, fmt.Errorf("decode spin response: %w", err)
	}

	log.Info(log.CatAPI, "Spin registered", "store", req.StoreID, "registerId", sr.RegisterID)
	return SpinOutcome{Success: true, PrizeName: sr.Prize, RegisterID: sr.RegisterID}, nil
}

// recordsEnvelope is the registrations listing response body.
type recordsEnvelope struct {
	Data []RegistrationRecord `json:"data"`
}

// ListRegistrations returns the latest registrations for the campaign,
// optionally filtered by store.
func (c *Client) ListRegistrations(ctx context.Context, storeID string, limit int) ([]RegistrationRecord, error) {
	ctx, span := c.tracer.Start(ctx, "api.ListRegistrations",
		trace.WithAttributes(attribute.String("store.id", storeID)))
	defer span.End()

	query := url.Values{"campaign": {c.campaign}}
	if storeID != "" {
		query.Set("storeId", storeID)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var envelope recordsEnvelope
	if err := c.getJSON(ctx, "/api/v1/admin/registers/latest", query, &envelope); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return envelope.Data, nil
}

// getJSON issues a GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// decodeError extracts the server's message field from an error body.
func decodeError(resp *http.Response) *Error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Message
	}
	return apiErr
}
