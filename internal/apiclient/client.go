package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/zirospace/zirospace-cms/internal/domain"
	"github.com/zirospace/zirospace-cms/internal/httpapi"
	"github.com/zirospace/zirospace-cms/internal/logging"
	"github.com/zirospace/zirospace-cms/pkg/interfaces"
)

// Client talks to the content API of a running server.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  interfaces.Logger
	headers http.Header
}

type Option func(*Client)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHeader adds a header to every request, e.g. admin credentials.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// New parses baseURL, the server root without the /api suffix.
func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("apiclient: base url %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL: parsed,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logging.NoOp(),
		headers: http.Header{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type call struct {
	op       string
	resource string
	locale   domain.Locale
	key      string
}

func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}
	return c.baseURL.String() + "/api/" + strings.Join(escaped, "/")
}

// do sends body as JSON and decodes a 2xx response into out. A nil out
// discards the body.
func (c *Client) do(ctx context.Context, meta call, method, endpoint string, body, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return domain.NewValidationError(meta.resource, fmt.Errorf("encode request: %w", err))
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return &domain.TransportError{Op: meta.op, Err: err}
	}
	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", "op", meta.op, "method", method, "url", endpoint, "error", err)
		return &domain.TransportError{Op: meta.op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.decodeError(meta, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.TransportError{Op: meta.op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// decodeError rebuilds the typed error the server reported.
func (c *Client) decodeError(meta call, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var body httpapi.ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil || body.Code == "" {
		body = httpapi.ErrorResponse{Details: strings.TrimSpace(string(raw))}
	}
	cause := errors.New(firstNonEmpty(body.Details, body.Error, resp.Status))

	c.logger.Debug("api request rejected",
		"op", meta.op, "status", resp.StatusCode, "code", body.Code, "details", body.Details)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &domain.NotFoundError{Resource: meta.resource, Key: meta.key, Locale: meta.locale}
	case resp.StatusCode == http.StatusBadRequest || body.Code == domain.KindValidation.String():
		if len(body.Fields) == 0 {
			return domain.NewValidationError(meta.resource, cause)
		}
		fields := validation.Errors{}
		for field, message := range body.Fields {
			fields[field] = errors.New(message)
		}
		return domain.NewValidationError(meta.resource, fields)
	case resp.StatusCode == http.StatusConflict:
		return &domain.StoreError{Op: meta.op, Resource: meta.resource, Locale: meta.locale, Conflict: true, Err: cause}
	case body.Code == domain.KindPartial.String():
		return &domain.PartialFailureError{Op: meta.op, Err: cause}
	case body.Code == domain.KindMapping.String():
		return &domain.MappingError{Resource: meta.resource, ID: meta.key, Field: body.Details}
	case resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusBadGateway:
		return &domain.TransportError{Op: meta.op, Err: cause}
	default:
		return &domain.StoreError{Op: meta.op, Resource: meta.resource, Locale: meta.locale, Err: cause}
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
