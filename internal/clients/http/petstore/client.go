// Package petstore is the JSON client the harness uses to reach the pet store.
package petstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Apurer/petstore-e2e/internal/domains/pets/adapters/http/mapper"
	"github.com/Apurer/petstore-e2e/internal/domains/pets/domain"
	"github.com/Apurer/petstore-e2e/internal/domains/pets/ports"
	harnesserrors "github.com/Apurer/petstore-e2e/internal/shared/errors"
)

// DefaultTimeout bounds every request when no client or timeout is supplied.
const DefaultTimeout = 5 * time.Second

// Client issues pet store calls with a JSON body and a bounded timeout.
// It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	header     http.Header
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	timeout    time.Duration
	header     http.Header
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(opts *clientOptions) {
		opts.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *clientOptions) {
		opts.timeout = timeout
	}
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(opts *clientOptions) {
		opts.header.Set(key, value)
	}
}

// NewClient builds a client rooted at baseURL, e.g. https://petstore.swagger.io/v2.
func NewClient(baseURL string, optFns ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("pet store base URL is required")
	}
	opts := clientOptions{
		timeout: DefaultTimeout,
		header:  http.Header{"Content-Type": []string{"application/json"}},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.timeout <= 0 {
		opts.timeout = DefaultTimeout
	}
	httpClient := opts.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   opts.timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient, header: opts.header}, nil
}

// BaseURL returns the root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PetURL is the collection endpoint used for create and update.
func (c *Client) PetURL() string {
	return c.baseURL + "/pet"
}

// PetIDURL is the item endpoint used for read and delete.
func (c *Client) PetIDURL(id int64) string {
	return fmt.Sprintf("%s/pet/%d", c.baseURL, id)
}

// CreatePet posts a new pet.
func (c *Client) CreatePet(ctx context.Context, pet domain.Pet) (*ports.Response, error) {
	return c.Invoke(ctx, ports.Request{Method: http.MethodPost, URL: c.PetURL(), Body: mapper.FromDomainPet(pet)})
}

// GetPet fetches a pet by id.
func (c *Client) GetPet(ctx context.Context, id int64) (*ports.Response, error) {
	return c.Invoke(ctx, ports.Request{Method: http.MethodGet, URL: c.PetIDURL(id)})
}

// UpdatePet replaces an existing pet.
func (c *Client) UpdatePet(ctx context.Context, pet domain.Pet) (*ports.Response, error) {
	return c.Invoke(ctx, ports.Request{Method: http.MethodPut, URL: c.PetURL(), Body: mapper.FromDomainPet(pet)})
}

// DeletePet removes a pet by id.
func (c *Client) DeletePet(ctx context.Context, id int64) (*ports.Response, error) {
	return c.Invoke(ctx, ports.Request{Method: http.MethodDelete, URL: c.PetIDURL(id)})
}

// Invoke sends req and decodes the JSON response. Only transport failures
// are errors; they wrap ErrRequestTimeout or ErrConnection.
func (c *Client) Invoke(ctx context.Context, req ports.Request) (*ports.Response, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("pet store client not configured")
	}
	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", req.Method, req.URL, err)
		}
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", req.Method, req.URL, err)
	}
	for key, values := range c.header {
		httpReq.Header[key] = append([]string{}, values...)
	}
	for key, values := range req.Header {
		httpReq.Header[http.CanonicalHeaderKey(key)] = append([]string{}, values...)
	}

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportError(req, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, transportError(req, err)
	}
	return &ports.Response{StatusCode: res.StatusCode, Body: decodeObject(raw), Raw: raw}, nil
}

func decodeObject(raw []byte) map[string]any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var body map[string]any
	if err := decoder.Decode(&body); err != nil {
		return nil
	}
	return body
}

func transportError(req ports.Request, err error) error {
	kind := harnesserrors.ErrConnection
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = harnesserrors.ErrRequestTimeout
	}
	return &harnesserrors.TransportError{Method: req.Method, URL: req.URL, Kind: kind, Err: err}
}

var (
	_ ports.Invoker  = (*Client)(nil)
	_ ports.PetStore = (*Client)(nil)
)
