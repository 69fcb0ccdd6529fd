// Package proxy forwards credential requests to the identity provider and
// relays its status, headers and decoded body back to the bridge.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/law-manager/lawauth/internal/api/metrics"
	"github.com/law-manager/lawauth/internal/core/domain"
	"github.com/law-manager/lawauth/internal/core/ports"
)

const (
	defaultTimeout      = 5 * time.Second
	headerXForwardedFor = "X-Forwarded-For"
)

// Headers that describe a single connection or the encoded body. They are
// neither forwarded to the provider nor relayed back to the client.
var skippedHeaders = map[string]struct{}{
	"Connection":          {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
	"Host":                {},
	"Content-Length":      {},
	"Content-Type":        {},
	"Accept-Encoding":     {},
	"Content-Encoding":    {},
}

// Config locates the identity provider.
type Config struct {
	BaseURL  string
	BasePath string
	Timeout  time.Duration
}

// Request is the provider call to make on behalf of the client.
type Request = ports.ProviderRequest

// JSON builds a request whose body is v encoded as JSON.
func JSON(method string, v any) (Request, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return Request{}, fmt.Errorf("encode provider request: %w", err)
	}
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	return Request{Method: method, Header: h, Body: body}, nil
}

// Result is the provider's answer.
type Result = ports.ProviderResult

// Proxy forwards requests to the identity provider.
type Proxy struct {
	base   *url.URL
	path   string
	client *http.Client
}

// New creates a Proxy. transport decides how requests reach the provider:
// pass Embedded(handler) to call an in-process provider, or nil to use the
// network.
func New(cfg Config, transport http.RoundTripper) (*Proxy, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse auth base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("auth base url %q must be absolute", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Proxy{
		base: base,
		path: "/" + strings.Trim(cfg.BasePath, "/"),
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// URL returns the absolute provider URL of route.
func (p *Proxy) URL(route string) string {
	u := *p.base
	u.Path = strings.TrimRight(p.path, "/") + "/" + strings.TrimLeft(route, "/")
	u.RawQuery = ""
	return u.String()
}

// Forward sends r to route and appends the provider's response headers onto
// ex.Outbound. Set-Cookie values accumulate rather than replace each other.
// Transport failures are reported as domain.ErrUpstreamUnavailable.
func (p *Proxy) Forward(ctx context.Context, ex *ports.Exchange, route string, r Request) (*Result, error) {
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, p.URL(route), body)
	if err != nil {
		return nil, fmt.Errorf("build provider request: %w", err)
	}
	if ex != nil {
		copyHeaders(req.Header, ex.Inbound)
		if ex.ClientIP != "" && req.Header.Get(headerXForwardedFor) == "" {
			req.Header.Set(headerXForwardedFor, ex.ClientIP)
		}
	}
	for k, values := range r.Header {
		req.Header.Del(k)
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		metrics.ProviderRequestDuration.WithLabelValues(route, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrUpstreamUnavailable, r.Method, route, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	metrics.ProviderRequestDuration.WithLabelValues(route, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %v", domain.ErrUpstreamUnavailable, route, err)
	}

	if ex != nil {
		copyHeaders(ex.Outbound, resp.Header)
	}

	decoded, err := decodeBody(resp.Header.Get("Content-Type"), raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s response: %w", route, err)
	}

	return &Result{
		Status: resp.StatusCode,
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Body:   decoded,
		Header: resp.Header,
	}, nil
}

var _ ports.ProviderGateway = (*Proxy)(nil)

func decodeBody(contentType string, raw []byte) (any, error) {
	switch {
	case strings.Contains(contentType, "application/json"):
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil, nil
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		if dec.More() {
			return nil, errors.New("trailing data after JSON value")
		}
		return v, nil
	case strings.HasPrefix(contentType, "text/"):
		return string(raw), nil
	default:
		return nil, nil
	}
}

func copyHeaders(dst, src http.Header) {
	for k, values := range src {
		if _, skip := skippedHeaders[http.CanonicalHeaderKey(k)]; skip {
			continue
		}
		for _, v := range values {
			dst.Add(k, v)
		}
	}
}
