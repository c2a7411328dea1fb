// Package transport executes signed REST calls against exchange APIs.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"resty.dev/v3"
)

// Signer attaches authentication to a request right before it is sent.
// It may add headers or query parameters.
type Signer interface {
	Sign(req *Request) error
}

// SignerFunc adapts a function to the Signer interface.
type SignerFunc func(req *Request) error

// Sign calls f(req).
func (f SignerFunc) Sign(req *Request) error {
	return f(req)
}

// Observer receives one call per completed request.
type Observer interface {
	Observe(exchange, method, path string, status int, elapsed time.Duration)
}

// Field is a single key/value parameter.
type Field struct {
	Key   string
	Value string
}

// Fields is an ordered parameter list. Keys may repeat, as in "states[]".
type Fields []Field

// Add appends a parameter.
func (f *Fields) Add(key, value string) {
	*f = append(*f, Field{Key: key, Value: value})
}

// Get returns the first value for key.
func (f Fields) Get(key string) string {
	for _, field := range f {
		if field.Key == key {
			return field.Value
		}
	}
	return ""
}

// Encode renders the fields as a URL-encoded string in insertion order.
func (f Fields) Encode() string {
	var b strings.Builder
	for i, field := range f {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(field.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(field.Value))
	}
	return b.String()
}

// Decoded returns Encode with percent-escapes reversed. Signatures are
// computed over this form.
func (f Fields) Decoded() string {
	s := f.Encode()
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// JSON renders the fields as a flat JSON object of strings in insertion order.
func (f Fields) JSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := sonic.ConfigStd.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		v, err := sonic.ConfigStd.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Request describes one REST call. Path is relative to the client base URL.
type Request struct {
	Method string
	Path   string
	Query  Fields
	Body   Fields
	Header http.Header

	fullPath string
	payload  []byte
}

// NewRequest creates a request for method and path.
func NewRequest(method, path string) *Request {
	return &Request{
		Method: method,
		Path:   path,
		Header: make(http.Header),
	}
}

// SetHeader sets a header, replacing any existing value.
func (r *Request) SetHeader(key, value string) {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.Header.Set(key, value)
}

// URLPath is the absolute path of the request including the base URL path,
// e.g. "/api/v3/order". It is set by the client before signing.
func (r *Request) URLPath() string {
	if r.fullPath == "" {
		return r.Path
	}
	return r.fullPath
}

// Payload is the serialized body exactly as it will be sent. It is empty
// when the request has no body.
func (r *Request) Payload() []byte {
	return r.payload
}

func (r *Request) prepare(basePath string) error {
	r.fullPath = basePath + r.Path
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.payload = nil
	if len(r.Body) > 0 {
		payload, err := r.Body.JSON()
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		r.payload = payload
	}
	return nil
}

// Response represents an HTTP response with its status code, body, and headers.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// IsSuccess returns true if the response status code indicates success (2xx).
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the response status code indicates an error (4xx or 5xx).
func (r *Response) IsError() bool {
	return r.StatusCode >= http.StatusBadRequest
}

// Unmarshal parses the response body into the provided value using sonic.
func (r *Response) Unmarshal(v any) error {
	return sonic.Unmarshal(r.Body, v)
}

// Config holds the endpoint settings of a Client.
type Config struct {
	Exchange string        `validate:"required"`
	BaseURL  string        `validate:"required,url"`
	Timeout  time.Duration `validate:"min=0"`
}

var validate = validator.New()

// Client sends requests for a single exchange. A fresh HTTP session is
// opened for every call and closed when the call returns.
type Client struct {
	config   Config
	base     string
	basePath string
	signer   Signer
	logger   zerolog.Logger
	observer Observer
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithObserver registers a metrics observer.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient creates a client for the configured base URL. signer may be nil
// for unauthenticated use.
func NewClient(config Config, signer Signer, opts ...Option) (*Client, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid transport config: %w", err)
	}

	u, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	basePath := strings.TrimSuffix(u.Path, "/")
	u.Path, u.RawQuery, u.Fragment = "", "", ""

	c := &Client{
		config:   config,
		base:     u.String(),
		basePath: basePath,
		signer:   signer,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Send signs and executes req. Any non-context transport failure is reported
// as a synthetic 500 response so callers need only inspect the status code.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	if err := req.prepare(c.basePath); err != nil {
		return nil, err
	}
	if c.signer != nil {
		if err := c.signer.Sign(req); err != nil {
			return nil, fmt.Errorf("sign request: %w", err)
		}
	}

	target := c.base + req.URLPath()
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	client := resty.New()
	defer client.Close()
	client.SetLogger(restyLogger{c.logger})
	if c.config.Timeout > 0 {
		client.SetTimeout(c.config.Timeout)
	}

	r := client.R().SetContext(ctx)
	for k := range req.Header {
		r.SetHeader(k, req.Header.Get(k))
	}
	if len(req.payload) > 0 {
		r.SetHeader("Content-Type", "application/json")
		r.SetBody(req.payload)
	}

	c.logger.Debug().
		Str("exchange", c.config.Exchange).
		Str("method", req.Method).
		Str("url", target).
		Msg("http request")

	start := time.Now()
	resp, err := r.Execute(req.Method, target)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("http request: %w", ctxErr)
		}
		c.logger.Error().Err(err).
			Str("exchange", c.config.Exchange).
			Str("method", req.Method).
			Str("path", req.URLPath()).
			Msg("http request failed")
		c.observe(req, http.StatusInternalServerError, time.Since(start))
		return &Response{StatusCode: http.StatusInternalServerError, Header: make(http.Header)}, nil
	}

	c.logger.Debug().
		Str("exchange", c.config.Exchange).
		Str("method", req.Method).
		Str("path", req.URLPath()).
		Int("status", resp.StatusCode()).
		Int("size", len(resp.Bytes())).
		Msg("http response")
	c.observe(req, resp.StatusCode(), time.Since(start))

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Bytes(),
		Header:     resp.Header(),
	}, nil
}

func (c *Client) observe(req *Request, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.Observe(c.config.Exchange, req.Method, req.URLPath(), status, elapsed)
	}
}

type restyLogger struct {
	l zerolog.Logger
}

func (r restyLogger) Errorf(format string, v ...any) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...any)  { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...any) { r.l.Debug().Msgf(format, v...) }
