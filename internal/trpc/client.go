// Copyright (c) 2025 IGVF Catalog
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package trpc is a client for tRPC routers served over HTTP.
// It speaks the batch link wire format: queries are sent as a single GET carrying all
// inputs in the query string, mutations as a single POST, and the server answers with
// one result or error envelope per call in call order.
//
// A Client is an immutable handle bound to one endpoint. It holds no per-call state,
// so the same handle may be reused for any number of calls.
package trpc

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"igvfcatalog/cli/internal/errors"
)

// OpType distinguishes the two procedure kinds a router exposes.
type OpType string

const (
	OpQuery    OpType = "query"
	OpMutation OpType = "mutation"
)

// Operation is one procedure call inside a batch.
type Operation struct {
	Type  OpType
	Path  string
	Input any
}

// Result is the outcome of one Operation. Exactly one of Data and Err is set.
type Result struct {
	Path string
	Data json.RawMessage
	Err  error
}

// Client issues batched procedure calls against a single endpoint.
type Client struct {
	// url is the router base URL, e.g. "http://localhost:2023/trpc"
	url string
	// client is the underlying HTTP client; no timeout unless configured
	client *http.Client
	// headers are sent with every request
	headers http.Header
	// maxURLLength splits query batches whose URL would exceed it; 0 disables
	maxURLLength int
	timeout      time.Duration
	logger       hclog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout bounds each HTTP round trip. Zero leaves the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHeader adds a static header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Add(key, value) }
}

// WithMaxURLLength splits GET batches so no request URL exceeds n bytes.
// A single call longer than n is still sent on its own.
func WithMaxURLLength(n int) Option {
	return func(c *Client) { c.maxURLLength = n }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l hclog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client bound to the router at url.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:     strings.TrimRight(url, "/"),
		client:  &http.Client{},
		headers: http.Header{},
		logger:  hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.client
		hc.Timeout = c.timeout
		c.client = &hc
	}
	c.logger = c.logger.Named("trpc")
	return c
}

// URL returns the router base URL.
func (c *Client) URL() string { return c.url }

// Query calls a query procedure and decodes its data into out.
// out may be nil when the result is not needed.
func (c *Client) Query(ctx context.Context, path string, input any, out any) error {
	return c.call(ctx, OpQuery, path, input, out)
}

// Mutate calls a mutation procedure and decodes its data into out.
func (c *Client) Mutate(ctx context.Context, path string, input any, out any) error {
	return c.call(ctx, OpMutation, path, input, out)
}

func (c *Client) call(ctx context.Context, typ OpType, path string, input any, out any) error {
	res, err := c.Batch(ctx, []Operation{{Type: typ, Path: path, Input: input}})
	if err != nil {
		return err
	}
	r := res[0]
	if r.Err != nil {
		return r.Err
	}
	if out == nil {
		return nil
	}
	return Decode(r, out)
}

// Query calls a query procedure on c and returns its data decoded as T.
func Query[T any](ctx context.Context, c *Client, path string, input any) (T, error) {
	var out T
	err := c.Query(ctx, path, input, &out)
	return out, err
}

// Decode unmarshals a successful result into out.
func Decode(r Result, out any) error {
	if r.Err != nil {
		return r.Err
	}
	if err := json.Unmarshal(r.Data, out); err != nil {
		return errors.Wrap(errors.DecodeFailed, r.Path, err)
	}
	return nil
}
