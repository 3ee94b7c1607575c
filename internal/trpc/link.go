// Copyright (c) 2025 IGVF Catalog
// Licensed under the MIT License. See LICENSE file in the project root for details.

package trpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"igvfcatalog/cli/internal/errors"
	"igvfcatalog/cli/internal/logging"
)

// envelope is one entry of a batch response.
type envelope struct {
	Result *struct {
		Data json.RawMessage `json:"data"`
	} `json:"result"`
	Error *RemoteError `json:"error"`
}

// Batch sends ops and returns one Result per operation, in operation order.
// Queries travel in GET requests and mutations in a POST request. The returned
// error is non-nil only when no per-call result could be produced: invalid
// input, transport failure, or an undecodable response.
func (c *Client) Batch(ctx context.Context, ops []Operation) ([]Result, error) {
	results := make([]Result, len(ops))
	if len(ops) == 0 {
		return results, nil
	}

	inputs := make([]json.RawMessage, len(ops))
	var queries, mutations []int
	for i, op := range ops {
		if strings.TrimSpace(op.Path) == "" {
			return nil, errors.New(errors.InvalidInput, fmt.Sprintf("operation %d: empty procedure path", i))
		}
		switch op.Type {
		case OpQuery, "":
			queries = append(queries, i)
		case OpMutation:
			mutations = append(mutations, i)
		default:
			return nil, errors.New(errors.InvalidInput, fmt.Sprintf("%s: unknown operation type %q", op.Path, op.Type))
		}
		if op.Input == nil {
			continue
		}
		b, err := json.Marshal(op.Input)
		if err != nil {
			return nil, errors.Wrap(errors.InvalidInput, op.Path, err)
		}
		inputs[i] = b
	}

	for _, group := range c.splitQueries(ops, inputs, queries) {
		if err := c.send(ctx, http.MethodGet, ops, inputs, group, results); err != nil {
			return nil, err
		}
	}
	if len(mutations) > 0 {
		if err := c.send(ctx, http.MethodPost, ops, inputs, mutations, results); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// splitQueries groups consecutive query indexes so that each GET URL stays
// within maxURLLength. Without a limit all queries share one request.
func (c *Client) splitQueries(ops []Operation, inputs []json.RawMessage, idx []int) [][]int {
	if len(idx) == 0 {
		return nil
	}
	if c.maxURLLength <= 0 {
		return [][]int{idx}
	}
	var groups [][]int
	var cur []int
	for _, i := range idx {
		next := append(append([]int(nil), cur...), i)
		if len(cur) > 0 && len(c.queryURL(ops, inputs, next)) > c.maxURLLength {
			groups = append(groups, cur)
			cur = []int{i}
			continue
		}
		cur = next
	}
	return append(groups, cur)
}

// inputMap encodes the batch input object keyed by position within the request.
func inputMap(inputs []json.RawMessage, idx []int) []byte {
	m := make(map[string]json.RawMessage, len(idx))
	for j, i := range idx {
		if inputs[i] != nil {
			m[strconv.Itoa(j)] = inputs[i]
		}
	}
	b, _ := json.Marshal(m)
	return b
}

func (c *Client) endpoint(ops []Operation, idx []int) string {
	paths := make([]string, len(idx))
	for j, i := range idx {
		paths[j] = ops[i].Path
	}
	return c.url + "/" + strings.Join(paths, ",") + "?batch=1"
}

func (c *Client) queryURL(ops []Operation, inputs []json.RawMessage, idx []int) string {
	return c.endpoint(ops, idx) + "&input=" + url.QueryEscape(string(inputMap(inputs, idx)))
}

// send performs one HTTP request for the calls in idx and fills results.
func (c *Client) send(ctx context.Context, method string, ops []Operation, inputs []json.RawMessage, idx []int, results []Result) error {
	var (
		target string
		body   io.Reader
	)
	if method == http.MethodGet {
		target = c.queryURL(ops, inputs, idx)
	} else {
		target = c.endpoint(ops, idx)
		body = bytes.NewReader(inputMap(inputs, idx))
	}
	label := method + " " + pathsOf(ops, idx)

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return errors.Wrap(errors.InvalidInput, label, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vals := range c.headers {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	c.logger.Debug("dispatch", "method", method, "url", logging.Mask(target), "calls", len(idx), "request_id", requestID)
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(errors.TransportFailed, label, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(errors.TransportFailed, label, err)
	}
	c.logger.Debug("response", "status", resp.StatusCode, "bytes", len(raw), "elapsed", time.Since(start), "request_id", requestID)

	envs, err := parseEnvelopes(raw, len(idx))
	if err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return errors.Wrap(errors.TransportFailed, label, newStatusError(resp, raw))
		}
		return errors.Wrap(errors.DecodeFailed, label, err)
	}

	for j, i := range idx {
		path := ops[i].Path
		env := envs[j]
		switch {
		case env.Error != nil:
			results[i] = Result{Path: path, Err: errors.Wrap(errors.RemoteFailed, path, env.Error)}
		case env.Result != nil:
			data := env.Result.Data
			if len(data) == 0 {
				data = json.RawMessage("null")
			}
			results[i] = Result{Path: path, Data: data}
		default:
			results[i] = Result{Path: path, Err: errors.New(errors.DecodeFailed, path+": response entry has neither result nor error")}
		}
	}
	return nil
}

// parseEnvelopes decodes a batch response holding n entries. A single
// envelope object instead of an array applies to every call.
func parseEnvelopes(raw []byte, n int) ([]envelope, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	switch trimmed[0] {
	case '[':
		var envs []envelope
		if err := json.Unmarshal(trimmed, &envs); err != nil {
			return nil, err
		}
		if len(envs) != n {
			return nil, fmt.Errorf("batch response has %d entries, want %d", len(envs), n)
		}
		return envs, nil
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, err
		}
		if env.Result == nil && env.Error == nil {
			return nil, fmt.Errorf("response object is not a tRPC envelope")
		}
		envs := make([]envelope, n)
		for i := range envs {
			envs[i] = env
		}
		return envs, nil
	default:
		return nil, fmt.Errorf("response is not JSON: %q", abbreviate(string(trimmed), 64))
	}
}

func pathsOf(ops []Operation, idx []int) string {
	paths := make([]string, len(idx))
	for j, i := range idx {
		paths[j] = ops[i].Path
	}
	return strings.Join(paths, ",")
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
