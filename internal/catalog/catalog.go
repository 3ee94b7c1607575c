// Copyright (c) 2025 IGVF Catalog
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package catalog binds the igvfCatalogRouter procedures this CLI calls to Go types.
// Procedure names and input shapes mirror the router; result records are kept as raw
// JSON because their shape belongs to the server.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"

	"igvfcatalog/cli/internal/errors"
	"igvfcatalog/cli/internal/trpc"
)

// Procedure paths on igvfCatalogRouter.
const (
	PathRegions = "regions"
)

// RegionsInput selects regions on one chromosome within [Gte, Lt).
type RegionsInput struct {
	Gte int64  `json:"gte"`
	Lt  int64  `json:"lt"`
	Chr string `json:"chr"`
}

// DefaultRegionsInput is the query the CLI issues when run without arguments.
func DefaultRegionsInput() RegionsInput {
	return RegionsInput{
		Gte: 69754011,
		Lt:  69754099,
		Chr: "1",
	}
}

// Region is one record returned by the regions procedure, verbatim.
type Region = json.RawMessage

// Client is a typed view of the catalog router.
type Client struct {
	rpc *trpc.Client
}

// NewClient wraps a tRPC client bound to the catalog endpoint.
func NewClient(rpc *trpc.Client) *Client {
	return &Client{rpc: rpc}
}

// Regions calls the regions query. Records come back in server order.
func (c *Client) Regions(ctx context.Context, in RegionsInput) ([]Region, error) {
	var raw json.RawMessage
	if err := c.rpc.Query(ctx, PathRegions, in, &raw); err != nil {
		return nil, err
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New(errors.DecodeFailed, PathRegions+": result is not an array")
	}
	var out []Region
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.Wrap(errors.DecodeFailed, PathRegions, err)
	}
	return out, nil
}
