// Copyright (c) 2025 IGVF Catalog
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package invoker runs a single catalog query and prints what the server returned.
// It performs exactly one outbound call per Run and writes to the output once,
// only after the call has fully succeeded.
package invoker

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"igvfcatalog/cli/internal/catalog"
	"igvfcatalog/cli/internal/errors"
)

// RegionsQuerier is the part of the catalog client Run depends on.
type RegionsQuerier interface {
	Regions(ctx context.Context, in catalog.RegionsInput) ([]catalog.Region, error)
}

// Run queries regions with in and writes the records to w as an indented
// JSON array, in the order the server returned them. On failure nothing is
// written and the error is returned unchanged.
func Run(ctx context.Context, c RegionsQuerier, in catalog.RegionsInput, w io.Writer) error {
	regions, err := c.Regions(ctx, in)
	if err != nil {
		return err
	}
	return Print(w, regions)
}

// Print writes v as indented JSON followed by a newline in a single write.
// String values keep <, > and & as the server sent them.
func Print(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.DecodeFailed, "format result", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
