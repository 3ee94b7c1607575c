// Copyright (c) 2025 IGVF Catalog
// Licensed under the MIT License. See LICENSE file in the project root for details.

package httperrors

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igvfcatalog/cli/internal/trpc"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Class
	}{
		{name: "deadline", err: context.DeadlineExceeded, want: ClassTimeout},
		{name: "dns", err: &net.DNSError{Err: "no such host", Name: "catalog.invalid"}, want: ClassDNS},
		{name: "refused text", err: stderrors.New("dial tcp 127.0.0.1:2023: connect: connection refused"), want: ClassConnectionRefused},
		{name: "tls", err: stderrors.New("tls: first record does not look like a TLS handshake"), want: ClassTLS},
		{name: "5xx status", err: fmt.Errorf("GET regions: %w", &trpc.StatusError{StatusCode: 502, Status: "502 Bad Gateway"}), want: ClassServer},
		{name: "4xx status", err: &trpc.StatusError{StatusCode: 404, Status: "404 Not Found"}, want: ClassGeneric},
		{name: "other", err: stderrors.New("unexpected EOF"), want: ClassGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestFormatNetworkErrorConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL + "/trpc"
	srv.Close()

	cause := trpc.New(endpoint).Query(context.Background(), "regions", nil, nil)
	require.Error(t, cause)

	var out bytes.Buffer
	err := FormatNetworkError(&out, cause, "querying regions", endpoint)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, out.String(), "Connection refused while querying regions")
	assert.Contains(t, out.String(), ExtractHostFromURL(endpoint))
}

func TestFormatNetworkErrorNil(t *testing.T) {
	var out bytes.Buffer
	assert.NoError(t, FormatNetworkError(&out, nil, "querying regions", "http://localhost:2023/trpc"))
	assert.Empty(t, out.String())
}

func TestExtractHostFromURL(t *testing.T) {
	assert.Equal(t, "localhost:2023", ExtractHostFromURL("http://localhost:2023/trpc"))
	assert.Equal(t, "server", ExtractHostFromURL("::not a url"))
}
