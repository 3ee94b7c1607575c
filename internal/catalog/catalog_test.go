// Copyright (c) 2025 IGVF Catalog
// Licensed under the MIT License. See LICENSE file in the project root for details.

package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igvfcatalog/cli/internal/errors"
	"igvfcatalog/cli/internal/trpc"
)

func serve(t *testing.T, body string, check func(r *http.Request)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return NewClient(trpc.New(srv.URL + "/trpc"))
}

func TestRegionsSendsContractInput(t *testing.T) {
	c := serve(t, `[{"result":{"data":[{"chr":"chr1","start":69754011,"end":69754020},{"chr":"chr1","start":69754050,"end":69754099}]}}]`,
		func(r *http.Request) {
			assert.Equal(t, "/trpc/regions", r.URL.Path)
			var input map[string]json.RawMessage
			assert.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("input")), &input))
			assert.JSONEq(t, `{"gte":69754011,"lt":69754099,"chr":"1"}`, string(input["0"]))
		})

	regions, err := c.Regions(context.Background(), DefaultRegionsInput())
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.JSONEq(t, `{"chr":"chr1","start":69754011,"end":69754020}`, string(regions[0]))
	assert.JSONEq(t, `{"chr":"chr1","start":69754050,"end":69754099}`, string(regions[1]))
}

func TestRegionsEmptyRange(t *testing.T) {
	c := serve(t, `[{"result":{"data":[]}}]`, func(r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("input"), `"gte":100`)
		assert.Contains(t, r.URL.Query().Get("input"), `"lt":100`)
	})

	regions, err := c.Regions(context.Background(), RegionsInput{Gte: 100, Lt: 100, Chr: "1"})
	require.NoError(t, err)
	assert.NotNil(t, regions)
	assert.Empty(t, regions)
}

func TestRegionsRejectsNonArrayResult(t *testing.T) {
	for _, data := range []string{`null`, `{"chr":"chr1"}`, `"regions"`} {
		t.Run(data, func(t *testing.T) {
			c := serve(t, `[{"result":{"data":`+data+`}}]`, nil)
			_, err := c.Regions(context.Background(), DefaultRegionsInput())
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.DecodeFailed))
		})
	}
}

func TestRegionsRemoteError(t *testing.T) {
	c := serve(t, `[{"error":{"message":"Invalid chromosome","code":-32600,"data":{"code":"BAD_REQUEST","httpStatus":400,"path":"regions"}}}]`, nil)

	regions, err := c.Regions(context.Background(), RegionsInput{Gte: 1, Lt: 2, Chr: "99"})
	assert.Nil(t, regions)
	assert.True(t, errors.Is(err, errors.RemoteFailed))
	assert.Contains(t, err.Error(), "Invalid chromosome")
}
