package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/prodir/core"
)

func TestRemoteClientSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the request and decodes scored companies", func(t *testing.T) {
		var received core.SearchRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.Write([]byte(`{
				"companies": [
					{"id": "c1", "name": "Nordic Steel Works A/S", "matchScore": 85},
					{"id": "c2", "name": "Jysk Laser Cutting A/S", "matchScore": 40}
				],
				"total": 2,
				"page": 1
			}`))
		}))
		defer server.Close()

		client, err := NewRemoteClient(server.URL)
		require.NoError(t, err)

		resp, err := client.Search(ctx, core.SearchRequest{Query: "steel", Page: 1})
		require.NoError(t, err)
		assert.Equal(t, "steel", received.Query)

		require.Len(t, resp.Companies, 2)
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, 85, resp.Scores(0))
		assert.Equal(t, 40, resp.Scores(1))
		assert.Zero(t, resp.Scores(2))
	})

	t.Run("non-success status is surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client, err := NewRemoteClient(server.URL)
		require.NoError(t, err)

		_, err = client.Search(ctx, core.SearchRequest{Query: "steel"})
		assert.ErrorIs(t, err, ErrRemoteStatus)
	})

	t.Run("empty endpoint is rejected", func(t *testing.T) {
		_, err := NewRemoteClient("")
		assert.ErrorIs(t, err, ErrEndpointRequired)
	})
}

func TestSearcherRemotePath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"companies": [{"id": "c1", "name": "Remote Match ApS", "matchScore": 70}],
			"total": 1,
			"page": 1
		}`))
	}))
	defer server.Close()

	client, err := NewRemoteClient(server.URL)
	require.NoError(t, err)

	searcher, err := NewSearcher(&stubCatalog{}, &stubRegistry{}, &stubRecorder{},
		WithRemoteClient(client))
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), core.SearchRequest{Query: "anything"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Remote Match ApS", results[0].Company.Name)
	assert.Equal(t, 70, results[0].Score)
}
