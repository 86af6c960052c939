package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_WrapsQueryAndParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Answer the following question: 'What is yarn?'", req["query"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"result": {
				"object": "vector_store.search_results.page",
				"search_query": "What is yarn?",
				"response": "Yarn is a continuous strand of fibers.",
				"data": [
					{"file_id": "f1", "filename": "textiles-101.pdf", "score": 0.92},
					{"file_id": "f2", "filename": "spinning.pdf", "score": 0.81}
				]
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	res, err := c.Search(context.Background(), "What is yarn?")
	require.NoError(t, err)

	assert.Equal(t, "Yarn is a continuous strand of fibers.", res.Response)
	require.Len(t, res.References, 2)
	assert.Equal(t, "textiles-101.pdf", res.References[0].Filename)
	assert.InDelta(t, 0.92, res.References[0].Score, 1e-9)
}

func TestSearch_EmptyResponseGetsFallbackText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "result": {"response": "", "data": []}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	res, err := c.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "I couldn't find a relevant response.", res.Response)
	assert.Empty(t, res.References)
}

func TestSearch_UnsuccessfulResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Search(context.Background(), "anything")
	assert.Error(t, err)
}

func TestSearch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSearch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Search(ctx, "anything")
	assert.Error(t, err)
}
