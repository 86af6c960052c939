// Package search is the HTTP client for the downstream AutoRAG search
// service. The service is an opaque collaborator: one JSON request in, one
// JSON response out. Retries, if any, belong to the caller.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Reference is a scored source document cited by the answer.
type Reference struct {
	FileID   string  `json:"file_id"`
	Filename string  `json:"filename"`
	Score    float64 `json:"score"`
}

// Result is the answer returned for a query.
type Result struct {
	Response   string      `json:"response"`
	References []Reference `json:"references"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Success bool `json:"success"`
	Result  *struct {
		Object      string `json:"object"`
		SearchQuery string `json:"search_query"`
		Response    string `json:"response"`
		Data        []struct {
			FileID   string  `json:"file_id"`
			Filename string  `json:"filename"`
			Score    float64 `json:"score"`
		} `json:"data"`
	} `json:"result"`
}

// Client calls the AutoRAG search endpoint.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a search Client for the given endpoint URL.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// Search submits the user's question and returns the answer with its source
// references. The question is wrapped in the prompt frame the service expects.
func (c *Client) Search(ctx context.Context, question string) (*Result, error) {
	payload, err := json.Marshal(searchRequest{
		Query: fmt.Sprintf("Answer the following question: '%s'", question),
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling search service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search service returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	if !body.Success || body.Result == nil {
		return nil, fmt.Errorf("search service reported failure")
	}

	result := &Result{
		Response:   body.Result.Response,
		References: make([]Reference, 0, len(body.Result.Data)),
	}
	if result.Response == "" {
		result.Response = "I couldn't find a relevant response."
	}
	for _, d := range body.Result.Data {
		result.References = append(result.References, Reference{
			FileID:   d.FileID,
			Filename: d.Filename,
			Score:    d.Score,
		})
	}
	return result, nil
}
