// Package knowledge is the client for the external knowledge-base backend.
// The backend is a separate service; this package only defines the search
// contract the chat pipeline consumes and an HTTP implementation of it.
package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Result is one knowledge-base hit.
type Result struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Score   float64  `json:"score"`
	Tags    []string `json:"tags,omitempty"`
}

// SearchRequest describes a knowledge-base query.
type SearchRequest struct {
	Query      string   `json:"query"`
	Tags       []string `json:"tags,omitempty"`
	Collection string   `json:"collection,omitempty"`
	Mode       string   `json:"mode,omitempty"`
}

// Searcher is the contract the chat pipeline uses to reach the knowledge base.
type Searcher interface {
	Available(ctx context.Context) bool
	Search(ctx context.Context, req *SearchRequest) ([]Result, error)
}

type httpSearcher struct {
	client *http.Client
	url    string
}

// NewHTTPSearcher creates a Searcher backed by the knowledge service at url.
// An empty url yields a searcher that reports itself unavailable, which lets
// deployments without a knowledge backend run unchanged.
func NewHTTPSearcher(url string) Searcher {
	return &httpSearcher{
		client: &http.Client{Timeout: 30 * time.Second},
		url:    strings.TrimRight(url, "/"),
	}
}

func (s *httpSearcher) Available(ctx context.Context) bool {
	if s.url == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (s *httpSearcher) Search(ctx context.Context, searchReq *SearchRequest) ([]Result, error) {
	body, err := json.Marshal(searchReq)
	if err != nil {
		return nil, fmt.Errorf("could not marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+"/search", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("knowledge backend returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var payload struct {
		Results []Result `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("could not decode search response: %w", err)
	}
	return payload.Results, nil
}
