package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// SearchResult is one normalized judgment hit. Results are transient
// and never persisted.
type SearchResult struct {
	Title string `json:"title"`
	Court string `json:"court"`
	Link  string `json:"link"`
}

// SearchService forwards free-text queries to the judgment-search API.
// Its contract is "always return something": any upstream failure,
// including missing credentials, yields a fixed fallback list of two
// landmark cases instead of an error.
type SearchService struct {
	apiURL     string
	token      string
	httpClient *http.Client
}

// SearchServiceOption is a functional option for SearchService
type SearchServiceOption func(*SearchService)

// SearchWithAPIURL sets the judgment-search endpoint
func SearchWithAPIURL(apiURL string) SearchServiceOption {
	return func(s *SearchService) {
		s.apiURL = apiURL
	}
}

// SearchWithToken sets the API token
func SearchWithToken(token string) SearchServiceOption {
	return func(s *SearchService) {
		s.token = token
	}
}

// SearchWithHTTPClient sets the HTTP client
func SearchWithHTTPClient(client *http.Client) SearchServiceOption {
	return func(s *SearchService) {
		s.httpClient = client
	}
}

// NewSearchService creates a new search service
func NewSearchService(opts ...SearchServiceOption) *SearchService {
	s := &SearchService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns judgments matching the query, or the fallback list on
// any upstream failure. A successful search with zero hits returns an
// empty list; the fallback would present unrelated cases as matches.
func (s *SearchService) Search(ctx context.Context, query string) []SearchResult {
	if s.token == "" || s.apiURL == "" {
		log.Println("SEARCH_API_TOKEN not set, returning fallback judgments")
		return FallbackResults()
	}

	results, err := s.search(ctx, query)
	if err != nil {
		log.Printf("Judgment search failed, returning fallback judgments: %v", err)
		return FallbackResults()
	}

	return results
}

func (s *SearchService) search(ctx context.Context, query string) ([]SearchResult, error) {
	endpoint := fmt.Sprintf("%s?formInput=%s", s.apiURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+s.token)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error: %d - %s", resp.StatusCode, string(body))
	}

	var apiResp struct {
		Docs []struct {
			Title     string `json:"title"`
			DocSource string `json:"docsource"`
			TID       int64  `json:"tid"`
		} `json:"docs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]SearchResult, 0, len(apiResp.Docs))
	for _, doc := range apiResp.Docs {
		results = append(results, SearchResult{
			Title: doc.Title,
			Court: doc.DocSource,
			Link:  fmt.Sprintf("https://indiankanoon.org/doc/%d/", doc.TID),
		})
	}

	return results, nil
}

// FallbackResults is the fixed two-item landmark list returned when
// the upstream search is unavailable.
func FallbackResults() []SearchResult {
	return []SearchResult{
		{
			Title: "Kesavananda Bharati v. State of Kerala",
			Court: "Supreme Court of India",
			Link:  "https://indiankanoon.org/doc/257876/",
		},
		{
			Title: "Vishaka v. State of Rajasthan",
			Court: "Supreme Court of India",
			Link:  "https://indiankanoon.org/doc/1031794/",
		},
	}
}
