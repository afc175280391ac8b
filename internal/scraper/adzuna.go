package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jobscout/jobscout-be/internal/api/model"
)

// AdzunaSource pulls postings from the Adzuna search API
type AdzunaSource struct {
	appID   string
	appKey  string
	country string
	baseURL string
	client  *http.Client
}

// NewAdzunaSource creates an Adzuna-backed source. country is the
// two-letter market code in the Adzuna URL path, e.g. "us" or "gb".
func NewAdzunaSource(appID, appKey, country string, client *http.Client) *AdzunaSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &AdzunaSource{
		appID:   appID,
		appKey:  appKey,
		country: country,
		baseURL: "https://api.adzuna.com/v1/api",
		client:  client,
	}
}

// Name implements Source
func (s *AdzunaSource) Name() string {
	return "adzuna"
}

type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

type adzunaJob struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	RedirectURL string `json:"redirect_url"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}

// Fetch implements Source
func (s *AdzunaSource) Fetch(ctx context.Context, keyword, location string, limit int) ([]model.RawPosting, error) {
	params := url.Values{}
	params.Set("app_id", s.appID)
	params.Set("app_key", s.appKey)
	params.Set("what", keyword)
	params.Set("results_per_page", strconv.Itoa(limit))
	params.Set("content-type", "application/json")
	if location != "" {
		params.Set("where", location)
	}

	endpoint := fmt.Sprintf("%s/jobs/%s/search/1?%s", s.baseURL, s.country, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, classifyFetchErr(s.Name(), err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, classifyFetchErr(s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyFetchErr(s.Name(), fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, classifyFetchErr(s.Name(), fmt.Errorf("failed to decode response: %w", err))
	}

	postings := make([]model.RawPosting, 0, limit)
	for _, job := range body.Results {
		if len(postings) >= limit {
			break
		}
		if job.Title == "" || job.Company.DisplayName == "" || job.RedirectURL == "" {
			continue
		}

		postings = append(postings, model.RawPosting{
			Title:       job.Title,
			Company:     job.Company.DisplayName,
			Description: truncateDescription(job.Description),
			Location:    job.Location.DisplayName,
			SourceURL:   job.RedirectURL,
			Source:      s.Name(),
		})
	}

	return postings, nil
}
