package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jobscout/jobscout-be/internal/api/model"
)

const jsearchHost = "jsearch.p.rapidapi.com"

// JSearchSource pulls postings from the JSearch RapidAPI endpoint, which
// aggregates Google for Jobs listings
type JSearchSource struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewJSearchSource creates a JSearch-backed source
func NewJSearchSource(apiKey string, client *http.Client) *JSearchSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &JSearchSource{
		apiKey:  apiKey,
		baseURL: "https://" + jsearchHost,
		client:  client,
	}
}

// Name implements Source
func (s *JSearchSource) Name() string {
	return "jsearch"
}

type jsearchResponse struct {
	Data []jsearchJob `json:"data"`
}

type jsearchJob struct {
	Title       string `json:"job_title"`
	Employer    string `json:"employer_name"`
	Description string `json:"job_description"`
	City        string `json:"job_city"`
	State       string `json:"job_state"`
	Country     string `json:"job_country"`
	ApplyLink   string `json:"job_apply_link"`
	JobURL      string `json:"job_url"`
}

// Fetch implements Source. Postings with no title or employer are skipped;
// the rest keep whichever of apply link and job URL is present.
func (s *JSearchSource) Fetch(ctx context.Context, keyword, location string, limit int) ([]model.RawPosting, error) {
	query := keyword
	if location != "" {
		query = keyword + " in " + location
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("num_pages", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, classifyFetchErr(s.Name(), err)
	}
	req.Header.Set("X-RapidAPI-Key", s.apiKey)
	req.Header.Set("X-RapidAPI-Host", jsearchHost)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, classifyFetchErr(s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyFetchErr(s.Name(), fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body jsearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, classifyFetchErr(s.Name(), fmt.Errorf("failed to decode response: %w", err))
	}

	postings := make([]model.RawPosting, 0, limit)
	for _, job := range body.Data {
		if len(postings) >= limit {
			break
		}
		if job.Title == "" || job.Employer == "" {
			continue
		}

		sourceURL := job.ApplyLink
		if sourceURL == "" {
			sourceURL = job.JobURL
		}
		if sourceURL == "" {
			continue
		}

		postings = append(postings, model.RawPosting{
			Title:       job.Title,
			Company:     job.Employer,
			Description: truncateDescription(job.Description),
			Location:    joinLocation(job.City, job.State, job.Country),
			SourceURL:   sourceURL,
			Source:      s.Name(),
		})
	}

	return postings, nil
}

func joinLocation(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
