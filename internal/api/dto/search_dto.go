package dto

import "github.com/jobscout/jobscout-be/internal/search"

type SearchRequest struct {
	Keyword  string `json:"keyword" binding:"required"`
	Location string `json:"location"`
}

type SearchResponse struct {
	Jobs         []JobDTO `json:"jobs"`
	Count        int      `json:"count"`
	Keyword      string   `json:"keyword"`
	Location     string   `json:"location,omitempty"`
	Sources      []string `json:"sources"`
	AverageScore float64  `json:"average_score"`
	Message      string   `json:"message,omitempty"`
}

func NewSearchResponse(result *search.Result) SearchResponse {
	jobs := make([]JobDTO, 0, len(result.Jobs))
	for _, job := range result.Jobs {
		jobs = append(jobs, NewJobDTO(job))
	}

	return SearchResponse{
		Jobs:         jobs,
		Count:        result.Count,
		Keyword:      result.Keyword,
		Location:     result.Location,
		Sources:      result.Sources,
		AverageScore: result.AverageScore,
		Message:      result.Message,
	}
}
