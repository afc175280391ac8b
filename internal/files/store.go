package files

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/jobscout/jobscout-be/internal/api/domain"
)

// allowedResumeTypes is the resume MIME allow-list
var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ValidateResume checks the declared content type and size of an uploaded
// resume before it goes anywhere near storage
func ValidateResume(contentType string, size, maxSize int64) error {
	if !allowedResumeTypes[contentType] {
		return fmt.Errorf("%w: unsupported resume type %q", domain.ErrInvalidInput, contentType)
	}
	if size <= 0 {
		return fmt.Errorf("%w: resume file is empty", domain.ErrInvalidInput)
	}
	if size > maxSize {
		return fmt.Errorf("%w: resume exceeds %d bytes", domain.ErrInvalidInput, maxSize)
	}
	return nil
}

// Store uploads resume files to the file storage service
type Store struct {
	endpoint string
	client   *http.Client
}

// NewStore creates a Store posting to the given upload endpoint
func NewStore(endpoint string, client *http.Client) *Store {
	if client == nil {
		client = http.DefaultClient
	}
	return &Store{
		endpoint: endpoint,
		client:   client,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload streams the resume to the storage service and returns its public
// URL
func (s *Store) Upload(ctx context.Context, userID, filename, contentType string, content io.Reader) (string, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()
		defer writer.Close()

		if err := writer.WriteField("user_id", userID); err != nil {
			pw.CloseWithError(err)
			return
		}
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, pr)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: upload failed: %v", domain.ErrStorageFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%w: upload returned status %d", domain.ErrStorageFailure, resp.StatusCode)
	}

	var body uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: failed to decode upload response: %v", domain.ErrStorageFailure, err)
	}
	if body.URL == "" {
		return "", fmt.Errorf("%w: upload response missing url", domain.ErrStorageFailure)
	}

	return body.URL, nil
}
