package handler

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/jobscout/jobscout-be/internal/api/storage"
)

// DecodeJobCursor parses an opaque list cursor. Empty input means the first
// page.
func DecodeJobCursor(cursorStr string) (*storage.JobCursor, error) {
	if cursorStr == "" {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(cursorStr)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(string(decoded), "|")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid cursor format")
	}

	var fitScore int
	if _, err := fmt.Sscanf(parts[0], "%d", &fitScore); err != nil {
		return nil, fmt.Errorf("invalid fit score in cursor: %w", err)
	}

	var createdAt int64
	if _, err := fmt.Sscanf(parts[1], "%d", &createdAt); err != nil {
		return nil, fmt.Errorf("invalid timestamp in cursor: %w", err)
	}

	return &storage.JobCursor{
		FitScore:  fitScore,
		CreatedAt: time.Unix(0, createdAt),
		JobID:     parts[2],
	}, nil
}

// EncodeJobCursor renders a cursor pointing past the given row
func EncodeJobCursor(cursor *storage.JobCursor) string {
	cs := fmt.Sprintf("%d|%d|%s", cursor.FitScore, cursor.CreatedAt.UnixNano(), cursor.JobID)
	return base64.StdEncoding.EncodeToString([]byte(cs))
}
