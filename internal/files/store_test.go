package files

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscout/jobscout-be/internal/api/domain"
)

func TestValidateResume(t *testing.T) {
	const maxSize = 5 << 20

	tests := []struct {
		name        string
		contentType string
		size        int64
		wantErr     bool
	}{
		{"pdf", "application/pdf", 1024, false},
		{"legacy word", "application/msword", 1024, false},
		{"docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", 1024, false},
		{"png rejected", "image/png", 1024, true},
		{"empty file", "application/pdf", 0, true},
		{"over size cap", "application/pdf", maxSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResume(tt.contentType, tt.size, maxSize)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestStore_Upload(t *testing.T) {
	var gotUserID, gotFilename, gotContent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotUserID = r.FormValue("user_id")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		gotContent = string(content)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"url": "https://files.example.com/resumes/u1.pdf"}`))
	}))
	defer server.Close()

	store := NewStore(server.URL, server.Client())

	url, err := store.Upload(context.Background(), "u1", "resume.pdf", "application/pdf", strings.NewReader("%PDF-1.4 fake"))
	require.NoError(t, err)

	assert.Equal(t, "https://files.example.com/resumes/u1.pdf", url)
	assert.Equal(t, "u1", gotUserID)
	assert.Equal(t, "resume.pdf", gotFilename)
	assert.Equal(t, "%PDF-1.4 fake", gotContent)
}

func TestStore_Upload_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	store := NewStore(server.URL, server.Client())

	_, err := store.Upload(context.Background(), "u1", "resume.pdf", "application/pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorageFailure))
}

func TestStore_Upload_MissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store := NewStore(server.URL, server.Client())

	_, err := store.Upload(context.Background(), "u1", "resume.pdf", "application/pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing url")
}
