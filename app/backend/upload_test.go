/* upload_test.go
 * Contains unit tests for entry submission and photo validation
 * Authors: Zachary Bower
 */

package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngSignature is enough for content sniffing to identify the file as image/png
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

// writeTempPhoto writes bytes to a file in a temp dir and returns the path
func writeTempPhoto(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// TestValidatePhoto_AcceptsPNG tests that a PNG file passes validation
func TestValidatePhoto_AcceptsPNG(t *testing.T) {
	path := writeTempPhoto(t, "costume.png", pngSignature)

	err := ValidatePhoto(path)

	assert.NoError(t, err)
}

// TestValidatePhoto_RejectsWrongType tests that a non image file is rejected with
// a validation error naming the sniffed type
func TestValidatePhoto_RejectsWrongType(t *testing.T) {
	path := writeTempPhoto(t, "notes.txt", []byte("definitely not a picture"))

	err := ValidatePhoto(path)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Reason, "invalid file type")
}

// TestValidatePhoto_RejectsOversize tests that the size limit fires before sniffing
func TestValidatePhoto_RejectsOversize(t *testing.T) {
	path := writeTempPhoto(t, "huge.png", pngSignature)
	require.NoError(t, os.Truncate(path, MaxPhotoBytes+1))

	err := ValidatePhoto(path)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Reason, "too large")
	assert.Contains(t, vErr.Reason, "5MB")
}

// TestValidatePhoto_MissingFile tests that a nonexistent path is a validation error
func TestValidatePhoto_MissingFile(t *testing.T) {
	err := ValidatePhoto(filepath.Join(t.TempDir(), "missing.png"))

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

// TestSubmitEntry_BlankNamesNeverReachNetwork tests that missing fields fail fast
// without any HTTP request being made
func TestSubmitEntry_BlankNamesNeverReachNetwork(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()
	c := NewClient(server.URL)
	path := writeTempPhoto(t, "costume.png", pngSignature)

	_, err := c.SubmitEntry(context.Background(), "   ", "Witch", path)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, requests)
}

// TestSubmitEntry_InvalidPhotoNeverReachesNetwork tests the same fail fast rule
// for photo validation
func TestSubmitEntry_InvalidPhotoNeverReachesNetwork(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()
	c := NewClient(server.URL)
	path := writeTempPhoto(t, "notes.txt", []byte("plain text"))

	_, err := c.SubmitEntry(context.Background(), "Alice", "Witch", path)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, requests)
}

// TestSubmitEntry_UploadsMultipart tests the multipart fields and the decoded response
func TestSubmitEntry_UploadsMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/entries", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(MaxPhotoBytes))
		assert.Equal(t, "Alice", r.FormValue("name"))
		assert.Equal(t, "Witch", r.FormValue("costume_name"))
		photo, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer photo.Close()
		assert.Equal(t, "costume.png", header.Filename)
		w.Write([]byte(`{"id": "e9", "name": "Alice", "costume_name": "Witch", "photo_url": "/photos/e9.png"}`))
	}))
	defer server.Close()
	c := NewClient(server.URL)
	path := writeTempPhoto(t, "costume.png", pngSignature)

	entry, err := c.SubmitEntry(context.Background(), "Alice", "Witch", path)

	require.NoError(t, err)
	assert.Equal(t, "e9", entry.ID)
	assert.Equal(t, "/photos/e9.png", entry.PhotoURL)
}
