/* client_test.go
 * Contains unit tests for the HTTP client plumbing: headers, status handling and
 * the error taxonomy. Tests run against httptest servers, no real network
 * Authors: Zachary Bower
 */

package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewClient_TrimsTrailingSlash tests that a trailing slash in the base URL is dropped
func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://example.com/")

	assert.Equal(t, "http://example.com", c.BaseURL)
}

// TestDo_SetsTunnelBypassHeader tests that every request carries the tunnel bypass header
func TestDo_SetsTunnelBypassHeader(t *testing.T) {
	var header string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("ngrok-skip-browser-warning")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()
	c := NewClient(server.URL)

	_, err := c.FetchCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "true", header)
}

// TestDo_ForbiddenMapsToErrAuth tests that a 403 surfaces as the auth error, not
// as network failure text
func TestDo_ForbiddenMapsToErrAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()
	c := NewClient(server.URL)

	_, err := c.FetchResults(context.Background(), "wrong")

	assert.True(t, errors.Is(err, ErrAuth))
}

// TestDo_ServerErrorReportsStatus tests that other non 2xx statuses become errors
func TestDo_ServerErrorReportsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	c := NewClient(server.URL)

	_, err := c.FetchEntries(context.Background())

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrAuth))
	assert.Contains(t, err.Error(), "500")
}

// TestDo_TransportFailure tests that an unreachable host yields a request error
func TestDo_TransportFailure(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")

	_, err := c.FetchCategories(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

// TestValidationError_Message tests that the reason is the error text
func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Reason: "file is too large"}

	assert.Equal(t, "file is too large", err.Error())
}

// TestGetJSON_BadBody tests that a malformed JSON body is reported as a parse error
func TestGetJSON_BadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()
	c := NewClient(server.URL)

	_, err := c.FetchCategories(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing JSON")
}
