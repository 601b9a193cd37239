/* results_test.go
 * Contains unit tests for the results endpoint, in particular that the raw-row
 * and pre-aggregated response shapes normalize to identical tallies
 * Authors: Zachary Bower
 */

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resultsServer serves a canned results body and captures the posted password
func resultsServer(t *testing.T, body string, password *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/results", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if password != nil {
			*password = req["password"]
		}
		w.Write([]byte(body))
	}))
}

// TestFetchResults_PostsPassword tests that the password travels in the request body
func TestFetchResults_PostsPassword(t *testing.T) {
	var password string
	server := resultsServer(t, `{"category_results": [], "mc_results": []}`, &password)
	defer server.Close()
	c := NewClient(server.URL)

	_, err := c.FetchResults(context.Background(), "hunter2")

	require.NoError(t, err)
	assert.Equal(t, "hunter2", password)
}

// TestFetchResults_PreAggregatedShape tests decoding server side counts as is
func TestFetchResults_PreAggregatedShape(t *testing.T) {
	body := `{
		"category_results": [{
			"category": "scariest",
			"results": [
				{"entry_id": "e2", "name": "Bob", "costume_name": "Robot", "vote_count": 1},
				{"entry_id": "e1", "name": "Alice", "costume_name": "Witch", "vote_count": 3}
			]
		}],
		"mc_results": []
	}`
	server := resultsServer(t, body, nil)
	defer server.Close()
	c := NewClient(server.URL)

	payload, err := c.FetchResults(context.Background(), "pw")

	require.NoError(t, err)
	require.Len(t, payload.CategoryResults, 1)
	results := payload.CategoryResults[0].Results
	require.Len(t, results, 2)
	assert.Equal(t, "e1", results[0].EntryID)
	assert.Equal(t, 3, results[0].VoteCount)
	assert.Equal(t, "e2", results[1].EntryID)
	assert.Equal(t, 1, results[1].VoteCount)
}

// TestFetchResults_RawRowShape tests that raw vote rows are counted client side
func TestFetchResults_RawRowShape(t *testing.T) {
	body := `{
		"category_results": [{
			"category": "scariest",
			"results": [
				{"entry_id": "e1", "name": "Alice", "costume_name": "Witch"},
				{"entry_id": "e2", "name": "Bob", "costume_name": "Robot"}
			],
			"votes": [
				{"id": "v1", "entry_id": "e1"},
				{"id": "v2", "entry_id": "e1"},
				{"id": "v3", "entry_id": "e2", "deleted": true}
			]
		}],
		"mc_results": []
	}`
	server := resultsServer(t, body, nil)
	defer server.Close()
	c := NewClient(server.URL)

	payload, err := c.FetchResults(context.Background(), "pw")

	require.NoError(t, err)
	results := payload.CategoryResults[0].Results
	require.Len(t, results, 2)
	assert.Equal(t, "e1", results[0].EntryID)
	assert.Equal(t, 2, results[0].VoteCount)
	// The deleted row does not count
	assert.Equal(t, 0, results[1].VoteCount)
}

// TestFetchResults_ShapesAgree tests that both shapes produce the identical tally
// for the same underlying votes
func TestFetchResults_ShapesAgree(t *testing.T) {
	aggregated := `{
		"category_results": [{
			"category": "scariest",
			"results": [
				{"entry_id": "e1", "name": "Alice", "vote_count": 2},
				{"entry_id": "e2", "name": "Bob", "vote_count": 1}
			]
		}],
		"mc_results": []
	}`
	raw := `{
		"category_results": [{
			"category": "scariest",
			"results": [
				{"entry_id": "e1", "name": "Alice"},
				{"entry_id": "e2", "name": "Bob"}
			],
			"votes": [
				{"id": "v1", "entry_id": "e1"},
				{"id": "v2", "entry_id": "e1"},
				{"id": "v3", "entry_id": "e2"}
			]
		}],
		"mc_results": []
	}`

	serverA := resultsServer(t, aggregated, nil)
	defer serverA.Close()
	serverB := resultsServer(t, raw, nil)
	defer serverB.Close()

	payloadA, err := NewClient(serverA.URL).FetchResults(context.Background(), "pw")
	require.NoError(t, err)
	payloadB, err := NewClient(serverB.URL).FetchResults(context.Background(), "pw")
	require.NoError(t, err)

	assert.Equal(t, payloadA.CategoryResults, payloadB.CategoryResults)
}

// TestFetchResults_McRawRows tests counting raw multiple choice rows
func TestFetchResults_McRawRows(t *testing.T) {
	body := `{
		"category_results": [],
		"mc_results": [{
			"question_id": "q1",
			"question": "Best snack?",
			"options": [
				{"option_id": "o1", "option_text": "Candy"},
				{"option_id": "o2", "option_text": "Chips"}
			],
			"votes": [
				{"id": "v1", "option_id": "o2"},
				{"id": "v2", "option_id": "o2"},
				{"id": "v3", "option_id": "o1"}
			]
		}]
	}`
	server := resultsServer(t, body, nil)
	defer server.Close()
	c := NewClient(server.URL)

	payload, err := c.FetchResults(context.Background(), "pw")

	require.NoError(t, err)
	require.Len(t, payload.McResults, 1)
	options := payload.McResults[0].Options
	require.Len(t, options, 2)
	assert.Equal(t, "Chips", options[0].OptionText)
	assert.Equal(t, 2, options[0].VoteCount)
	assert.Equal(t, 1, options[1].VoteCount)
}
