/* contest_test.go
 * Contains unit tests for the public voting endpoints
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

// TestFetchCategories_SortsByOrder tests that categories come back in display order
func TestFetchCategories_SortsByOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/categories", r.URL.Path)
		w.Write([]byte(`[
			{"id": "funniest", "name": "Funniest Costume", "order": 2},
			{"id": "scariest", "name": "Scariest Costume", "order": 1}
		]`))
	}))
	defer server.Close()
	c := NewClient(server.URL)

	categories, err := c.FetchCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "scariest", categories[0].ID)
	assert.Equal(t, "funniest", categories[1].ID)
}

// TestFetchEntries_DecodesRecords tests decoding the entry listing
func TestFetchEntries_DecodesRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/entries", r.URL.Path)
		w.Write([]byte(`[
			{"id": "e1", "name": "Alice", "costume_name": "Witch", "photo_url": "/photos/e1.jpg"}
		]`))
	}))
	defer server.Close()
	c := NewClient(server.URL)

	entries, err := c.FetchEntries(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Witch", entries[0].CostumeName)
	assert.Equal(t, "/photos/e1.jpg", entries[0].PhotoURL)
}

// TestFetchMcQuestions_SortsByDisplayOrder tests that questions come back in display order
func TestFetchMcQuestions_SortsByDisplayOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": "q2", "question": "Best snack?", "display_order": 2, "options": []},
			{"id": "q1", "question": "Best soundtrack?", "display_order": 1, "options": [
				{"id": "o1", "option_text": "Thriller"}
			]}
		]`))
	}))
	defer server.Close()
	c := NewClient(server.URL)

	questions, err := c.FetchMcQuestions(context.Background())

	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "q1", questions[0].ID)
	require.Len(t, questions[0].Options, 1)
	assert.Equal(t, "Thriller", questions[0].Options[0].OptionText)
}

// TestSubmitVote_PostsWireShape tests the body and path of a vote submission
func TestSubmitVote_PostsWireShape(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/votes", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()
	c := NewClient(server.URL)

	err := c.SubmitVote(context.Background(), "voter_abc_123", "scariest", "e1")

	require.NoError(t, err)
	assert.Equal(t, "scariest", got["category"])
	assert.Equal(t, "e1", got["entry_id"])
	assert.Equal(t, "voter_abc_123", got["voter_id"])
}

// TestSubmitMcVote_PostsWireShape tests the body and path of a question vote submission
func TestSubmitMcVote_PostsWireShape(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/mc-votes", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()
	c := NewClient(server.URL)

	err := c.SubmitMcVote(context.Background(), "voter_abc_123", "q1", "o1")

	require.NoError(t, err)
	assert.Equal(t, "q1", got["question_id"])
	assert.Equal(t, "o1", got["option_id"])
}
