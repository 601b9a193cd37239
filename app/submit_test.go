/* submit_test.go
 * Contains unit tests for bulk vote submission: the fan out, the all or nothing
 * failure rule and the clearing of local selections on success
 * Authors: Zachary Bower
 */

package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSubmitVotes_FansOutOnePerSelection tests that exactly one request is issued
// per recorded selection and the count comes back
func TestSubmitVotes_FansOutOnePerSelection(t *testing.T) {
	var votes, mcVotes int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/votes":
			atomic.AddInt32(&votes, 1)
		case "/api/mc-votes":
			atomic.AddInt32(&mcVotes, 1)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()
	a := newTestApp(t, server, 0)

	require.NoError(t, a.SelectEntry("scariest", "e1"))
	require.NoError(t, a.SelectEntry("funniest", "e2"))
	require.NoError(t, a.SelectOption("q1", "o1"))

	count, err := a.SubmitVotes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.EqualValues(t, 2, atomic.LoadInt32(&votes))
	assert.EqualValues(t, 1, atomic.LoadInt32(&mcVotes))
}

// TestSubmitVotes_ClearsSelectionsOnSuccess tests that a successful submission
// leaves the device with no recorded selections
func TestSubmitVotes_ClearsSelectionsOnSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()
	a := newTestApp(t, server, 0)

	require.NoError(t, a.SelectEntry("scariest", "e1"))
	_, err := a.SubmitVotes(context.Background())
	require.NoError(t, err)

	selected, selectedOptions, err := a.Store.LoadVotes()
	require.NoError(t, err)
	assert.Empty(t, selected)
	assert.Empty(t, selectedOptions)
}

// TestSubmitVotes_AllOrNothing tests that one rejected request fails the whole
// submission and the local selections are kept for a retry
func TestSubmitVotes_AllOrNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/mc-votes" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()
	a := newTestApp(t, server, 0)

	require.NoError(t, a.SelectEntry("scariest", "e1"))
	require.NoError(t, a.SelectOption("q1", "o1"))

	count, err := a.SubmitVotes(context.Background())

	require.Error(t, err)
	assert.Equal(t, 0, count)

	selected, selectedOptions, loadErr := a.Store.LoadVotes()
	require.NoError(t, loadErr)
	assert.Len(t, selected, 1)
	assert.Len(t, selectedOptions, 1)
}

// TestSubmitVotes_NothingSelected tests that an empty selection submits nothing
// and is not an error
func TestSubmitVotes_NothingSelected(t *testing.T) {
	requests := int32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer server.Close()
	a := newTestApp(t, server, 0)

	count, err := a.SubmitVotes(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.EqualValues(t, 0, atomic.LoadInt32(&requests))
}

// TestSubmitVotes_SendsVoterID tests that every request carries this device's voter id
func TestSubmitVotes_SendsVoterID(t *testing.T) {
	bodies := make(chan []byte, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		select {
		case bodies <- buf:
		default:
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()
	a := newTestApp(t, server, 0)

	voterID, err := a.Store.VoterID()
	require.NoError(t, err)
	require.NoError(t, a.SelectEntry("scariest", "e1"))

	_, err = a.SubmitVotes(context.Background())
	require.NoError(t, err)

	assert.Contains(t, string(<-bodies), voterID)
}
