/* submit.go
 * Contains the bulk vote submission and the entry upload passthrough. Bulk
 * submission fans out one request per recorded selection and joins on all of
 * them: the operation only succeeds if every request succeeded
 * Authors: Zachary Bower
 */

package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"costume-vote/app/shared"
)

// SubmitVotes sends every selection recorded on this device to the backend.
// One request is issued per selected category and per answered question,
// concurrently. If any single request fails the whole operation fails, even when
// the others succeeded; no partial success is reported and nothing is retried.
// On success the local selections are cleared so the next session starts fresh.
// Postconditions: Returns the number of votes submitted, or an error carrying the
// first failure
func (a *App) SubmitVotes(ctx context.Context) (int, error) {
	voterID, err := a.Store.VoterID()
	if err != nil {
		return 0, err
	}

	selected, selectedOptions, err := a.Store.LoadVotes()
	if err != nil {
		return 0, err
	}

	total := len(selected) + len(selectedOptions)
	if total == 0 {
		return 0, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for categoryID, entryID := range selected {
		g.Go(func() error {
			return a.Client.SubmitVote(ctx, voterID, categoryID, entryID)
		})
	}
	for questionID, optionID := range selectedOptions {
		g.Go(func() error {
			return a.Client.SubmitMcVote(ctx, voterID, questionID, optionID)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := a.Store.ClearVotes(); err != nil {
		return total, err
	}
	return total, nil
}

// SubmitEntry validates and uploads a new costume entry. Validation failures are
// surfaced as *backend.ValidationError before any network call
func (a *App) SubmitEntry(ctx context.Context, name, costumeName, photoPath string) (*shared.Entry, error) {
	return a.Client.SubmitEntry(ctx, name, costumeName, photoPath)
}
