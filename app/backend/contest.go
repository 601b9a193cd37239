/* contest.go
 * Contains the public voting endpoints: categories, entries, multiple choice
 * questions and vote submission
 * Authors: Zachary Bower
 */

package backend

import (
	"context"
	"sort"

	"costume-vote/app/shared"
)

// voteRequest is the wire shape of a costume vote submission
type voteRequest struct {
	Category string `json:"category"`
	EntryID  string `json:"entry_id"`
	VoterID  string `json:"voter_id"`
}

// mcVoteRequest is the wire shape of a multiple choice vote submission
type mcVoteRequest struct {
	QuestionID string `json:"question_id"`
	OptionID   string `json:"option_id"`
	VoterID    string `json:"voter_id"`
}

// FetchCategories gets the fixed voting categories.
// Postconditions: Returns the categories sorted by display order ascending, or an
// error if the request fails
func (c *Client) FetchCategories(ctx context.Context) ([]shared.Category, error) {
	var categories []shared.Category
	if err := c.getJSON(ctx, "/api/categories", &categories); err != nil {
		return nil, err
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Order < categories[j].Order
	})
	return categories, nil
}

// FetchEntries gets the costume entries visible to voters
func (c *Client) FetchEntries(ctx context.Context) ([]shared.Entry, error) {
	var entries []shared.Entry
	if err := c.getJSON(ctx, "/api/entries", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FetchMcQuestions gets the multiple choice questions, sorted by display order
func (c *Client) FetchMcQuestions(ctx context.Context) ([]shared.McQuestion, error) {
	var questions []shared.McQuestion
	if err := c.getJSON(ctx, "/api/mc-questions", &questions); err != nil {
		return nil, err
	}
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].DisplayOrder < questions[j].DisplayOrder
	})
	return questions, nil
}

// SubmitVote submits one costume vote for the given voter. The backend keeps one
// conceptual vote per (voter, category) pair and replaces on resubmission
func (c *Client) SubmitVote(ctx context.Context, voterID, categoryID, entryID string) error {
	payload := voteRequest{Category: categoryID, EntryID: entryID, VoterID: voterID}
	return c.postJSON(ctx, "/api/votes", payload, nil)
}

// SubmitMcVote submits one multiple choice vote for the given voter
func (c *Client) SubmitMcVote(ctx context.Context, voterID, questionID, optionID string) error {
	payload := mcVoteRequest{QuestionID: questionID, OptionID: optionID, VoterID: voterID}
	return c.postJSON(ctx, "/api/mc-votes", payload, nil)
}
