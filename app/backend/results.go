/* results.go
 * Contains the password protected results endpoint and the normalization of its
 * two historical response shapes. The service originally returned raw vote rows
 * per category and later moved to server side pre-aggregated counts; both shapes
 * must produce identical tallies here so the rest of the client never notices
 * Authors: Zachary Bower
 */

package backend

import (
	"context"

	"costume-vote/app/logic"
	"costume-vote/app/shared"
)

// CategoryResults is the normalized tally for one category
type CategoryResults struct {
	Category string
	Results  []logic.CategoryResult
}

// McResults is the normalized tally for one multiple choice question
type McResults struct {
	QuestionID string
	Question   string
	Options    []logic.McOptionResult
}

// ResultsPayload combines both halves of the results response
type ResultsPayload struct {
	CategoryResults []CategoryResults
	McResults       []McResults
}

type resultsRequest struct {
	Password string `json:"password"`
}

// entryResultJSON is one entry in the category results. VoteCount is a pointer so
// that a pre-aggregated response (count present, possibly zero) can be told apart
// from a raw-row response (count absent)
type entryResultJSON struct {
	EntryID     string `json:"entry_id"`
	Name        string `json:"name"`
	CostumeName string `json:"costume_name"`
	PhotoURL    string `json:"photo_url"`
	VoteCount   *int   `json:"vote_count"`
}

type categoryResultsJSON struct {
	Category string            `json:"category"`
	Results  []entryResultJSON `json:"results"`
	Votes    []shared.Vote     `json:"votes"`
}

type mcOptionResultJSON struct {
	OptionID   string `json:"option_id"`
	OptionText string `json:"option_text"`
	VoteCount  *int   `json:"vote_count"`
}

type mcResultsJSON struct {
	QuestionID string               `json:"question_id"`
	Question   string               `json:"question"`
	Options    []mcOptionResultJSON `json:"options"`
	Votes      []shared.McVote      `json:"votes"`
}

type resultsEnvelope struct {
	CategoryResults []categoryResultsJSON `json:"category_results"`
	McResults       []mcResultsJSON       `json:"mc_results"`
}

// FetchResults gets the tallied results, authenticating with the results password.
// Postconditions: Returns normalized per category and per question tallies sorted
// by vote count descending, or ErrAuth for a bad password, or another error on failure
func (c *Client) FetchResults(ctx context.Context, password string) (*ResultsPayload, error) {
	var envelope resultsEnvelope
	if err := c.postJSON(ctx, "/api/results", resultsRequest{Password: password}, &envelope); err != nil {
		return nil, err
	}

	payload := &ResultsPayload{}
	for _, cat := range envelope.CategoryResults {
		payload.CategoryResults = append(payload.CategoryResults, CategoryResults{
			Category: cat.Category,
			Results:  normalizeCategoryResults(cat),
		})
	}
	for _, q := range envelope.McResults {
		payload.McResults = append(payload.McResults, McResults{
			QuestionID: q.QuestionID,
			Question:   q.Question,
			Options:    normalizeMcResults(q),
		})
	}
	return payload, nil
}

// normalizeCategoryResults converts either response shape into sorted tallies.
// Pre-aggregated counts are used as is; raw rows are counted client side
func normalizeCategoryResults(cat categoryResultsJSON) []logic.CategoryResult {
	aggregated := true
	for _, item := range cat.Results {
		if item.VoteCount == nil {
			aggregated = false
			break
		}
	}

	if aggregated {
		var results []logic.CategoryResult
		for _, item := range cat.Results {
			results = append(results, logic.CategoryResult{
				EntryID:     item.EntryID,
				Name:        item.Name,
				CostumeName: item.CostumeName,
				PhotoURL:    item.PhotoURL,
				VoteCount:   *item.VoteCount,
			})
		}
		logic.SortCategoryResults(results)
		return results
	}

	entries := make([]shared.Entry, 0, len(cat.Results))
	for _, item := range cat.Results {
		entries = append(entries, shared.Entry{
			ID:          item.EntryID,
			Name:        item.Name,
			CostumeName: item.CostumeName,
			PhotoURL:    item.PhotoURL,
		})
	}
	return logic.AggregateCategoryResults(entries, cat.Votes)
}

// normalizeMcResults converts either response shape into sorted option tallies
func normalizeMcResults(q mcResultsJSON) []logic.McOptionResult {
	aggregated := true
	for _, opt := range q.Options {
		if opt.VoteCount == nil {
			aggregated = false
			break
		}
	}

	if aggregated {
		var results []logic.McOptionResult
		for _, opt := range q.Options {
			results = append(results, logic.McOptionResult{
				OptionID:   opt.OptionID,
				OptionText: opt.OptionText,
				VoteCount:  *opt.VoteCount,
			})
		}
		logic.SortMcResults(results)
		return results
	}

	question := shared.McQuestion{ID: q.QuestionID, Question: q.Question}
	for _, opt := range q.Options {
		question.Options = append(question.Options, shared.McOption{
			ID:         opt.OptionID,
			OptionText: opt.OptionText,
		})
	}
	return logic.AggregateMcResults(question, q.Votes)
}
