/* results.go
 * Contains the logic for aggregating raw vote rows into per category and per
 * question tallies, computing percentages and marking winners. Sorting happens
 * here, rank assignment lives in ranking.go
 * Authors: Zachary Bower
 */

package logic

import (
	"math"
	"sort"

	"costume-vote/app/shared"
)

// CategoryResult is the tally for one entry within one category
type CategoryResult struct {
	EntryID     string  `json:"entry_id"`
	Name        string  `json:"name"`
	CostumeName string  `json:"costume_name"`
	PhotoURL    string  `json:"photo_url"`
	VoteCount   int     `json:"vote_count"`
	Rank        int     `json:"rank"`
	Percentage  float64 `json:"percentage"`
	Winner      bool    `json:"winner"`
}

// McOptionResult is the tally for one option of a multiple choice question
type McOptionResult struct {
	OptionID   string  `json:"option_id"`
	OptionText string  `json:"option_text"`
	VoteCount  int     `json:"vote_count"`
	Rank       int     `json:"rank"`
	Percentage float64 `json:"percentage"`
	Winner     bool    `json:"winner"`
}

// AggregateCategoryResults counts active votes per active entry for a single category.
// Preconditions: Receives the entry list and the raw vote rows for one category
// Postconditions: Returns one record per non deleted entry with its count of non
// deleted votes (zero if uncounted), sorted by vote count descending then name ascending
func AggregateCategoryResults(entries []shared.Entry, votes []shared.Vote) []CategoryResult {
	counts := make(map[string]int)
	for _, v := range votes {
		if v.Deleted {
			continue
		}
		counts[v.EntryID]++
	}

	var results []CategoryResult
	for _, e := range entries {
		if e.Deleted {
			continue
		}
		results = append(results, CategoryResult{
			EntryID:     e.ID,
			Name:        e.Name,
			CostumeName: e.CostumeName,
			PhotoURL:    e.PhotoURL,
			VoteCount:   counts[e.ID],
		})
	}

	SortCategoryResults(results)
	return results
}

// AggregateMcResults counts active votes per option of one question.
// Postconditions: Returns one record per option with its count of non deleted votes,
// sorted by vote count descending then option text ascending
func AggregateMcResults(question shared.McQuestion, votes []shared.McVote) []McOptionResult {
	counts := make(map[string]int)
	for _, v := range votes {
		if v.Deleted {
			continue
		}
		counts[v.OptionID]++
	}

	var results []McOptionResult
	for _, opt := range question.Options {
		results = append(results, McOptionResult{
			OptionID:   opt.ID,
			OptionText: opt.OptionText,
			VoteCount:  counts[opt.ID],
		})
	}

	SortMcResults(results)
	return results
}

// SortCategoryResults orders records by vote count descending, breaking ties by
// name ascending so repeated aggregations render in a stable order
func SortCategoryResults(results []CategoryResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].VoteCount != results[j].VoteCount {
			return results[i].VoteCount > results[j].VoteCount
		}
		return results[i].Name < results[j].Name
	})
}

// SortMcResults orders option records by vote count descending then option text ascending
func SortMcResults(results []McOptionResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].VoteCount != results[j].VoteCount {
			return results[i].VoteCount > results[j].VoteCount
		}
		return results[i].OptionText < results[j].OptionText
	})
}

// Percentage returns count as a share of total in percent, rounded to one decimal.
// A total of zero yields 0 rather than NaN
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// ApplyCategoryPercentages fills the Percentage field of every record. The
// denominator is the vote total across ALL records passed in, so this must be
// called before any top-N filtering: truncating the denominator to the displayed
// subset would silently inflate percentages
func ApplyCategoryPercentages(results []CategoryResult) []CategoryResult {
	total := 0
	for _, r := range results {
		total += r.VoteCount
	}
	for i := range results {
		results[i].Percentage = Percentage(results[i].VoteCount, total)
	}
	return results
}

// ApplyMcPercentages fills the Percentage field of every option record, with the
// same all-options denominator rule as ApplyCategoryPercentages
func ApplyMcPercentages(results []McOptionResult) []McOptionResult {
	total := 0
	for _, r := range results {
		total += r.VoteCount
	}
	for i := range results {
		results[i].Percentage = Percentage(results[i].VoteCount, total)
	}
	return results
}

// MarkCategoryWinners sets Winner on every rank 1 record that has at least one
// vote. A category with no votes has no winner even though its first record
// still carries rank 1
func MarkCategoryWinners(results []CategoryResult) []CategoryResult {
	for i := range results {
		results[i].Winner = results[i].Rank == 1 && results[i].VoteCount > 0
	}
	return results
}

// MarkMcWinners sets Winner on rank 1 options with a nonzero count
func MarkMcWinners(results []McOptionResult) []McOptionResult {
	for i := range results {
		results[i].Winner = results[i].Rank == 1 && results[i].VoteCount > 0
	}
	return results
}

// FinalizeCategoryResults runs the full pipeline over a raw tally: sort, rank,
// percentages, winner marking and finally the top-N cut. Percentages are computed
// before the cut so the denominator covers every entry. maxRank <= 0 disables the cut
func FinalizeCategoryResults(results []CategoryResult, maxRank int) []CategoryResult {
	SortCategoryResults(results)
	RankCategoryResults(results)
	ApplyCategoryPercentages(results)
	MarkCategoryWinners(results)
	return FilterTopCategories(results, maxRank)
}

// FinalizeMcResults runs the full pipeline over option tallies, mirroring
// FinalizeCategoryResults
func FinalizeMcResults(results []McOptionResult, maxRank int) []McOptionResult {
	SortMcResults(results)
	RankMcResults(results)
	ApplyMcPercentages(results)
	MarkMcWinners(results)
	return FilterTopMcOptions(results, maxRank)
}
