/* moderation.go
 * Contains the grouping and status derivation used by the admin moderation view.
 * The backend performs the actual delete/restore mutations; this file only
 * pre-aggregates raw rows for rendering
 * Authors: Zachary Bower
 */

package logic

import "costume-vote/app/shared"

// Moderation status labels derived from the deleted flags of a voter's rows
const (
	StatusActive  = "Active"
	StatusPartial = "Partial"
	StatusDeleted = "Deleted"
)

// VoterGroup summarises all costume vote rows cast by one voter
type VoterGroup struct {
	VoterID    string
	Categories []string
	VoteCount  int
	HasDeleted bool
	AllDeleted bool
}

// McVoterGroup summarises all multiple choice vote rows cast by one voter
type McVoterGroup struct {
	VoterID    string
	Questions  []string
	VoteCount  int
	HasDeleted bool
	AllDeleted bool
}

// StatusLabel derives the three state moderation status from the two deleted flags.
// Preconditions: Receives hasDeleted (at least one row deleted) and allDeleted (every row deleted)
// Postconditions: Returns "Deleted" if allDeleted, else "Partial" if hasDeleted, else "Active"
func StatusLabel(hasDeleted, allDeleted bool) string {
	if allDeleted {
		return StatusDeleted
	}
	if hasDeleted {
		return StatusPartial
	}
	return StatusActive
}

// Status returns the moderation status label for the group
func (g VoterGroup) Status() string {
	return StatusLabel(g.HasDeleted, g.AllDeleted)
}

// Status returns the moderation status label for the group
func (g McVoterGroup) Status() string {
	return StatusLabel(g.HasDeleted, g.AllDeleted)
}

// GroupVotesByVoter groups raw admin vote rows by voter id.
// Preconditions: Receives the admin vote rows and a map of category id to display name
// Postconditions: Returns one group per voter, ordered by first appearance in the
// input, listing category names in row order. A voter with zero rows never appears;
// callers rendering an empty selection treat it as Active with count 0
func GroupVotesByVoter(votes []shared.AdminVote, categoryNames map[string]string) []VoterGroup {
	index := make(map[string]int)
	var groups []VoterGroup

	for _, v := range votes {
		i, ok := index[v.VoterID]
		if !ok {
			i = len(groups)
			index[v.VoterID] = i
			groups = append(groups, VoterGroup{VoterID: v.VoterID, AllDeleted: true})
		}

		name, ok := categoryNames[v.Category]
		if !ok {
			name = v.Category
		}
		groups[i].Categories = append(groups[i].Categories, name)
		groups[i].VoteCount++
		if v.Deleted {
			groups[i].HasDeleted = true
		} else {
			groups[i].AllDeleted = false
		}
	}

	return groups
}

// GroupMcVotesByVoter groups raw admin multiple choice vote rows by voter id,
// listing question texts in row order. Same ordering and status semantics as
// GroupVotesByVoter
func GroupMcVotesByVoter(votes []shared.AdminMcVote) []McVoterGroup {
	index := make(map[string]int)
	var groups []McVoterGroup

	for _, v := range votes {
		i, ok := index[v.VoterID]
		if !ok {
			i = len(groups)
			index[v.VoterID] = i
			groups = append(groups, McVoterGroup{VoterID: v.VoterID, AllDeleted: true})
		}

		groups[i].Questions = append(groups[i].Questions, v.Question)
		groups[i].VoteCount++
		if v.Deleted {
			groups[i].HasDeleted = true
		} else {
			groups[i].AllDeleted = false
		}
	}

	return groups
}
