/* models.go
 * This file contains the structs returned to app consumers (the render surface)
 * Authors: Zachary Bower
 */

package app

import (
	"costume-vote/app/logic"
	"costume-vote/app/shared"
)

// VotingData is the snapshot a voting session works against: the backend's
// categories, entries and questions plus this device's persisted selections
type VotingData struct {
	VoterID         string
	Categories      []shared.Category
	Entries         []shared.Entry
	Questions       []shared.McQuestion
	Selected        map[string]string // category id -> entry id
	SelectedOptions map[string]string // question id -> option id
}

// RankedCategory is the finished results view of one category: sorted, ranked,
// percentaged, winner marked and cut to the configured top ranks
type RankedCategory struct {
	Category string
	Results  []logic.CategoryResult
}

// RankedQuestion is the finished results view of one multiple choice question
type RankedQuestion struct {
	QuestionID string
	Question   string
	Options    []logic.McOptionResult
}

// RankedResults combines both result views
type RankedResults struct {
	Categories []RankedCategory
	Questions  []RankedQuestion
}

// ModerationStats are the admin dashboard counters
type ModerationStats struct {
	TotalEntries int
	TotalVotes   int
	TotalMcVotes int
	DeletedItems int
}

// ModerationReport is everything the admin view renders: raw rows including soft
// deleted ones, the per voter groupings and the dashboard counters
type ModerationReport struct {
	Entries       []shared.Entry
	Votes         []shared.AdminVote
	McVotes       []shared.AdminMcVote
	VoterGroups   []logic.VoterGroup
	McVoterGroups []logic.McVoterGroup
	Stats         ModerationStats
}
