/* models.go
 * This file contains the structs that are shared between sub packages. These mirror the
 * JSON record shapes served by the contest backend.
 * Authors: Zachary Bower
 */

package shared

import "time"

// Category is a fixed voting category supplied by the backend. Ordering is by Order ascending.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// Entry is a costume entry. Deleted entries are soft deleted: hidden from voters
// but kept in admin views and restorable.
type Entry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CostumeName string    `json:"costume_name"`
	PhotoURL    string    `json:"photo_url"`
	CreatedAt   time.Time `json:"created_at"`
	Deleted     bool      `json:"deleted"`
}

// Vote is one vote row. The backend may hold several historical rows for the same
// (voter, category) pair if a voter resubmitted; the local store is what enforces
// one active choice per category per device.
type Vote struct {
	ID        string    `json:"id"`
	VoterID   string    `json:"voter_id"`
	Category  string    `json:"category"`
	EntryID   string    `json:"entry_id"`
	CreatedAt time.Time `json:"created_at"`
	Deleted   bool      `json:"deleted"`
}

// McOption is one answer choice of a multiple choice question
type McOption struct {
	ID         string `json:"id"`
	OptionText string `json:"option_text"`
}

// McQuestion is an optional multiple choice question voted on alongside the costume categories
type McQuestion struct {
	ID           string     `json:"id"`
	Question     string     `json:"question"`
	DisplayOrder int        `json:"display_order"`
	Options      []McOption `json:"options"`
}

// McVote is one multiple choice vote row
type McVote struct {
	ID         string    `json:"id"`
	VoterID    string    `json:"voter_id"`
	QuestionID string    `json:"question_id"`
	OptionID   string    `json:"option_id"`
	CreatedAt  time.Time `json:"created_at"`
	Deleted    bool      `json:"deleted"`
}

// AdminVote is a vote row as served by the admin endpoints, with the entry's
// display fields joined in by the backend
type AdminVote struct {
	ID          string    `json:"id"`
	VoterID     string    `json:"voter_id"`
	Category    string    `json:"category"`
	EntryID     string    `json:"entry_id"`
	EntryName   string    `json:"entry_name"`
	CostumeName string    `json:"costume_name"`
	CreatedAt   time.Time `json:"created_at"`
	Deleted     bool      `json:"deleted"`
}

// AdminMcVote is a multiple choice vote row as served by the admin endpoints,
// with the question and option text joined in by the backend
type AdminMcVote struct {
	ID         string    `json:"id"`
	VoterID    string    `json:"voter_id"`
	QuestionID string    `json:"question_id"`
	Question   string    `json:"question"`
	OptionID   string    `json:"option_id"`
	OptionText string    `json:"option_text"`
	CreatedAt  time.Time `json:"created_at"`
	Deleted    bool      `json:"deleted"`
}
