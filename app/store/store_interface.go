/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Zachary Bower
 */

package store

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	VoterID() (string, error)
	LoadVotes() (map[string]string, map[string]string, error)
	RecordVote(categoryID, entryID string) error
	RecordMcVote(questionID, optionID string) error
	ClearVotes() error
	Close() error
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)
