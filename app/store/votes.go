/* votes.go
 * Contains the methods for the local vote selections. The selections are a single
 * JSON blob mapping category ids to entry ids and question ids to option ids,
 * persisted synchronously after every mutation. This is what enforces at most one
 * active choice per category per device: recording over a key overwrites it
 * Authors: Zachary Bower
 */

package store

import "encoding/json"

// selections is the persisted shape of the JSON blob. Unknown fields in older or
// newer blobs are ignored by the decoder
type selections struct {
	Categories map[string]string `json:"categories"`
	Questions  map[string]string `json:"questions"`
}

// loadSelections reads and decodes the blob. A missing key or an undecodable blob
// yields empty maps rather than an error. Callers must hold s.mu
func (s *Store) loadSelections() (selections, error) {
	sel := selections{}

	raw, ok, err := s.getValue(keySelections)
	if err != nil {
		return sel, err
	}
	if ok {
		// Tolerate a corrupt blob by starting over rather than wedging the voter
		_ = json.Unmarshal([]byte(raw), &sel)
	}

	if sel.Categories == nil {
		sel.Categories = make(map[string]string)
	}
	if sel.Questions == nil {
		sel.Questions = make(map[string]string)
	}
	return sel, nil
}

// saveSelections encodes and persists the blob. Callers must hold s.mu
func (s *Store) saveSelections(sel selections) error {
	raw, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	return s.setValue(keySelections, string(raw))
}

// LoadVotes reads the persisted selections.
// Postconditions: Returns the category to entry map and the question to option
// map. Absent state yields empty maps, not an error
func (s *Store) LoadVotes() (map[string]string, map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, err := s.loadSelections()
	if err != nil {
		return nil, nil, err
	}
	return sel.Categories, sel.Questions, nil
}

// RecordVote stores the chosen entry for a category, overwriting any prior
// selection for that category, and persists before returning. No network I/O
// happens here; submission to the backend is a separate explicit step
func (s *Store) RecordVote(categoryID, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, err := s.loadSelections()
	if err != nil {
		return err
	}
	sel.Categories[categoryID] = entryID
	return s.saveSelections(sel)
}

// RecordMcVote stores the chosen option for a question with the same overwrite
// and synchronous persist semantics as RecordVote
func (s *Store) RecordMcVote(questionID, optionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, err := s.loadSelections()
	if err != nil {
		return err
	}
	sel.Questions[questionID] = optionID
	return s.saveSelections(sel)
}

// ClearVotes drops every recorded selection, used after a successful bulk
// submission. The voter identity is not touched
func (s *Store) ClearVotes() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveSelections(selections{
		Categories: make(map[string]string),
		Questions:  make(map[string]string),
	})
}
