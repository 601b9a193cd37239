/* identity.go
 * Contains the persisted voter identity. The identifier stands in for account
 * based authentication: generated once per device from a random token and the
 * current time, then reused for every later session
 * Authors: Zachary Bower
 */

package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VoterID returns the persisted voter identifier, generating and persisting a new
// one on first use.
// Postconditions: Returns the identical value on every call for the same device
// store, across process restarts, or an error if persistence fails
func (s *Store) VoterID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok, err := s.getValue(keyVoterID)
	if err != nil {
		return "", err
	}
	if ok && id != "" {
		return id, nil
	}

	id = fmt.Sprintf("voter_%s_%d", uuid.NewString(), time.Now().UnixMilli())
	if err := s.setValue(keyVoterID, id); err != nil {
		return "", err
	}
	return id, nil
}
