/* utils.go
 * Utility functions used across the application
 * Authors: Zachary Bower
 */

package main

import (
	"os"
	"strings"
)

// envOr reads an environment variable with a fallback for when it is unset or blank
// Preconditions: Receives the variable name and a default value
// Postconditions: Returns the trimmed environment value, or def when it is empty
func envOr(key, def string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	return val
}
