/* search.go
 * Contains fuzzy name matching used by the admin search box and the command
 * interface, so voters can pick entries and categories by approximate name
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"costume-vote/app/shared"
)

// MatchEntry resolves a user supplied name to a single entry.
// Preconditions: Receives the input string and the list of candidate entries
// Postconditions: Returns the matched entry. If several entries fuzzy match, an
// exact (case insensitive) match on participant or costume name wins, otherwise
// the first match in entry order is taken. Returns an error when nothing matches
func MatchEntry(input string, entries []shared.Entry) (shared.Entry, error) {
	lookup := make(map[string]shared.Entry)
	var names []string
	for _, e := range entries {
		if e.Deleted {
			continue
		}
		for _, n := range []string{strings.ToLower(e.Name), strings.ToLower(e.CostumeName)} {
			if _, seen := lookup[n]; !seen {
				lookup[n] = e
				names = append(names, n)
			}
		}
	}

	lower := strings.ToLower(strings.TrimSpace(input))
	matches := fuzzy.RankFind(lower, names)
	if len(matches) == 0 {
		return shared.Entry{}, fmt.Errorf("no entry matches '%s'", input)
	}

	best := matches[0].Target
	for _, m := range matches {
		if m.Target == lower {
			best = m.Target
		}
	}
	return lookup[best], nil
}

// MatchCategory resolves a user supplied name or id to a single category, with
// the same exact-match preference as MatchEntry
func MatchCategory(input string, categories []shared.Category) (shared.Category, error) {
	lookup := make(map[string]shared.Category)
	var names []string
	for _, c := range categories {
		for _, n := range []string{strings.ToLower(c.ID), strings.ToLower(c.Name)} {
			if _, seen := lookup[n]; !seen {
				lookup[n] = c
				names = append(names, n)
			}
		}
	}

	lower := strings.ToLower(strings.TrimSpace(input))
	matches := fuzzy.RankFind(lower, names)
	if len(matches) == 0 {
		return shared.Category{}, fmt.Errorf("no category matches '%s'", input)
	}

	best := matches[0].Target
	for _, m := range matches {
		if m.Target == lower {
			best = m.Target
		}
	}
	return lookup[best], nil
}

// SearchEntries returns every entry whose participant or costume name fuzzy
// matches the query, preserving the input order. Deleted entries are included
// since the caller is the admin view. An empty query returns everything
func SearchEntries(query string, entries []shared.Entry) []shared.Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}

	var hits []shared.Entry
	for _, e := range entries {
		if fuzzy.MatchFold(q, e.Name) || fuzzy.MatchFold(q, e.CostumeName) {
			hits = append(hits, e)
		}
	}
	return hits
}
