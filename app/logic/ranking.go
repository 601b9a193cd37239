/* ranking.go
 * Contains the logic for assigning ranks to tallied results. Ranks use competition
 * ("1224") ranking: tied records share a rank and the next distinct value skips
 * ahead by the size of the tie group, so two records tied at rank 1 are followed
 * by rank 3, not rank 2.
 * Authors: Zachary Bower
 */

package logic

// RankCounts assigns competition ranks to a sequence of vote counts.
// Preconditions: Receives an int slice already sorted in descending order
// Postconditions: Returns a slice of the same length where ranks[i] is the 1-based
// rank of counts[i]; equal neighbours share a rank, the rank after a tie group is
// the 1-based position. Empty input returns an empty slice
func RankCounts(counts []int) []int {
	ranks := make([]int, len(counts))
	for i := range counts {
		if i > 0 && counts[i] == counts[i-1] {
			ranks[i] = ranks[i-1]
		} else {
			ranks[i] = i + 1
		}
	}
	return ranks
}

// RankCategoryResults sets the Rank field on each record.
// Preconditions: Receives a CategoryResult slice already sorted by vote count descending
// Postconditions: Ranks are assigned in place following RankCounts and the same slice is returned
func RankCategoryResults(results []CategoryResult) []CategoryResult {
	counts := make([]int, len(results))
	for i := range results {
		counts[i] = results[i].VoteCount
	}
	ranks := RankCounts(counts)
	for i := range results {
		results[i].Rank = ranks[i]
	}
	return results
}

// RankMcResults sets the Rank field on each option record, following RankCounts
func RankMcResults(results []McOptionResult) []McOptionResult {
	counts := make([]int, len(results))
	for i := range results {
		counts[i] = results[i].VoteCount
	}
	ranks := RankCounts(counts)
	for i := range results {
		results[i].Rank = ranks[i]
	}
	return results
}

// FilterTopCategories retains only records whose rank is within maxRank.
// The cut is rank inclusive, not count inclusive: a tie at rank 1 can fill the
// "top 3" with only two distinct vote counts, and records past the cutoff are
// dropped even when they have votes. maxRank <= 0 keeps everything
func FilterTopCategories(results []CategoryResult, maxRank int) []CategoryResult {
	if maxRank <= 0 {
		return results
	}
	var kept []CategoryResult
	for _, r := range results {
		if r.Rank <= maxRank {
			kept = append(kept, r)
		}
	}
	return kept
}

// FilterTopMcOptions retains only option records whose rank is within maxRank,
// with the same rank-inclusive semantics as FilterTopCategories
func FilterTopMcOptions(results []McOptionResult, maxRank int) []McOptionResult {
	if maxRank <= 0 {
		return results
	}
	var kept []McOptionResult
	for _, r := range results {
		if r.Rank <= maxRank {
			kept = append(kept, r)
		}
	}
	return kept
}
