package scoring

import "sort"

// Entry carries the already-weighted component scores for one user inside
// a ranking scope. Missing components simply stay at their zero value.
type Entry struct {
	UserID                uint    `json:"user_id"`
	AssignmentScore       float64 `json:"assignment_score"`
	AttendanceScore       float64 `json:"attendance_score"`
	TimelySubmissionScore float64 `json:"timely_submission_score"`
}

// RankedEntry is an Entry annotated with its composite score and rank.
type RankedEntry struct {
	Entry
	TotalScore float64 `json:"total_score"`
	Rank       int     `json:"rank"`
}

// Rank sums each entry's components and orders the result by total score
// descending, assigning standard competition ranks: tied totals share a
// rank and the next distinct total ranks one past the count of strictly
// higher entries. Ties are ordered by user ID so repeated runs over the
// same input produce identical output. An empty input yields an empty,
// non-nil slice.
func Rank(entries []Entry) []RankedEntry {
	ranked := make([]RankedEntry, 0, len(entries))
	for _, entry := range entries {
		ranked = append(ranked, RankedEntry{
			Entry:      entry,
			TotalScore: entry.AssignmentScore + entry.AttendanceScore + entry.TimelySubmissionScore,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalScore != ranked[j].TotalScore {
			return ranked[i].TotalScore > ranked[j].TotalScore
		}
		return ranked[i].UserID < ranked[j].UserID
	})

	for i := range ranked {
		if i > 0 && ranked[i].TotalScore == ranked[i-1].TotalScore {
			ranked[i].Rank = ranked[i-1].Rank
			continue
		}
		ranked[i].Rank = i + 1
	}

	return ranked
}
