package score

import "sort"

// DefaultBadges are the labels for ranks 1-3.
var DefaultBadges = [3]string{"🥇", "🥈", "🥉"}

// AssignRanks sorts the scored rows ascending by score and assigns
// consecutive 1-based ranks and top-three badges. Ties keep original input
// order (stable, "first" semantics). Rows without a defined score receive no
// rank and no badge and do not consume rank numbers.
//
// The rows slice itself is not reordered; only Rank and RankBadge are set.
func AssignRanks(rows []*VendorRow, badges [3]string) {
	scored := make([]*VendorRow, 0, len(rows))
	for _, r := range rows {
		r.Rank = 0
		r.RankBadge = ""
		if r.Scored() {
			scored = append(scored, r)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].VendorScore.Value < scored[j].VendorScore.Value
	})

	for i, r := range scored {
		r.Rank = i + 1
		if i < len(badges) {
			r.RankBadge = badges[i]
		}
	}
}
