package score

import "time"

// Engine holds the knobs for a recomputation pass. The zero value is not
// usable; construct with NewEngine.
type Engine struct {
	// Quantity is the order quantity used for total-cost projection.
	Quantity int

	// Decimals is the rounding applied to vendor scores.
	Decimals int

	// Badges are the labels assigned to ranks 1-3.
	Badges [3]string
}

// NewEngine creates an engine with default rounding and badges.
func NewEngine(quantity int) Engine {
	return Engine{
		Quantity: quantity,
		Decimals: DefaultDecimals,
		Badges:   DefaultBadges,
	}
}

// Recompute rebuilds every derived column from the raw cells: normalized
// price, term days, vendor score, total cost, rank and badge. Prior derived
// values are discarded first, so feeding the engine its own output changes
// nothing (the pass is idempotent for a fixed today and quantity).
//
// Vendors compete within their product group: ranks are assigned
// independently per product, in input order within each group.
func (e Engine) Recompute(rows []*VendorRow, today time.Time) {
	for _, r := range rows {
		r.ClearDerived()
		r.Price = NormalizePrice(r.PriceRaw)
		r.TermsDays = ResolveTerms(r.TermsRaw, today)
		r.VendorScore = Score(r.Price, r.TermsDays, e.Decimals)
		r.TotalCost = TotalCost(r.Price, e.Quantity)
	}

	for _, group := range groupByProduct(rows) {
		AssignRanks(group, e.Badges)
	}
}

// groupByProduct splits rows into per-product groups, preserving input order
// both across and within groups.
func groupByProduct(rows []*VendorRow) [][]*VendorRow {
	byProduct := make(map[string][]*VendorRow)
	var order []string
	for _, r := range rows {
		if _, ok := byProduct[r.Product]; !ok {
			order = append(order, r.Product)
		}
		byProduct[r.Product] = append(byProduct[r.Product], r)
	}

	groups := make([][]*VendorRow, 0, len(order))
	for _, p := range order {
		groups = append(groups, byProduct[p])
	}
	return groups
}
