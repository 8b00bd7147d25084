package score

// DefaultDecimals is the rounding applied to computed scores for stable
// display and tie behavior.
const DefaultDecimals = 4

// Score combines unit price and payment-term favorability into a single
// comparable number; lower is better. Shorter terms carry a larger 1/days
// penalty, so at equal price the vendor allowing more time to pay wins.
//
// The score is undefined when the price is absent or no positive term length
// is known. Undefined scores are excluded from ranking rather than given a
// large sentinel, so they can never corrupt sums or averages downstream.
func Score(price Amount, term TermDays, decimals int) Amount {
	if !price.Valid || !term.Valid || term.Days <= 0 {
		return Amount{}
	}
	return NewAmount(Round(price.Value+1/float64(term.Days), decimals))
}

// TotalCost projects the purchase cost at the given order quantity. An
// absent price or non-positive quantity yields an absent cost.
func TotalCost(price Amount, quantity int) Amount {
	if !price.Valid || quantity <= 0 {
		return Amount{}
	}
	return NewAmount(price.Value * float64(quantity))
}
