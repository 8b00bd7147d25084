package score

// VendorRow is one vendor entry in the pricing table. PriceRaw and TermsRaw
// hold the cell text as uploaded or edited; everything below them is derived
// and recomputed on every pass, never trusted from prior output.
type VendorRow struct {
	// Raw input columns.
	VendorCode string
	Product    string
	PriceRaw   string
	TermsRaw   string

	// Derived columns.
	Price       Amount
	TermsDays   TermDays
	VendorScore Amount
	TotalCost   Amount
	Rank        int // 0 = unranked
	RankBadge   string

	// Columns outside the standard set, passed through unchanged.
	Extra map[string]string
}

// NewVendorRow creates a row with raw cells only.
func NewVendorRow(vendorCode, product string) *VendorRow {
	return &VendorRow{
		VendorCode: vendorCode,
		Product:    product,
		Extra:      make(map[string]string),
	}
}

// Scored reports whether the row has a defined vendor score.
func (r *VendorRow) Scored() bool {
	return r.VendorScore.Valid
}

// ClearDerived resets every derived column to its absent/zero state.
func (r *VendorRow) ClearDerived() {
	r.Price = Amount{}
	r.TermsDays = TermDays{}
	r.VendorScore = Amount{}
	r.TotalCost = Amount{}
	r.Rank = 0
	r.RankBadge = ""
}

// Clone creates a deep copy of the row.
func (r *VendorRow) Clone() *VendorRow {
	clone := *r
	clone.Extra = make(map[string]string, len(r.Extra))
	for k, v := range r.Extra {
		clone.Extra[k] = v
	}
	return &clone
}
