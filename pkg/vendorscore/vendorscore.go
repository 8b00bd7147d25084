// Package vendorscore exposes the scoring engine to embedding hosts.
//
// The core operation is Recompute: given vendor rows, an explicit "today"
// and an order quantity, it fills in every derived column (payment-term
// days, vendor score, total cost, per-product rank and badge). It is pure
// and idempotent: recomputing its own output changes nothing.
//
// Basic usage:
//
//	rows := []*vendorscore.Row{
//	    {VendorCode: "ACME", Product: "Widget", Price: "$1,200.00", Terms: "30 day net"},
//	    {VendorCode: "BOLT", Product: "Widget", Price: "1150", Terms: "Due August 1st"},
//	}
//	results, err := vendorscore.Recompute(rows, time.Now(), 50)
//
// Hosts remain responsible for authenticating callers and for file I/O;
// ReadCSV and WriteCSV cover the common spreadsheet round trip.
package vendorscore

import (
	"fmt"
	"io"
	"time"

	"github.com/winbio/vendorscore/internal/score"
	"github.com/winbio/vendorscore/internal/table"
)

// Row is one vendor entry as supplied by the host. Price and Terms carry
// the raw cell text; malformed values degrade to absent results rather than
// errors.
type Row struct {
	VendorCode string
	Product    string
	Price      string
	Terms      string
}

// Result is a row with its derived columns. Optional values are reported as
// a (value, ok) pair; ok is false when the column is undefined for the row.
type Result struct {
	Row

	// PriceValue is the normalized unit price.
	PriceValue float64
	PriceOK    bool

	// TermsDays is the payment-term length in days.
	TermsDays   int
	TermsDaysOK bool

	// Score is the comparable vendor score; lower is better.
	Score   float64
	ScoreOK bool

	// TotalCost is the projected cost at the order quantity.
	TotalCost   float64
	TotalCostOK bool

	// Rank is the 1-based rank within the product group, 0 if unranked.
	Rank int

	// Badge is the top-three label, empty otherwise.
	Badge string
}

// Recompute derives every output column for the given rows. Vendors compete
// within their product group; rows without a defined score are unranked.
// The order quantity must be positive.
func Recompute(rows []*Row, today time.Time, orderQuantity int) ([]Result, error) {
	if orderQuantity < 1 {
		return nil, fmt.Errorf("order quantity must be a positive integer, got %d", orderQuantity)
	}

	internal := make([]*score.VendorRow, len(rows))
	for i, r := range rows {
		row := score.NewVendorRow(r.VendorCode, r.Product)
		row.PriceRaw = r.Price
		row.TermsRaw = r.Terms
		internal[i] = row
	}

	engine := score.NewEngine(orderQuantity)
	engine.Recompute(internal, today)

	results := make([]Result, len(rows))
	for i, row := range internal {
		results[i] = Result{
			Row:         *rows[i],
			PriceValue:  row.Price.Value,
			PriceOK:     row.Price.Valid,
			TermsDays:   row.TermsDays.Days,
			TermsDaysOK: row.TermsDays.Valid,
			Score:       row.VendorScore.Value,
			ScoreOK:     row.VendorScore.Valid,
			TotalCost:   row.TotalCost.Value,
			TotalCostOK: row.TotalCost.Valid,
			Rank:        row.Rank,
			Badge:       row.RankBadge,
		}
	}
	return results, nil
}

// ReadCSV parses a pricing spreadsheet. The header must include
// vendor_code, product, price and terms_raw; derived columns in the input
// are ignored, extra columns are dropped.
func ReadCSV(r io.Reader) ([]*Row, error) {
	t, err := table.ReadCSV(r)
	if err != nil {
		return nil, err
	}

	rows := make([]*Row, 0, t.Len())
	for _, row := range t.Rows() {
		rows = append(rows, &Row{
			VendorCode: row.VendorCode,
			Product:    row.Product,
			Price:      row.PriceRaw,
			Terms:      row.TermsRaw,
		})
	}
	return rows, nil
}

// WriteCSV serializes results as the augmented spreadsheet: the raw columns
// plus terms_days, vendor_score, total_cost, rank and rank_badge.
func WriteCSV(w io.Writer, results []Result) error {
	t := table.New()
	for i := range results {
		res := &results[i]
		row := score.NewVendorRow(res.VendorCode, res.Product)
		row.PriceRaw = res.Price
		row.TermsRaw = res.Terms
		row.Price = score.Amount{Value: res.PriceValue, Valid: res.PriceOK}
		row.TermsDays = score.TermDays{Days: res.TermsDays, Valid: res.TermsDaysOK}
		row.VendorScore = score.Amount{Value: res.Score, Valid: res.ScoreOK}
		row.TotalCost = score.Amount{Value: res.TotalCost, Valid: res.TotalCostOK}
		row.Rank = res.Rank
		row.RankBadge = res.Badge
		if err := t.Add(row); err != nil {
			return err
		}
	}
	return t.WriteCSV(w)
}
