package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/winbio/vendorscore/internal/score"
	"github.com/winbio/vendorscore/internal/table"
)

// Today is the fixed reference date used across tests so payment-term
// resolution is reproducible.
var Today = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

// RowOption configures a test vendor row.
type RowOption func(*score.VendorRow)

// NewTestRow creates a vendor row for testing with optional configuration.
func NewTestRow(vendorCode, product string, opts ...RowOption) *score.VendorRow {
	row := score.NewVendorRow(vendorCode, product)
	row.PriceRaw = "10.00"
	row.TermsRaw = "30 day net"

	for _, opt := range opts {
		opt(row)
	}
	return row
}

// WithPrice sets the raw price cell.
func WithPrice(raw string) RowOption {
	return func(r *score.VendorRow) {
		r.PriceRaw = raw
	}
}

// WithTerms sets the raw payment-terms cell.
func WithTerms(raw string) RowOption {
	return func(r *score.VendorRow) {
		r.TermsRaw = raw
	}
}

// WithExtra sets an extra passthrough column.
func WithExtra(key, value string) RowOption {
	return func(r *score.VendorRow) {
		r.Extra[key] = value
	}
}

// NewTestTable creates a table for testing from the given rows.
func NewTestTable(t *testing.T, rows ...*score.VendorRow) *table.Table {
	t.Helper()

	tbl := table.New()
	for _, row := range rows {
		if err := tbl.Add(row); err != nil {
			t.Fatalf("failed to add test row %s: %v", row.VendorCode, err)
		}
	}
	// Fixtures behave like a freshly loaded file.
	tbl.MarkClean()
	return tbl
}

// WriteTempCSV writes CSV content to a temp file and returns its path.
func WriteTempCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pricing.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp CSV: %v", err)
	}
	return path
}

// SampleCSV is a small dataset exercising the interesting term and price
// shapes: clean values, currency formatting, annual due dates, no-vendor
// markers and malformed cells.
const SampleCSV = `vendor_code,product,price,terms_raw,notes
ACME,Widget,10.00,30 day net,preferred
BOLT,Widget,"$1,234.50",Due August 1st,
CRUX,Widget,9.50,Net 30,
DENT,Widget,nan,30 day net,no price yet
EAST,Gadget,20.00,No current vendor contract,
FLUX,Gadget,19.75,Due March 15th,
`
