// Package table provides the in-memory vendor pricing table and its CSV
// serialization. The table is the unit the scoring engine recomputes: raw
// cells are authoritative, derived columns are rebuilt on every pass.
package table

import (
	"fmt"
	"sort"

	"github.com/winbio/vendorscore/internal/score"
)

// Table is an in-memory vendor pricing table.
type Table struct {
	// rows holds all rows in insertion order; ranking tie-breaks and CSV
	// output depend on this order being preserved.
	rows []*score.VendorRow

	// index maps (product, vendor_code) to its row. Vendor codes are only
	// unique within a product group, not globally.
	index map[rowKey]*score.VendorRow

	// path is the file this table was loaded from.
	path string

	// dirty tracks unsaved edits.
	dirty bool
}

type rowKey struct {
	product    string
	vendorCode string
}

// New creates an empty table.
func New() *Table {
	return &Table{
		index: make(map[rowKey]*score.VendorRow),
	}
}

// Path returns the file path this table was loaded from.
func (t *Table) Path() string {
	return t.path
}

// SetPath sets the file path for saving.
func (t *Table) SetPath(path string) {
	t.path = path
}

// IsDirty returns true if the table has unsaved edits.
func (t *Table) IsDirty() bool {
	return t.dirty
}

// MarkClean marks the table as saved.
func (t *Table) MarkClean() {
	t.dirty = false
}

// MarkDirty marks the table as edited.
func (t *Table) MarkDirty() {
	t.dirty = true
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Add appends a row. Vendor codes must be unique within their product group.
func (t *Table) Add(r *score.VendorRow) error {
	if r.VendorCode == "" {
		return fmt.Errorf("vendor_code cannot be empty")
	}
	key := rowKey{product: r.Product, vendorCode: r.VendorCode}
	if _, ok := t.index[key]; ok {
		return fmt.Errorf("vendor %q already exists for product %q", r.VendorCode, r.Product)
	}
	t.index[key] = r
	t.rows = append(t.rows, r)
	t.MarkDirty()
	return nil
}

// Get retrieves a row by product and vendor code, or nil.
func (t *Table) Get(product, vendorCode string) *score.VendorRow {
	return t.index[rowKey{product: product, vendorCode: vendorCode}]
}

// Rows returns all rows in insertion order. The slice is shared; callers
// must not reorder it.
func (t *Table) Rows() []*score.VendorRow {
	return t.rows
}

// ByProduct returns the rows competing within one product group, in
// insertion order.
func (t *Table) ByProduct(product string) []*score.VendorRow {
	var rows []*score.VendorRow
	for _, r := range t.rows {
		if r.Product == product {
			rows = append(rows, r)
		}
	}
	return rows
}

// Products returns all unique product names, sorted.
func (t *Table) Products() []string {
	seen := make(map[string]bool)
	var products []string
	for _, r := range t.rows {
		if !seen[r.Product] {
			seen[r.Product] = true
			products = append(products, r.Product)
		}
	}
	sort.Strings(products)
	return products
}

// SetPrice replaces the raw price cell of a row.
func (t *Table) SetPrice(product, vendorCode, raw string) error {
	r := t.Get(product, vendorCode)
	if r == nil {
		return fmt.Errorf("vendor %q not found for product %q", vendorCode, product)
	}
	r.PriceRaw = raw
	t.MarkDirty()
	return nil
}

// SetTerms replaces the raw payment-terms cell of a row.
func (t *Table) SetTerms(product, vendorCode, raw string) error {
	r := t.Get(product, vendorCode)
	if r == nil {
		return fmt.Errorf("vendor %q not found for product %q", vendorCode, product)
	}
	r.TermsRaw = raw
	t.MarkDirty()
	return nil
}

// ScoredCount returns the number of rows with a defined vendor score.
func (t *Table) ScoredCount() int {
	n := 0
	for _, r := range t.rows {
		if r.Scored() {
			n++
		}
	}
	return n
}

// Best returns the rank-1 row for a product, or nil when no row in the
// group has a defined score.
func (t *Table) Best(product string) *score.VendorRow {
	for _, r := range t.ByProduct(product) {
		if r.Rank == 1 {
			return r
		}
	}
	return nil
}
