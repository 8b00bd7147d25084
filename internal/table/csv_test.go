package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/winbio/vendorscore/internal/score"
)

const sampleCSV = `vendor_code,product,price,terms_raw,notes
ACME,Widget,"$1,200.00",Net 30,preferred
BOLT,Widget,1150.50,45 days,
CRUX,Widget,999.99,Due August 1st,
DENT,Widget,none,No current vendor,
EAST,Gadget,50,call for terms,
FLUX,Gadget,$48.00,60-day,
`

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if tbl.Len() != 6 {
		t.Fatalf("Len = %d, want 6", tbl.Len())
	}

	acme := tbl.Get("Widget", "ACME")
	if acme == nil {
		t.Fatal("ACME row not found")
	}
	if acme.PriceRaw != "$1,200.00" {
		t.Errorf("PriceRaw = %q, want $1,200.00", acme.PriceRaw)
	}
	if acme.TermsRaw != "Net 30" {
		t.Errorf("TermsRaw = %q, want Net 30", acme.TermsRaw)
	}
	if acme.Extra["notes"] != "preferred" {
		t.Errorf("Extra[notes] = %q, want preferred", acme.Extra["notes"])
	}

	// Empty extra cells are not stored.
	bolt := tbl.Get("Widget", "BOLT")
	if _, ok := bolt.Extra["notes"]; ok {
		t.Error("empty extra cell should not be stored")
	}
}

func TestReadCSVHeaderNormalization(t *testing.T) {
	input := "Vendor_Code,Product,Price,Terms_Raw\nACME,Widget,10,Net 30\n"
	tbl, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if tbl.Get("Widget", "ACME") == nil {
		t.Error("mixed-case headers should normalize to the standard names")
	}

	input = "VendorCode,Product,Price,TermsRaw\nACME,Widget,10,Net 30\n"
	tbl, err = ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV with camelCase headers failed: %v", err)
	}
	if tbl.Get("Widget", "ACME") == nil {
		t.Error("camelCase headers should normalize to the standard names")
	}
}

func TestReadCSVMissingRequiredColumn(t *testing.T) {
	input := "vendor_code,product,price\nACME,Widget,10\n"
	_, err := ReadCSV(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected an error for a missing required column")
	}
	if !strings.Contains(err.Error(), "missing required column: terms_raw") {
		t.Errorf("error = %v, want missing required column: terms_raw", err)
	}
}

func TestReadCSVIgnoresDerivedColumns(t *testing.T) {
	// A previously exported file carries stale derived values. They must not
	// survive the load.
	input := "vendor_code,product,price,terms_raw,terms_days,vendor_score,rank,rank_badge\n" +
		"ACME,Widget,10,Net 30,999,123.4,7,🥇\n"
	tbl, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	row := tbl.Get("Widget", "ACME")
	if row.TermsDays.Valid || row.VendorScore.Valid || row.Rank != 0 || row.RankBadge != "" {
		t.Errorf("derived columns should be ignored on input, got %+v", row)
	}
	if _, ok := row.Extra["terms_days"]; ok {
		t.Error("derived columns must not leak into Extra")
	}
}

func TestReadCSVDuplicateRow(t *testing.T) {
	input := "vendor_code,product,price,terms_raw\nACME,Widget,10,Net 30\nACME,Widget,11,Net 30\n"
	_, err := ReadCSV(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected an error for a duplicate (product, vendor_code) pair")
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error should name the offending row, got %v", err)
	}
}

func TestReadCSVMissingVendorCode(t *testing.T) {
	input := "vendor_code,product,price,terms_raw\n,Widget,10,Net 30\n"
	_, err := ReadCSV(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected an error for an empty vendor_code")
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	engine := score.NewEngine(1)
	today := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	engine.Recompute(tbl.Rows(), today)

	var buf strings.Builder
	if err := tbl.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7", len(lines))
	}
	wantHeader := "vendor_code,product,price,terms_raw,terms_days,vendor_score,total_cost,rank,rank_badge,notes"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}

	// CRUX has the lowest Widget score and must carry rank 1. Due August 1st
	// seen from 2024-05-01 is 92 days out.
	if !strings.Contains(out, "CRUX,Widget,999.99,Due August 1st,92,") {
		t.Errorf("output missing scored CRUX row:\n%s", out)
	}
	// DENT has no vendor: derived cells stay empty.
	if !strings.Contains(out, "DENT,Widget,none,No current vendor,,,,,") {
		t.Errorf("output missing unscored DENT row:\n%s", out)
	}

	// The exported file must load back unchanged in its raw columns.
	back, err := ReadCSV(strings.NewReader(out))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if back.Len() != tbl.Len() {
		t.Errorf("round trip Len = %d, want %d", back.Len(), tbl.Len())
	}
	crux := back.Get("Widget", "CRUX")
	if crux.PriceRaw != "999.99" || crux.TermsRaw != "Due August 1st" {
		t.Errorf("raw columns changed across a round trip: %+v", crux)
	}
	if crux.VendorScore.Valid {
		t.Error("derived columns must be dropped when re-reading an export")
	}
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pricing.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tbl.Path() != path {
		t.Errorf("Path = %q, want %q", tbl.Path(), path)
	}
	if tbl.IsDirty() {
		t.Error("a freshly loaded table should be clean")
	}

	if err := tbl.SetPrice("Widget", "ACME", "1000"); err != nil {
		t.Fatalf("SetPrice failed: %v", err)
	}
	if err := tbl.Save(""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if tbl.IsDirty() {
		t.Error("Save should mark the table clean")
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got := back.Get("Widget", "ACME").PriceRaw; got != "1000" {
		t.Errorf("PriceRaw after save/reload = %q, want 1000", got)
	}
}

func TestNormalizeColumnName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"vendor_code", "vendor_code"},
		{"Vendor_Code", "vendor_code"},
		{"VendorCode", "vendor_code"},
		{"termsRaw", "terms_raw"},
		{"  price ", "price"},
		{"PRICE", "price"},
		{"notes", "notes"},
	}

	for _, tt := range tests {
		if got := normalizeColumnName(tt.in); got != tt.want {
			t.Errorf("normalizeColumnName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
